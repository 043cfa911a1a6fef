package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/marketplace-identity/internal/application/dto"
	"github.com/jhoicas/marketplace-identity/internal/application/ports"
	"github.com/jhoicas/marketplace-identity/internal/domain"
	"github.com/jhoicas/marketplace-identity/internal/domain/entity"
	"github.com/jhoicas/marketplace-identity/internal/domain/policy"
	"github.com/jhoicas/marketplace-identity/internal/domain/repository"
)

// Mensajes expuestos al cliente.
const (
	msgRequiredFields     = "Name, email, password, and role are required."
	msgDuplicateEmail     = "An account with this email already exists or is pending approval."
	msgInvalidCredentials = "Invalid credentials"
	msgNotApproved        = "Your account is currently %s. Please wait for admin approval."
	msgAdminRegistered    = "Admin registered successfully!"
	msgPendingRegistered  = "Registration request submitted. Waiting for admin approval."
	msgUploadFailed       = "Failed to upload business document. Please check storage credentials."
	msgNotFound           = "User not found"
	msgForbiddenUpdate    = "Not authorized to update this user."
	msgForbiddenDelete    = "Not authorized to delete this user."
	msgForbiddenAdmin     = "Not authorized as an admin."
	msgForbiddenPrivilege = "Only administrators can change account status or role."
	msgDeleted            = "User deleted successfully"
)

// FailureRecorder registra los fallos del almacenamiento externo que se suprimen.
type FailureRecorder interface {
	StorageFailure(operation, backend string)
}

type noopRecorder struct{}

func (noopRecorder) StorageFailure(string, string) {}

// LifecycleUseCase orquesta registro, autenticación, actualización y borrado de cuentas.
//
// El adjunto se muta siempre antes que el registro de la cuenta. No hay compensación:
// si la escritura de la cuenta falla después de subir un documento, el objeto queda
// huérfano en el almacenamiento externo.
type LifecycleUseCase struct {
	repo        repository.AccountRepository
	attachments ports.AttachmentStore
	hasher      ports.PasswordHasher
	tokens      ports.TokenIssuer
	failures    FailureRecorder
	log         zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewLifecycleUseCase construye el caso de uso. failures puede ser nil.
func NewLifecycleUseCase(
	repo repository.AccountRepository,
	attachments ports.AttachmentStore,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	failures FailureRecorder,
	log zerolog.Logger,
) *LifecycleUseCase {
	if failures == nil {
		failures = noopRecorder{}
	}
	return &LifecycleUseCase{
		repo:        repo,
		attachments: attachments,
		hasher:      hasher,
		tokens:      tokens,
		failures:    failures,
		log:         log.With().Str("component", "account_lifecycle").Logger(),
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
}

// Register crea una cuenta. Admin queda aprobado; cualquier otro rol queda pendiente.
// La unicidad del email la garantiza el repositorio; la consulta previa solo evita trabajo.
func (uc *LifecycleUseCase) Register(ctx context.Context, in dto.RegisterRequest, file *ports.File) (*dto.RegisterResponse, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, domain.New(domain.ErrValidation, msgRequiredFields)
	}
	email := normalizeEmail(in.Email)
	status := entity.InitialStatus(in.Role)

	fields := accountFields{
		Name:          in.Name,
		Email:         email,
		Password:      in.Password,
		Role:          in.Role,
		Status:        status,
		Document:      documentExt(file),
		checkPassword: true,
	}
	if err := fields.validate(); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, uc.internal("registration", err)
	}
	if existing != nil {
		return nil, domain.New(domain.ErrDuplicateEmail, msgDuplicateEmail)
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, uc.internal("registration", err)
	}

	now := uc.now()
	account := &entity.Account{
		ID:           uc.newID(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		Status:       status,
		CompanyName:  in.CompanyName,
		BusinessData: in.BusinessData,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if file != nil {
		uc.log.Info().Str("file", file.OriginalName).Str("backend", uc.attachments.Backend()).
			Msg("documento de negocio recibido")
		doc, err := uc.attachments.Upload(ctx, *file)
		if err != nil {
			uc.log.Error().Err(err).Str("email", email).Msg("subida del documento de negocio")
			return nil, domain.Wrap(domain.ErrUpload, err, msgUploadFailed)
		}
		account.BusinessDocument = doc
	} else if entity.RequiresBusinessDocument(in.Role) {
		uc.log.Warn().Str("role", in.Role).Str("email", email).
			Msg("registro sin documento de negocio")
	}

	if err := uc.repo.Create(ctx, account); err != nil {
		return nil, uc.persistError("registration", err)
	}
	uc.log.Info().Str("account_id", account.ID).Str("email", email).Str("status", status).
		Msg("cuenta registrada")

	msg := msgPendingRegistered
	if in.Role == entity.RoleAdmin {
		msg = msgAdminRegistered
	}
	return &dto.RegisterResponse{Success: true, Message: msg}, nil
}

// Authenticate verifica credenciales y emite un token.
//
// Orden de comprobación: existencia → estado → contraseña. Una cuenta existente no
// aprobada se reporta sin exigir la contraseña correcta.
func (uc *LifecycleUseCase) Authenticate(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, domain.New(domain.ErrInvalidCredentials, msgInvalidCredentials)
	}
	account, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, uc.internal("login", err)
	}
	if account == nil {
		return nil, domain.New(domain.ErrInvalidCredentials, msgInvalidCredentials)
	}
	if !account.IsApproved() {
		return nil, domain.Newf(domain.ErrAccountNotApproved, msgNotApproved, account.Status)
	}
	if !uc.hasher.Verify(in.Password, account.PasswordHash) {
		return nil, domain.New(domain.ErrInvalidCredentials, msgInvalidCredentials)
	}

	token, err := uc.tokens.Sign(account.ID, account.Role)
	if err != nil {
		return nil, uc.internal("login", err)
	}
	return &dto.LoginResponse{
		ID:          account.ID,
		Name:        account.Name,
		Email:       account.Email,
		Role:        account.Role,
		Status:      account.Status,
		CompanyName: account.CompanyName,
		Token:       token,
	}, nil
}

// GetSelf devuelve la cuenta del propio actor.
func (uc *LifecycleUseCase) GetSelf(ctx context.Context, actor policy.Actor) (*dto.AccountResponse, error) {
	account, err := uc.load(ctx, actor.ID, "profile")
	if err != nil {
		return nil, err
	}
	return dto.ToAccountResponse(account), nil
}

// ListAll devuelve todas las cuentas, más recientes primero. Solo Admin.
func (uc *LifecycleUseCase) ListAll(ctx context.Context, actor policy.Actor) ([]*dto.AccountResponse, error) {
	if !policy.IsAdmin(actor) {
		return nil, domain.New(domain.ErrForbidden, msgForbiddenAdmin)
	}
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, uc.internal("listing", err)
	}
	out := make([]*dto.AccountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ToAccountResponse(a))
	}
	return out, nil
}

// GetByID devuelve una cuenta por id.
func (uc *LifecycleUseCase) GetByID(ctx context.Context, actor policy.Actor, id string) (*dto.AccountResponse, error) {
	if !policy.CanActOn(actor, id) {
		return nil, domain.New(domain.ErrForbidden, msgForbiddenAdmin)
	}
	account, err := uc.load(ctx, id, "lookup")
	if err != nil {
		return nil, err
	}
	return dto.ToAccountResponse(account), nil
}

// Update aplica un parche y, si llega un archivo nuevo, reemplaza el documento.
// El borrado del documento anterior es best-effort: si falla se registra y se continúa.
func (uc *LifecycleUseCase) Update(ctx context.Context, actor policy.Actor, targetID string, patch dto.UpdateRequest, file *ports.File) (*dto.AccountResponse, error) {
	if !policy.CanActOn(actor, targetID) {
		return nil, domain.New(domain.ErrForbidden, msgForbiddenUpdate)
	}
	account, err := uc.load(ctx, targetID, "update")
	if err != nil {
		return nil, err
	}
	// reenviar el mismo role o status no es un cambio
	if !policy.IsAdmin(actor) && (changes(patch.Status, account.Status) || changes(patch.Role, account.Role)) {
		return nil, domain.New(domain.ErrForbidden, msgForbiddenPrivilege)
	}

	updated := *account
	applyPatch(&updated, patch)
	fields := accountFields{
		Name:     updated.Name,
		Email:    updated.Email,
		Role:     updated.Role,
		Status:   updated.Status,
		Document: documentExt(file),
	}
	if patch.Password != nil {
		fields.Password = *patch.Password
		fields.checkPassword = true
	}
	if err := fields.validate(); err != nil {
		return nil, err
	}

	if updated.Email != account.Email {
		other, err := uc.repo.GetByEmail(ctx, updated.Email)
		if err != nil {
			return nil, uc.internal("update", err)
		}
		if other != nil && other.ID != account.ID {
			return nil, domain.New(domain.ErrDuplicateEmail, msgDuplicateEmail)
		}
	}
	if patch.Password != nil {
		hash, err := uc.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, uc.internal("update", err)
		}
		updated.PasswordHash = hash
	}

	if file != nil {
		uc.log.Info().Str("account_id", targetID).Str("file", file.OriginalName).
			Msg("nuevo documento de negocio recibido")
		doc, err := uc.attachments.Upload(ctx, *file)
		if err != nil {
			uc.log.Error().Err(err).Str("account_id", targetID).Msg("subida del documento de negocio")
			return nil, domain.Wrap(domain.ErrUpload, err, msgUploadFailed)
		}
		if account.HasDocument() {
			uc.cleanup(ctx, "update", targetID, account.BusinessDocument.ExternalID)
		}
		updated.BusinessDocument = doc
	}

	updated.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, &updated); err != nil {
		return nil, uc.persistError("update", err)
	}
	uc.log.Info().Str("account_id", targetID).Str("actor_id", actor.ID).Msg("cuenta actualizada")
	return dto.ToAccountResponse(&updated), nil
}

// Delete elimina la cuenta. Se intenta una única vez borrar el documento externo;
// el registro se elimina aunque ese borrado falle.
func (uc *LifecycleUseCase) Delete(ctx context.Context, actor policy.Actor, targetID string) (*dto.DeleteResponse, error) {
	if !policy.CanActOn(actor, targetID) {
		return nil, domain.New(domain.ErrForbidden, msgForbiddenDelete)
	}
	account, err := uc.load(ctx, targetID, "deletion")
	if err != nil {
		return nil, err
	}
	if account.HasDocument() {
		uc.cleanup(ctx, "delete", targetID, account.BusinessDocument.ExternalID)
	}
	if err := uc.repo.Delete(ctx, targetID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Wrap(domain.ErrNotFound, err, msgNotFound)
		}
		return nil, uc.internal("deletion", err)
	}
	uc.log.Info().Str("account_id", targetID).Str("actor_id", actor.ID).Msg("cuenta eliminada")
	return &dto.DeleteResponse{Message: msgDeleted, UserID: targetID}, nil
}

// cleanup borra un objeto externo sin propagar el fallo.
func (uc *LifecycleUseCase) cleanup(ctx context.Context, operation, accountID, externalID string) {
	if err := uc.attachments.Delete(ctx, externalID); err != nil {
		uc.failures.StorageFailure(operation, uc.attachments.Backend())
		uc.log.Warn().Err(err).
			Str("operation", operation).
			Str("account_id", accountID).
			Str("external_id", externalID).
			Str("backend", uc.attachments.Backend()).
			Msg("no se pudo borrar el documento externo")
	}
}

func (uc *LifecycleUseCase) load(ctx context.Context, id, operation string) (*entity.Account, error) {
	account, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.internal(operation, err)
	}
	if account == nil {
		return nil, domain.New(domain.ErrNotFound, msgNotFound)
	}
	return account, nil
}

// persistError conserva las categorías que el repositorio ya tradujo y envuelve el resto.
func (uc *LifecycleUseCase) persistError(operation string, err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return domain.Wrap(domain.ErrDuplicateEmail, err, msgDuplicateEmail)
	case errors.Is(err, domain.ErrValidation):
		return err
	case errors.Is(err, domain.ErrNotFound):
		return domain.Wrap(domain.ErrNotFound, err, msgNotFound)
	}
	return uc.internal(operation, err)
}

func (uc *LifecycleUseCase) internal(operation string, err error) error {
	uc.log.Error().Err(err).Str("operation", operation).Msg("error interno")
	return domain.Wrap(domain.ErrInternal, err, "Internal server error during "+operation+": "+err.Error())
}

func changes(v *string, current string) bool {
	return v != nil && *v != current
}

func applyPatch(a *entity.Account, p dto.UpdateRequest) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Email != nil {
		a.Email = normalizeEmail(*p.Email)
	}
	if p.Role != nil {
		a.Role = *p.Role
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.CompanyName != nil {
		a.CompanyName = *p.CompanyName
	}
	if len(p.BusinessData) > 0 {
		merged := make(map[string]any, len(a.BusinessData)+len(p.BusinessData))
		for k, v := range a.BusinessData {
			merged[k] = v
		}
		for k, v := range p.BusinessData {
			merged[k] = v
		}
		a.BusinessData = merged
	}
}
