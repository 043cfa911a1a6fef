package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/marketplace-identity/internal/domain"
	"github.com/jhoicas/marketplace-identity/internal/domain/entity"
	"github.com/jhoicas/marketplace-identity/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

const accountColumns = `id, name, email, password_hash, role, status, company_name,
	business_document_id, business_document_url, COALESCE(business_data, '{}'::jsonb), created_at, updated_at`

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de persistencia para cuentas.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Create persiste una cuenta nueva.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	docID, docURL := documentColumns(a.BusinessDocument)
	query := `
		INSERT INTO accounts (id, name, email, password_hash, role, status, company_name,
			business_document_id, business_document_url, business_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Name, a.Email, a.PasswordHash, a.Role, a.Status, a.CompanyName,
		docID, docURL, businessData(a.BusinessData), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if tErr := translateError(err); tErr != err {
			return tErr
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	a, err := scanAccount(r.q.QueryRow(ctx, query, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by id: %w", err)
	}
	return a, nil
}

// GetByEmail obtiene una cuenta por email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 LIMIT 1`
	a, err := scanAccount(r.q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return a, nil
}

// ListAll lista todas las cuentas, más recientes primero.
func (r *AccountRepo) ListAll(ctx context.Context) ([]*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update reemplaza los campos mutables de la cuenta.
func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	uid, ok := parseID(a.ID)
	if !ok {
		return domain.ErrNotFound
	}
	docID, docURL := documentColumns(a.BusinessDocument)
	query := `
		UPDATE accounts SET name = $2, email = $3, password_hash = $4, role = $5, status = $6,
			company_name = $7, business_document_id = $8, business_document_url = $9,
			business_data = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		uid, a.Name, a.Email, a.PasswordHash, a.Role, a.Status, a.CompanyName,
		docID, docURL, businessData(a.BusinessData), a.UpdatedAt,
	)
	if err != nil {
		if tErr := translateError(err); tErr != err {
			return tErr
		}
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una cuenta por ID.
func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	uid, ok := parseID(id)
	if !ok {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, uid)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func scanAccount(row pgxScanner) (*entity.Account, error) {
	var (
		a      entity.Account
		docID  *string
		docURL *string
	)
	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.Status, &a.CompanyName,
		&docID, &docURL, &a.BusinessData, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if docID != nil && *docID != "" {
		a.BusinessDocument = &entity.BusinessDocument{ExternalID: *docID}
		if docURL != nil {
			a.BusinessDocument.URL = *docURL
		}
	}
	return &a, nil
}

// parseID valida el id antes de consultar; un id que no es UUID no puede existir.
func parseID(id string) (uuid.UUID, bool) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return uid, true
}

func documentColumns(doc *entity.BusinessDocument) (id, url *string) {
	if doc == nil || doc.ExternalID == "" {
		return nil, nil
	}
	return &doc.ExternalID, &doc.URL
}

func businessData(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
