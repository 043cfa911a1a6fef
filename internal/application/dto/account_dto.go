package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/marketplace-identity/internal/domain/entity"
)

// Claves de los campos núcleo; cualquier otra clave es un campo de negocio opaco.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldRole        = "role"
	FieldStatus      = "status"
	FieldCompanyName = "companyName"
)

// Claves que nunca se aceptan como campos de negocio (las gestiona el sistema).
var reservedFields = map[string]bool{
	"id": true, "_id": true, "passwordHash": true, "businessDocument": true,
	"createdAt": true, "updatedAt": true,
}

// RegisterRequest entrada para registro.
type RegisterRequest struct {
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	Role         string         `json:"role"`
	CompanyName  string         `json:"companyName,omitempty"`
	BusinessData map[string]any `json:"businessData,omitempty"`
}

// RegisterRequestFromFields separa campos núcleo y de negocio de un formulario o JSON plano.
func RegisterRequestFromFields(fields map[string]any) RegisterRequest {
	in := RegisterRequest{BusinessData: map[string]any{}}
	for k, v := range fields {
		switch k {
		case FieldName:
			in.Name = asString(v)
		case FieldEmail:
			in.Email = asString(v)
		case FieldPassword:
			in.Password = rawString(v)
		case FieldRole:
			in.Role = asString(v)
		case FieldCompanyName:
			in.CompanyName = asString(v)
		case FieldStatus:
			// el estado inicial lo decide el rol
		default:
			if !reservedFields[k] {
				in.BusinessData[k] = v
			}
		}
	}
	return in
}

// RegisterResponse salida del registro.
type RegisterResponse = MessageResponse

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse perfil saneado más token.
type LoginResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	CompanyName string `json:"companyName"`
	Token       string `json:"token"`
}

// AccountResponse salida de una cuenta (sin password).
type AccountResponse struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	Email            string                   `json:"email"`
	Role             string                   `json:"role"`
	Status           string                   `json:"status"`
	CompanyName      string                   `json:"companyName"`
	BusinessDocument *entity.BusinessDocument `json:"businessDocument,omitempty"`
	BusinessData     map[string]any           `json:"businessData,omitempty"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

// UpdateRequest parche parcial: nil significa "no cambiar".
type UpdateRequest struct {
	Name         *string        `json:"name,omitempty"`
	Email        *string        `json:"email,omitempty"`
	Password     *string        `json:"password,omitempty"`
	Role         *string        `json:"role,omitempty"`
	Status       *string        `json:"status,omitempty"`
	CompanyName  *string        `json:"companyName,omitempty"`
	BusinessData map[string]any `json:"businessData,omitempty"`
}

// UpdateRequestFromFields construye el parche a partir de un formulario o JSON plano.
func UpdateRequestFromFields(fields map[string]any) UpdateRequest {
	var in UpdateRequest
	for k, v := range fields {
		s := asString(v)
		switch k {
		case FieldName:
			in.Name = &s
		case FieldEmail:
			in.Email = &s
		case FieldPassword:
			pw := rawString(v)
			in.Password = &pw
		case FieldRole:
			in.Role = &s
		case FieldStatus:
			in.Status = &s
		case FieldCompanyName:
			in.CompanyName = &s
		default:
			if reservedFields[k] {
				continue
			}
			if in.BusinessData == nil {
				in.BusinessData = map[string]any{}
			}
			in.BusinessData[k] = v
		}
	}
	return in
}

// IsEmpty indica si el parche no cambia nada.
func (u UpdateRequest) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Password == nil && u.Role == nil &&
		u.Status == nil && u.CompanyName == nil && len(u.BusinessData) == 0
}

// DeleteResponse confirmación de borrado.
type DeleteResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// ToAccountResponse sanea una entidad para salida.
func ToAccountResponse(a *entity.Account) *AccountResponse {
	if a == nil {
		return nil
	}
	return &AccountResponse{
		ID:               a.ID,
		Name:             a.Name,
		Email:            a.Email,
		Role:             a.Role,
		Status:           a.Status,
		CompanyName:      a.CompanyName,
		BusinessDocument: a.BusinessDocument,
		BusinessData:     a.BusinessData,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// rawString como asString pero sin recortar espacios; la contraseña se usa tal cual.
func rawString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []string:
		if len(s) == 0 {
			return ""
		}
		return s[0]
	default:
		return fmt.Sprint(s)
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case []string:
		if len(s) == 0 {
			return ""
		}
		return strings.TrimSpace(s[0])
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}
