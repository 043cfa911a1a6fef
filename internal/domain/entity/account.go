package entity

import "time"

// Roles conocidos para Account. El conjunto es abierto: otros roles se aceptan
// y se tratan como no administrativos.
const (
	RoleAdmin    = "Admin"
	RoleSupplier = "Supplier"
	RoleBuyer    = "Buyer"
)

// Estados de aprobación.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Statuses lista de estados válidos (para validación).
var Statuses = []string{StatusPending, StatusApproved, StatusRejected}

// BusinessDocument descriptor del documento de verificación en el almacenamiento externo.
type BusinessDocument struct {
	ExternalID string `json:"externalId"`
	URL        string `json:"url"`
}

// Account identidad registrada en el marketplace.
type Account struct {
	ID               string
	Name             string
	Email            string // único globalmente (constraint en la tabla)
	PasswordHash     string
	Role             string
	Status           string
	CompanyName      string
	BusinessDocument *BusinessDocument
	BusinessData     map[string]any // campos propios del rol, se persisten tal cual
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// InitialStatus estado de una cuenta recién creada: Admin queda aprobado, el resto pendiente.
func InitialStatus(role string) string {
	if role == RoleAdmin {
		return StatusApproved
	}
	return StatusPending
}

// RequiresBusinessDocument indica si el rol debería adjuntar documento de negocio.
func RequiresBusinessDocument(role string) bool {
	return role == RoleSupplier || role == RoleBuyer
}

// IsApproved indica si la cuenta puede autenticarse.
func (a *Account) IsApproved() bool {
	return a.Status == StatusApproved
}

// HasDocument indica si hay un descriptor de adjunto con id externo.
func (a *Account) HasDocument() bool {
	return a.BusinessDocument != nil && a.BusinessDocument.ExternalID != ""
}
