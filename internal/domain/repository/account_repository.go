package repository

import (
	"context"

	"github.com/jhoicas/marketplace-identity/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// Los métodos de búsqueda devuelven (nil, nil) cuando no existe el registro.
// Create/Update devuelven domain.ErrDuplicateEmail si se viola la unicidad del email.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	// ListAll devuelve todas las cuentas ordenadas por created_at descendente.
	ListAll(ctx context.Context) ([]*entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
	Delete(ctx context.Context, id string) error
}
