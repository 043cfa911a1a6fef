// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y con STORE_DRIVER=memory en desarrollo.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/marketplace-identity/internal/domain"
	"github.com/jhoicas/marketplace-identity/internal/domain/entity"
	"github.com/jhoicas/marketplace-identity/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo repositorio en memoria; aplica la misma unicidad de email que la tabla.
type AccountRepo struct {
	mu      sync.RWMutex
	byID    map[string]*entity.Account
	byEmail map[string]string
}

// NewAccountRepository construye un repositorio vacío.
func NewAccountRepository() *AccountRepo {
	return &AccountRepo{byID: map[string]*entity.Account{}, byEmail: map[string]string{}}
}

// Create inserta la cuenta; falla con ErrDuplicateEmail si el email ya existe.
func (r *AccountRepo) Create(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[a.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	r.byID[a.ID] = clone(a)
	r.byEmail[a.Email] = a.ID
	return nil
}

func (r *AccountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.byID[id]; ok {
		return clone(a), nil
	}
	return nil, nil
}

func (r *AccountRepo) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.byEmail[email]; ok {
		return clone(r.byID[id]), nil
	}
	return nil, nil
}

// ListAll ordena por CreatedAt descendente.
func (r *AccountRepo) ListAll(_ context.Context) ([]*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Account, 0, len(r.byID))
	for _, a := range r.byID {
		list = append(list, clone(a))
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *AccountRepo) Update(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if owner, taken := r.byEmail[a.Email]; taken && owner != a.ID {
		return domain.ErrDuplicateEmail
	}
	delete(r.byEmail, current.Email)
	r.byID[a.ID] = clone(a)
	r.byEmail[a.Email] = a.ID
	return nil
}

func (r *AccountRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.byEmail, a.Email)
	delete(r.byID, id)
	return nil
}

// Len número de cuentas almacenadas.
func (r *AccountRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func clone(a *entity.Account) *entity.Account {
	c := *a
	if a.BusinessDocument != nil {
		doc := *a.BusinessDocument
		c.BusinessDocument = &doc
	}
	if a.BusinessData != nil {
		c.BusinessData = make(map[string]any, len(a.BusinessData))
		for k, v := range a.BusinessData {
			c.BusinessData[k] = v
		}
	}
	return &c
}
