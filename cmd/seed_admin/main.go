// seed_admin crea la cuenta Admin inicial directamente contra el store configurado.
//
// Uso: go run ./cmd/seed_admin <email> <password> [nombre]
// Lee la misma configuración que cmd/api (DATABASE_URL, DB_*, BCRYPT_COST).
// Si el email ya existe no hace nada.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/jhoicas/marketplace-identity/internal/application/account"
	"github.com/jhoicas/marketplace-identity/internal/application/dto"
	"github.com/jhoicas/marketplace-identity/internal/domain"
	"github.com/jhoicas/marketplace-identity/internal/domain/entity"
	"github.com/jhoicas/marketplace-identity/internal/infrastructure/postgres"
	"github.com/jhoicas/marketplace-identity/internal/infrastructure/security"
	"github.com/jhoicas/marketplace-identity/internal/infrastructure/storage"
	"github.com/jhoicas/marketplace-identity/pkg/config"
	"github.com/jhoicas/marketplace-identity/pkg/logger"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: seed_admin <email> <password> [nombre]")
		os.Exit(2)
	}
	name := "Administrator"
	if len(os.Args) > 3 {
		name = os.Args[3]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.DB.Driver != config.StoreDriverPostgres {
		fmt.Fprintln(os.Stderr, "seed_admin requiere STORE_DRIVER=postgres")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Sin documento adjunto: el almacén local solo satisface la dependencia.
	store, err := storage.NewLocalStore(afero.NewMemMapFs(), "/seed", cfg.Upload.PublicPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Almacenamiento: %v\n", err)
		os.Exit(1)
	}

	uc := account.NewLifecycleUseCase(
		postgres.NewAccountRepository(pool),
		store,
		security.NewBcryptHasher(cfg.Security.BcryptCost),
		security.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiresIn),
		nil,
		log.Component("seed_admin"),
	)

	out, err := uc.Register(ctx, dto.RegisterRequest{
		Name:     name,
		Email:    os.Args[1],
		Password: os.Args[2],
		Role:     entity.RoleAdmin,
	}, nil)
	if errors.Is(err, domain.ErrDuplicateEmail) {
		fmt.Printf("La cuenta %s ya existe\n", os.Args[1])
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Registrar admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out.Message)
}
