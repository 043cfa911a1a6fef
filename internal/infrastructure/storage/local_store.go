package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/jhoicas/marketplace-identity/internal/application/ports"
	"github.com/jhoicas/marketplace-identity/internal/domain"
	"github.com/jhoicas/marketplace-identity/internal/domain/entity"
)

// BackendLocal nombre del adaptador en disco.
const BackendLocal = "local"

var _ ports.AttachmentStore = (*LocalStore)(nil)

// LocalStore guarda documentos en un directorio y los expone bajo publicPath.
type LocalStore struct {
	fs         afero.Fs
	dir        string
	publicPath string
	now        func() time.Time
}

// NewLocalStore crea el directorio si no existe.
func NewLocalStore(fs afero.Fs, dir, publicPath string) (*LocalStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads %s: %w", dir, err)
	}
	return &LocalStore{fs: fs, dir: dir, publicPath: publicPath, now: time.Now}, nil
}

func (s *LocalStore) Backend() string { return BackendLocal }

// Upload escribe el archivo como <dir>/<timestamp>-<nombre>.
func (s *LocalStore) Upload(ctx context.Context, file ports.File) (*entity.BusinessDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.Wrap(domain.ErrUpload, err, "upload cancelled")
	}
	if file.Content == nil {
		return nil, domain.New(domain.ErrUpload, "empty document")
	}
	name := ObjectName(s.now(), file.OriginalName)
	if err := afero.WriteReader(s.fs, filepath.Join(s.dir, name), file.Content); err != nil {
		return nil, domain.Wrap(domain.ErrUpload, err, "write document: "+err.Error())
	}
	return &entity.BusinessDocument{
		ExternalID: name,
		URL:        path.Join(s.publicPath, name),
	}, nil
}

// Delete borra el archivo. Un archivo ya inexistente no es error.
func (s *LocalStore) Delete(ctx context.Context, externalID string) error {
	if err := ctx.Err(); err != nil {
		return domain.Wrap(domain.ErrDeletion, err, "delete cancelled")
	}
	if externalID == "" || filepath.Base(externalID) != externalID || externalID == ".." {
		return domain.Newf(domain.ErrDeletion, "invalid document id %q", externalID)
	}
	err := s.fs.Remove(filepath.Join(s.dir, externalID))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return domain.Wrap(domain.ErrDeletion, err, "remove document: "+err.Error())
	}
	return nil
}
