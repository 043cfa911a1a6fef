package storage

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/jhoicas/marketplace-identity/internal/application/ports"
	"github.com/jhoicas/marketplace-identity/internal/domain/entity"
	"github.com/jhoicas/marketplace-identity/pkg/config"
)

// New elige el adaptador una única vez al arrancar: Cloudinary si las credenciales
// son reales, disco local en caso contrario.
func New(cld config.CloudinaryConfig, upload config.UploadConfig, fs afero.Fs, log zerolog.Logger) (ports.AttachmentStore, error) {
	if cld.IsConfigured() {
		log.Info().Str("backend", BackendCloudinary).Str("folder", cld.Folder).
			Msg("usando Cloudinary para documentos de negocio")
		return NewCloudinaryStore(cld.CloudName, cld.APIKey, cld.APISecret, cld.Folder)
	}
	log.Warn().Str("backend", BackendLocal).Str("dir", upload.Dir).
		Msg("Cloudinary no configurado, usando disco local")
	return NewLocalStore(fs, upload.Dir, upload.PublicPath)
}

// OperationObserver recibe el resultado de cada llamada al almacenamiento.
type OperationObserver interface {
	AttachmentOperation(backend, operation string, err error)
}

// Instrumented decora un AttachmentStore reportando cada operación.
type Instrumented struct {
	next     ports.AttachmentStore
	observer OperationObserver
}

// Instrument envuelve store con observer.
func Instrument(store ports.AttachmentStore, observer OperationObserver) *Instrumented {
	return &Instrumented{next: store, observer: observer}
}

func (i *Instrumented) Backend() string { return i.next.Backend() }

func (i *Instrumented) Upload(ctx context.Context, file ports.File) (*entity.BusinessDocument, error) {
	doc, err := i.next.Upload(ctx, file)
	i.observer.AttachmentOperation(i.next.Backend(), "upload", err)
	return doc, err
}

func (i *Instrumented) Delete(ctx context.Context, externalID string) error {
	err := i.next.Delete(ctx, externalID)
	i.observer.AttachmentOperation(i.next.Backend(), "delete", err)
	return err
}
