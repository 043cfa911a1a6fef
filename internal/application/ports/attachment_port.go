package ports

import (
	"context"
	"io"

	"github.com/jhoicas/marketplace-identity/internal/domain/entity"
)

// File archivo subido por el cliente (documento de negocio), ya extraído del multipart.
type File struct {
	OriginalName string
	ContentType  string
	Size         int64
	Content      io.Reader
}

// AttachmentStore define el puerto de salida hacia el almacenamiento de documentos.
// Hay dos adaptadores intercambiables (Cloudinary y disco local); se elige uno al
// arrancar el proceso y los casos de uso nunca distinguen cuál está activo.
type AttachmentStore interface {
	// Upload sube el archivo y devuelve su descriptor. Falla con domain.ErrUpload.
	Upload(ctx context.Context, file File) (*entity.BusinessDocument, error)
	// Delete elimina el objeto externo. Falla con domain.ErrDeletion.
	Delete(ctx context.Context, externalID string) error
	// Backend nombre del adaptador activo, solo para logs y métricas.
	Backend() string
}
