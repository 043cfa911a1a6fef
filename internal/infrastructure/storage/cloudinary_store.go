package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/jhoicas/marketplace-identity/internal/application/ports"
	"github.com/jhoicas/marketplace-identity/internal/domain"
	"github.com/jhoicas/marketplace-identity/internal/domain/entity"
)

// BackendCloudinary nombre del adaptador remoto.
const BackendCloudinary = "cloudinary"

// Resultados de destroy que cuentan como borrado.
const (
	destroyOK       = "ok"
	destroyNotFound = "not found"
)

var allowedFormats = api.CldAPIArray{"jpg", "jpeg", "png", "pdf"}

// uploadAPI subconjunto de uploader.API que usa el adaptador.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

var _ ports.AttachmentStore = (*CloudinaryStore)(nil)

// CloudinaryStore sube documentos a Cloudinary dentro de folder.
type CloudinaryStore struct {
	api    uploadAPI
	folder string
	now    func() time.Time
}

// NewCloudinaryStore construye el cliente a partir de las credenciales.
func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return newCloudinaryStore(&cld.Upload, folder), nil
}

func newCloudinaryStore(a uploadAPI, folder string) *CloudinaryStore {
	return &CloudinaryStore{api: a, folder: folder, now: time.Now}
}

func (s *CloudinaryStore) Backend() string { return BackendCloudinary }

// Upload sube el archivo con public id "<timestamp>-<nombre>".
func (s *CloudinaryStore) Upload(ctx context.Context, file ports.File) (*entity.BusinessDocument, error) {
	if file.Content == nil {
		return nil, domain.New(domain.ErrUpload, "empty document")
	}
	res, err := s.api.Upload(ctx, file.Content, uploader.UploadParams{
		PublicID:       ObjectName(s.now(), file.OriginalName),
		Folder:         s.folder,
		AllowedFormats: allowedFormats,
	})
	if err != nil {
		return nil, domain.Wrap(domain.ErrUpload, err, "cloudinary upload: "+err.Error())
	}
	if res == nil {
		return nil, domain.New(domain.ErrUpload, "cloudinary upload: empty response")
	}
	if res.Error.Message != "" {
		return nil, domain.Wrap(domain.ErrUpload, errors.New(res.Error.Message), "cloudinary upload: "+res.Error.Message)
	}
	url := res.SecureURL
	if url == "" {
		url = res.URL
	}
	return &entity.BusinessDocument{ExternalID: res.PublicID, URL: url}, nil
}

// Delete destruye el objeto remoto. "not found" se considera borrado.
func (s *CloudinaryStore) Delete(ctx context.Context, externalID string) error {
	res, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: externalID})
	if err != nil {
		return domain.Wrap(domain.ErrDeletion, err, "cloudinary destroy: "+err.Error())
	}
	if res == nil {
		return domain.New(domain.ErrDeletion, "cloudinary destroy: empty response")
	}
	if res.Error.Message != "" {
		return domain.Wrap(domain.ErrDeletion, errors.New(res.Error.Message), "cloudinary destroy: "+res.Error.Message)
	}
	switch strings.ToLower(res.Result) {
	case destroyOK, destroyNotFound:
		return nil
	}
	return domain.Newf(domain.ErrDeletion, "cloudinary destroy %s: %s", externalID, res.Result)
}
