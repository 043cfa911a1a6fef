package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketplace-identity/internal/application/ports"
	"github.com/jhoicas/marketplace-identity/internal/domain"
)

var fixedNow = time.UnixMilli(1700000000123)

func newTestLocalStore(t *testing.T) (*LocalStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s, err := NewLocalStore(fs, "/srv/uploads", "/uploads")
	require.NoError(t, err)
	s.now = func() time.Time { return fixedNow }
	return s, fs
}

func TestObjectName(t *testing.T) {
	assert.Equal(t, "1700000000123-rut.pdf", ObjectName(fixedNow, "rut.pdf"))
	assert.Equal(t, "1700000000123-rut.pdf", ObjectName(fixedNow, "../../etc/rut.pdf"))
	assert.Equal(t, "1700000000123-rut.pdf", ObjectName(fixedNow, `C:\docs\rut.pdf`))
	assert.Equal(t, "1700000000123-document", ObjectName(fixedNow, ""))
}

func TestLocalStore_UploadYDelete(t *testing.T) {
	s, fs := newTestLocalStore(t)
	ctx := context.Background()

	doc, err := s.Upload(ctx, ports.File{OriginalName: "rut.pdf", Content: strings.NewReader("%PDF-1.7")})
	require.NoError(t, err)
	assert.Equal(t, "1700000000123-rut.pdf", doc.ExternalID)
	assert.Equal(t, "/uploads/1700000000123-rut.pdf", doc.URL)

	data, err := afero.ReadFile(fs, "/srv/uploads/1700000000123-rut.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))

	require.NoError(t, s.Delete(ctx, doc.ExternalID))
	exists, _ := afero.Exists(fs, "/srv/uploads/1700000000123-rut.pdf")
	assert.False(t, exists)

	// borrar de nuevo no es error
	assert.NoError(t, s.Delete(ctx, doc.ExternalID))
}

func TestLocalStore_DeleteRechazaRutas(t *testing.T) {
	s, _ := newTestLocalStore(t)
	for _, id := range []string{"", "../secret", "a/b.pdf", ".."} {
		err := s.Delete(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrDeletion, id)
	}
}

func TestLocalStore_ErroresDeSubida(t *testing.T) {
	s, _ := newTestLocalStore(t)

	_, err := s.Upload(context.Background(), ports.File{OriginalName: "x.pdf"})
	assert.ErrorIs(t, err, domain.ErrUpload)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Upload(ctx, ports.File{OriginalName: "x.pdf", Content: strings.NewReader("x")})
	assert.ErrorIs(t, err, domain.ErrUpload)

	s.fs = afero.NewReadOnlyFs(afero.NewMemMapFs())
	_, err = s.Upload(context.Background(), ports.File{OriginalName: "x.pdf", Content: strings.NewReader("x")})
	assert.ErrorIs(t, err, domain.ErrUpload)
}
