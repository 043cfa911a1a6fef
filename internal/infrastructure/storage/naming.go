// Package storage implementa el puerto AttachmentStore: Cloudinary cuando hay
// credenciales reales y disco local como respaldo.
package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ObjectName nombre del objeto: "<unix-millis>-<nombre original>".
// Ambos adaptadores usan el mismo esquema.
func ObjectName(now time.Time, originalName string) string {
	base := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "document"
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), base)
}
