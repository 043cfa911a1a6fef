package account

import (
	"path/filepath"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/jhoicas/marketplace-identity/internal/application/ports"
	"github.com/jhoicas/marketplace-identity/internal/domain"
	"github.com/jhoicas/marketplace-identity/internal/domain/entity"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 128
	maxNameLen     = 200
)

// Formatos aceptados para el documento de negocio.
var documentExtensions = []interface{}{".jpg", ".jpeg", ".png", ".pdf"}

// accountFields campos validables de una cuenta. checkPassword es false cuando
// el parche no toca la contraseña (el hash persistido no se valida).
type accountFields struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Document string `json:"businessDocument"`

	checkPassword bool
}

func (f *accountFields) validate() error {
	rules := []*validation.FieldRules{
		validation.Field(&f.Name, validation.Required, validation.Length(1, maxNameLen)),
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.Role, validation.Required, validation.Length(1, 50)),
		validation.Field(&f.Status, validation.Required, validation.In(statusValues()...)),
		validation.Field(&f.Document,
			validation.In(documentExtensions...).Error("must be a jpg, png or pdf file")),
	}
	if f.checkPassword {
		rules = append(rules, validation.Field(&f.Password,
			validation.Required, validation.Length(minPasswordLen, maxPasswordLen)))
	}
	return aggregate(validation.ValidateStruct(f, rules...))
}

// aggregate convierte validation.Errors en un único ValidationError que lista
// todos los campos inválidos, en orden estable.
func aggregate(err error) error {
	if err == nil {
		return nil
	}
	errs, ok := err.(validation.Errors)
	if !ok {
		return domain.Wrap(domain.ErrInternal, err, "Internal server error during validation: "+err.Error())
	}
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+errs[k].Error())
	}
	return domain.Wrap(domain.ErrValidation, err, "Validation Error: "+strings.Join(parts, ", "))
}

func statusValues() []interface{} {
	out := make([]interface{}, len(entity.Statuses))
	for i, s := range entity.Statuses {
		out[i] = s
	}
	return out
}

func documentExt(file *ports.File) string {
	if file == nil {
		return ""
	}
	ext := strings.ToLower(filepath.Ext(file.OriginalName))
	if ext == "" {
		// sin extensión no puede pasar la regla In
		return "?"
	}
	return ext
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
