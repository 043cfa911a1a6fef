package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-identity/internal/application/account"
	"github.com/jhoicas/marketplace-identity/internal/application/dto"
	"github.com/jhoicas/marketplace-identity/internal/application/ports"
)

// DocumentField nombre del campo multipart con el documento de negocio.
const DocumentField = "businessDocument"

// AccountHandler expone el ciclo de vida de cuentas.
type AccountHandler struct {
	uc *account.LifecycleUseCase
}

// NewAccountHandler construye el handler de cuentas.
func NewAccountHandler(uc *account.LifecycleUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar cuenta
// @Description  Admin queda aprobado; Supplier y Buyer quedan pendientes de aprobación.
// @Tags         auth
// @Accept       json,mpfd
// @Produce      json
// @Param        body              body      dto.RegisterRequest  true   "name, email, password, role y campos de negocio"
// @Param        businessDocument  formData  file                 false  "jpg, png o pdf"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AccountHandler) Register(c *fiber.Ctx) error {
	fields, file, closeFile, err := readFields(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	defer closeFile()

	out, err := h.uc.Register(c.UserContext(), dto.RegisterRequestFromFields(fields), file)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Authenticate(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Perfil de la cuenta autenticada
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.AccountResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	// AuthMiddleware ya cargó la cuenta desde el store
	if acc := GetAccount(c); acc != nil {
		return c.JSON(acc)
	}
	out, err := h.uc.GetSelf(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Listar cuentas (Admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.AccountResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/auth/all [get]
func (h *AccountHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cuenta por ID (Admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID de la cuenta"
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/admin/{id} [get]
func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cuenta
// @Description  La propia cuenta o un Admin. Solo Admin cambia status o role.
// @Tags         auth
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id                path      string             true   "ID de la cuenta"
// @Param        body              body      dto.UpdateRequest  false  "campos a cambiar"
// @Param        businessDocument  formData  file               false  "nuevo documento"
// @Success      200  {object}  dto.AccountResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/{id} [put]
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	fields, file, closeFile, err := readFields(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	defer closeFile()

	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), dto.UpdateRequestFromFields(fields), file)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cuenta
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID de la cuenta"
// @Success      200  {object}  dto.DeleteResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/{id} [delete]
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func noop() {}

// readFields lee el cuerpo como mapa plano de campos, venga en JSON, multipart o urlencoded.
// Si hay documento adjunto lo devuelve abierto; closeFile siempre es invocable.
func readFields(c *fiber.Ctx) (map[string]any, *ports.File, func(), error) {
	fields := map[string]any{}
	ctype := strings.ToLower(c.Get(fiber.HeaderContentType))

	switch {
	case strings.HasPrefix(ctype, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, nil, noop, err
		}
		for k, v := range form.Value {
			if len(v) > 0 {
				fields[k] = v[0]
			}
		}
		headers := form.File[DocumentField]
		if len(headers) == 0 {
			return fields, nil, noop, nil
		}
		fh := headers[0]
		f, err := fh.Open()
		if err != nil {
			return nil, nil, noop, err
		}
		file := &ports.File{
			OriginalName: fh.Filename,
			ContentType:  fh.Header.Get(fiber.HeaderContentType),
			Size:         fh.Size,
			Content:      f,
		}
		return fields, file, func() { _ = f.Close() }, nil

	case strings.HasPrefix(ctype, fiber.MIMEApplicationForm):
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			fields[string(k)] = string(v)
		})
		return fields, nil, noop, nil

	default:
		body := c.Body()
		if len(body) == 0 {
			return fields, nil, noop, nil
		}
		if err := c.App().Config().JSONDecoder(body, &fields); err != nil {
			return nil, nil, noop, err
		}
		return fields, nil, noop, nil
	}
}
