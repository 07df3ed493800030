package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"emailtriage/internal/extract"
	"emailtriage/internal/service"
)

// Multipart field names accepted by POST /classify.
const (
	FieldFile = "email-file"
	FieldText = "email-text"
)

// Classify handles POST /classify. An uploaded file with a name takes
// precedence over the text field.
//
// @Summary  Classify an email and suggest a reply
// @Tags     classify
// @Accept   multipart/form-data
// @Produce  json
// @Param    email-file formData file   false "Email as .pdf or .txt"
// @Param    email-text formData string false "Email body"
// @Success  200 {object} model.Triage
// @Failure  400 {object} errorPayload
// @Failure  413 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /classify [post]
func Classify(svc service.TriageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub := service.Submission{RequestID: requestIDFromCtx(c)}

		if fh, err := c.FormFile(FieldFile); err == nil && fh.Filename != "" {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "Não foi possível abrir o arquivo enviado")
			}
			defer f.Close()

			data, err := io.ReadAll(f)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "Não foi possível abrir o arquivo enviado")
			}
			sub.Filename = fh.Filename
			sub.Data = data
		} else {
			sub.Text = c.FormValue(FieldText)
		}

		res, err := svc.Triage(c.UserContext(), sub)
		if err != nil {
			return writeTriageError(c, err)
		}
		return c.JSON(res)
	}
}

func writeTriageError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FORMAT", "Formato não suportado")
	case errors.Is(err, extract.ErrUndecodable):
		return writeError(c, fiber.StatusBadRequest, "UNDECODABLE_TEXT", "Não foi possível decodificar o arquivo .txt")
	case errors.Is(err, extract.ErrNoContent):
		return writeError(c, fiber.StatusBadRequest, "NO_CONTENT", "Nenhum conteúdo enviado")
	case errors.Is(err, extract.ErrPDFUnreadable):
		return writeError(c, fiber.StatusInternalServerError, "PDF_UNREADABLE", "Não foi possível ler o arquivo PDF")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
