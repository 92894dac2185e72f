package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// Invalid responde falha de binding com o detalhe por campo, quando houver.
func Invalid(c *gin.Context, err error) {
	body := ValidationError{
		Status:  "error",
		Message: "Dados inválidos.",
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			body.Errors = append(body.Errors, FieldError{
				Field:   fe.Field(),
				Message: fieldMessage(fe),
			})
		}
	}

	c.JSON(http.StatusBadRequest, body)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório."
	case "min":
		return "Deve ter no mínimo " + fe.Param() + " caracteres."
	case "uuid":
		return "Identificador inválido."
	case "oneof":
		return "Valor deve ser um de: " + fe.Param() + "."
	default:
		return "Valor inválido."
	}
}

// Respond traduz o erro do use case para HTTP. Erros não classificados são
// logados e nunca expõem detalhe ao cliente.
func Respond(c *gin.Context, logger zerolog.Logger, err error) {
	var be BusinessError
	if !errors.As(err, &be) || be.Kind == KindInternal {
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("unexpected error")
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	Write(c, be.Status(), be.Code, be.Message)
}
