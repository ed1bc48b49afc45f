package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salonhub/salon-api/internal/db"
	"github.com/salonhub/salon-api/internal/logging"
	"github.com/salonhub/salon-api/internal/store"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
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

func Unavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// ======================================================
// ERROR MAPPING
// ======================================================

// FromError writes the response matching err. entity names the resource in
// not-found messages.
func FromError(c *gin.Context, entity string, err error) {
	var be BusinessError

	switch {
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, entity+"_not_found", entity+" não encontrado")
	case errors.As(err, &be):
		BadRequest(c, be.Code, be.Message())
	case errors.Is(err, store.ErrNotInserted):
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("entity", entity).Msg("insert returned no row")
		Internal(c, entity+"_create_failed", "falha ao criar "+entity)
	case errors.Is(err, store.ErrInvalidQuery):
		BadRequest(c, "invalid_query", err.Error())
	case store.IsUniqueViolation(err):
		Conflict(c, entity+"_conflict", entity+" já existe")
	case db.IsConnectionError(err):
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("database unavailable")
		Unavailable(c, "database_unavailable", "banco de dados indisponível")
	default:
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("entity", entity).Msg("request failed")
		Internal(c, "internal_error", "erro interno")
	}
}
