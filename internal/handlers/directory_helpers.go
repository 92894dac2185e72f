package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// CacheInvalidator descarta entradas do cache do diretório após escrita.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, entity, id string)
}

func invalidate(inv CacheInvalidator, c *gin.Context, entity, id string) {
	if inv != nil {
		inv.Invalidate(c.Request.Context(), entity, id)
	}
}

// applyListFilters trata ?active=true|false e ?query= (LIKE nas colunas).
func applyListFilters(c *gin.Context, q *gorm.DB, columns ...string) *gorm.DB {
	switch strings.TrimSpace(c.Query("active")) {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	if query != "" && len(columns) > 0 {
		like := "%" + query + "%"
		conds := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, col := range columns {
			conds = append(conds, "LOWER("+col+") LIKE ?")
			args = append(args, like)
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}

	return q
}

// findByID escreve 404/500 e devolve false quando não achou.
func findByID(c *gin.Context, db *gorm.DB, out any, param, code, message string) (string, bool) {
	id := c.Param(param)
	if uuid.Validate(id) != nil {
		httperr.NotFound(c, code, message)
		return "", false
	}

	err := db.WithContext(c.Request.Context()).Where("id = ?", id).Take(out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, code, message)
		return "", false
	}
	if err != nil {
		httperr.Internal(c, "lookup_failed", "Erro ao buscar registro.")
		return "", false
	}

	return id, true
}
