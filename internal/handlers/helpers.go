package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/salonhub/salon-api/internal/httperr"
	"github.com/salonhub/salon-api/internal/pagination"
)

// Paging holds the page size policy of listings.
type Paging struct {
	Default int
	Max     int
}

func (p Paging) normalize(page, limit int) (int, int) {
	return pagination.Normalize(page, limit, p.Default, p.Max)
}

// pathID parses :id. On failure it writes a 400 and returns false.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return id, true
}

func invalidRequest(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", err.Error())
}
