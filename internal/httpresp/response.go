package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salonhub/salon-api/internal/pagination"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Paged[T any](c *gin.Context, page pagination.Page[T]) {
	c.JSON(http.StatusOK, page)
}
