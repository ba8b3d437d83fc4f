package handler

import (
	"context"
	"strconv"
	"time"

	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/response"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 5 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// pathID parses a numeric path parameter; on failure it has already written a 400.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// pageFromQuery reads page and page_size; bad values fall back to the defaults.
func pageFromQuery(c *gin.Context) repository.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	return repository.NewPage(page, pageSize)
}

// bindJSON decodes the body; on failure it has already written a 400.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BadRequest(c, "invalid request body")
		return false
	}
	return true
}
