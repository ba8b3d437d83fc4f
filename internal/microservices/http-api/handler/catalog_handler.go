package handler

import (
	"context"
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/response"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// catalogService is what categories and genres have in common.
type catalogService interface {
	List(ctx context.Context, search string, page repository.Page) (*dto.Paginated[dto.CategoryResponse], error)
	Create(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, slug string) error
}

// CatalogHandler serves the category and genre lists, which differ only in resource.
type CatalogHandler struct {
	svc      catalogService
	resource policy.Resource
}

func NewCategoryHandler(svc service.CategoryService) *CatalogHandler {
	return &CatalogHandler{svc: svc, resource: policy.Category}
}

func NewGenreHandler(svc service.GenreService) *CatalogHandler {
	return &CatalogHandler{svc: svc, resource: policy.Genre}
}

func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)

	// Admin-only routes
	rg.POST("", middleware.RequirePermission(h.resource, policy.Create), h.Create)
	rg.DELETE("/:slug", middleware.RequirePermission(h.resource, policy.Delete), h.Delete)
}

func (h *CatalogHandler) List(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.List(ctx, c.Query("search"), pageFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if !bindJSON(c, &req) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.Create(ctx, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
