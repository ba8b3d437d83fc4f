package handler

import (
	"context"
	"log/slog"

	"yamdb/internal/metrics"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// RouterDeps carries everything the HTTP surface needs. Metrics and Limiter are optional.
// Forwarded client addresses are only honoured from TrustedProxies.
type RouterDeps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Limiter        *middleware.IPRateLimiter
	TrustedProxies []string
	Ping           func(ctx context.Context) error

	Auth       service.AuthService
	Categories service.CategoryService
	Genres     service.GenreService
	Titles     service.TitleService
	Reviews    service.ReviewService
	Comments   service.CommentService
	Users      service.UserService
}

// NewRouter mounts the API under /api/v1.
func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		d.Logger.Error("invalid trusted proxies, ignoring forwarded headers", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Logger))
	if d.Metrics != nil {
		r.Use(middleware.HTTPMetrics(d.Metrics))
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	r.Use(middleware.RateLimit(d.Limiter))

	health := NewHealthHandler(d.Ping)
	r.GET("/health", health.Health)

	api := r.Group("/api/v1")
	api.GET("/health", health.Health)
	api.Use(middleware.Authenticate(d.Auth))

	NewAuthHandler(d.Auth).RegisterRoutes(api.Group("/auth"))
	NewCategoryHandler(d.Categories).RegisterRoutes(api.Group("/categories"))
	NewGenreHandler(d.Genres).RegisterRoutes(api.Group("/genres"))
	NewTitleHandler(d.Titles).RegisterRoutes(api.Group("/titles"))
	NewReviewHandler(d.Reviews).RegisterRoutes(api.Group("/titles/:title_id/reviews"))
	NewCommentHandler(d.Comments).RegisterRoutes(api.Group("/titles/:title_id/reviews/:review_id/comments"))
	NewUserHandler(d.Users).RegisterRoutes(api.Group("/users"))

	return r
}
