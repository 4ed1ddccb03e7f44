package handler

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/devesh1011/EtherBlinks/pkg/middleware"
	"github.com/devesh1011/EtherBlinks/pkg/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html static/*
var assets embed.FS

type Config struct {
	AllowOrigins []string
	// RateLimiter guards the write endpoints. Nil disables limiting.
	RateLimiter *middleware.IPRateLimiter
}

type Handler struct {
	service *service.Service
	cfg     Config
}

func NewHandler(service *service.Service, cfg Config) *Handler {
	return &Handler{
		service: service,
		cfg:     cfg,
	}
}

func (h *Handler) InitRoute() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	origins := h.cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	router.SetHTMLTemplate(template.Must(template.ParseFS(assets, "templates/*.html")))
	static, _ := fs.Sub(assets, "static")
	router.StaticFS("/static", http.FS(static))

	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if h.cfg.RateLimiter != nil {
		limit = middleware.RateLimit(h.cfg.RateLimiter)
	}

	router.GET("/healthz", h.Health)
	router.GET("/a/:token", h.ActionPage)
	router.GET("/create-link", h.CreateLinkPage)
	router.POST("/create-link", limit, h.CreateLinkForm)

	api := router.Group("/api")
	{
		api.POST("/create-action", limit, h.CreateAction)
		api.GET("/execute/:shortId", h.GetAction)
		api.GET("/tx/:hash", h.TransactionStatus)
	}
	return router
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.service.Ping(c.Request.Context()); err != nil {
		logrus.WithError(err).Error("health check failed")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, Error{Message: "database unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
