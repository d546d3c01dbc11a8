package handlers

import (
	"net/http"

	_ "book_tracker/docs"
	"book_tracker/internal/graph"
	"book_tracker/internal/logger"
	"book_tracker/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const statusOK = "ok"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services  *service.Service
	log       *logger.Logger
	graph     *graph.Handler
	clientDir string
}

// Option customises a Handler.
type Option func(*Handler)

// WithClientDir serves the built web client from dir on unmatched GET routes.
func WithClientDir(dir string) Option {
	return func(h *Handler) { h.clientDir = dir }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	h := &Handler{
		services: services,
		log:      log,
		graph:    graph.NewHandler(services, log),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
// Identity is resolved once per request, ahead of both API surfaces.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger, h.errorReporter, h.identityMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	router.GET("/graphql", h.graph.Serve)
	router.POST("/graphql", h.graph.Serve)

	// saved-books change feed, token via ?token=
	router.GET("/ws", h.wsConnect)

	h.registerUserRoutes(router)

	if h.clientDir != "" {
		h.registerClient(router)
	}

	return router
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	users := r.Group("/api/users")
	{
		users.POST("", h.createUser)
		users.POST("/login", h.login)
		users.GET("/me", h.getSingleUser)
		users.PUT("/books", h.saveBook)
		users.DELETE("/books/:bookId", h.deleteBook)
		users.GET("/:username", h.getSingleUser)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
