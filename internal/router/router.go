package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"estudos/backend/internal/handler"
	"estudos/backend/internal/metrics"
	"estudos/backend/internal/middleware"
	"estudos/backend/internal/service"
)

// Deps holds everything the router wires together.
type Deps struct {
	AuthService *service.AuthService

	AuthHandler       *handler.AuthHandler
	SessionHandler    *handler.SessionHandler
	GoalHandler       *handler.GoalHandler
	SubjectHandler    *handler.SubjectHandler
	TopicHandler      *handler.TopicHandler
	CategoryHandler   *handler.CategoryHandler
	AnnotationHandler *handler.AnnotationHandler

	Logger      *slog.Logger
	CORSOrigins []string
	LoginLimit  *middleware.RateLimiter
	Collector   *metrics.Collector
	Gatherer    prometheus.Gatherer
}

func New(deps Deps) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.Logging(deps.Logger),
		gin.Recovery(),
		middleware.CORS(deps.CORSOrigins),
		deps.Collector.Middleware(),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(metrics.Handler(deps.Gatherer)))

	api := engine.Group("/api/v1")

	auth := api.Group("/")
	auth.Use(deps.LoginLimit.Middleware())
	auth.POST("/registrar", deps.AuthHandler.Register)
	auth.POST("/login", deps.AuthHandler.Login)

	protected := api.Group("/")
	protected.Use(middleware.Auth(deps.AuthService))

	sessions := protected.Group("/SessoesEstudo")
	sessions.POST("", deps.SessionHandler.Start)
	sessions.GET("", deps.SessionHandler.List)
	sessions.GET("/dashboard", deps.SessionHandler.Dashboard)
	sessions.GET("/:id", deps.SessionHandler.Get)
	// Transitions accept both verbs; clients in the wild use either.
	sessions.POST("/:id/pausar", deps.SessionHandler.Pause)
	sessions.PATCH("/:id/pausar", deps.SessionHandler.Pause)
	sessions.POST("/:id/retomar", deps.SessionHandler.Resume)
	sessions.PATCH("/:id/retomar", deps.SessionHandler.Resume)
	sessions.POST("/:id/concluir", deps.SessionHandler.Complete)
	sessions.PATCH("/:id/concluir", deps.SessionHandler.Complete)
	sessions.DELETE("/:id", deps.SessionHandler.Delete)

	goals := protected.Group("/Metas")
	goals.POST("", deps.GoalHandler.Create)
	goals.GET("", deps.GoalHandler.List)
	goals.GET("/:id", deps.GoalHandler.Get)
	goals.PUT("/:id", deps.GoalHandler.Update)
	goals.DELETE("/:id", deps.GoalHandler.Delete)

	subjects := protected.Group("/Materias")
	subjects.POST("", deps.SubjectHandler.Create)
	subjects.GET("", deps.SubjectHandler.List)
	subjects.GET("/:id", deps.SubjectHandler.Get)
	subjects.PUT("/:id", deps.SubjectHandler.Update)
	subjects.DELETE("/:id", deps.SubjectHandler.Delete)

	topics := protected.Group("/Topicos")
	topics.POST("", deps.TopicHandler.Create)
	topics.GET("", deps.TopicHandler.List)
	topics.GET("/:id", deps.TopicHandler.Get)
	topics.PUT("/:id", deps.TopicHandler.Update)
	topics.DELETE("/:id", deps.TopicHandler.Delete)

	categories := protected.Group("/Categorias")
	categories.POST("", deps.CategoryHandler.Create)
	categories.GET("", deps.CategoryHandler.List)
	categories.GET("/:id", deps.CategoryHandler.Get)
	categories.PUT("/:id", deps.CategoryHandler.Update)
	categories.DELETE("/:id", deps.CategoryHandler.Delete)

	annotations := protected.Group("/Anotacoes")
	annotations.POST("", deps.AnnotationHandler.Create)
	annotations.GET("", deps.AnnotationHandler.List)
	annotations.GET("/:id", deps.AnnotationHandler.Get)
	annotations.PUT("/:id", deps.AnnotationHandler.Update)
	annotations.DELETE("/:id", deps.AnnotationHandler.Delete)

	return engine
}
