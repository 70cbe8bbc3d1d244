package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"docrag/internal/bootstrap"
	"docrag/internal/transport/http/handler"
	"docrag/internal/transport/http/middleware"
	"docrag/internal/transport/http/response"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(
		gin.Logger(),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			slog.ErrorContext(c.Request.Context(), "panic recovered", "path", c.Request.URL.Path, "panic", recovered)
			response.Abort(c, http.StatusInternalServerError, response.InternalServerError)
		}),
		cors.New(corsConfig(app.Config.CORS.AllowOrigins)),
	)

	healthHandler := handler.NewHealthHandler(app)
	authHandler := handler.NewAuthHandler(app.Auth)
	documentHandler := handler.NewDocumentHandler(app.Documents)
	conversationHandler := handler.NewConversationHandler(app.Conversation)

	router.GET("/", healthHandler.Root)
	router.GET("/healthz", healthHandler.Check)
	router.POST("/login", authHandler.Login)
	router.POST("/register", authHandler.Register)

	secured := router.Group("/")
	secured.Use(middleware.RequireSession(app.Auth, app.Config.Auth.VerifySignature))
	secured.POST("/logout", authHandler.Logout)
	secured.GET("/user", authHandler.GetUser)
	secured.POST("/user", authHandler.SetUser)

	secured.POST("/process-document", documentHandler.Process)
	secured.GET("/get-documents", documentHandler.List)
	secured.GET("/get-document/:id", documentHandler.Get)

	secured.POST("/chat", conversationHandler.Chat)
	secured.POST("/new-chat", conversationHandler.NewChat)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			origins = nil
			break
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
