package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"ai-study-assistant/internal/ai"
	appsvc "ai-study-assistant/internal/app"
	"ai-study-assistant/internal/bootstrap"
	"ai-study-assistant/internal/transport/http/handler"
	"ai-study-assistant/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(app.Logger), gin.Recovery())

	router.StaticFile("/", "web/index.html")

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	llmClient := ai.NewClient(ai.Config{
		BaseURL:    app.Config.LLM.BaseURL,
		APIKey:     app.Config.LLM.APIKey,
		Model:      app.Config.LLM.Model,
		MaxTokens:  app.Config.LLM.MaxTokens,
		Timeout:    time.Duration(app.Config.LLM.TimeoutSeconds) * time.Second,
		MaxRetries: app.Config.LLM.MaxRetries,
	})
	notesService := appsvc.NewNotesService(llmClient, app.History, app.Config.LLM.MaxInputChars, app.Logger)

	sessionTTL := time.Duration(app.Config.Session.TTLMinutes) * time.Minute
	sessionHandler := handler.NewSessionHandler(app.Config.Session.JWTSecret, sessionTTL)
	notesHandler := handler.NewNotesHandler(notesService, app.Config.App.MaxPDFBytes)

	v1 := router.Group("/api/v1")
	v1.POST("/session", sessionHandler.Create)

	notes := v1.Group("/notes")
	notes.Use(middleware.RequireSession(app.Config.Session.JWTSecret))
	notes.POST("/generate", notesHandler.Generate)
	notes.GET("/history", notesHandler.History)
	notes.DELETE("/history", notesHandler.ClearHistory)
	notes.GET("/:id/export", notesHandler.Export)

	return router
}
