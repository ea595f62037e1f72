package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindfit/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	authSvc *service.AuthService,
	authH *AuthHandler,
	profileH *ProfileHandler,
	closetH *ClosetHandler,
	dailyH *DailyHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging, recovery y request-id.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), requestIDMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	auth.POST("/token", authH.Unlock)
	auth.POST("/refresh", authH.Refresh)

	// Todo lo demás queda detrás del guard (no-op si auth no está configurada).
	api := r.Group("/", JWTAuthMiddleware(authSvc))

	api.GET("/state", profileH.GetState)
	api.PUT("/mood", profileH.SetMood)
	api.GET("/questionnaire", profileH.GetQuestionnaire)
	api.POST("/questionnaire", profileH.SubmitQuestionnaire)
	api.PATCH("/preferences", profileH.UpdatePreferences)
	api.GET("/tutorial", profileH.GetTutorial)
	api.POST("/tutorial/seen", profileH.MarkTutorialSeen)

	api.GET("/closet", closetH.List)
	api.POST("/closet/items", closetH.Add)
	api.DELETE("/closet/items/:id", closetH.Remove)
	api.PATCH("/closet/items/:id/category", closetH.Recategorize)

	api.GET("/daily/options", dailyH.Options)
	api.POST("/daily/look", dailyH.GenerateLook)
	api.GET("/history", dailyH.History)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// requestIDMiddleware etiqueta cada request con un ID para correlación.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
