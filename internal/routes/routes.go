package routes

import (
	"net/http"

	"charitybridge/internal/handlers"
	"charitybridge/internal/logger"
	"charitybridge/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты. protected runs
// in front of every /api/v1 route (auth, rate limiting).
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
	metricsHandler http.Handler,
	protected ...gin.HandlerFunc,
) {
	ginRouter.GET("/health", appHandlers.HealthHandler.Health)
	if metricsHandler != nil {
		ginRouter.GET("/metrics", gin.WrapH(metricsHandler))
	}

	api := ginRouter.Group("/api/v1", protected...)
	{
		appHandlers.DonationHandler.RegisterRoutes(api)
		appHandlers.ClaimHandler.RegisterRoutes(api)
		appHandlers.MessageHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
	}

	// Браузер не может передать заголовок при handshake, токен проверяет сам хэндлер
	if wsHandler != nil {
		ginRouter.GET("/ws", wsHandler.ServeWS)
		logger.Info("WebSocket route /ws registered")
	}
}
