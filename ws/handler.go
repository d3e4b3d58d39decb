package ws

import (
	"net/http"
	"strings"

	"charitybridge/internal/auth"
	"charitybridge/internal/logger"
	"charitybridge/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	Manager  *WebSocketManager
	upgrader websocket.Upgrader
}

// NewWebSocketHandler accepts upgrades from allowedOrigins; an empty list
// allows any origin.
func NewWebSocketHandler(manager *WebSocketManager, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		Manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				for _, o := range allowedOrigins {
					if strings.EqualFold(o, origin) {
						return true
					}
				}
				return false
			},
		},
	}
}

// ServeWS authenticates with the bearer header or, since browsers cannot set
// headers on a websocket handshake, the access_token query parameter.
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		token = c.Query("access_token")
	}
	claims, err := auth.ParseToken(token)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrInvalidToken)
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrInvalidToken)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		UserID:  userID.String(),
		Conn:    conn,
		Send:    make(chan []byte, sendBuffer),
		Manager: h.Manager,
	}
	if !h.Manager.Register(client) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		return
	}

	go client.readPump()
	go client.writePump()
}
