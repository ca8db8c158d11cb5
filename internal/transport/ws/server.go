// Package ws exposes the chat service over HTTP: a WebSocket endpoint
// speaking the same line protocol as the TCP transport, plus health and
// online-user routes.
package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/linechat-server/internal/config"
	"github.com/vovakirdan/linechat-server/internal/core"
)

// NewServer builds the HTTP server hosting /ws, /health, and /users.
func NewServer(c *core.Server, cfg config.Config, logger *zerolog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", healthHandler)
	router.GET("/users", usersHandler(c))
	router.GET("/ws", wsHandler(c, logger))

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// usersHandler reports who is currently in the chat room.
func usersHandler(srv *core.Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"users": srv.OnlineUsers()})
	}
}
