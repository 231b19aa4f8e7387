package http

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"tak-online/internal/api/ws"
	"tak-online/internal/config"
	"tak-online/internal/room"
)

func NewRouter(rm *room.Manager, hub *ws.Hub, matches MatchReader, cfg config.Config, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.GET("/healthz", HealthHandler(rm))

	// WebSocket for live play
	r.GET("/ws", hub.HandleWS)

	v1 := r.Group("/v1")
	{
		v1.GET("/rooms", ListRoomsHandler(rm))
		v1.GET("/rooms/:roomId", GetRoomHandler(rm))
		v1.GET("/rooms/:roomId/moves", PossibleMovesHandler(rm))
		v1.GET("/matches", ListMatchesHandler(matches))
		v1.GET("/matches/:matchId", GetMatchHandler(matches))
		v1.GET("/config", NewConfigHandler(cfg).GetConfigHandler)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
			log.Error("request", fields...)
			return
		}
		log.Debug("request", fields...)
	}
}
