package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tak-online/internal/config"
	"tak-online/internal/game"
)

type ConfigHandler struct {
	cfg config.Config
}

func NewConfigHandler(cfg config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// GetConfigHandler returns the rules and limits clients need before joining.
// @Summary Public configuration
// @Description Supported board sizes with their reserves, and chat limits
// @Tags Config
// @Produce json
// @Success 200 {object} ConfigResponse
// @Router /v1/config [get]
func (h *ConfigHandler) GetConfigHandler(c *gin.Context) {
	var sizes []BoardSizeInfo
	for size := 3; size <= 6; size++ {
		if res, ok := game.ReserveFor(size); ok {
			sizes = append(sizes, BoardSizeInfo{Size: size, Stones: res.Stones, Capstones: res.Capstones})
		}
	}
	c.JSON(http.StatusOK, ConfigResponse{
		DefaultBoardSize: h.cfg.BoardSize,
		BoardSizes:       sizes,
		MaxChatLength:    h.cfg.MaxChatLength,
		MaxChatHistory:   h.cfg.MaxChatHistory,
		RoomIdleTimeout:  h.cfg.RoomIdleTimeout.String(),
	})
}
