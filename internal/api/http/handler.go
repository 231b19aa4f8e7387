package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tak-online/internal/archive"
	"tak-online/internal/game"
	"tak-online/internal/room"
)

// MatchReader reads the finished-match archive.
type MatchReader interface {
	ListRecent(ctx context.Context, limit int) ([]archive.Match, error)
	FindByID(ctx context.Context, id string) (archive.Match, error)
}

// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HealthHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{Status: "ok", Rooms: len(rm.Rooms())})
	}
}

// @Summary List rooms
// @Description Lobby view of every live room
// @Tags Room
// @Produce json
// @Success 200 {object} RoomListResponse
// @Router /v1/rooms [get]
func ListRoomsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, RoomListResponse{Rooms: rm.Rooms()})
	}
}

// @Summary Get room
// @Description Room summary and full game state
// @Tags Room
// @Produce json
// @Param roomId path string true "Room ID"
// @Success 200 {object} RoomResponse
// @Failure 404 {object} ErrorResponse
// @Router /v1/rooms/{roomId} [get]
func GetRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("roomId")
		info, err := rm.Info(id)
		if err != nil {
			writeError(c, err)
			return
		}
		state, err := rm.Snapshot(id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, RoomResponse{Room: info, State: state})
	}
}

// @Summary Legal destinations
// @Description Tiles the current selection may drop onto next
// @Tags Game
// @Produce json
// @Param roomId path string true "Room ID"
// @Success 200 {object} MovesResponse
// @Failure 404 {object} ErrorResponse
// @Router /v1/rooms/{roomId}/moves [get]
func PossibleMovesHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("roomId")
		state, err := rm.Snapshot(id)
		if err != nil {
			writeError(c, err)
			return
		}
		dests, err := rm.LegalDestinations(id)
		if err != nil {
			writeError(c, err)
			return
		}
		if dests == nil {
			dests = []game.Position{}
		}
		c.JSON(http.StatusOK, MovesResponse{
			RoomID:        id,
			CurrentPlayer: state.CurrentPlayer,
			SelectedStack: state.SelectedStack,
			Destinations:  dests,
		})
	}
}

// @Summary Recent matches
// @Description Finished games, newest first
// @Tags Archive
// @Produce json
// @Param limit query int false "Maximum rows (1-100)"
// @Success 200 {object} MatchListResponse
// @Failure 400 {object} ErrorResponse
// @Router /v1/matches [get]
func ListMatchesHandler(matches MatchReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q MatchQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query", Details: err.Error()})
			return
		}
		if matches == nil {
			c.JSON(http.StatusOK, MatchListResponse{Matches: []archive.Match{}})
			return
		}
		list, err := matches.ListRecent(c.Request.Context(), q.Limit)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, MatchListResponse{Matches: list})
	}
}

// @Summary Get match
// @Description One finished game from the archive
// @Tags Archive
// @Produce json
// @Param matchId path string true "Match ID"
// @Success 200 {object} archive.Match
// @Failure 404 {object} ErrorResponse
// @Router /v1/matches/{matchId} [get]
func GetMatchHandler(matches MatchReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if matches == nil {
			writeError(c, archive.ErrMatchNotFound)
			return
		}
		m, err := matches.FindByID(c.Request.Context(), c.Param("matchId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
	case errors.Is(err, archive.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "match not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
