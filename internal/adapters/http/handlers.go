package http

import (
	"errors"
	"net/http"

	"github.com/dkeye/Lobby/internal/app"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/gin-gonic/gin"
)

type roomHandlers struct {
	rooms *app.Directory
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/rooms
func (h *roomHandlers) listRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.rooms.ListActiveRooms()})
}

// GET /api/rooms/:name
// An unknown room is reported like any other: with no users.
func (h *roomHandlers) roomInfo(c *gin.Context) {
	name, err := domain.NewRoomName(c.Param("name"))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrRoomNameTooLong) {
			status = http.StatusRequestURITooLong
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.rooms.RoomInfo(name))
}

// GET /api/stats
func (h *roomHandlers) stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.rooms.Stats())
}
