package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mandi-mitra/internal/chat"
)

func (h *APIHandler) CreateChatRoom(c *gin.Context) {
	room := h.chat.CreateRoom()
	c.JSON(http.StatusCreated, gin.H{
		"roomId": room.ID,
		"wsPath": "/api/v1/chat/rooms/" + room.ID + "/ws",
	})
}

// JoinChatRoom upgrades to a websocket for ?role=user|vendor&lang=xx.
func (h *APIHandler) JoinChatRoom(c *gin.Context) {
	err := h.chat.ServeWS(c.Writer, c.Request, c.Param("id"), c.Query("role"), c.Query("lang"))
	switch {
	case errors.Is(err, chat.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "chat room not found"})
	case errors.Is(err, chat.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
