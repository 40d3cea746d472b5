package handlers

import (
	"net/http"

	"roadcare/middleware"
	"roadcare/models"
	"roadcare/realtime"
	"roadcare/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocketHandler upgrades authenticated sessions into live push channels.
type WebSocketHandler struct {
	Hub *realtime.Hub
}

func NewWebSocketHandler(hub *realtime.Hub) *WebSocketHandler {
	return &WebSocketHandler{Hub: hub}
}

// Connect handles GET /ws. The session joins the rooms its role entitles
// it to: everyone gets their user room, mechanics additionally get their
// mechanic room, and workshop admins get the unassigned-request broadcast.
func (h *WebSocketHandler) Connect(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.GetLogger().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := realtime.NewClient(h.Hub, conn)
	h.Hub.Join(realtime.UserRoom(actor.UserID), client)
	switch actor.Role {
	case models.RoleMechanic:
		if actor.MechanicID != "" {
			h.Hub.Join(realtime.MechanicRoom(actor.MechanicID), client)
		}
	case models.RoleAdmin:
		h.Hub.Join(realtime.BroadcastRoom, client)
	}

	client.Run()
}
