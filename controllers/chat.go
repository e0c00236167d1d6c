package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/songurtechnology/wafelinvest/chat"
	"github.com/songurtechnology/wafelinvest/database"
	"github.com/songurtechnology/wafelinvest/middleware"
	"github.com/songurtechnology/wafelinvest/models"
	"github.com/songurtechnology/wafelinvest/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		allowed := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowed == "" {
			return true
		}
		origin := r.Header.Get("Origin")
		for _, o := range strings.Split(allowed, ",") {
			if strings.TrimSpace(o) == origin {
				return true
			}
		}
		return false
	},
}

// ChatController serves the conversation WebSocket endpoint.
type ChatController struct {
	hub   *chat.Hub
	store chat.MessageStore
}

func NewChatController(hub *chat.Hub) *ChatController {
	return &ChatController{hub: hub, store: gormMessageStore{}}
}

type gormMessageStore struct{}

func (gormMessageStore) SaveMessage(ctx context.Context, msg *models.ChatMessage) error {
	return database.DB.WithContext(ctx).Create(msg).Error
}

// GET /chat/ws/{username} - upgrades to a WebSocket joined to the
// conversation between the authenticated caller and the named peer. The
// auth middleware rejects unauthenticated callers before the upgrade.
func (c *ChatController) ServeWS(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	peerName := mux.Vars(r)["username"]
	if peerName == actor.Username {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Cannot open a conversation with yourself"})
		return
	}

	db := database.DB

	var sender models.User
	if err := db.First(&sender, actor.ID).Error; err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var peer models.User
	if err := db.Where("username = ?", peerName).First(&peer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	key := chat.ConversationKey(sender.Username, peer.Username)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		log.Printf("[chat] upgrade failed for %s: %v", sender.Username, err)
		return
	}

	client := chat.NewClient(c.hub, conn, c.store, key, sender, peer)
	if err := c.hub.Join(key, client); err != nil {
		log.Printf("[chat] failed to join group %s: %v", key, err)
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
