package handlers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"bank-api/services"
	"bank-api/utils"
)

// WSHandler pushes what the original UI painted into the DOM: per-second
// timer ticks, logout events and ledger-update signals. It implements
// services.Notifier.
type WSHandler struct {
	M *melody.Melody
}

var _ services.Notifier = (*WSHandler)(nil)

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleDisconnect(func(s *melody.Session) {
		utils.Logger().Debug("🔌 Presentation client disconnected")
	})

	m.HandleError(func(s *melody.Session, err error) {
		utils.Logger().Warnf("❌ WebSocket error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request to a websocket session.
func (h *WSHandler) HandleWS(c *gin.Context) {
	if err := h.M.HandleRequest(c.Writer, c.Request); err != nil {
		utils.Logger().Warnf("❌ Failed to upgrade websocket: %v", err)
	}
}

type wsEvent struct {
	Type      string `json:"type"`
	Remaining int    `json:"remaining,omitempty"`
	Display   string `json:"display,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Username  string `json:"username,omitempty"`
}

func (h *WSHandler) broadcast(ev wsEvent) {
	msg, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := h.M.Broadcast(msg); err != nil {
		utils.Logger().Warnf("⚠️ Error broadcasting %s event: %v", ev.Type, err)
	}
}

// TimerTick pushes the countdown display once per second.
func (h *WSHandler) TimerTick(remaining int, display string) {
	h.broadcast(wsEvent{Type: "timer", Remaining: remaining, Display: display})
}

// LoggedOut tells the UI to hide the app and show the login form again.
func (h *WSHandler) LoggedOut(reason string) {
	h.broadcast(wsEvent{Type: "logout", Reason: reason})
}

// LedgerUpdated tells the UI to refetch balance, summary and movements.
func (h *WSHandler) LedgerUpdated(username string) {
	h.broadcast(wsEvent{Type: "ledger", Username: username})
}
