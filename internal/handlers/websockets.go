package handlers

import (
	"net/http"
	"time"

	book_tracker "book_tracker"
	"book_tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB

	wsTypeUser = "user"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Saved-books feed
// @Description  WebSocket. Sends the caller's user on connect and again after every save or removal.
// @Tags         books
// @Param        token  query  string  true  "Access token"
// @Success      101
// @Failure      401  {object}  book_tracker.MessageResponse
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	claim, ok := identityFrom(c)
	if !ok {
		jsonMessage(c, http.StatusUnauthorized, msgNotLoggedIn)
		return
	}

	// load before upgrading so lookup failures are still plain HTTP
	ctx := c.Request.Context()
	u, err := h.services.Me(ctx)
	if err != nil {
		h.respondError(c, "ws_snapshot_failed", err, failureText{
			notFoundStatus: http.StatusNotFound,
			notFound:       msgUserVanished,
			notLoggedIn:    msgNotLoggedIn,
		})
		return
	}

	updates, unsubscribe := h.services.Subscribe(claim.UserID)
	defer unsubscribe()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if err := sendUser(conn, u); err != nil {
		h.log.Infow("ws_write_failed_initial", "user_id", claim.UserID, "err", err)
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case next, open := <-updates:
			if !open {
				return
			}
			if err := sendUser(conn, next); err != nil {
				h.log.Infow("ws_write_failed", "user_id", claim.UserID, "err", err)
				return
			}
		}
	}
}

// startReader drains incoming frames so control messages are handled and
// a closed connection is noticed.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

func sendUser(conn *websocket.Conn, u *models.User) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: wsTypeUser, Data: book_tracker.NewUserResponse(u)})
}
