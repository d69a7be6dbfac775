package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	chatWSWriteWait = 10 * time.Second
	chatWSPongWait  = 60 * time.Second
	chatWSPingEvery = (chatWSPongWait * 9) / 10
)

var chatWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type chatWSInbound struct {
	Type    string `json:"type"` // "message"
	Message string `json:"message,omitempty"`
}

type chatWSOutbound struct {
	Type     string        `json:"type"` // "session", "reply", "error"
	Response *chatResponse `json:"response,omitempty"`
	Code     string        `json:"code,omitempty"`
	Message  string        `json:"message,omitempty"`
}

// HandleChatWS keeps one conversation open over a websocket. Inbound frames
// are user turns; each produces exactly one reply frame.
func (h *ChatHandler) HandleChatWS(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))

	conn, err := chatWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sess, _ := h.Sessions.Get(sessionID, userID)

	if err := conn.SetReadDeadline(time.Now().Add(chatWSPongWait)); err != nil {
		log.Printf("[gateway] chat ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(chatWSPongWait))
	})

	writeCh := make(chan chatWSOutbound, 8)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(chatWSPingEvery)
		defer ticker.Stop()
		for {
			select {
			case out, ok := <-writeCh:
				if !ok {
					return
				}
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()
	defer func() {
		close(writeCh)
		<-writerDone
	}()

	writeCh <- chatWSOutbound{
		Type:     "session",
		Response: &chatResponse{SessionID: sess.ID, Phase: string(sess.State.Phase)},
	}

	for {
		var in chatWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(chatWSPongWait))

		msg := strings.TrimSpace(in.Message)
		if in.Type != "message" || msg == "" {
			writeCh <- chatWSOutbound{Type: "error", Code: "invalid_argument", Message: "expected a message frame"}
			continue
		}

		sess.Lock()
		reply, err := h.Engine.HandleMessage(r.Context(), sess.State, msg)
		if err != nil {
			sess.Unlock()
			log.Printf("[gateway] chat ws turn failed (session %s): %v", sess.ID, err)
			writeCh <- chatWSOutbound{Type: "error", Code: "generation_failed", Message: "generation failed, please retry"}
			continue
		}
		out := chatWSOutbound{
			Type: "reply",
			Response: &chatResponse{
				SessionID:   sess.ID,
				Phase:       string(sess.State.Phase),
				Message:     reply,
				Document:    sess.State.Doc,
				DeployedURL: sess.State.DeployedURL,
				Keywords:    sess.State.Keywords,
			},
		}
		sess.Unlock()
		writeCh <- out
	}
}
