package bus

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"ultrarent/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type changePayload struct {
	Action    string `json:"action"` // always "changed"
	Timestamp int64  `json:"timestamp"`
}

// WebSocketHandler relays every bus publish to the connected client as a
// one-line ping so admin views re-fetch without polling. Cross-device
// freshness otherwise still relies on client-side polling.
//
// Browsers cannot set headers on a WebSocket dial, so the access token is
// also accepted as a ?token= query parameter.
func WebSocketHandler(b *Bus) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tok := r.Header.Get("Authorization")
		if tok == "" {
			tok = r.URL.Query().Get("token")
		}
		if _, err := middleware.ValidateJWT(tok); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}

		sub := b.Subscribe()
		go writePump(conn, sub)
		go readPump(conn, sub)
	}
}

func writePump(conn *websocket.Conn, sub *Subscription) {
	defer conn.Close()
	for range sub.C {
		out := changePayload{Action: "changed", Timestamp: time.Now().Unix()}
		data, _ := json.Marshal(out)
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			break
		}
	}
}

func readPump(conn *websocket.Conn, sub *Subscription) {
	defer func() {
		sub.Cancel()
		conn.Close()
	}()
	for {
		// clients never send anything meaningful; reads just detect close
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
