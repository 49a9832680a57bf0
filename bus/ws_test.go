package bus

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ultrarent/globals"
	"ultrarent/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T) string {
	t.Helper()
	claims := &middleware.Claims{
		Name:   "Staff",
		UserID: "staff1",
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func changeFeedServer(t *testing.T, b *Bus) (*httptest.Server, string) {
	t.Helper()
	router := httprouter.New()
	router.GET("/ws/changes", WebSocketHandler(b))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/changes"
}

func TestChangeFeedRejectsMissingToken(t *testing.T) {
	_, url := changeFeedServer(t, New())

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		conn.Close()
		t.Fatal("dial succeeded without a token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("handshake response = %+v, want 401", resp)
	}
}

func TestChangeFeedRelaysPublishes(t *testing.T) {
	b := New()
	_, url := changeFeedServer(t, b)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?token="+signToken(t), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// keep publishing until the subscription behind the upgrade catches one
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				b.Publish()
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got changePayload
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	if got.Action != "changed" {
		t.Errorf("action = %q, want changed", got.Action)
	}
}
