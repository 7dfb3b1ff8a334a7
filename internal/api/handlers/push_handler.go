package handlers

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"

	"crowdwatch/internal/config"
	"crowdwatch/internal/services"
)

// authTimeout is how long a freshly upgraded connection has to present its
// auth frame before being dropped.
const authTimeout = 10 * time.Second

// PushHandler upgrades GET /crowd/ws to a websocket push channel. The first
// client frame must be {"type":"auth","userId":...}; after that the channel
// is bound to the user and only carries server-to-client notification frames.
type PushHandler struct {
	notifications *services.NotificationService
	cfg           config.NotificationConfig
	upgrader      websocket.Upgrader
}

func NewPushHandler(notifications *services.NotificationService, cfg config.NotificationConfig) *PushHandler {
	return &PushHandler{
		notifications: notifications,
		cfg:           cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type authFrame struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Token  string `json:"token,omitempty"`
}

// Serve handles the full lifetime of one push channel: upgrade, auth frame,
// binding, then blocking until the client goes away.
func (h *PushHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		log.Printf("[PUSH] Upgrade failed: %v", err)
		return
	}

	userID, err := h.authenticate(conn)
	if err != nil {
		log.Printf("[PUSH] Auth failed: %v", err)
		conn.Close()
		return
	}

	channel := newPushConn(conn, h.cfg.WriteTimeout)
	h.notifications.Bind(userID, channel)
	log.Printf("[PUSH] Channel bound for user %s", userID)

	// Consume client frames until the connection dies; the protocol has no
	// client messages after auth, but reading is what detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.notifications.Unbind(userID, channel)
	channel.Close()
	log.Printf("[PUSH] Channel closed for user %s", userID)
}

// authenticate reads the auth frame and resolves the user id. When a JWT
// secret is configured and the frame carries a token, the token's subject is
// authoritative; otherwise the frame's userId is trusted as-is.
func (h *PushHandler) authenticate(conn *websocket.Conn) (string, error) {
	conn.SetReadDeadline(time.Now().Add(authTimeout))
	defer conn.SetReadDeadline(time.Time{})

	var frame authFrame
	if err := conn.ReadJSON(&frame); err != nil {
		return "", fmt.Errorf("read auth frame: %w", err)
	}
	if frame.Type != "auth" {
		return "", fmt.Errorf("expected auth frame, got %q", frame.Type)
	}

	userID := frame.UserID
	if h.cfg.JWTSecret != "" && frame.Token != "" {
		subject, err := verifyToken(frame.Token, h.cfg.JWTSecret)
		if err != nil {
			return "", fmt.Errorf("verify token: %w", err)
		}
		userID = subject
	}
	if userID == "" {
		return "", fmt.Errorf("auth frame has no user id")
	}
	return userID, nil
}

func verifyToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	return token.Claims.GetSubject()
}

// pushConn adapts a websocket connection to services.PushConn. Writes are
// serialized under a mutex and bounded by the configured write timeout so a
// hung client cannot stall a delivery pass indefinitely.
type pushConn struct {
	mu           sync.Mutex
	conn         *websocket.Conn
	writeTimeout time.Duration
}

func newPushConn(conn *websocket.Conn, writeTimeout time.Duration) *pushConn {
	return &pushConn{conn: conn, writeTimeout: writeTimeout}
}

func (p *pushConn) WriteJSON(v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.conn.SetWriteDeadline(time.Now().Add(p.writeTimeout))
	return p.conn.WriteJSON(v)
}

func (p *pushConn) Close() error {
	return p.conn.Close()
}
