package notify

import (
	"context"
	"sync"
	"time"

	"petmate/internal/platform/logger"
)

// LogMailer "envía" el código de reseteo al log. No hay proveedor de email todavía.
// Guarda el último código por destinatario para que dev/tests lo puedan leer.
type LogMailer struct {
	log logger.Logger

	mu   sync.Mutex
	last map[string]string
}

func NewLogMailer(log logger.Logger) *LogMailer {
	if log == nil {
		log = logger.NewNop()
	}
	return &LogMailer{
		log:  log.With(map[string]any{"component": "mailer"}),
		last: make(map[string]string),
	}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, name, code string, expiresAt time.Time) error {
	m.mu.Lock()
	m.last[to] = code
	m.mu.Unlock()

	m.log.Info("password reset email", map[string]any{
		"to":         to,
		"name":       name,
		"code":       code,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
	return nil
}

// LastCode devuelve el último código enviado a `to`.
func (m *LogMailer) LastCode(to string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.last[to]
	return c, ok
}
