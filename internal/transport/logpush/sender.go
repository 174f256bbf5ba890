// Package logpush is a dry-run transport: it logs every reminder and reports
// success without contacting any push service.
package logpush

import (
	"context"
	"fmt"

	"github.com/NordCoder/Remindus/internal/domain/notification"
	"go.uber.org/zap"
)

type Sender struct {
	log *zap.Logger
}

var _ notification.Transport = (*Sender)(nil)

func New(l *zap.Logger) *Sender {
	if l == nil {
		l = zap.L()
	}
	return &Sender{log: l.With(zap.String("component", "push.log"))}
}

func (s *Sender) Send(_ context.Context, token, title, body string) error {
	if token == "" {
		return fmt.Errorf("log push: empty token: %w", notification.ErrInvalidInput)
	}
	s.log.Info("push (dry run)",
		zap.String("token", mask(token)),
		zap.String("title", title),
		zap.Int("body_len", len(body)),
	)
	return nil
}

// mask keeps only the tail of a device token out of the logs.
func mask(token string) string {
	const keep = 6
	if len(token) <= keep {
		return "***"
	}
	return "***" + token[len(token)-keep:]
}
