package notification

import "context"

// Transport delivers one push message. A non-nil error means the message
// was not delivered; the error text is only used for logging.
type Transport interface {
	Send(ctx context.Context, token, title, body string) error
}

type TransportFunc func(ctx context.Context, token, title, body string) error

func (f TransportFunc) Send(ctx context.Context, token, title, body string) error {
	return f(ctx, token, title, body)
}
