package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/NordCoder/Remindus/internal/domain/notification"
	"github.com/NordCoder/Remindus/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func at(hour, minute int) fixedClock {
	return fixedClock{t: time.Date(2026, 10, 16, hour, minute, 30, 0, time.UTC)}
}

type storeFunc func(ctx context.Context) ([]user.User, error)

func (f storeFunc) ListAll(ctx context.Context) ([]user.User, error) { return f(ctx) }

func staticStore(users ...user.User) storeFunc {
	return func(context.Context) ([]user.User, error) { return users, nil }
}

type transportMock struct{ mock.Mock }

func (m *transportMock) Send(ctx context.Context, token, title, body string) error {
	args := m.Called(ctx, token, title, body)
	return args.Error(0)
}

func dueUser(id string, hour, minute int) user.User {
	return user.User{
		ID:                  id,
		NotificationEnabled: true,
		NotificationHour:    hour,
		NotificationMinute:  minute,
		DeliveryToken:       "token-" + id,
	}
}

func payloads(n int) []notification.Payload {
	out := make([]notification.Payload, n)
	for i := range out {
		id := fmt.Sprintf("user%d", i+1)
		out[i] = notification.Payload{UserID: id, TargetToken: "token-" + id, Title: ReminderTitle, Body: ReminderBody}
	}
	return out
}
