package reminder

import (
	"fmt"

	"github.com/NordCoder/Remindus/internal/domain/notification"
	"github.com/NordCoder/Remindus/internal/domain/user"
)

const (
	ReminderTitle = "잊지 말고 복습하세요!"
	ReminderBody  = "어제 배운 내용을 다시 확인하고 기억력을 강화하세요."
)

func Compose(u user.User) (notification.Payload, error) {
	if u.DeliveryToken == "" {
		return notification.Payload{}, fmt.Errorf("compose for user %s: empty delivery token: %w", u.ID, notification.ErrInvalidInput)
	}
	return notification.Payload{
		UserID:      u.ID,
		TargetToken: u.DeliveryToken,
		Title:       ReminderTitle,
		Body:        ReminderBody,
	}, nil
}
