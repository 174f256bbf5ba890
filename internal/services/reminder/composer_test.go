package reminder

import (
	"testing"

	"github.com/NordCoder/Remindus/internal/domain/notification"
	"github.com/NordCoder/Remindus/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	p, err := Compose(user.User{ID: "u1", NotificationEnabled: true, NotificationHour: 9, DeliveryToken: "abc"})
	require.NoError(t, err)
	assert.Equal(t, notification.Payload{
		UserID:      "u1",
		TargetToken: "abc",
		Title:       ReminderTitle,
		Body:        ReminderBody,
	}, p)
}

func TestCompose_RejectsTokenlessUser(t *testing.T) {
	_, err := Compose(user.User{ID: "u2", NotificationEnabled: true})
	require.ErrorIs(t, err, notification.ErrInvalidInput)
	assert.Contains(t, err.Error(), "u2")
}
