package reminder

import (
	"context"
	"errors"
	"testing"

	"github.com/NordCoder/Remindus/internal/domain/notification"
	"github.com/NordCoder/Remindus/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTick_NoUsers(t *testing.T) {
	out := new(transportMock)
	uc := NewUC(staticStore(), out, at(9, 0), zap.NewNop(), 0)

	got, err := uc.Tick(context.Background())

	require.NoError(t, err)
	assert.Zero(t, got.TotalUsers)
	assert.Zero(t, got.EligibleCount)
	assert.Zero(t, got.SentCount)
	assert.Zero(t, got.FailedCount)
	assert.Empty(t, got.Failures)
	out.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTick_NobodyDue(t *testing.T) {
	out := new(transportMock)
	users := []user.User{
		dueUser("a", 8, 0),
		{ID: "b", NotificationEnabled: true, NotificationHour: 9, NotificationMinute: 0},
	}
	uc := NewUC(staticStore(users...), out, at(9, 0), zap.NewNop(), 0)

	got, err := uc.Tick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalUsers)
	assert.Zero(t, got.EligibleCount)
	out.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTick_PartialFailure(t *testing.T) {
	out := new(transportMock)
	out.On("Send", mock.Anything, "token-user1", ReminderTitle, ReminderBody).Return(nil).Once()
	out.On("Send", mock.Anything, "token-user2", ReminderTitle, ReminderBody).Return(errors.New("unregistered token")).Once()
	out.On("Send", mock.Anything, "token-user3", ReminderTitle, ReminderBody).Return(nil).Once()

	users := []user.User{
		dueUser("user1", 9, 0),
		dueUser("user2", 9, 0),
		dueUser("late", 9, 1),
		dueUser("user3", 9, 0),
	}
	uc := NewUC(staticStore(users...), out, at(9, 0), zap.NewNop(), 0)

	got, err := uc.Tick(context.Background())

	require.NoError(t, err)
	out.AssertExpectations(t)
	assert.Equal(t, 4, got.TotalUsers)
	assert.Equal(t, 3, got.EligibleCount)
	assert.Equal(t, 2, got.SentCount)
	assert.Equal(t, 1, got.FailedCount)
	require.Len(t, got.Failures, 1)
	assert.Equal(t, "user2", got.Failures[0].UserID)
	assert.Equal(t, "unregistered token", got.Failures[0].Reason)
	assert.Equal(t, "09:00", got.SampledAt.String())
}

func TestTick_StoreUnavailable(t *testing.T) {
	calls := 0
	store := storeFunc(func(context.Context) ([]user.User, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection refused")
		}
		return []user.User{dueUser("user1", 9, 0)}, nil
	})
	out := new(transportMock)
	out.On("Send", mock.Anything, "token-user1", ReminderTitle, ReminderBody).Return(nil).Once()

	uc := NewUC(store, out, at(9, 0), zap.NewNop(), 0)

	got, err := uc.Tick(context.Background())
	require.ErrorIs(t, err, notification.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Zero(t, got.SentCount)
	assert.Zero(t, got.FailedCount)
	out.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// the next tick starts from scratch
	got, err = uc.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, got.SentCount)
	out.AssertExpectations(t)
}

func TestTick_FetchesOncePerTick(t *testing.T) {
	calls := 0
	store := storeFunc(func(context.Context) ([]user.User, error) {
		calls++
		return nil, nil
	})
	uc := NewUC(store, new(transportMock), at(9, 0), nil, 0)

	_, err := uc.Tick(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
