package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/airops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, event domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

func subjects(events []domain.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Subject
	}
	return out
}

func TestNotificationService_HandleForwards(t *testing.T) {
	sender := new(MockSender)
	svc := NewNotificationService(sender, 10)
	event := domain.NewEvent(domain.EventAccountCreated, "alice", nil)
	sender.On("Send", mock.Anything, event).Return(nil)

	require.NoError(t, svc.Handle(context.Background(), event))

	sender.AssertExpectations(t)
}

func TestNotificationService_SendFailureIsSwallowed(t *testing.T) {
	sender := new(MockSender)
	svc := NewNotificationService(sender, 10)
	event := domain.NewEvent(domain.EventAccountCreated, "alice", nil)
	sender.On("Send", mock.Anything, event).Return(errors.New("relay down"))

	require.NoError(t, svc.Handle(context.Background(), event))

	got, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestNotificationService_ListNewestFirstAndBounded(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(nil, 3)

	for _, s := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, svc.Handle(ctx, domain.NewEvent(domain.EventRepairLogged, s, nil)))
	}

	got, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "d", "c"}, subjects(got))
}

func TestNotificationService_ListByType(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(nil, 10)
	require.NoError(t, svc.Handle(ctx, domain.NewEvent(domain.EventRepairLogged, "P1", nil)))
	require.NoError(t, svc.Handle(ctx, domain.NewEvent(domain.EventReservationCreated, "R1", nil)))
	require.NoError(t, svc.Handle(ctx, domain.NewEvent(domain.EventRepairLogged, "P2", nil)))

	got, err := svc.List(ctx, domain.EventRepairLogged)
	require.NoError(t, err)
	assert.Equal(t, []string{"P2", "P1"}, subjects(got))

	empty, err := NewNotificationService(nil, 2).List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNotificationService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(nil, 2)
	event := domain.NewEvent(domain.EventRepairLogged, "P1", nil)
	require.NoError(t, svc.Handle(ctx, event))

	got, err := svc.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "P1", got.Subject)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
}
