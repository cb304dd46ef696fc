package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/hrms-service/internal/config"
	"github.com/spec-kit/hrms-service/internal/events"
	"github.com/spec-kit/hrms-service/internal/service"
)

func TestStartNotificationWorkerRegistersHandlersOnce(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, config.NotificationConfig{})
	StartNotificationWorker(notificationService)

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:             "evt-1",
		Type:           events.EventLeaveDecided,
		OrganizationID: "org1",
		ActorID:        "u-admin",
		Timestamp:      time.Now(),
		Payload: events.LeaveDecidedPayload{
			LeaveID: "l-1", UserID: "u-alice", OldStatus: "Pending", NewStatus: "Approved",
		},
	})
	require.NoError(t, err)

	// One published event must produce exactly one notification.
	assert.Equal(t, 1, logs.FilterMessage("LeaveDecided").Len())
}

func TestStartNotificationWorkerNilServiceIsNoop(t *testing.T) {
	assert.NotPanics(t, func() { StartNotificationWorker(nil) })
}
