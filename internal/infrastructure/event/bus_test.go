package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingHandler struct {
	types   []string
	mu      sync.Mutex
	handled []shared.DomainEvent
	err     error
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func newLeaveEvent(t *testing.T, eventType string) *hr.LeaveRequestEvent {
	t.Helper()
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	lr, err := hr.NewLeaveRequest(uuid.New(), uuid.New(), uuid.New(), start, start.AddDate(0, 0, 2), "trip")
	require.NoError(t, err)
	return hr.NewLeaveRequestEvent(eventType, lr)
}

func newTenantEvent(t *testing.T, eventType string) *tenancy.TenantEvent {
	t.Helper()
	tenant, err := tenancy.NewTenant("Acme", "acme", "sqlite://acme.db")
	require.NoError(t, err)
	return tenancy.NewTenantEvent(eventType, tenant)
}

func TestInMemoryEventBus_PublishByType(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	approved := &recordingHandler{}
	bus.Subscribe(approved, hr.EventTypeLeaveRequestApproved)

	require.NoError(t, bus.Publish(context.Background(),
		newLeaveEvent(t, hr.EventTypeLeaveRequestApproved),
		newLeaveEvent(t, hr.EventTypeLeaveRequestRejected),
	))

	assert.Equal(t, 1, approved.count())
	assert.Equal(t, int64(2), bus.Published())
}

func TestInMemoryEventBus_SubscribeUsesHandlerTypes(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	h := &recordingHandler{types: []string{tenancy.EventTypeTenantDeactivated}}
	bus.Subscribe(h)

	require.NoError(t, bus.Publish(context.Background(),
		newTenantEvent(t, tenancy.EventTypeTenantDeactivated),
		newTenantEvent(t, tenancy.EventTypeTenantUpdated),
	))

	assert.Equal(t, 1, h.count())
}

func TestInMemoryEventBus_WildcardReceivesEverything(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	all := &recordingHandler{}
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(context.Background(),
		newTenantEvent(t, tenancy.EventTypeTenantCreated),
		newLeaveEvent(t, hr.EventTypeLeaveRequestCreated),
	))

	assert.Equal(t, 2, all.count())
}

func TestInMemoryEventBus_FailuresDoNotStopDelivery(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	failing := &recordingHandler{err: errors.New("boom")}
	panicking := &HandlerFunc{Fn: func(context.Context, shared.DomainEvent) error { panic("bad handler") }}
	healthy := &recordingHandler{}
	bus.Subscribe(failing, hr.EventTypeLeaveRequestCancelled)
	bus.Subscribe(panicking, hr.EventTypeLeaveRequestCancelled)
	bus.Subscribe(healthy, hr.EventTypeLeaveRequestCancelled)

	err := bus.Publish(context.Background(), newLeaveEvent(t, hr.EventTypeLeaveRequestCancelled))

	require.NoError(t, err)
	assert.Equal(t, 1, healthy.count())
	assert.Equal(t, 2, recorded.FilterMessage("Handler failed to process event").Len())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	h := &recordingHandler{}
	bus.Subscribe(h, hr.EventTypeLeaveRequestCreated, hr.EventTypeLeaveRequestApproved)
	bus.Unsubscribe(h)

	require.NoError(t, bus.Publish(context.Background(), newLeaveEvent(t, hr.EventTypeLeaveRequestCreated)))
	assert.Equal(t, 0, h.count())
	assert.Empty(t, bus.registry.GetAllHandlers())
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	require.NoError(t, bus.Start(context.Background()))
	assert.True(t, bus.running.Load())
	require.NoError(t, bus.Stop(context.Background()))
	assert.False(t, bus.running.Load())
}

func TestHandlerRegistry_GetAllHandlersDeduplicates(t *testing.T) {
	r := NewHandlerRegistry()
	h := &recordingHandler{}
	r.Register(h, "A", "B")
	r.Register(h)

	assert.Len(t, r.GetAllHandlers(), 1)
	assert.Len(t, r.GetHandlers("A"), 2)
	assert.Len(t, r.GetHandlers("C"), 1)
}

func TestHandlerRegistry_ConcurrentAccess(t *testing.T) {
	r := NewHandlerRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Register(&recordingHandler{}, "X")
		}()
		go func() {
			defer wg.Done()
			_ = r.GetHandlers("X")
		}()
	}
	wg.Wait()
	assert.Len(t, r.GetHandlers("X"), 20)
}
