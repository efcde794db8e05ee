package event

import (
	"context"
	"sync"
	"testing"

	"github.com/dormsync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New()),
		Data:            "test data",
	}
}

type testHandler struct {
	eventTypes []string
	mu         sync.Mutex
	handled    []shared.DomainEvent
	panics     bool
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler blew up")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return nil
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) handledCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_DeliversToSubscribedHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("ThingHappened")
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("ThingHappened")))
	bus.Drain()

	assert.Equal(t, 1, handler.handledCount())
}

func TestInMemoryEventBus_SkipsUnrelatedEventTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("ThingHappened")
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("OtherThing")))
	bus.Drain()

	assert.Equal(t, 0, handler.handledCount())
}

func TestInMemoryEventBus_WildcardReceivesEverything(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler()
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("ThingHappened"),
		newTestEvent("OtherThing")))
	bus.Drain()

	assert.Equal(t, 2, handler.handledCount())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("ThingHappened")
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("ThingHappened")))
	bus.Drain()

	assert.Equal(t, 0, handler.handledCount())
}

type ctxCheckHandler struct {
	started chan struct{}
	proceed chan struct{}
	ctxErr  error
}

func (h *ctxCheckHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	close(h.started)
	<-h.proceed
	h.ctxErr = ctx.Err()
	return nil
}

func (h *ctxCheckHandler) EventTypes() []string {
	return []string{"ThingHappened"}
}

func TestInMemoryEventBus_HandlerSurvivesPublisherCancellation(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &ctxCheckHandler{
		started: make(chan struct{}),
		proceed: make(chan struct{}),
	}
	bus.Subscribe(handler)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, bus.Publish(ctx, newTestEvent("ThingHappened")))

	// Cancel the publisher context mid-dispatch, the way a request
	// context dies once the response is written.
	<-handler.started
	cancel()
	close(handler.proceed)
	bus.Drain()

	assert.NoError(t, handler.ctxErr)
}

func TestInMemoryEventBus_HandlerPanicDoesNotKillBus(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	panicking := newTestHandler("ThingHappened")
	panicking.panics = true
	healthy := newTestHandler("ThingHappened")
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("ThingHappened")))
	bus.Drain()

	assert.Equal(t, 1, healthy.handledCount())
}
