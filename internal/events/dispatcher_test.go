package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishRunsAllHandlersAndJoinsErrors(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	sinkErr := errors.New("redis publish refused")
	var calls []string
	dispatcher.Subscribe(EventTicketAssigned, func(ctx context.Context, event Event) error {
		calls = append(calls, "failing")
		return sinkErr
	})
	dispatcher.Subscribe(EventTicketAssigned, func(ctx context.Context, event Event) error {
		calls = append(calls, "succeeding")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketAssigned, TicketID: 1})
	assert.ErrorIs(t, err, sinkErr)
	assert.Equal(t, []string{"failing", "succeeding"}, calls, "a failing handler must not stop the fan-out")
}

func TestPublishIgnoresUnrelatedEventTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	dispatcher.Subscribe(EventTicketCreated, func(ctx context.Context, event Event) error {
		t.Fatal("created handler must not fire for a state change")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketStateChanged, TicketID: 1})
	require.NoError(t, err)
}
