package event_test

import (
	"testing"

	"github.com/mousecraft/omega/internal/core/event"
	"github.com/stretchr/testify/assert"
)

type ping struct{ n int }
type pong struct{ s string }

func TestBusDeliversOnNextTick(t *testing.T) {
	b := event.NewBus()
	var got []int
	event.Subscribe(b, func(p ping) { got = append(got, p.n) })

	event.Emit(b, ping{1})
	event.Emit(b, ping{2})
	assert.Equal(t, 2, b.Pending())
	b.DispatchAll()
	assert.Empty(t, got, "emitted events wait for the swap")

	b.SwapBuffers()
	assert.Zero(t, b.Pending())
	b.DispatchAll()
	assert.Equal(t, []int{1, 2}, got)

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{1, 2}, got, "events are delivered once")
}

func TestBusDispatchesTypesInFirstEmitOrder(t *testing.T) {
	b := event.NewBus()
	var order []string
	event.Subscribe(b, func(p ping) { order = append(order, "ping") })
	event.Subscribe(b, func(p pong) { order = append(order, "pong:"+p.s) })

	event.Emit(b, pong{"a"})
	event.Emit(b, ping{1})
	event.Emit(b, pong{"b"})
	b.SwapBuffers()
	b.DispatchAll()

	assert.Equal(t, []string{"pong:a", "pong:b", "ping"}, order)
}

func TestBusHandlerEmitsForNextTick(t *testing.T) {
	b := event.NewBus()
	var pongs int
	event.Subscribe(b, func(p ping) { event.Emit(b, pong{"reply"}) })
	event.Subscribe(b, func(pong) { pongs++ })

	event.Emit(b, ping{1})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Zero(t, pongs)
	assert.Equal(t, 1, b.Pending())

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 1, pongs)
}
