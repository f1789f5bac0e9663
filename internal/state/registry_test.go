package state

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-clerk-fapi/internal/logger"
)

func TestRegistry_DispatchInRegistrationOrder(t *testing.T) {
	r := NewRegistry(nil)

	var order []int
	for i := 1; i <= 3; i++ {
		r.Add(func(View) { order = append(order, i) })
	}
	r.Dispatch(View{})

	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 3, r.Len())
}

func TestRegistry_RemoveIsIdempotent(t *testing.T) {
	r := NewRegistry(nil)

	calls := 0
	h := r.Add(func(View) { calls++ })
	r.Dispatch(View{})

	h.Remove()
	h.Remove()
	r.Dispatch(View{})

	assert.Equal(t, 1, calls)
	assert.Zero(t, r.Len())

	// zero handle
	Handle{}.Remove()
}

func TestRegistry_PanicIsIsolated(t *testing.T) {
	var buf bytes.Buffer
	log := logger.Wrap(ptr(zerolog.New(&buf)))
	r := NewRegistry(log)

	var after int
	r.Add(func(View) { panic("boom") })
	r.Add(func(View) { after++ })

	require.NotPanics(t, func() { r.Dispatch(View{}) })
	assert.Equal(t, 1, after)
	assert.Contains(t, buf.String(), "listener panicked")
	assert.Contains(t, buf.String(), "boom")
}

func TestRegistry_AddDuringDispatch(t *testing.T) {
	r := NewRegistry(nil)

	lateCalls := 0
	added := false
	r.Add(func(View) {
		if !added {
			added = true
			r.Add(func(View) { lateCalls++ })
		}
	})

	r.Dispatch(View{})
	assert.Zero(t, lateCalls, "first notification comes from the next dispatch")

	r.Dispatch(View{})
	assert.Equal(t, 1, lateCalls)
}

func TestRegistry_RemoveDuringDispatch(t *testing.T) {
	r := NewRegistry(nil)

	var second Handle
	secondCalls := 0
	r.Add(func(View) { second.Remove() })
	second = r.Add(func(View) { secondCalls++ })

	r.Dispatch(View{})
	assert.Zero(t, secondCalls)
	assert.Equal(t, 1, r.Len())
}
