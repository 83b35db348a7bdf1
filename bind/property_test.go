package bind_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/a2y-d5l/rxkit"
	"github.com/a2y-d5l/rxkit/bind"
	"github.com/a2y-d5l/rxkit/rxtest"
)

func TestProperty_ValueAndSet(t *testing.T) {
	p := bind.NewProperty("idle")
	assert.Equal(t, "idle", p.Value())

	p.Set("busy")
	assert.Equal(t, "busy", p.Value())
}

func TestProperty_ProducerStartsWithCurrentValue(t *testing.T) {
	p := bind.NewProperty(1)
	p.Set(2)

	rec := rxtest.NewRecorder[int, rxkit.Never]()
	sub := p.Producer().Observe(context.Background(), rec)
	p.Set(3)
	sub.Dispose()
	p.Set(4)

	assert.Equal(t, []int{2, 3}, rec.Values())
	term, ok := rec.Terminal()
	require.True(t, ok)
	assert.Equal(t, rxkit.KindInterrupted, term.Kind)
}

func TestProperty_SignalSendsChangesOnly(t *testing.T) {
	p := bind.NewProperty(1)

	rec := rxtest.NewRecorder[int, rxkit.Never]()
	p.Signal().Observe(context.Background(), rec)
	p.Set(2)
	p.Set(2)

	assert.Equal(t, []int{2, 2}, rec.Values())
}

func TestProperty_ConcurrentSets(t *testing.T) {
	p := bind.NewProperty(0)
	rec := rxtest.NewRecorder[int, rxkit.Never]()
	p.Signal().Observe(context.Background(), rec)

	var g errgroup.Group
	for i := range 16 {
		g.Go(func() error {
			p.Set(i)
			_ = p.Value()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	values := rec.Values()
	assert.Len(t, values, 16)
	assert.Equal(t, values[len(values)-1], p.Value())
}
