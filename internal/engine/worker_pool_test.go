package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool_Results(t *testing.T) {
	errOdd := errors.New("odd")
	p := newWorkerPool[int, int](context.Background(), 3, 8, func(_ context.Context, v int) (int, error) {
		if v%2 == 1 {
			return 0, errOdd
		}
		return v * v, nil
	})
	defer p.Drain()

	even := make(chan jobResult[int], 1)
	odd := make(chan jobResult[int], 1)
	require.True(t, p.Submit(4, even))
	require.True(t, p.Submit(3, odd))

	r := <-even
	require.NoError(t, r.err)
	assert.Equal(t, 16, r.value)
	assert.ErrorIs(t, (<-odd).err, errOdd)
}

func TestWorkerPool_FullAndDrained(t *testing.T) {
	p := newWorkerPool[int, int](context.Background(), 0, 1, func(context.Context, int) (int, error) {
		return 0, nil
	})
	assert.Equal(t, 1, p.QueueCap())

	require.True(t, p.Submit(1, nil))
	assert.Equal(t, 1, p.QueueLen())
	assert.False(t, p.Submit(2, nil), "queue full")

	p.Drain()
	p.Drain()
	assert.False(t, p.Submit(3, nil), "drained")
}
