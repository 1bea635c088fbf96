package settings

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersister_FlushWithoutWritesReturns(t *testing.T) {
	p := newPersister(newRecordingAdapter(), DefaultKey, time.Second, log.New(io.Discard))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, p.flush(ctx))
	require.NoError(t, p.close(ctx))
}

func TestPersister_FlushHonorsContext(t *testing.T) {
	adapter := newRecordingAdapter()
	adapter.setGate = make(chan struct{})
	p := newPersister(adapter, DefaultKey, time.Second, log.New(io.Discard))

	p.enqueue(`{"a":1}`)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.flush(ctx), context.DeadlineExceeded)

	close(adapter.setGate)
	done, cancelDone := context.WithTimeout(context.Background(), time.Second)
	defer cancelDone()
	require.NoError(t, p.close(done))

	_, sets := adapter.snapshot()
	assert.Equal(t, []string{`{"a":1}`}, sets)
}

func TestPersister_KeepsOrder(t *testing.T) {
	adapter := newRecordingAdapter()
	p := newPersister(adapter, DefaultKey, time.Second, log.New(io.Discard))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for _, blob := range []string{"1", "2", "3"} {
		p.enqueue(blob)
		require.NoError(t, p.flush(ctx))
	}
	require.NoError(t, p.close(ctx))

	_, sets := adapter.snapshot()
	assert.Equal(t, []string{"1", "2", "3"}, sets)
}
