package cli

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// fakePipeline implements vizproc.Service for command tests.
type fakePipeline struct {
	mu       sync.Mutex
	startErr error
	started  bool
	closed   bool
	startCh  chan struct{}
}

func (f *fakePipeline) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.startErr != nil {
		return f.startErr
	}
	f.started = true
	if f.startCh != nil {
		close(f.startCh)
	}
	return nil
}

func (f *fakePipeline) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func TestStartPipelineCommand(t *testing.T) {
	t.Run("command metadata", func(t *testing.T) {
		cmd := startPipelineCommand(&fakePipeline{})

		assert.Equal(t, "start", cmd.Name)
		assert.Empty(t, cmd.Flags)
		assert.NotNil(t, cmd.Action)
	})

	t.Run("returns error when pipeline start fails", func(t *testing.T) {
		wantErr := errors.New("pipeline start error")
		pipeline := &fakePipeline{startErr: wantErr}

		app := &cli.Command{
			Commands: []*cli.Command{startPipelineCommand(pipeline)},
		}

		err := app.Run(t.Context(), []string{"gasviz", "start"})
		require.Error(t, err)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("starts the pipeline and waits for a signal", func(t *testing.T) {
		pipeline := &fakePipeline{startCh: make(chan struct{})}

		cmd := startPipelineCommand(pipeline)
		go func() {
			_ = cmd.Action(context.Background(), &cli.Command{})
		}()

		// Once Start has been observed, the action is parked on the signal
		// channel with Close deferred.
		<-pipeline.startCh

		pipeline.mu.Lock()
		defer pipeline.mu.Unlock()
		assert.True(t, pipeline.started)
	})
}
