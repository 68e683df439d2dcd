//go:build !windows

package main

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f4ah6o/devserve/internal/config"
)

func TestRootInterrupt(t *testing.T) {
	tests := []struct {
		name string
		sig  syscall.Signal
	}{
		{"SIGINT", syscall.SIGINT},
		{"SIGTERM", syscall.SIGTERM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			started := make(chan struct{})
			cmd := newRootCmd(func(ctx context.Context, _ config.Config) error {
				close(started)
				<-ctx.Done()
				return nil
			})
			cmd.SetArgs([]string{"--no-browser"})

			errCh := make(chan error, 1)
			go func() { errCh <- cmd.Execute() }()
			<-started

			require.NoError(t, syscall.Kill(os.Getpid(), tt.sig))

			select {
			case err := <-errCh:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("command did not return after the signal")
			}
		})
	}
}

func TestRootSecondInterruptExits(t *testing.T) {
	exited := make(chan int, 1)
	exit = func(code int) { exited <- code }
	t.Cleanup(func() { exit = os.Exit })

	started := make(chan struct{})
	draining := make(chan struct{})
	release := make(chan struct{})
	cmd := newRootCmd(func(ctx context.Context, _ config.Config) error {
		close(started)
		<-ctx.Done()
		close(draining)
		// an idle connection keeps shutdown waiting
		<-release
		return nil
	})
	cmd.SetArgs([]string{"--no-browser"})

	errCh := make(chan error, 1)
	go func() { errCh <- cmd.Execute() }()
	<-started

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))
	<-draining
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))

	select {
	case code := <-exited:
		assert.Equal(t, 0, code)
	case <-time.After(5 * time.Second):
		t.Fatal("second signal did not end the process")
	}

	close(release)
	assert.NoError(t, <-errCh)
}

func TestInterruptContextStop(t *testing.T) {
	ctx, stop := interruptContext(context.Background())
	stop()
	stop()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
