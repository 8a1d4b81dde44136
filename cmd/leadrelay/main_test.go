package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	main "github.com/fwojciec/leadscout/cmd/leadrelay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_HelpShowsUsage(t *testing.T) {
	t.Parallel()

	m := main.NewMain()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	assert.Contains(t, helpOutput, "Usage:", "Help should have Kong-style Usage prefix")
	for _, flag := range []string{"--addr", "--rate", "--burst", "--model"} {
		assert.Contains(t, helpOutput, flag, "Help should mention %s flag", flag)
	}
}

func TestMain_Run_RejectsUnknownFlag(t *testing.T) {
	t.Parallel()

	m := main.NewMain()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--no-such-flag"}, stdout, stderr)
	require.Error(t, err)
}

func TestMain_Run_RequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	m := main.NewMain()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	assert.Contains(t, stderr.String(), "GEMINI_API_KEY")
}

func TestMain_Run_ServesUntilCanceled(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	m := main.NewMain()
	m.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	done := make(chan error, 1)
	go func() {
		done <- m.Run(ctx, []string{"--rate", "60"}, stdout, stderr)
	}()

	// Wait for the server to bind, then check liveness.
	require.Eventually(t, func() bool {
		return m.ListenAddr() != ""
	}, 5*time.Second, 10*time.Millisecond, "server never started listening")

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", m.ListenAddr()))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Cancellation must shut the server down cleanly.
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down after cancellation")
	}

	assert.Contains(t, stderr.String(), "relay listening")
}
