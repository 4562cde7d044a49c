package main

import (
	"context"
	"io"
	"testing"

	"github.com/mtoivan/samplab/internal/e2etest"
	"github.com/stretchr/testify/require"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "SAMPLAB_ADDR":
		return "localhost:0", true
	case "SAMPLAB_SQLITE_URL":
		return ":memory:", true
	case "SAMPLAB_UI_DIR":
		return "../../ui", true
	case "SAMPLAB_PLAYBACK_INTERVAL_MS":
		return "10", true
	default:
		return "", false
	}
}

// startTestServer boots the application on a random port with an in-memory
// database and returns a cookie-aware client for driving it.
func startTestServer(t *testing.T) *e2etest.Client {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	server, err := e2etest.StartServer(ctx, io.Discard, testLookupEnv, run)
	require.NoError(t, err)
	return server.Client()
}
