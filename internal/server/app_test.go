package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/s-r-jones/deep-dive-air/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.MetricsAddr = "127.0.0.1:0"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = ":memory:"
	return c
}

func TestNewApp_SQLite(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(), io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	var n int
	require.NoError(t, app.db.QueryRow(`SELECT COUNT(*) FROM flight`).Scan(&n))
	assert.Equal(t, 0, n)
	assert.Nil(t, app.redis)
}

func TestNewApp_UnknownDriver(t *testing.T) {
	c := testConfig()
	c.DatabaseDriver = "oracle"

	_, err := NewApp(context.Background(), c, io.Discard)
	assert.ErrorContains(t, err, `unsupported database driver "oracle"`)
}

func TestNewApp_UnknownLogBackend(t *testing.T) {
	c := testConfig()
	c.LogBackend = "syslog"

	_, err := NewApp(context.Background(), c, io.Discard)
	assert.Error(t, err)
}

func TestNewApp_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	c := testConfig()
	c.RedisAddr = mr.Addr()

	app, err := NewApp(context.Background(), c, io.Discard)
	require.NoError(t, err)
	require.NotNil(t, app.redis)
	app.close(context.Background())
}

func TestNewApp_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	c := testConfig()
	c.RedisAddr = addr

	_, err := NewApp(context.Background(), c, io.Discard)
	assert.Error(t, err)
}

func TestMetricsHandler_ExposesRegistry(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(), io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	srv := httptest.NewServer(app.metricsHandler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
	assert.Contains(t, string(body), "airbooking")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(), io.Discard)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}

	assert.Error(t, app.db.Ping(), "database must be closed after Run")
}

func TestRun_StopsWhenGRPCCannotListen(t *testing.T) {
	c := testConfig()
	c.EndpointAddrGRPC = "127.0.0.1:99999"

	app, err := NewApp(context.Background(), c, io.Discard)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		app.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after gRPC listen failure")
	}
}
