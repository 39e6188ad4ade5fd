package bootstrap

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/cipms/config"
)

func testAppConfig() *config.AppConfig {
	cfg := &config.AppConfig{
		Auth:     config.AuthConfig{CredentialSource: config.CredentialSourceStatic, PasswordMode: config.PasswordModePresence},
		Session:  config.SessionConfig{Storage: config.SessionStorageMemory, IdleTTL: time.Minute},
		HTTP:     config.HTTPConfig{Addr: "127.0.0.1:0", LoginRatePerMinute: 60, LoginBurst: 5},
		Services: "http,session-sweeper",
	}
	cfg.Sanitize()
	return cfg
}

func testContainer(t *testing.T, cfg *config.AppConfig) *ServiceContainer {
	t.Helper()
	c, err := NewServices(context.Background(), ServiceDeps{Config: cfg, Logger: discardLogger()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewHTTPServer(t *testing.T) {
	cfg := testAppConfig()
	srv, err := NewHTTPServer(&HTTPServerConfig{Config: cfg, Services: testContainer(t, cfg), Logger: discardLogger()})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:0", srv.Addr)
	assert.Equal(t, 5*time.Second, srv.ReadHeaderTimeout)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestNewHTTPServer_RequiresServices(t *testing.T) {
	_, err := NewHTTPServer(nil)
	require.Error(t, err)
	_, err = NewHTTPServer(&HTTPServerConfig{Config: testAppConfig()})
	require.Error(t, err)
}

func TestBuildHTTPHandler_RequiresRouterServices(t *testing.T) {
	_, err := buildHTTPHandler(httpHandlerConfig{Logger: discardLogger()})
	assert.Error(t, err, "router without services must fail")
}

func TestServeListener_ShutsDownOnCancel(t *testing.T) {
	cfg := testAppConfig()
	srv, err := NewHTTPServer(&HTTPServerConfig{Config: cfg, Services: testContainer(t, cfg), Logger: discardLogger()})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveListener(ctx, srv, ln, time.Second, discardLogger()) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ok")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestShutdownHTTPServer_Nil(t *testing.T) {
	assert.NoError(t, ShutdownHTTPServer(ShutdownConfig{}))
}
