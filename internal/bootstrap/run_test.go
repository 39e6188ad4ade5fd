package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunServices_StopsOnCancel(t *testing.T) {
	cfg := testAppConfig()
	c := testContainer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunServices(ctx, &ServiceOrchestrationConfig{Config: cfg, Services: c, Logger: discardLogger()})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("RunServices did not return after cancel")
	}
}

func TestRunServices_SweeperOnly(t *testing.T) {
	cfg := testAppConfig()
	cfg.Services = "session-sweeper"
	cfg.Session.SweepInterval = 10 * time.Millisecond
	c := testContainer(t, cfg)

	waitRestored := c.Sessions.Get(context.Background(), "idle")
	<-waitRestored.Ready()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, RunServices(ctx, &ServiceOrchestrationConfig{Config: cfg, Services: c, Logger: discardLogger()}))
}

func TestRunServices_InvalidConfig(t *testing.T) {
	require.Error(t, RunServices(context.Background(), nil))

	cfg := testAppConfig()
	cfg.Services = "cron"
	err := RunServices(context.Background(), &ServiceOrchestrationConfig{Config: cfg, Services: testContainer(t, cfg)})
	assert.Error(t, err)
}

func TestRunServices_ListenFailure(t *testing.T) {
	cfg := testAppConfig()
	cfg.Services = "http"
	cfg.HTTP.Addr = "256.0.0.1:99999"

	err := RunServices(context.Background(), &ServiceOrchestrationConfig{Config: cfg, Services: testContainer(t, cfg), Logger: discardLogger()})
	assert.Error(t, err)
}
