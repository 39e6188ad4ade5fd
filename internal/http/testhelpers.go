package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/target/cipms/internal/adapters/devauth"
	"github.com/target/cipms/internal/core"
	"github.com/target/cipms/internal/devseed"
	authmocks "github.com/target/cipms/internal/mocks/auth"
	"github.com/target/cipms/internal/service"
)

// testAnchor is the fixed clock used by handler tests so dashboard figures are stable.
var testAnchor = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// testClientID is a well-formed client cookie value.
const testClientID = "3f1c2d4e-5a6b-4c7d-8e9f-0a1b2c3d4e5f"

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Logger:     discardLogger(),
		Now:        func() time.Time { return testAnchor },
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv bundles a router with the registry and storage behind it.
type testEnv struct {
	Handler  http.Handler
	Registry *service.SessionRegistry
	Store    *authmocks.MemoryKeyValueStore
}

type testEnvOptions struct {
	Limiter  *RateLimiter
	GateWait time.Duration
}

func newTestEnv(t *testing.T, opts testEnvOptions) *testEnv {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skip("Templates not available, skipping integration test")
	}
	if opts.GateWait == 0 {
		opts.GateWait = 2 * time.Second
	}

	store := authmocks.NewMemoryKeyValueStore()
	registry := service.NewSessionRegistry(service.SessionRegistryOptions{
		Credentials: devauth.NewDemoSource(),
		Storage:     store,
		Logger:      discardLogger(),
	})
	dashboard := service.NewDashboardService(service.DashboardServiceOptions{
		Catalog:      devseed.NewCatalog(testAnchor),
		TimeProvider: core.NewFixedTimeProvider(testAnchor),
	})

	handler, err := NewRouter(RouterServices{
		Sessions:     registry,
		Dashboard:    dashboard,
		GateWait:     opts.GateWait,
		LoginLimiter: opts.Limiter,
		TemplateFS:   os.DirFS(TemplatePathFromTest),
		Now:          func() time.Time { return testAnchor },
		Logger:       discardLogger(),
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return &testEnv{Handler: handler, Registry: registry, Store: store}
}

// fixedSessions hands out one preconstructed session for every client.
type fixedSessions struct {
	session *service.SessionService
}

func (f fixedSessions) Get(context.Context, string) *service.SessionService { return f.session }
