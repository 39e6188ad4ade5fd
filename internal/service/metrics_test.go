package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/cipms/internal/adapters/devauth"
	"github.com/target/cipms/internal/core"
	domainauth "github.com/target/cipms/internal/domain/auth"
	authmocks "github.com/target/cipms/internal/mocks/auth"
)

// countingSink tallies counters by name and result tag.
type countingSink struct {
	mu     sync.Mutex
	counts map[string]int64
	gauges map[string]float64
}

func newCountingSink() *countingSink {
	return &countingSink{counts: map[string]int64{}, gauges: map[string]float64{}}
}

func (c *countingSink) Count(name string, value int64, tags map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r := tags["result"]; r != "" {
		name += "/" + r
	}
	c.counts[name] += value
}

func (c *countingSink) Gauge(name string, value float64, _ map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gauges[name] = value
}

func (c *countingSink) Timing(string, time.Duration, map[string]string) {}

func (c *countingSink) count(name string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[name]
}

func (c *countingSink) gauge(name string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.gauges[name]
	return v, ok
}

func TestSessionService_EmitsLoginAndLogoutMetrics(t *testing.T) {
	sink := newCountingSink()
	sess := NewSessionService(SessionServiceOptions{
		Credentials: authmocks.NewStaticCredentialSource(devauth.DemoIdentities()...),
		Storage:     authmocks.NewMemoryKeyValueStore(),
		Logger:      testLogger(),
		Metrics:     sink,
	})
	ctx := context.Background()
	sess.Restore(ctx)

	_, err := sess.Login(ctx, LoginInput{Email: devauth.DemoStudentEmail, Password: "", Role: domainauth.RoleStudent})
	require.ErrorIs(t, err, domainauth.ErrPasswordRequired)
	_, err = sess.Login(ctx, LoginInput{Email: devauth.DemoStudentEmail, Password: "pw", Role: domainauth.RoleRecruiter})
	require.ErrorIs(t, err, domainauth.ErrCredentialMismatch)
	_, err = sess.Login(ctx, LoginInput{Email: devauth.DemoStudentEmail, Password: "pw", Role: domainauth.RoleStudent})
	require.NoError(t, err)
	require.NoError(t, sess.Logout(ctx))

	assert.Equal(t, int64(2), sink.count("session.login/rejected"))
	assert.Equal(t, int64(1), sink.count("session.login/success"))
	assert.Equal(t, int64(1), sink.count("session.logout/success"))
}

func TestSessionService_LookupFailureCountsAsError(t *testing.T) {
	sink := newCountingSink()
	sess := NewSessionService(SessionServiceOptions{
		Credentials: &authmocks.StaticCredentialSource{
			LookupFunc: func(context.Context, string) (domainauth.Identity, error) {
				return nil, errors.New("connection reset")
			},
		},
		Logger:  testLogger(),
		Metrics: sink,
	})
	sess.Restore(context.Background())

	_, err := sess.Login(context.Background(), LoginInput{Email: "a@example.com", Password: "pw", Role: domainauth.RoleStudent})
	require.Error(t, err)
	assert.Equal(t, int64(1), sink.count("session.login/error"))
}

func TestSessionRegistry_RunReportsLiveGauge(t *testing.T) {
	sink := newCountingSink()
	reg := NewSessionRegistry(SessionRegistryOptions{
		Credentials:  authmocks.NewStaticCredentialSource(devauth.DemoIdentities()...),
		Storage:      authmocks.NewMemoryKeyValueStore(),
		IdleTTL:      time.Hour,
		TimeProvider: core.RealTimeProvider{},
		Logger:       testLogger(),
		Metrics:      sink,
	})
	waitReady(t, reg.Get(context.Background(), "client"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = reg.Run(ctx, 5*time.Millisecond) }()

	require.Eventually(t, func() bool {
		v, ok := sink.gauge("session.live")
		return ok && v == 1
	}, 2*time.Second, 10*time.Millisecond)
}
