package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/leave_management/internal/db"
	"github.com/Skotchmaster/leave_management/internal/repo"
	"github.com/Skotchmaster/leave_management/internal/tokens"
)

type sentMail struct {
	to, token string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, token: token})
	return m.err
}

type published struct {
	topic, key string
	event      any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{topic: topic, key: key, event: event})
	return p.err
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	gdb, err := db.OpenGorm(context.Background(), "sqlite", filepath.Join(t.TempDir(), "leave.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.CloseGorm(gdb) })

	r := repo.NewGormRepo(gdb)
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

type userEnv struct {
	svc    *UserService
	repo   *repo.GormRepo
	mailer *fakeMailer
	events *fakePublisher
	clock  *clock
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newUserEnv(t *testing.T) *userEnv {
	t.Helper()
	r := newTestRepo(t)
	clk := &clock{t: time.Now().UTC().Truncate(time.Second)}
	env := &userEnv{
		repo:   r,
		mailer: &fakeMailer{},
		events: &fakePublisher{},
		clock:  clk,
	}
	env.svc = &UserService{
		Users:  r,
		Tokens: &tokens.Issuer{Secret: []byte("test-jwt-secret"), Now: clk.Now},
		Mailer: env.mailer,
		Events: env.events,
		Now:    clk.Now,
	}
	return env
}

func requireKind(t *testing.T, err error, kind error, msg string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, kind), "want %v, got %v", kind, err)
	if msg != "" {
		require.Equal(t, msg, Message(err))
	}
}
