package breaker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"domainshark/internal/admission/store/counter"
)

type BreakerSuite struct {
	suite.Suite
	store    *counter.InMemoryStore
	notifier *recordingNotifier
	service  *Service
	now      time.Time
}

func TestBreakerSuite(t *testing.T) {
	suite.Run(t, new(BreakerSuite))
}

func (s *BreakerSuite) SetupTest() {
	s.now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	s.store = counter.NewInMemoryStore()
	s.store.SetClock(func() time.Time { return s.now })
	s.notifier = &recordingNotifier{}

	var err error
	s.service, err = New(s.store, 8000,
		WithNotifier(s.notifier),
		WithClock(func() time.Time { return s.now }),
	)
	s.Require().NoError(err)
}

func (s *BreakerSuite) TestNew() {
	s.Run("nil store returns error", func() {
		_, err := New(nil, 8000)
		s.Error(err)
	})

	s.Run("non-positive ceiling returns error", func() {
		_, err := New(s.store, 0)
		s.Error(err)
	})
}

func (s *BreakerSuite) TestClosedBelowCeiling() {
	status := s.service.Check(context.Background())
	s.False(status.Open)
	s.Zero(status.RequestCount)
	s.False(status.Degraded)
}

func (s *BreakerSuite) TestAlertFiresExactlyOnceAtCeiling() {
	ctx := context.Background()

	// Start just below the ceiling to keep the test fast.
	s.Require().NoError(s.store.Put(ctx, "circuit:2025-06", 7998, time.Hour))

	s.False(s.service.Commit(ctx), "7999th lookup stays below the ceiling")
	s.Zero(s.notifier.calls())

	s.True(s.service.Commit(ctx), "8000th lookup is the trip transition")
	s.Equal(1, s.notifier.calls())
	s.Equal("2025-06", s.notifier.lastMonth)
	s.Equal(8000, s.notifier.lastCount)
	s.Equal(8000, s.notifier.lastCeiling)

	// Trailing traffic after the trip must not re-alert.
	for i := 0; i < 3; i++ {
		s.False(s.service.Commit(ctx))
	}
	s.Equal(1, s.notifier.calls())
}

func (s *BreakerSuite) TestOpenAtCeiling() {
	ctx := context.Background()

	s.Require().NoError(s.store.Put(ctx, "circuit:2025-06", 8000, time.Hour))

	status := s.service.Check(ctx)
	s.True(status.Open)
	s.Equal(8000, status.RequestCount)
}

func (s *BreakerSuite) TestMonthRolloverCloses() {
	ctx := context.Background()

	s.Require().NoError(s.store.Put(ctx, "circuit:2025-06", 9000, time.Hour))
	s.True(s.service.Check(ctx).Open)

	s.now = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	status := s.service.Check(ctx)
	s.False(status.Open, "a new month's key starts at zero")
	s.Zero(status.RequestCount)
}

func (s *BreakerSuite) TestStoreFailureFailsOpen() {
	svc, err := New(&failingStore{}, 8000, WithNotifier(s.notifier))
	s.Require().NoError(err)

	status := svc.Check(context.Background())
	s.False(status.Open)
	s.True(status.Degraded)

	s.False(svc.Commit(context.Background()))
	s.Zero(s.notifier.calls(), "a failed commit must not alert")
}

// recordingNotifier captures Notify invocations.
type recordingNotifier struct {
	mu          sync.Mutex
	count       int
	lastMonth   string
	lastCount   int
	lastCeiling int
}

func (r *recordingNotifier) Notify(ctx context.Context, month string, count, ceiling int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	r.lastMonth = month
	r.lastCount = count
	r.lastCeiling = ceiling
}

func (r *recordingNotifier) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

type failingStore struct{}

func (f *failingStore) Get(ctx context.Context, key string) (int, bool, error) {
	return 0, false, errors.New("store unavailable")
}

func (f *failingStore) Put(ctx context.Context, key string, value int, ttl time.Duration) error {
	return errors.New("store unavailable")
}
