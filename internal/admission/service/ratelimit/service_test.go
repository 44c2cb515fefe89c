package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"domainshark/internal/admission/models"
	"domainshark/internal/admission/store/counter"
)

type RateLimitSuite struct {
	suite.Suite
	store   *counter.InMemoryStore
	service *Service
	now     time.Time
}

func TestRateLimitSuite(t *testing.T) {
	suite.Run(t, new(RateLimitSuite))
}

func (s *RateLimitSuite) SetupTest() {
	s.now = time.Date(2025, 6, 15, 12, 30, 5, 0, time.UTC)
	s.store = counter.NewInMemoryStore()
	s.store.SetClock(func() time.Time { return s.now })

	var err error
	s.service, err = New(s.store, WithClock(func() time.Time { return s.now }))
	s.Require().NoError(err)
}

func (s *RateLimitSuite) TestNew() {
	s.Run("nil store returns error", func() {
		_, err := New(nil)
		s.Error(err)
		s.Contains(err.Error(), "counter store is required")
	})
}

func (s *RateLimitSuite) TestThresholdWithinOneWindow() {
	ctx := context.Background()

	for i := 0; i < models.RateLimitPerMinute; i++ {
		result := s.service.CheckAndConsume(ctx, "1.2.3.4")
		s.False(result.Limited, "call %d should not be limited", i+1)
		s.False(result.Degraded)
	}

	result := s.service.CheckAndConsume(ctx, "1.2.3.4")
	s.True(result.Limited, "11th call in the same minute should be limited")
}

func (s *RateLimitSuite) TestNextMinuteBucketResets() {
	ctx := context.Background()

	for i := 0; i < models.RateLimitPerMinute+1; i++ {
		s.service.CheckAndConsume(ctx, "1.2.3.4")
	}
	s.True(s.service.CheckAndConsume(ctx, "1.2.3.4").Limited)

	s.now = s.now.Add(time.Minute)

	result := s.service.CheckAndConsume(ctx, "1.2.3.4")
	s.False(result.Limited, "new minute bucket starts fresh")
}

func (s *RateLimitSuite) TestClientsAreIndependent() {
	ctx := context.Background()

	for i := 0; i < models.RateLimitPerMinute; i++ {
		s.service.CheckAndConsume(ctx, "1.2.3.4")
	}
	s.True(s.service.CheckAndConsume(ctx, "1.2.3.4").Limited)

	s.False(s.service.CheckAndConsume(ctx, "5.6.7.8").Limited)
}

func (s *RateLimitSuite) TestLimitedCallDoesNotConsume() {
	ctx := context.Background()

	for i := 0; i < models.RateLimitPerMinute; i++ {
		s.service.CheckAndConsume(ctx, "1.2.3.4")
	}

	key := models.RateLimitKey("1.2.3.4", s.now)
	before, _, err := s.store.Get(ctx, key)
	s.Require().NoError(err)

	s.service.CheckAndConsume(ctx, "1.2.3.4")

	after, _, err := s.store.Get(ctx, key)
	s.Require().NoError(err)
	s.Equal(before, after, "rejected calls must not increment the bucket")
}

func (s *RateLimitSuite) TestStoreFailureFailsOpen() {
	svc, err := New(&failingStore{})
	s.Require().NoError(err)

	result := svc.CheckAndConsume(context.Background(), "1.2.3.4")
	s.False(result.Limited)
	s.True(result.Degraded)
}

// failingStore simulates a counter-store outage.
type failingStore struct{}

func (f *failingStore) Get(ctx context.Context, key string) (int, bool, error) {
	return 0, false, errors.New("store unavailable")
}

func (f *failingStore) Put(ctx context.Context, key string, value int, ttl time.Duration) error {
	return errors.New("store unavailable")
}
