package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdboard/rd-tracker-backend/internal/members/domain"
)

type countingStore struct {
	members []domain.Member
	lists   int
}

func (s *countingStore) List(context.Context) ([]domain.Member, error) {
	s.lists++
	return append([]domain.Member(nil), s.members...), nil
}

func (s *countingStore) Create(_ context.Context, in domain.MemberInput) (*domain.Member, error) {
	m := domain.Member{ID: in.Email, Name: in.Name, Email: in.Email}
	s.members = append(s.members, m)
	return &m, nil
}

func (s *countingStore) Update(_ context.Context, id string, in domain.MemberInput) (*domain.Member, error) {
	return &domain.Member{ID: id, Name: in.Name, Email: in.Email}, nil
}

func (s *countingStore) Delete(context.Context, string) error { return nil }

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestCachedMemberStore_ListIsCached(t *testing.T) {
	mr, client := setupRedis(t)
	store := &countingStore{members: []domain.Member{{ID: "1", Name: "Ann Lee"}}}
	cached := NewCachedMemberStore(store, client, time.Minute, nil)
	ctx := context.Background()

	first, err := cached.List(ctx)
	require.NoError(t, err)
	second, err := cached.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.lists)
	assert.True(t, mr.Exists(entryKey(0)))
	assert.Equal(t, time.Minute, mr.TTL(entryKey(0)))
}

func TestCachedMemberStore_MutationInvalidates(t *testing.T) {
	mr, client := setupRedis(t)
	store := &countingStore{members: []domain.Member{{ID: "1", Name: "Ann Lee"}}}
	cached := NewCachedMemberStore(store, client, time.Minute, nil)
	ctx := context.Background()

	_, err := cached.List(ctx)
	require.NoError(t, err)

	_, err = cached.Create(ctx, domain.MemberInput{Name: "Ben Ng", Email: "ben@example.com"})
	require.NoError(t, err)
	v, err := mr.Get(versionKey)
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	got, err := cached.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 2, store.lists)
}

// blockingStore snapshots the members on its first List, then waits for
// release before returning that snapshot.
type blockingStore struct {
	mu      sync.Mutex
	members []domain.Member
	calls   int
	started chan struct{}
	release chan struct{}
}

func (s *blockingStore) List(context.Context) ([]domain.Member, error) {
	s.mu.Lock()
	snapshot := append([]domain.Member(nil), s.members...)
	s.calls++
	first := s.calls == 1
	s.mu.Unlock()

	if first {
		close(s.started)
		<-s.release
	}
	return snapshot, nil
}

func (s *blockingStore) Create(_ context.Context, in domain.MemberInput) (*domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := domain.Member{ID: in.Email, Name: in.Name, Email: in.Email}
	s.members = append(s.members, m)
	return &m, nil
}

func (s *blockingStore) Update(_ context.Context, id string, in domain.MemberInput) (*domain.Member, error) {
	return &domain.Member{ID: id, Name: in.Name, Email: in.Email}, nil
}

func (s *blockingStore) Delete(context.Context, string) error { return nil }

func TestCachedMemberStore_ListRacingCreate(t *testing.T) {
	_, client := setupRedis(t)
	store := &blockingStore{
		members: []domain.Member{{ID: "1", Name: "Ann Lee"}},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	cached := NewCachedMemberStore(store, client, time.Minute, nil)
	ctx := context.Background()

	done := make(chan []domain.Member, 1)
	go func() {
		got, err := cached.List(ctx)
		assert.NoError(t, err)
		done <- got
	}()
	<-store.started

	_, err := cached.Create(ctx, domain.MemberInput{Name: "Ben Ng", Email: "ben@example.com"})
	require.NoError(t, err)

	close(store.release)
	stale := <-done
	assert.Len(t, stale, 1)

	got, err := cached.List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, m := range got {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, "Ben Ng")
}

func TestCachedMemberStore_FallsThrough(t *testing.T) {
	store := &countingStore{members: []domain.Member{{ID: "1", Name: "Ann Lee"}}}

	t.Run("nil client", func(t *testing.T) {
		cached := NewCachedMemberStore(store, nil, time.Minute, nil)
		got, err := cached.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 1)
		require.NoError(t, cached.Delete(context.Background(), "1"))
	})

	t.Run("redis down", func(t *testing.T) {
		mr, client := setupRedis(t)
		mr.Close()
		cached := NewCachedMemberStore(store, client, time.Minute, nil)
		got, err := cached.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}
