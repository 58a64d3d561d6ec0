package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rdboard/rd-tracker-backend/internal/members/domain"
	"github.com/rdboard/rd-tracker-backend/internal/metrics"
)

const (
	directoryKey = "rd:members:directory"
	versionKey   = directoryKey + ":version"
)

// entryKey is where the list for generation gen lives. Mutations bump the
// generation, so a list read before a mutation can only land under a key
// that is no longer looked up.
func entryKey(gen int64) string {
	return fmt.Sprintf("%s:v%d", directoryKey, gen)
}

// MemberStore is the subset of MemberRepository the cache sits in front of.
type MemberStore interface {
	List(ctx context.Context) ([]domain.Member, error)
	Create(ctx context.Context, in domain.MemberInput) (*domain.Member, error)
	Update(ctx context.Context, id string, in domain.MemberInput) (*domain.Member, error)
	Delete(ctx context.Context, id string) error
}

// CachedMemberStore keeps the sorted member list in Redis under a
// generation-versioned key. Any mutation bumps the generation. Redis errors
// are logged and the call falls through to the underlying store, so a nil or
// unreachable client only costs a query.
type CachedMemberStore struct {
	next   MemberStore
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewCachedMemberStore(next MemberStore, client *redis.Client, ttl time.Duration, log *zap.Logger) *CachedMemberStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedMemberStore{next: next, client: client, ttl: ttl, log: log}
}

func (c *CachedMemberStore) List(ctx context.Context) ([]domain.Member, error) {
	if c.client == nil {
		return c.next.List(ctx)
	}

	// the generation is read before the table so a concurrent mutation moves
	// readers off whatever this call ends up writing
	gen, err := c.generation(ctx)
	if err != nil {
		metrics.RecordMemberCacheLookup("error")
		c.log.Warn("member cache version read failed", zap.Error(err))
		return c.next.List(ctx)
	}
	key := entryKey(gen)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var members []domain.Member
		if jsonErr := json.Unmarshal(raw, &members); jsonErr == nil {
			metrics.RecordMemberCacheLookup("hit")
			return members, nil
		}
		metrics.RecordMemberCacheLookup("error")
	case errors.Is(err, redis.Nil):
		metrics.RecordMemberCacheLookup("miss")
	default:
		metrics.RecordMemberCacheLookup("error")
		c.log.Warn("member cache read failed", zap.Error(err))
	}

	members, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(members); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn("member cache write failed", zap.Error(err))
		}
	}
	return members, nil
}

func (c *CachedMemberStore) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *CachedMemberStore) Create(ctx context.Context, in domain.MemberInput) (*domain.Member, error) {
	m, err := c.next.Create(ctx, in)
	if err == nil {
		c.invalidate(ctx)
	}
	return m, err
}

func (c *CachedMemberStore) Update(ctx context.Context, id string, in domain.MemberInput) (*domain.Member, error) {
	m, err := c.next.Update(ctx, id, in)
	if err == nil {
		c.invalidate(ctx)
	}
	return m, err
}

func (c *CachedMemberStore) Delete(ctx context.Context, id string) error {
	err := c.next.Delete(ctx, id)
	if err == nil {
		c.invalidate(ctx)
	}
	return err
}

func (c *CachedMemberStore) invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		c.log.Warn("member cache invalidation failed", zap.Error(err))
	}
}
