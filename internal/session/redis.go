package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const lockTTL = 30 * time.Second

// unlockScript deletes the lock only if we still own it.
const unlockScript = `
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`

// RedisStore keeps sessions in Redis so any API instance can serve them.
type RedisStore struct {
	redis  *redis.Client
	ttl    time.Duration
	prefix string
	logger zerolog.Logger
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed store; ttl <= 0 uses two hours.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{
		redis:  client,
		ttl:    ttl,
		prefix: "quiz:session",
		logger: logger.With().Str("component", "session_store").Logger(),
	}
}

func (r *RedisStore) key(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", r.prefix, id.String())
}

func (r *RedisStore) lockKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:lock:%s", r.prefix, id.String())
}

// Get loads a session; a missing or expired key yields ErrNotFound.
func (r *RedisStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	data, err := r.redis.Get(ctx, r.key(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

// Save writes the session and refreshes its TTL.
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.redis.Set(ctx, r.key(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Lock acquires a short-lived lock for one session action. The lock expires
// after 30s if the holder never releases it.
func (r *RedisStore) Lock(ctx context.Context, id uuid.UUID) (func() error, error) {
	key := r.lockKey(id)
	value := uuid.NewString()

	acquired, err := r.redis.SetNX(ctx, key, value, lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !acquired {
		return nil, ErrLocked
	}

	unlock := func() error {
		// The request context may already be canceled when the action finishes.
		if err := r.redis.Eval(context.WithoutCancel(ctx), unlockScript, []string{key}, value).Err(); err != nil {
			r.logger.Warn().Err(err).Str("session_id", id.String()).Msg("release session lock failed")
			return err
		}
		return nil
	}
	return unlock, nil
}
