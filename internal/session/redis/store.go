package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/frahmantamala/attendance-management/internal/session"
	goredis "github.com/redis/go-redis/v9"
)

const (
	fieldUserID    = "user_id"
	fieldCreatedAt = "created_at"
)

// Store keeps one Redis hash per session under session:{token}. The hash TTL
// is the session's absolute lifetime; inactivity expiry is the middleware's
// job, not Redis'.
type Store struct {
	rdb *goredis.Client
}

func NewStore(rdb *goredis.Client) *Store {
	return &Store{rdb: rdb}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *Store) Create(ctx context.Context, sess session.Session, ttl time.Duration) error {
	sk := sessionKey(sess.Token)

	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, sk, map[string]any{
		fieldUserID:    strconv.FormatInt(sess.UserID, 10),
		fieldCreatedAt: sess.CreatedAt.Format(session.LastActivityFormat),
	})
	if ttl > 0 {
		pipe.Expire(ctx, sk, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (s *Store) Lookup(ctx context.Context, token string) (session.Session, bool, error) {
	sk := sessionKey(token)

	fields, err := s.rdb.HGetAll(ctx, sk).Result()
	if err != nil {
		return session.Session{}, false, fmt.Errorf("failed to lookup session: %w", err)
	}
	if len(fields) == 0 {
		return session.Session{}, false, nil
	}

	userID, err := strconv.ParseInt(fields[fieldUserID], 10, 64)
	if err != nil {
		return session.Session{}, false, fmt.Errorf("corrupt session user id %q: %w", fields[fieldUserID], err)
	}

	createdAt, err := time.Parse(session.LastActivityFormat, fields[fieldCreatedAt])
	if err != nil {
		return session.Session{}, false, fmt.Errorf("corrupt session created_at %q: %w", fields[fieldCreatedAt], err)
	}

	return session.Session{Token: token, UserID: userID, CreatedAt: createdAt}, true, nil
}

func (s *Store) Get(ctx context.Context, token, key string) (string, bool, error) {
	value, err := s.rdb.HGet(ctx, sessionKey(token), key).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session field %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, token, key, value string) error {
	if err := s.rdb.HSet(ctx, sessionKey(token), key, value).Err(); err != nil {
		return fmt.Errorf("failed to write session field %s: %w", key, err)
	}
	return nil
}

func (s *Store) Flush(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to flush session: %w", err)
	}
	return nil
}
