package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

const sessionTTL = 30 * 24 * time.Hour

// Field names mirror the storage keys the browser client used.
const (
	fieldToken   = "token"
	fieldRefresh = "refreshToken"
	fieldUser    = "user"
	fieldCreated = "createdAt"
)

// SessionStore persists sessions as Redis hashes under session:<sid>. The
// identity triple (user, token, refreshToken) is always written by a single
// HSET and cleared by a single HDEL, so readers never observe a user without
// its token.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Create(ctx context.Context) (*domain.Session, error) {
	sid := uuid.NewString()
	key := sessionKey(sid)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fieldCreated, time.Now().UTC().Format(time.RFC3339))
	pipe.Expire(ctx, key, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("session create: %w", err)
	}

	return &domain.Session{ID: sid}, nil
}

func (s *SessionStore) Get(ctx context.Context, sid string) (*domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, sessionKey(sid)).Result()
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	sess := &domain.Session{
		ID:           sid,
		Token:        fields[fieldToken],
		RefreshToken: fields[fieldRefresh],
	}
	if raw, ok := fields[fieldUser]; ok && raw != "" {
		var user domain.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, fmt.Errorf("session get: decode user: %w", err)
		}
		sess.User = &user
	}
	return sess, nil
}

func (s *SessionStore) SaveAuth(ctx context.Context, sid string, user *domain.User, token, refreshToken string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session save: encode user: %w", err)
	}

	key := sessionKey(sid)
	pipe := s.client.TxPipeline()
	// One HSET carries the full triple; partial identity is unrepresentable.
	pipe.HSet(ctx, key,
		fieldUser, string(raw),
		fieldToken, token,
		fieldRefresh, refreshToken,
	)
	pipe.Expire(ctx, key, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *SessionStore) SaveUser(ctx context.Context, sid string, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session save user: encode: %w", err)
	}
	if err := s.client.HSet(ctx, sessionKey(sid), fieldUser, string(raw)).Err(); err != nil {
		return fmt.Errorf("session save user: %w", err)
	}
	return nil
}

func (s *SessionStore) SaveToken(ctx context.Context, sid, token string) error {
	if err := s.client.HSet(ctx, sessionKey(sid), fieldToken, token).Err(); err != nil {
		return fmt.Errorf("session save token: %w", err)
	}
	return nil
}

func (s *SessionStore) ClearAuth(ctx context.Context, sid string) error {
	err := s.client.HDel(ctx, sessionKey(sid), fieldUser, fieldToken, fieldRefresh).Err()
	if err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

func sessionKey(sid string) string {
	return "session:" + sid
}
