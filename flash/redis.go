package flash

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pthm/inertia/lib/encoding"
	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	// Client is the Redis client instance.
	Client *redis.Client

	// KeyPrefix is the prefix for all Redis keys.
	// Default: "inertia:flash:"
	KeyPrefix string

	// TTL bounds how long unread flash data is kept.
	// Default: 5 minutes
	TTL time.Duration

	// CookieName names the session cookie that keys a client's data.
	// Default: "inertia_flash_sid"
	CookieName string

	// Secure marks the session cookie Secure.
	Secure bool
}

// RedisStore keeps flash data in Redis. The client only holds a random
// session id cookie.
type RedisStore struct {
	client     *redis.Client
	keyPrefix  string
	ttl        time.Duration
	cookieName string
	secure     bool
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("flash: redis client is required")
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "inertia:flash:"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "inertia_flash_sid"
	}
	return &RedisStore{
		client:     cfg.Client,
		keyPrefix:  cfg.KeyPrefix,
		ttl:        cfg.TTL,
		cookieName: cfg.CookieName,
		secure:     cfg.Secure,
	}, nil
}

// Pull fetches and deletes the client's flash data in one round trip.
func (s *RedisStore) Pull(ctx context.Context, w http.ResponseWriter, r *http.Request) (Data, error) {
	sid, ok := s.sessionID(r)
	if !ok {
		return Data{}, nil
	}

	raw, err := s.client.GetDel(ctx, s.key(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Data{}, nil
	}
	if err != nil {
		return Data{}, fmt.Errorf("flash: redis getdel: %w", err)
	}

	var d Data
	if err := encoding.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("flash: decode: %w", err)
	}
	return d, nil
}

// Put stores d under the client's session id, issuing a session cookie if
// the client has none yet.
func (s *RedisStore) Put(ctx context.Context, w http.ResponseWriter, r *http.Request, d Data) error {
	sid, ok := s.sessionID(r)
	if !ok {
		sid = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     s.cookieName,
			Value:    sid,
			Path:     "/",
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	if d.IsZero() {
		return s.client.Del(ctx, s.key(sid)).Err()
	}

	raw, err := encoding.Marshal(d)
	if err != nil {
		return fmt.Errorf("flash: encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sid), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("flash: redis set: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) key(sid string) string { return s.keyPrefix + sid }

func (s *RedisStore) sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.cookieName)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}
