// Package session provides cookie-session storage for the application.
// Session data lives server side: in Redis when REDIS_URL points at a
// reachable instance, otherwise in Fiber's in-process memory storage.
package session

import (
	"context"
	"log"
	"strings"
	"time"

	"connectin/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the session cookie issued to browsers.
	CookieName = "connectin_session"

	sessionTTL = 7 * 24 * time.Hour
	keyPrefix  = "connectin:sess:"
)

// NewStore builds the session store. redisURL may be a bare host:port or a
// redis:// URL; an empty or unreachable address falls back to memory storage.
func NewStore(redisURL string) *session.Store {
	cfg := session.Config{
		Expiration:     sessionTTL,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyGenerator:   utils.UUIDv4,
	}

	if storage := newRedisStorage(redisURL); storage != nil {
		cfg.Storage = storage
	}

	return session.New(cfg)
}

// redisStorage adapts a go-redis client to fiber.Storage.
type redisStorage struct {
	client *redis.Client
}

var _ fiber.Storage = (*redisStorage)(nil)

func newRedisStorage(addr string) *redisStorage {
	if addr == "" {
		return nil
	}

	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			log.Printf("Redis connection warning: invalid REDIS_URL %q: %v (using in-memory sessions)", addr, err)
			return nil
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (using in-memory sessions)", err)
		return nil
	}

	log.Println("Redis connected successfully, sessions are redis-backed")
	return &redisStorage{client: client}
}

func (s *redisStorage) Get(key string) ([]byte, error) {
	val, err := s.client.Get(context.Background(), keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		middleware.SessionStoreErrors.WithLabelValues("get").Inc()
		return nil, err
	}
	return val, nil
}

func (s *redisStorage) Set(key string, val []byte, exp time.Duration) error {
	if err := s.client.Set(context.Background(), keyPrefix+key, val, exp).Err(); err != nil {
		middleware.SessionStoreErrors.WithLabelValues("set").Inc()
		return err
	}
	return nil
}

func (s *redisStorage) Delete(key string) error {
	if err := s.client.Del(context.Background(), keyPrefix+key).Err(); err != nil {
		middleware.SessionStoreErrors.WithLabelValues("delete").Inc()
		return err
	}
	return nil
}

func (s *redisStorage) Reset() error {
	var cursor uint64
	ctx := context.Background()
	for {
		keys, next, err := s.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			middleware.SessionStoreErrors.WithLabelValues("reset").Inc()
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				middleware.SessionStoreErrors.WithLabelValues("reset").Inc()
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (s *redisStorage) Close() error {
	return s.client.Close()
}
