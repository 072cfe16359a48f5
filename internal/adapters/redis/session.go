package redisad

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"time"

	"hotelos_gateway/internal/domain"
)

// sessionKey never stores the raw token in Redis.
func sessionKey(token string) string {
	sum := sha1.Sum([]byte(token))
	return "session:" + hex.EncodeToString(sum[:])
}

func (r *Cache) PutSession(ctx context.Context, token string, u domain.User, ttl time.Duration) error {
	u.Password = ""
	sec := int(ttl.Seconds())
	if sec <= 0 {
		sec = 1
	}
	return r.Set(ctx, sessionKey(token), u, sec)
}

func (r *Cache) GetSession(ctx context.Context, token string) (domain.User, bool, error) {
	var u domain.User
	ok, err := r.Get(ctx, sessionKey(token), &u)
	if err != nil || !ok {
		return domain.User{}, false, err
	}
	return u, true, nil
}

func (r *Cache) DeleteSession(ctx context.Context, token string) error {
	return r.Del(ctx, sessionKey(token))
}
