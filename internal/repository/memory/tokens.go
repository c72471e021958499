package memory

import (
	"context"
	"strings"
	"time"

	"portfolio/internal/repository"

	"github.com/patrickmn/go-cache"
)

// TokenStore keeps refresh tokens in an expiring in-process cache. It stands
// in for redis when no redis address is configured.
type TokenStore struct {
	c *cache.Cache
}

var _ repository.TokenRepository = (*TokenStore)(nil)

func NewTokenStore(cleanup time.Duration) *TokenStore {
	return &TokenStore{c: cache.New(cache.NoExpiration, cleanup)}
}

func (s *TokenStore) SaveRefreshToken(_ context.Context, adminID, token string, exp time.Duration) error {
	s.c.Set(tokenKey(adminID, token), true, exp)
	return nil
}

func (s *TokenStore) GetRefreshToken(_ context.Context, adminID, token string) (bool, error) {
	_, ok := s.c.Get(tokenKey(adminID, token))
	return ok, nil
}

func (s *TokenStore) DeleteRefreshToken(_ context.Context, adminID, token string) error {
	s.c.Delete(tokenKey(adminID, token))
	return nil
}

func (s *TokenStore) DeleteAllAdminTokens(_ context.Context, adminID string) error {
	prefix := tokenKey(adminID, "")
	for key := range s.c.Items() {
		if strings.HasPrefix(key, prefix) {
			s.c.Delete(key)
		}
	}
	return nil
}

func tokenKey(adminID, token string) string {
	return "refresh:" + adminID + ":" + token
}
