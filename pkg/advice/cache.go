package advice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mediconsult/platform/pkg/common/logger"
	"github.com/redis/go-redis/v9"
)

// CachedProvider memoises advice in Redis. Keys ignore the narrative, so cached
// text is shared by patients with the same diagnosis, severity, language and
// age band. Redis failures fall through to the wrapped provider.
type CachedProvider struct {
	next   Provider
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewCachedProvider(next Provider, client *redis.Client, ttl time.Duration) *CachedProvider {
	return &CachedProvider{next: next, client: client, ttl: ttl, prefix: "advice:"}
}

func (c *CachedProvider) Generate(ctx context.Context, req Request) (string, error) {
	if c.client == nil || req.Diagnosis == "" {
		return c.next.Generate(ctx, req)
	}

	key := c.Key(req)
	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil && cached != "":
		return cached, nil
	case err != nil && !errors.Is(err, redis.Nil):
		logger.Component("advice").WithError(err).Debug("Advice cache read failed")
	}

	text, err := c.next.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) != "" {
		if err := c.client.Set(ctx, key, text, c.ttl).Err(); err != nil {
			logger.Component("advice").WithError(err).Debug("Advice cache write failed")
		}
	}
	return text, nil
}

func (c *CachedProvider) Key(req Request) string {
	return fmt.Sprintf("%s%s:%s:%s:%s", c.prefix,
		strings.ToLower(strings.ReplaceAll(req.Diagnosis, " ", "_")),
		req.Severity, languageName(req.Language), ageBand(req.Age))
}

func ageBand(age int) string {
	switch {
	case age < 12:
		return "child"
	case age < 18:
		return "teen"
	case age > 65:
		return "senior"
	default:
		return "adult"
	}
}
