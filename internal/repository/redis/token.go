package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/overcomingroom/bellbell/internal/repository"
)

const tokenKeyPrefix = "bellbell:token:"

// tokenRepository serves token lookups from Redis and falls through to the wrapped
// repository on a miss. Redis failures are logged and never returned.
type tokenRepository struct {
	client  *redis.Client
	next    repository.TokenRepository
	ttl     time.Duration
	// lookups is labelled by outcome; nil disables counting.
	lookups *prometheus.CounterVec
}

func NewTokenRepository(client *redis.Client, next repository.TokenRepository, ttl time.Duration, lookups *prometheus.CounterVec) repository.TokenRepository {
	return &tokenRepository{
		client:  client,
		next:    next,
		ttl:     ttl,
		lookups: lookups,
	}
}

func (r *tokenRepository) count(outcome string) {
	if r.lookups != nil {
		r.lookups.WithLabelValues(outcome).Inc()
	}
}

func tokenKey(tokenDigest string) string {
	return tokenKeyPrefix + tokenDigest
}

func (r *tokenRepository) FindMemberID(ctx context.Context, tokenDigest string) (int64, error) {
	key := tokenKey(tokenDigest)

	cached, err := r.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if id, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
			r.count("hit")
			return id, nil
		}
		log.Warn().Str("key", key).Msg("discarding malformed cached token entry")
	case errors.Is(err, redis.Nil):
		r.count("miss")
	default:
		r.count("error")
		log.Warn().Err(err).Msg("token cache read failed, falling back to database")
	}

	memberID, err := r.next.FindMemberID(ctx, tokenDigest)
	if err != nil {
		return 0, err
	}

	if err := r.client.Set(ctx, key, strconv.FormatInt(memberID, 10), r.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("token cache write failed")
	}

	return memberID, nil
}

// NewClient parses url and verifies the connection.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
