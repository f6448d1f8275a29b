package scores

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the sorted set holding results ranked by score.
const DefaultKey = "athora:scores"

// RedisStore keeps results in a Redis sorted set.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
	key    string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to url and verifies the connection.
func NewRedisStore(ctx context.Context, url string, logger *slog.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Info("Connected to Redis for scores", "addr", opt.Addr)

	return &RedisStore{client: rdb, logger: logger, key: DefaultKey}, nil
}

func (s *RedisStore) Record(ctx context.Context, r Result) error {
	if r.At.IsZero() {
		r.At = time.Now()
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := s.client.ZAdd(ctx, s.key, redis.Z{Score: float64(r.Score), Member: string(data)}).Err(); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	s.logger.Debug("Recorded result", "session", r.Session, "score", r.Score)
	return nil
}

func (s *RedisStore) Top(ctx context.Context, n int) ([]Result, error) {
	if n <= 0 {
		return nil, nil
	}
	zs, err := s.client.ZRevRangeWithScores(ctx, s.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read scores: %w", err)
	}
	out := make([]Result, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		var r Result
		if err := json.Unmarshal([]byte(member), &r); err != nil {
			s.logger.Warn("Skipping malformed score entry", "error", err)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		s.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}
