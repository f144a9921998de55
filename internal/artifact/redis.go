package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const reportKeyPrefix = "report:"

// RedisStore хранит отчеты в Redis с TTL
type RedisStore struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisClient создает клиент Redis и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Проверяем соединение с Redis
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Errorw("Failed to connect to Redis", "error", err)
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Infow("Connected to Redis successfully", "addr", addr)
	return client, nil
}

// NewRedisStore создает новое хранилище отчетов в Redis
func NewRedisStore(client *redis.Client, log *logger.Logger) *RedisStore {
	return &RedisStore{client: client, log: log}
}

// Save сохраняет отчет
func (s *RedisStore) Save(ctx context.Context, a *Artifact, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	data, err := json.Marshal(a)
	if err != nil {
		s.log.Errorw("Failed to marshal report artifact", "error", err, "id", a.ID)
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	if err := s.client.Set(ctx, reportKeyPrefix+a.ID, data, ttl).Err(); err != nil {
		s.log.Errorw("Failed to store report artifact in Redis", "error", err, "id", a.ID)
		return fmt.Errorf("failed to store artifact: %w", err)
	}

	s.log.Debugw("Report artifact stored", "id", a.ID, "bytes", len(a.Data), "ttl", ttl)
	return nil
}

// Get получает отчет по идентификатору
func (s *RedisStore) Get(ctx context.Context, id string) (*Artifact, error) {
	data, err := s.client.Get(ctx, reportKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.NewNotFoundError("report", id)
		}
		s.log.Errorw("Error getting report artifact from Redis", "error", err, "id", id)
		return nil, fmt.Errorf("failed to get artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		s.log.Errorw("Failed to unmarshal report artifact", "error", err, "id", id)
		return nil, fmt.Errorf("failed to unmarshal artifact: %w", err)
	}
	return &a, nil
}

// Close закрывает соединение с Redis
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
