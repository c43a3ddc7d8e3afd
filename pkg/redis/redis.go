package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"PokerVision/internal/entity"
)

// Snapshots are operational state only. The TTL keeps the registry from ever
// becoming a persistence layer: a session that stops updating disappears.
const snapshotTTL = 5 * time.Minute

var ErrSnapshotNotFound = errors.New("session snapshot not found")

type ISessionStore interface {
	SaveSnapshot(ctx context.Context, snapshot entity.SessionSnapshot) error
	GetSnapshot(ctx context.Context, sessionID string) (*entity.SessionSnapshot, error)
	DeleteSnapshot(ctx context.Context, sessionID string) error
}

type sessionStore struct {
	client *redis.Client
}

func New() ISessionStore {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &sessionStore{client: client}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (s *sessionStore) SaveSnapshot(ctx context.Context, snapshot entity.SessionSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, sessionKey(snapshot.ID), payload, snapshotTTL).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error saving snapshot for session %s: %v", snapshot.ID, err))
		return err
	}

	return nil
}

func (s *sessionStore) GetSnapshot(ctx context.Context, sessionID string) (*entity.SessionSnapshot, error) {
	payload, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		logrus.Error(fmt.Sprintf("Error getting snapshot for session %s: %v", sessionID, err))
		return nil, err
	}

	var snapshot entity.SessionSnapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (s *sessionStore) DeleteSnapshot(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}
