package memory

import (
	"context"
	"encoding/json"
	"time"

	"persona-chat-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "convo:session:"
	sessionTTL       = time.Hour
)

// RedisSessionRepository keeps session state in Redis so signal accumulators
// survive process restarts and multiple instances.
type RedisSessionRepository struct {
	rdb *redis.Client
}

func NewRedisSessionRepository(rdb *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb}
}

func (r *RedisSessionRepository) Save(ctx context.Context, session *store.Session) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, sessionKeyPrefix+session.ID, data, sessionTTL).Err()
}

func (r *RedisSessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, bool) {
	data, err := r.rdb.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		return nil, false
	}
	var sess store.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, false
	}
	if sess.SignalCounts == nil {
		sess.SignalCounts = make(map[string]int)
	}
	return &sess, true
}

func (r *RedisSessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
