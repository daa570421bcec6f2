package redis

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"z-novel-ai-agent/pkg/metrics"
)

// DefaultSessionKeyPrefix 会话快照键前缀
const DefaultSessionKeyPrefix = "agent:session:"

// SessionStore 以 JSON 快照形式保存会话，每次写入刷新过期时间
type SessionStore struct {
	client *Client
	prefix string
	group  singleflight.Group
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *Client, prefix string) *SessionStore {
	if prefix == "" {
		prefix = DefaultSessionKeyPrefix
	}
	return &SessionStore{client: client, prefix: prefix}
}

func (s *SessionStore) key(sessionID string) string {
	return s.prefix + sessionID
}

// Load 读取会话快照，不存在时返回 nil, nil。
// 同一会话的并发读取合并为一次 Redis 请求。
func (s *SessionStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	key := s.key(sessionID)
	ctx, span := tracer.Start(ctx, "redis.SessionStore.Load",
		trace.WithAttributes(attribute.String("session.key", key)))
	defer span.End()

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		data, err := s.client.rdb.Get(ctx, key).Bytes()
		if IsNil(err) {
			return []byte(nil), nil
		}
		return data, err
	})
	span.SetAttributes(attribute.Bool("singleflight.shared", shared))
	if err != nil {
		span.RecordError(err)
		metrics.SessionStoreOps.WithLabelValues("load", "error").Inc()
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	data := v.([]byte)
	if data == nil {
		span.SetAttributes(attribute.Bool("session.hit", false))
		metrics.SessionStoreOps.WithLabelValues("load", "miss").Inc()
		return nil, nil
	}
	span.SetAttributes(attribute.Bool("session.hit", true))
	metrics.SessionStoreOps.WithLabelValues("load", "hit").Inc()

	// 共享结果不能被调用方就地修改
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save 写入会话快照
func (s *SessionStore) Save(ctx context.Context, sessionID string, data []byte, ttl time.Duration) error {
	key := s.key(sessionID)
	ctx, span := tracer.Start(ctx, "redis.SessionStore.Save",
		trace.WithAttributes(
			attribute.String("session.key", key),
			attribute.Int64("session.ttl_ms", ttl.Milliseconds()),
			attribute.Int("session.bytes", len(data)),
		))
	defer span.End()

	if err := s.client.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		span.RecordError(err)
		metrics.SessionStoreOps.WithLabelValues("save", "error").Inc()
		return fmt.Errorf("failed to save session: %w", err)
	}
	metrics.SessionStoreOps.WithLabelValues("save", "ok").Inc()
	return nil
}

// Delete 删除会话快照，会话不存在时不报错
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	key := s.key(sessionID)
	ctx, span := tracer.Start(ctx, "redis.SessionStore.Delete",
		trace.WithAttributes(attribute.String("session.key", key)))
	defer span.End()

	if err := s.client.rdb.Del(ctx, key).Err(); err != nil {
		span.RecordError(err)
		metrics.SessionStoreOps.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("failed to delete session: %w", err)
	}
	metrics.SessionStoreOps.WithLabelValues("delete", "ok").Inc()
	return nil
}

// TTL 会话剩余存活时间
func (s *SessionStore) TTL(ctx context.Context, sessionID string) (time.Duration, error) {
	ctx, span := tracer.Start(ctx, "redis.SessionStore.TTL")
	defer span.End()

	ttl, err := s.client.rdb.TTL(ctx, s.key(sessionID)).Result()
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	return ttl, nil
}
