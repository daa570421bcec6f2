// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"z-novel-ai-agent/internal/application/agent"
	"z-novel-ai-agent/internal/application/session"
	"z-novel-ai-agent/internal/config"
	"z-novel-ai-agent/internal/domain/repository"
	"z-novel-ai-agent/internal/infrastructure/messaging"
	"z-novel-ai-agent/internal/infrastructure/persistence/postgres"
	"z-novel-ai-agent/internal/infrastructure/persistence/redis"
	"z-novel-ai-agent/pkg/logger"
)

// ProvidePostgresClient 提供 PostgreSQL 客户端。未启用时返回 nil，轮次日志随之关闭。
func ProvidePostgresClient(ctx context.Context, cfg *config.Config) (*postgres.Client, func(), error) {
	if !cfg.Database.Postgres.Enabled {
		logger.Info(ctx, "postgres disabled, agent turn log off")
		return nil, func() {}, nil
	}

	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.Postgres.AutoMigrate {
		if err := client.AutoMigrate(ctx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideAgentTurnRepository 提供轮次仓储，PostgreSQL 未启用时为 nil
func ProvideAgentTurnRepository(client *postgres.Client) repository.AgentTurnRepository {
	if client == nil {
		return nil
	}
	return postgres.NewAgentTurnRepository(client)
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideSessionStore 提供 Redis 会话存储
func ProvideSessionStore(client *redis.Client, cfg *config.Config) *redis.SessionStore {
	return redis.NewSessionStore(client, cfg.Session.KeyPrefix)
}

// ProvideJobPublisher 提供创作任务投递器，Redis Stream 未启用时为 nil
func ProvideJobPublisher(redisClient *redis.Client, cfg *config.Config) session.JobPublisher {
	if !cfg.Messaging.RedisStream.Enabled {
		return nil
	}
	maxLen := cfg.Messaging.RedisStream.MaxLen
	if maxLen <= 0 {
		maxLen = 100000
	}
	return messaging.NewProducer(redisClient.Redis(), messaging.Stream(cfg.Messaging.RedisStream.Stream), int64(maxLen))
}

// ProvideAgentConfig 提供对话代理配置
func ProvideAgentConfig(cfg *config.Config) agent.Config {
	return agent.FromConfig(cfg.Agent)
}

// ProvideSessionOptions 提供会话服务选项
func ProvideSessionOptions(cfg *config.Config) session.Options {
	return session.Options{
		TTL:              cfg.Session.TTL,
		RecordTurns:      cfg.Session.RecordTurns,
		PublishCreations: cfg.Session.PublishCreations,
	}
}
