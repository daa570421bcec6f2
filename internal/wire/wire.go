//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"z-novel-ai-agent/internal/application/agent"
	"z-novel-ai-agent/internal/application/session"
	"z-novel-ai-agent/internal/config"
	"z-novel-ai-agent/internal/domain/repository"
	"z-novel-ai-agent/internal/infrastructure/persistence/redis"
	"z-novel-ai-agent/internal/interfaces/http/handler"
	"z-novel-ai-agent/internal/interfaces/http/middleware"
	"z-novel-ai-agent/internal/interfaces/http/router"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		PostgresSet,
		RedisSet,
		MessagingSet,
		AgentSet,
		RouterSet,
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	ProvideAgentTurnRepository,
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	ProvideSessionStore,
	redis.NewRateLimiter,
	wire.Bind(new(repository.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.RateLimiter), new(*redis.RateLimiter)),
)

// MessagingSet 消息队列提供者集合
var MessagingSet = wire.NewSet(
	ProvideJobPublisher,
)

// AgentSet 对话代理与会话服务
var AgentSet = wire.NewSet(
	ProvideAgentConfig,
	agent.NewFactory,
	ProvideSessionOptions,
	session.NewService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewAgentSessionHandler,
	wire.Struct(new(router.RouterHandlers), "*"),
	router.NewWithDeps,
)
