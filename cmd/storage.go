package main

import (
	"context"
	"fmt"

	configs "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/config"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/handler"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/repository"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/database"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/logger"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/mongo"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// backends holds every open connection and the repositories built on them.
type backends struct {
	db    *gorm.DB
	mongo *mongo.Client
	redis *redis.Client

	users    repository.UserRepository
	sessions repository.SessionRepository
	health   []handler.Dependency
}

func openBackends(ctx context.Context, cfg *configs.Config) (*backends, error) {
	b := &backends{}

	if cfg.NeedsPostgres() {
		db, err := database.Open(ctx, cfg)
		if err != nil {
			return b, err
		}
		b.db = db
		b.health = append(b.health, handler.Dependency{Name: "postgres", Pinger: database.NewPinger(db), Required: true})

		if cfg.Database.AutoMigrate {
			if err := database.Migrate(ctx, db); err != nil {
				return b, err
			}
		}
	}

	if cfg.NeedsMongo() {
		client, err := mongo.Connect(ctx, cfg)
		if err != nil {
			return b, err
		}
		b.mongo = client
		b.health = append(b.health, handler.Dependency{Name: "mongo", Pinger: client, Required: true})
	}

	if cfg.NeedsRedis() {
		client, err := redis.NewClient(cfg)
		if err != nil {
			return b, err
		}
		b.redis = client
		b.health = append(b.health, handler.Dependency{
			Name:     "redis",
			Pinger:   client,
			Required: cfg.SessionDriver() == configs.DriverRedis,
		})
	}

	users, err := b.userRepository(ctx, cfg.Storage.Driver)
	if err != nil {
		return b, err
	}
	sessions, err := b.sessionRepository(ctx, cfg.SessionDriver())
	if err != nil {
		return b, err
	}
	b.users, b.sessions = users, sessions

	logger.GetLogger().Info("Storage ready",
		zap.String("user_store", cfg.Storage.Driver),
		zap.String("session_store", cfg.SessionDriver()),
	)
	return b, nil
}

func (b *backends) userRepository(ctx context.Context, driver string) (repository.UserRepository, error) {
	switch driver {
	case configs.DriverPostgres:
		return repository.NewPostgresUserRepository(b.db), nil
	case configs.DriverMongo:
		repo := repository.NewMongoUserRepository(b.mongo.Database())
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case configs.DriverMemory:
		logger.GetLogger().Warn("Using in-memory user store, data is lost on restart")
		return repository.NewMemoryUserRepository(), nil
	}
	return nil, fmt.Errorf("unsupported user store %q", driver)
}

func (b *backends) sessionRepository(ctx context.Context, driver string) (repository.SessionRepository, error) {
	switch driver {
	case configs.DriverPostgres:
		return repository.NewPostgresSessionRepository(b.db), nil
	case configs.DriverMongo:
		repo := repository.NewMongoSessionRepository(b.mongo.Database())
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case configs.DriverRedis:
		return repository.NewRedisSessionRepository(b.redis.Cmdable()), nil
	case configs.DriverMemory:
		return repository.NewMemorySessionRepository(), nil
	}
	return nil, fmt.Errorf("unsupported session store %q", driver)
}

func (b *backends) Close(ctx context.Context) {
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			logger.GetLogger().Warn("Failed to close Redis", zap.Error(err))
		}
	}
	if b.mongo != nil {
		if err := b.mongo.Close(ctx); err != nil {
			logger.GetLogger().Warn("Failed to disconnect MongoDB", zap.Error(err))
		}
	}
	if b.db != nil {
		if err := database.Close(b.db); err != nil {
			logger.GetLogger().Warn("Failed to close database", zap.Error(err))
		}
	}
}
