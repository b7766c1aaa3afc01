package app

import (
	"auth-bridge/internal/config"
	"auth-bridge/internal/logger"
	"auth-bridge/internal/redis"
	"auth-bridge/internal/session"
)

type Infra struct {
	Sessions session.Store
	Redis    *redis.Client
}

func setupInfra(cfg config.Config) (*Infra, error) {
	if cfg.RedisAddr == "" {
		logger.Info("using in-memory session store", nil)
		return &Infra{
			Sessions: session.NewMemoryStore(),
		}, nil
	}

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", nil)

	return &Infra{
		Sessions: session.NewRedisStore(redisClient.Client),
		Redis:    redisClient,
	}, nil
}

func (i *Infra) Close() error {
	if i.Redis != nil {
		return i.Redis.Close()
	}
	return nil
}
