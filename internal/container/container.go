package container

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bg-companion-api/config"
	"github.com/oksasatya/bg-companion-api/internal/application"
	repo "github.com/oksasatya/bg-companion-api/internal/domain/repository"
	"github.com/oksasatya/bg-companion-api/internal/infrastructure/blizzard"
	pginfra "github.com/oksasatya/bg-companion-api/internal/infrastructure/postgres"
	"github.com/oksasatya/bg-companion-api/internal/infrastructure/search"
	"github.com/oksasatya/bg-companion-api/pkg/helpers"
)

// Container holds the components shared across modules. It is built once at
// startup and never mutated afterwards. Optional components are nil when
// their backing service is not configured.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger

	Pool  *pgxpool.Pool
	Redis *redis.Client

	JWT     *helpers.JWTManager
	Cookies *helpers.Manager
	Hasher  application.PasswordHasher

	Users repo.UserRepository
	Comps repo.CompRepository

	Cards     application.CardCatalog
	Jobs      application.JobPublisher // optional
	CompIndex application.CompIndexer  // optional

	closers []func()
}

// New connects every configured backend in dependency order. On error the
// parts built so far are closed.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (_ *Container, err error) {
	c := &Container{Cfg: cfg, Logger: logger}
	defer func() {
		if err != nil {
			c.Close()
		}
	}()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	c.Pool = pool
	c.closers = append(c.closers, pool.Close)

	if cfg.RunMigrations {
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		// rate limiting is optional; run without it
		logger.WithError(err).Warn("redis unavailable, rate limiting disabled")
	}
	if rdb != nil {
		c.Redis = rdb
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	c.JWT = helpers.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)
	c.Cookies = helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)
	c.Hasher = helpers.NewBcryptHasher(cfg.BcryptCost)

	c.Users = pginfra.NewUserRepository(pool)
	c.Comps = pginfra.NewCompRepository(pool)

	c.Cards = blizzard.NewClient(blizzard.Config{
		TokenURL:     cfg.BlizzardTokenURL,
		ClientID:     cfg.BlizzardClientID,
		ClientSecret: cfg.BlizzardClientSecret,
		BaseURL:      cfg.BlizzardBaseAPIURL,
		Timeout:      cfg.BlizzardTimeout,
	})

	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable, welcome emails disabled")
		} else {
			c.Jobs = pub
			c.closers = append(c.closers, pub.Close)
		}
	}

	es, err := search.NewClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		logger.WithError(err).Warn("elasticsearch client init failed, comp search uses postgres")
	} else if es != nil {
		c.CompIndex = search.NewCompIndex(es, cfg.ESCompsIndex)
	}

	return c, nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
