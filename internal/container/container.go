package container

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"acf/localization/internal/collector"
	"acf/localization/internal/config"
	"acf/localization/internal/diagnostics"
	"acf/localization/internal/domain"
	"acf/localization/internal/publisher"
	"acf/localization/internal/registry"
	"acf/localization/internal/repository"
	"acf/localization/internal/service"
	"acf/localization/internal/site"
	"acf/localization/internal/watcher"

	"github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Container holds all initialized components
type Container struct {
	Config      *config.Config
	Registry    registry.Registry
	Definitions repository.DefinitionRepository
	Profiles    repository.ProfileRepository
	Switcher    site.Switcher
	Diagnostics diagnostics.Sink
	Publishers  []publisher.Publisher

	Service *service.Service

	db    *sql.DB
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config:      cfg,
		Switcher:    site.NewSwitcher(domain.MainBlogID),
		Diagnostics: diagnostics.NewLogSink(),
	}

	if cfg.ACF.LocalJSONDir != "" {
		container.Registry = registry.NewJSONRegistry(cfg.ACF.LocalJSONDir)
	} else {
		container.Registry = registry.NewStaticRegistry(nil, nil)
	}

	if cfg.ACF.CollectDatabase {
		db, err := openDatabase(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		container.db = db
		log.Info("✅ Connected to WordPress database successfully")

		container.Definitions = repository.NewDefinitionRepository(
			db,
			container.Switcher,
			cfg.Host.TablePrefix,
			cfg.Host.Multisite,
			cfg.Database.MaxQueriesPerSecond,
		)
		container.Profiles = repository.NewProfileRepository(db, cfg.Host.TablePrefix)
	}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		// Test connection
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.redis = rdb
		container.Publishers = append(container.Publishers, publisher.NewRedisPublisher(rdb, cfg.Redis.KeyPrefix))
	}

	if cfg.Connector.Enabled {
		container.Publishers = append(container.Publishers, publisher.NewHTTPPublisher(cfg.Connector))
	}

	if cfg.Output.File != "" {
		container.Publishers = append(container.Publishers, publisher.NewFilePublisher(cfg.Output.File))
	}

	c := collector.NewCollector(container.Registry, container.Definitions, container.Profiles, container.Switcher)
	container.Service = service.NewService(
		c,
		container.Definitions,
		container.Diagnostics,
		container.Publishers,
		service.Options{
			CollectDatabase: cfg.ACF.CollectDatabase,
			AdminURL:        cfg.Host.AdminURL,
			PostTypes:       cfg.Host.PostTypes,
		},
	)

	return container, nil
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := mysql.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	dsn.DBName = cfg.Name
	dsn.Timeout = 10 * time.Second

	connector, err := mysql.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Run generates and publishes the rules once
func (c *Container) Run(ctx context.Context) (*service.Result, error) {
	return c.Service.Run(ctx)
}

// Watch regenerates the rules whenever local definitions change
func (c *Container) Watch(ctx context.Context) error {
	if c.Config.ACF.LocalJSONDir == "" {
		return fmt.Errorf("watch needs acf.local_json_dir")
	}

	w, err := watcher.NewWatcher(c.Config.ACF.LocalJSONDir, time.Duration(c.Config.ACF.WatchDebounceMs)*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to watch %s: %w", c.Config.ACF.LocalJSONDir, err)
	}
	log.Infof("👀 Watching %s for definition changes", c.Config.ACF.LocalJSONDir)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Service.Watch(ctx, w.Changes)
	})

	g.Go(func() error {
		<-ctx.Done()
		w.Stop()
		return nil
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Debug("Shutting down container...")

	for _, p := range c.Publishers {
		if closer, ok := p.(io.Closer); ok {
			closer.Close()
		}
	}
	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		c.redis.Close()
	}

	return nil
}
