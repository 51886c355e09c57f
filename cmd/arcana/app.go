package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arcana/internal/config"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
	"github.com/KirkDiggler/rpg-arcana/internal/orchestrators/duel"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arcana/internal/pkg/random"
	"github.com/KirkDiggler/rpg-arcana/internal/redis"
	"github.com/KirkDiggler/rpg-arcana/internal/repositories/wizards"
)

var (
	// Config flags, applied over the environment when set
	envFile    string
	store      string
	redisAddr  string
	sqlitePath string
	seed       int64
	logLevel   string
)

// service is the duel orchestrator shared by every command; closeStore
// releases the store behind it. redisClient is only set for the redis store.
var (
	service     duel.Service
	redisClient redis.Client
	closeStore  = func() error { return nil }
)

func addConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", "", "env file to load instead of ./.env")
	flags.StringVar(&store, "store", "", "wizard store: memory, redis or sqlite (ARCANA_STORE)")
	flags.StringVar(&redisAddr, "redis-addr", "", "redis address (ARCANA_REDIS_ADDR)")
	flags.StringVar(&sqlitePath, "sqlite-path", "", "sqlite database file (ARCANA_SQLITE_PATH)")
	flags.Int64Var(&seed, "seed", 0, "seed for repeatable random choices, 0 rolls dice (ARCANA_SEED)")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (ARCANA_LOG_LEVEL)")
}

// loadConfig reads the environment and applies the flags that were set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}

	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store = config.Store(store)
	}
	if flags.Changed("redis-addr") {
		cfg.RedisAddr = redisAddr
	}
	if flags.Changed("sqlite-path") {
		cfg.SQLitePath = sqlitePath
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("log-level") {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid log level")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	repo, closer, err := newRepository(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	svc, err := duel.NewOrchestrator(&duel.Config{
		Repository:  repo,
		IDGenerator: idgen.NewUUID(idgen.PrefixWizard),
		Picker:      newPicker(cfg.Seed),
		Clock:       clock.New(),
	})
	if err != nil {
		_ = closer()
		return err
	}

	service = svc
	closeStore = closer

	slog.Debug("Arcana ready", "store", cfg.Store, "seed", cfg.Seed)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	return closeStore()
}

// newRepository opens the configured wizard store
func newRepository(ctx context.Context, cfg *config.Config) (wizards.Repository, func() error, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return nil, nil, err
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable at "+cfg.RedisAddr)
		}
		repo, err := wizards.NewRedis(&wizards.RedisConfig{Client: client})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		redisClient = client
		return repo, client.Close, nil

	case config.StoreSQLite:
		repo, err := wizards.NewSQLite(ctx, &wizards.SQLiteConfig{Path: cfg.SQLitePath})
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil

	case config.StoreMemory:
		slog.Info("Using the in-memory store, wizards are gone when the command exits")
		return wizards.NewInMemory(), func() error { return nil }, nil
	}

	return nil, nil, errors.InvalidArgumentf("unknown store %q", cfg.Store)
}

// newPicker rolls dice unless a seed asks for repeatable choices
func newPicker(seed int64) random.Picker {
	if seed == 0 {
		return random.NewDice()
	}
	return random.NewSeeded(seed)
}
