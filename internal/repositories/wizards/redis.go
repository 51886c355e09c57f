package wizards

import (
	"context"
	"log/slog"

	redis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/wizard"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-arcana/internal/redis"
)

const (
	wizardKeyPrefix = "wizard:"
	wizardIndexKey  = "wizards:index"

	defaultListConcurrency = 8
)

type redisRepository struct {
	client      redisclient.Client
	concurrency int
}

// RedisConfig contains configuration for the Redis wizard repository.
type RedisConfig struct {
	Client redisclient.Client
	// ListConcurrency bounds the parallel reads of List. Defaults to 8.
	ListConcurrency int
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.ListConcurrency < 0 {
		return errors.InvalidArgument("list concurrency cannot be negative")
	}
	return nil
}

// NewRedis creates a new Redis-backed wizard repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	concurrency := cfg.ListConcurrency
	if concurrency == 0 {
		concurrency = defaultListConcurrency
	}

	return &redisRepository{
		client:      cfg.Client,
		concurrency: concurrency,
	}, nil
}

// GetKey returns the Redis key of a wizard snapshot
func GetKey(id string) string {
	return wizardKeyPrefix + id
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateData(input.WizardData); err != nil {
		return nil, err
	}

	key := GetKey(input.WizardData.ID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("wizard with ID %s already exists", input.WizardData.ID)
	}

	data, err := encode(input.WizardData)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, wizardIndexKey, input.WizardData.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create wizard")
	}

	return &CreateOutput{WizardData: input.WizardData}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	result, err := r.client.Get(ctx, GetKey(input.ID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("wizard with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get wizard")
	}

	data, err := decode(result)
	if err != nil {
		return nil, err
	}

	return &GetOutput{WizardData: data}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateData(input.WizardData); err != nil {
		return nil, err
	}

	key := GetKey(input.WizardData.ID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("wizard with ID %s not found", input.WizardData.ID)
	}

	data, err := encode(input.WizardData)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, wizardIndexKey, input.WizardData.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to update wizard")
	}

	return &UpdateOutput{WizardData: input.WizardData}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}

	key := GetKey(input.ID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("wizard with ID %s not found", input.ID)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, wizardIndexKey, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete wizard")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, wizardIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read wizard index")
	}

	found := make([]*wizard.Data, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			out, err := r.Get(gctx, GetInput{ID: id})
			if err != nil {
				if errors.IsNotFound(err) {
					// Index entry outlived its snapshot
					slog.WarnContext(gctx, "skipping stale wizard index entry", "wizard_id", id)
					return nil
				}
				return err
			}
			found[i] = out.WizardData
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	list := make([]*wizard.Data, 0, len(found))
	for _, data := range found {
		if data != nil {
			list = append(list, data)
		}
	}
	sortByID(list)

	return &ListOutput{Wizards: list}, nil
}
