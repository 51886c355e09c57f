package wizards

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-arcana/internal/entities/wizard"
	"github.com/KirkDiggler/rpg-arcana/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-arcana/internal/redis"
)

// RepairInput defines the input for repairing a Redis wizard store
type RepairInput struct {
	// Delete removes corrupt snapshots and stale index entries instead of
	// only reporting them
	Delete bool
}

// RepairOutput reports what a repair found
type RepairOutput struct {
	Checked int
	// Corrupt holds keys whose snapshot no longer restores to a wizard
	Corrupt []string
	// Stale holds indexed IDs without a snapshot
	Stale []string
	// Reindexed holds IDs of healthy snapshots that were missing from the index
	Reindexed []string
}

// Repair scans every wizard snapshot in Redis. Healthy snapshots missing from
// the index are re-added, corrupt ones and stale index entries are reported
// and, with input.Delete, removed.
func Repair(ctx context.Context, client redisclient.Client, input RepairInput) (*RepairOutput, error) {
	if client == nil {
		return nil, errors.InvalidArgument("client cannot be nil")
	}

	indexed, err := client.SMembers(ctx, wizardIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read wizard index")
	}
	inIndex := make(map[string]bool, len(indexed))
	for _, id := range indexed {
		inIndex[id] = true
	}

	out := &RepairOutput{}
	seen := make(map[string]bool, len(indexed))

	iter := client.Scan(ctx, 0, wizardKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		out.Checked++

		id := strings.TrimPrefix(key, wizardKeyPrefix)
		seen[id] = true

		raw, err := client.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}

		if reason := checkSnapshot(id, raw); reason != "" {
			slog.WarnContext(ctx, "Corrupt wizard snapshot", "key", key, "reason", reason)
			out.Corrupt = append(out.Corrupt, key)
			continue
		}

		if !inIndex[id] {
			if err := client.SAdd(ctx, wizardIndexKey, id).Err(); err != nil {
				return nil, errors.Wrapf(err, "failed to index wizard %s", id)
			}
			out.Reindexed = append(out.Reindexed, id)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to scan wizard keys")
	}

	for _, id := range indexed {
		if !seen[id] {
			out.Stale = append(out.Stale, id)
		}
	}

	if input.Delete {
		if err := deleteBroken(ctx, client, out); err != nil {
			return nil, err
		}
	}

	slices.Sort(out.Corrupt)
	slices.Sort(out.Stale)
	slices.Sort(out.Reindexed)
	return out, nil
}

// checkSnapshot returns why raw does not restore to the wizard id, or ""
func checkSnapshot(id string, raw []byte) string {
	data, err := decode(raw)
	if err != nil {
		return "invalid JSON"
	}
	if data.ID != id {
		return "snapshot ID " + data.ID + " does not match its key"
	}
	if _, err := wizard.FromData(data, nil); err != nil {
		return errors.GetMessage(err)
	}
	return ""
}

func deleteBroken(ctx context.Context, client redisclient.Client, out *RepairOutput) error {
	if len(out.Corrupt) == 0 && len(out.Stale) == 0 {
		return nil
	}

	pipe := client.TxPipeline()
	for _, key := range out.Corrupt {
		pipe.Del(ctx, key)
		pipe.SRem(ctx, wizardIndexKey, strings.TrimPrefix(key, wizardKeyPrefix))
	}
	for _, id := range out.Stale {
		pipe.SRem(ctx, wizardIndexKey, id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "failed to delete broken wizard entries")
	}

	slog.InfoContext(ctx, "Removed broken wizard entries",
		"corrupt", len(out.Corrupt),
		"stale", len(out.Stale),
	)
	return nil
}
