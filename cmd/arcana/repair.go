package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arcana/internal/errors"
	"github.com/KirkDiggler/rpg-arcana/internal/repositories/wizards"
)

var repairDelete bool

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Check the redis store for corrupt wizard snapshots",
	Long: `Scan every wizard snapshot in redis. Snapshots that no longer restore and
index entries without a snapshot are reported, and removed with --delete.
Healthy snapshots missing from the index are re-indexed.`,
	Args: cobra.NoArgs,
	RunE: repair,
}

func init() {
	repairCmd.Flags().BoolVar(&repairDelete, "delete", false, "remove corrupt snapshots and stale index entries")
}

func repair(cmd *cobra.Command, _ []string) error {
	if redisClient == nil {
		return errors.FailedPrecondition("repair needs the redis store, use --store redis")
	}

	out, err := wizards.Repair(cmd.Context(), redisClient, wizards.RepairInput{Delete: repairDelete})
	if err != nil {
		return fmt.Errorf("failed to repair: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Checked %d snapshots\n", out.Checked)
	fmt.Fprintf(w, "Corrupt: %s\n", listOrNone(out.Corrupt))
	fmt.Fprintf(w, "Stale index entries: %s\n", listOrNone(out.Stale))
	fmt.Fprintf(w, "Re-indexed: %s\n", listOrNone(out.Reindexed))

	if repairDelete {
		fmt.Fprintln(w, "Broken entries removed")
	} else if len(out.Corrupt)+len(out.Stale) > 0 {
		fmt.Fprintln(w, "Run again with --delete to remove them")
	}
	return nil
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
