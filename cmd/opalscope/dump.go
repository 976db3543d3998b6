package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"opalscope/internal/diag"
	"opalscope/internal/replay"
	"opalscope/internal/scopedump"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <script|snapshot.mp>",
	Short: "Print every scope of a replayed script or a stored snapshot",
	Long: `Print a table of every scope: kind, parent, identity and the names it holds.
A .mp argument is read as a snapshot written by "replay --snapshot"; anything
else is replayed first.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().String("indent", "  ", "indent unit used while replaying")
	dumpCmd.Flags().StringP("out", "o", "", "also write the snapshot as msgpack to this path")
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}

	var snap scopedump.Snapshot
	if strings.EqualFold(filepath.Ext(path), ".mp") {
		snap, err = readSnapshot(path)
	} else {
		snap, err = snapshotScript(cmd, path)
	}
	if err != nil {
		return err
	}

	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := scopedump.Encode(f, snap); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return scopedump.WriteText(cmd.OutOrStdout(), snap, useColor(cmd, os.Stdout))
}

func readSnapshot(path string) (scopedump.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return scopedump.Snapshot{}, err
	}
	defer f.Close()
	snap, err := scopedump.Decode(f)
	if err != nil {
		return scopedump.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

func snapshotScript(cmd *cobra.Command, path string) (scopedump.Snapshot, error) {
	indent, err := cmd.Flags().GetString("indent")
	if err != nil {
		return scopedump.Snapshot{}, fmt.Errorf("failed to get indent flag: %w", err)
	}
	maxDiag, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return scopedump.Snapshot{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	d, err := loadDialect(cmd)
	if err != nil {
		return scopedump.Snapshot{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return scopedump.Snapshot{}, err
	}
	defer f.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := replay.RunScript(ctx, f, replay.Options{Dialect: d, Indent: indent, MaxDiagnostics: maxDiag})
	if err != nil {
		return scopedump.Snapshot{}, err
	}
	if err := diag.Fprint(cmd.ErrOrStderr(), path, res.Diagnostics.Items(), useColor(cmd, os.Stderr)); err != nil {
		return scopedump.Snapshot{}, err
	}
	if res.Tree == nil {
		return scopedump.Snapshot{}, errScriptsFailed
	}
	return scopedump.FromTree(res.Tree, path)
}
