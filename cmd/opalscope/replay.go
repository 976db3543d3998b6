package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"opalscope/internal/diag"
	"opalscope/internal/observ"
	"opalscope/internal/replay"
	"opalscope/internal/scopedump"
	"opalscope/internal/testkit"
	"opalscope/internal/trace"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script>...",
	Short: "Replay scripts against the scope tracker and print what it renders",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().String("indent", "  ", "indent unit for rendered guards")
	replayCmd.Flags().Int("jobs", 0, "max parallel replays (0=GOMAXPROCS)")
	replayCmd.Flags().String("snapshot", "", "directory to write a msgpack snapshot per script")
	replayCmd.Flags().Bool("check", false, "verify tree invariants after each replay")
}

// scriptOutcome is the result of one script, kept in argument order.
type scriptOutcome struct {
	path   string
	result *replay.Result
	out    bytes.Buffer
}

var errScriptsFailed = errors.New("one or more scripts reported errors")

func runReplay(cmd *cobra.Command, args []string) error {
	indent, err := cmd.Flags().GetString("indent")
	if err != nil {
		return fmt.Errorf("failed to get indent flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	snapshotDir, err := cmd.Flags().GetString("snapshot")
	if err != nil {
		return fmt.Errorf("failed to get snapshot flag: %w", err)
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	maxDiag, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	timer := observ.NewTimer()
	defer printTimings(cmd, timer)

	phase := timer.Begin("load_dialect")
	d, err := loadDialect(cmd)
	timer.End(phase, "")
	if err != nil {
		return err
	}
	if snapshotDir != "" {
		if err := os.MkdirAll(snapshotDir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeSession, "replay", 0)
	defer span.End("")

	outcomes := make([]*scriptOutcome, len(args))
	opts := replay.Options{Dialect: d, Indent: indent, MaxDiagnostics: maxDiag}

	phase = timer.Begin("replay")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			oc, err := replayFile(gctx, path, opts, snapshotDir, check)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			outcomes[i] = oc
			return nil
		})
	}
	err = g.Wait()
	timer.End(phase, fmt.Sprintf("%d script(s), %d job(s)", len(args), jobs))
	if err != nil {
		return err
	}

	phase = timer.Begin("print")
	failed := printOutcomes(cmd, outcomes)
	timer.End(phase, "")
	if failed {
		return errScriptsFailed
	}
	return nil
}

func replayFile(ctx context.Context, path string, opts replay.Options, snapshotDir string, check bool) (*scriptOutcome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := replay.RunScript(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	oc := &scriptOutcome{path: path, result: res}
	if res.Tree == nil {
		return oc, nil
	}
	if check {
		if err := testkit.CheckTreeInvariants(res.Tree); err != nil {
			return nil, fmt.Errorf("invariant violated: %w", err)
		}
	}
	if _, err := res.WriteTo(&oc.out); err != nil {
		return nil, err
	}
	if snapshotDir != "" {
		if err := writeSnapshot(res, path, snapshotDir); err != nil {
			return nil, err
		}
	}
	return oc, nil
}

func writeSnapshot(res *replay.Result, path, dir string) error {
	snap, err := scopedump.FromTree(res.Tree, path)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out, err := os.Create(filepath.Join(dir, base+".mp"))
	if err != nil {
		return err
	}
	if err := scopedump.Encode(out, snap); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// printOutcomes writes rendered output to stdout and diagnostics to stderr.
// It reports whether any script had errors.
func printOutcomes(cmd *cobra.Command, outcomes []*scriptOutcome) bool {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	colored := useColor(cmd, os.Stderr)
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	failed := false
	for i, oc := range outcomes {
		if len(outcomes) > 1 && !quiet {
			if i > 0 {
				fmt.Fprintln(stdout)
			}
			fmt.Fprintf(stdout, "### %s\n", oc.path)
		}
		_, _ = stdout.Write(oc.out.Bytes())
		bag := oc.result.Diagnostics
		if bag == nil {
			continue
		}
		if err := diag.Fprint(stderr, oc.path, bag.Items(), colored); err != nil {
			fmt.Fprintf(stderr, "failed to print diagnostics: %v\n", err)
		}
		if bag.HasErrors() {
			failed = true
		}
	}
	return failed
}
