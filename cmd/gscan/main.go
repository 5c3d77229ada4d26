// Command gscan is the CLI collaborator: flags → Config → the C1-C8
// scan pipeline, wired with github.com/urfave/cli/v2 the way the
// teacher's cmd/lci/main.go wires its own flags (flag parsing and
// validation are explicitly out of the core per spec.md §1; this file
// is the thin glue that makes the core reachable end to end).
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/gscan/internal/config"
	"github.com/standardbeagle/gscan/internal/debug"
	"github.com/standardbeagle/gscan/internal/encoding"
	"github.com/standardbeagle/gscan/internal/magic"
	"github.com/standardbeagle/gscan/internal/orchestrator"
	"github.com/standardbeagle/gscan/internal/pathmatch"
	"github.com/standardbeagle/gscan/internal/report"
	"github.com/standardbeagle/gscan/internal/scanner"
	"github.com/standardbeagle/gscan/internal/sink"
	"github.com/standardbeagle/gscan/internal/types"
	"github.com/standardbeagle/gscan/internal/version"
	"github.com/standardbeagle/gscan/internal/walk"
)

// loadConfigWithOverrides loads a base Config (KDL file, if present,
// else the documented defaults) and applies CLI flag overrides, the
// way the teacher's loadConfigWithOverrides merges file config with
// flags before validation.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	root := c.String("root")
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}

	cfg, err := config.LoadKDL(absRoot)
	if err != nil {
		return nil, fmt.Errorf("load .gscan.kdl: %w", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	if p := c.String("pattern"); p != "" {
		cfg.Pattern.Raw = p
	}
	if c.Bool("regex") {
		cfg.Pattern.UseRegex = true
	}
	if c.Bool("ignore-case") {
		cfg.Pattern.IgnoreCase = true
	}
	if c.Bool("word") {
		cfg.Pattern.Word = true
	}
	if cp := c.String("codepage"); cp != "" {
		cfg.Encoding.CodePage = strings.ToUpper(cp)
	}
	if c.Bool("text-only") {
		cfg.Classify.TextOnly = true
	}
	if sp := c.String("signatures"); sp != "" {
		cfg.Classify.SignaturesPath = sp
	}
	if op := c.String("output"); op != "" {
		cfg.Output.ResultPath = op
	}
	if c.Bool("quiet") {
		cfg.Output.Quiet = true
	}
	if c.Bool("first-match-only") {
		cfg.Output.FirstMatchOnly = true
	}
	if c.Bool("match-part") {
		cfg.Output.OutputMatchedPart = true
	}
	if j := c.Int("parallelism"); j > 0 {
		cfg.Run.Parallelism = j
	}
	if c.Bool("debug") {
		cfg.Run.Debug = true
	}

	return cfg, nil
}

// loadSignatureTable builds the signature table a run classifies
// against: the built-in default set (§12), optionally extended/
// overridden by a JSON file at cfg.Classify.SignaturesPath (§6.2).
func loadSignatureTable(cfg *config.Config) (types.SignatureTable, error) {
	sigs := magic.DefaultSignatures()
	if cfg.Classify.SignaturesPath != "" {
		data, err := os.ReadFile(cfg.Classify.SignaturesPath)
		if err != nil {
			return types.SignatureTable{}, fmt.Errorf("read signatures file: %w", err)
		}
		loaded, err := magic.LoadJSON(data)
		if err != nil {
			return types.SignatureTable{}, err
		}
		sigs = append(sigs, loaded...)
	}
	return types.NewSignatureTable(sigs), nil
}

func run(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if err := config.Validate(cfg); err != nil {
		return cli.Exit(fmt.Sprintf("invalid configuration: %v", err), 1)
	}

	if cfg.Run.Debug {
		logPath := strings.TrimSuffix(cfg.Output.ResultPath, filepath.Ext(cfg.Output.ResultPath)) + ".log"
		debugSink, err := sink.OpenDebugSink(logPath, sink.DefaultFlushInterval)
		if err != nil {
			return cli.Exit(fmt.Sprintf("open debug log: %v", err), 1)
		}
		defer debugSink.Close()
		debug.SetOutput(debugLineWriter{debugSink})
		defer debug.SetOutput(nil)
	}

	root := c.String("root")
	if root == "" {
		root = "."
	}

	files, err := walk.Collect(walk.Options{
		Root:         root,
		Recurse:      c.Bool("recurse"),
		SearchTarget: c.String("search-target"),
		ExcludeDirs:  pathmatch.ParseExcludeList(c.String("exclude-dirs")),
		ExcludeFiles: pathmatch.ParseExcludeList(c.String("exclude-files")),
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("enumerate files: %v", err), 1)
	}

	signatures, err := loadSignatureTable(cfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	startTime := time.Now()
	scanCfg, err := cfg.Build(signatures, startTime.UnixNano())
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid pattern: %v", err), 1)
	}

	out, err := sink.Open(cfg.Output.ResultPath, sink.DefaultFlushInterval)
	if err != nil {
		return cli.Exit(fmt.Sprintf("open result artifact: %v", err), 1)
	}
	defer out.Close()

	for _, line := range report.Header(report.HeaderOptions{
		Pattern:            cfg.Pattern.Raw,
		SearchTarget:       c.String("search-target"),
		Roots:              []string{root},
		ExcludeDirs:        c.String("exclude-dirs"),
		ExcludeFiles:       c.String("exclude-files"),
		Recurse:            c.Bool("recurse"),
		TextOnly:           cfg.Classify.TextOnly,
		Word:               cfg.Pattern.Word,
		IgnoreCase:         cfg.Pattern.IgnoreCase,
		CodePage:           cfg.Encoding.CodePage,
		OutputMatchedPart:  cfg.Output.OutputMatchedPart,
		FirstMatchOnly:     cfg.Output.FirstMatchOnly,
		RegexEngineVersion: fmt.Sprintf("regexp (stdlib, %s)", runtime.Version()),
	}) {
		if err := out.WriteLine(line); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	o := orchestrator.New(scanner.New(encoding.NewRegistry()))
	var progress orchestrator.ProgressFunc
	if !cfg.Output.Quiet {
		progress = func(completed, total int, elapsed time.Duration) {
			fmt.Fprintf(os.Stderr, "\r%d/%d files (%d%%) - %s", completed, total, completed*100/max(total, 1), report.FormatElapsed(elapsed))
		}
	}

	total, err := o.Run(files, scanCfg, out, nil, progress)
	if !cfg.Output.Quiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("scan failed: %v", err), 1)
	}

	if c.Bool("watch") {
		watched, err := runWatch(c, o, scanCfg, out)
		if err != nil {
			return cli.Exit(fmt.Sprintf("watch failed: %v", err), 1)
		}
		total += watched
	}

	return out.WriteLine(report.Trailer(total, time.Since(startTime)))
}

// runWatch drives the §6.1 WatchIterator convenience path: it re-runs
// the orchestrator against a single path every time that path changes,
// until SIGINT/SIGTERM, and returns the match count accumulated across
// every rescan. It never participates in the initial, finite C1-C8 run.
func runWatch(c *cli.Context, o *orchestrator.Orchestrator, scanCfg *types.ScanConfig, out *sink.Sink) (int, error) {
	root := c.String("root")
	if root == "" {
		root = "."
	}

	dirs, err := walk.Dirs(walk.Options{
		Root:        root,
		Recurse:     c.Bool("recurse"),
		ExcludeDirs: pathmatch.ParseExcludeList(c.String("exclude-dirs")),
	})
	if err != nil {
		return 0, fmt.Errorf("enumerate watch directories: %w", err)
	}

	wi, err := walk.NewWatchIterator(dirs)
	if err != nil {
		return 0, fmt.Errorf("start watcher: %w", err)
	}
	defer wi.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	excludeFiles := pathmatch.ParseExcludeList(c.String("exclude-files"))
	searchTarget := c.String("search-target")
	quiet := c.Bool("quiet")
	if !quiet {
		fmt.Fprintln(os.Stderr, "watching for changes (Ctrl-C to stop)...")
	}

	total := 0
	for {
		select {
		case path, ok := <-wi.Changes:
			if !ok {
				return total, nil
			}
			if excludeFiles.MatchesFile(path) {
				continue
			}
			if searchTarget != "" && !walk.MatchesTarget(searchTarget, path) {
				continue
			}

			n, err := o.Run([]string{path}, scanCfg, out, nil, nil)
			if err != nil {
				debug.LogOrchestrator("watch rescan error for %s: %v", path, err)
				continue
			}
			total += n
			if !quiet {
				fmt.Fprintf(os.Stderr, "rescanned %s (%d match(es))\n", path, n)
			}
		case <-sigCh:
			return total, nil
		}
	}
}

// debugLineWriter adapts the stamped sink.DebugSink (workerID 0: the
// CLI process itself, not a pool worker) to io.Writer for debug.SetOutput.
type debugLineWriter struct {
	d *sink.DebugSink
}

func (w debugLineWriter) Write(p []byte) (int, error) {
	if err := w.d.WriteLine(0, strings.TrimRight(string(p), "\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}

func main() {
	app := &cli.App{
		Name:                   "gscan",
		Usage:                  "parallel recursive text search with Japanese-aware encoding detection",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "pattern", Aliases: []string{"p"}, Usage: "search pattern"},
			&cli.StringFlag{Name: "root", Aliases: []string{"r"}, Usage: "root directory to search", Value: "."},
			&cli.BoolFlag{Name: "regex", Usage: "treat pattern as a regular expression"},
			&cli.BoolFlag{Name: "ignore-case", Aliases: []string{"i"}, Usage: "case-insensitive match"},
			&cli.BoolFlag{Name: "word", Aliases: []string{"w"}, Usage: "match whole words only"},
			&cli.BoolFlag{Name: "text-only", Usage: "skip files classified as binary"},
			&cli.StringFlag{Name: "codepage", Usage: "AUTO or a specific encoding key (SJIS, UTF8N, ...)"},
			&cli.StringFlag{Name: "signatures", Usage: "path to a JSON signature override file (§6.2)"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "result artifact path"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "suppress progress reporting"},
			&cli.BoolFlag{Name: "first-match-only", Usage: "stop at the first match per file"},
			&cli.BoolFlag{Name: "match-part", Usage: "emit only the matched substring, not the whole line"},
			&cli.IntFlag{Name: "parallelism", Aliases: []string{"j"}, Usage: "worker count (0: auto)"},
			&cli.BoolFlag{Name: "debug", Usage: "write a per-run debug log next to the result artifact"},
			&cli.StringFlag{Name: "search-target", Usage: "glob the file iterator matches against the file's base name"},
			&cli.BoolFlag{Name: "recurse", Usage: "descend into subdirectories", Value: true},
			&cli.StringFlag{Name: "exclude-dirs", Usage: "';'-separated glob list matched per path segment"},
			&cli.StringFlag{Name: "exclude-files", Usage: "';'-separated glob list matched against the file's base name"},
			&cli.BoolFlag{Name: "watch", Usage: "after the initial scan, rescan files as they change until Ctrl-C"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
