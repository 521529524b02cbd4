package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/0x5844/sbpwave/internal/config"
	"github.com/0x5844/sbpwave/internal/observability"
	"github.com/0x5844/sbpwave/internal/sbp"
	"github.com/0x5844/sbpwave/internal/verify"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

type Flags struct {
	ConfigFile string
	PDE        string
	Order      int
	Sizes      string
	Procs      string
	Workers    int
	Time       float64
	Verbose    bool
	Quiet      bool
	JSON       bool
	ProfileCPU string
}

func parseFlags(args []string, stderr io.Writer) (*Flags, map[string]bool, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("sbpcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.ConfigFile, "config", "", "TOML configuration file")
	fs.StringVar(&f.PDE, "pde", "", "pde to verify (acowave, advection)")
	fs.IntVar(&f.Order, "order", 0, "operator order (2, 4, 6)")
	fs.StringVar(&f.Sizes, "sizes", "", "comma separated grid sizes, e.g. 51,101,201")
	fs.StringVar(&f.Procs, "procs", "", "process grid, e.g. 2x2")
	fs.IntVar(&f.Workers, "workers", 0, "concurrent subdomains (0 = GOMAXPROCS)")
	fs.Float64Var(&f.Time, "time", 0, "evaluation time")
	fs.BoolVar(&f.Verbose, "verbose", false, "verbose output")
	fs.BoolVar(&f.Quiet, "quiet", false, "minimal output")
	fs.BoolVar(&f.JSON, "json", false, "JSON log output")
	fs.StringVar(&f.ProfileCPU, "profile-cpu", "", "CPU profile output file")

	var showVersion bool
	fs.BoolVar(&showVersion, "version", false, "show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "sbpcheck - SBP-SAT operator self-check and convergence study\n\n")
		fmt.Fprintf(stderr, "Usage: sbpcheck [OPTIONS]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  sbpcheck -pde acowave -order 6 -sizes 51,101,201\n")
		fmt.Fprintf(stderr, "  sbpcheck -config sbpcheck.toml -procs 3x2 -verbose\n")
		fmt.Fprintf(stderr, "\nVersion: %s\n", Version)
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if showVersion {
		fmt.Fprintf(stderr, "sbpcheck version %s\n", Version)
		fmt.Fprintf(stderr, "Built: %s\n", BuildTime)
		fmt.Fprintf(stderr, "Go: %s\n", GoVersion)
		return nil, nil, flag.ErrHelp
	}

	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set, nil
}

// resolve loads the file configuration and applies the flags that were set.
func resolve(f *Flags, set map[string]bool) (config.Config, error) {
	cfg := config.Default()
	if f.ConfigFile != "" {
		loaded, err := config.Load(f.ConfigFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if set["pde"] {
		cfg.PDE = f.PDE
	}
	if set["order"] {
		cfg.Order = f.Order
	}
	if set["workers"] {
		cfg.Run.Workers = f.Workers
	}
	if set["time"] {
		cfg.Study.Time = f.Time
	}
	if set["sizes"] {
		sizes, err := parseSizes(f.Sizes)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Study.Sizes = sizes
	}
	if set["procs"] {
		procs, err := parseProcs(f.Procs)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Grid.Procs = procs
	}
	return cfg, cfg.Validate()
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("parse sizes %q: %w", s, err)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func parseProcs(s string) ([2]int, error) {
	px, py, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return [2]int{}, fmt.Errorf("parse procs %q: want PXxPY", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(px))
	if err != nil {
		return [2]int{}, fmt.Errorf("parse procs %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(py))
	if err != nil {
		return [2]int{}, fmt.Errorf("parse procs %q: %w", s, err)
	}
	return [2]int{x, y}, nil
}

// selfCheck verifies the SBP property of the configured operator on the
// smallest study grid.
func selfCheck(cfg config.Config, logger zerolog.Logger) error {
	op, err := sbp.ByOrder(cfg.Order)
	if err != nil {
		return err
	}
	n := max(cfg.Study.Sizes[0], 2*op.ClosureWidth())
	h := (cfg.Grid.Upper - cfg.Grid.Lower) / float64(n-1)
	res, err := op.SBPResidual(n, h)
	if err != nil {
		return err
	}
	width, nc, cw := op.Ranges()
	logger.Info().
		Str("operator", op.Name).
		Int("width", width).
		Int("closures", nc).
		Int("closure_width", cw).
		Float64("sbp_residual", res).
		Msg("operator self-check")
	if res > 1e-10 {
		return fmt.Errorf("%s violates summation by parts: residual %.3e", op.Name, res)
	}
	return nil
}

func printTable(w io.Writer, results []verify.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "N\th\tl2 error\trate")
	for _, r := range results {
		rate := "-"
		if !math.IsNaN(r.Rate) {
			rate = fmt.Sprintf("%.2f", r.Rate)
		}
		fmt.Fprintf(tw, "%d\t%.4e\t%.4e\t%s\n", r.N, r.H, r.L2, rate)
	}
	tw.Flush()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, set, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := observability.NewLogger("sbpcheck", observability.Options{
		Verbose: f.Verbose,
		Quiet:   f.Quiet,
		JSON:    f.JSON,
		Out:     stderr,
	})

	if f.ProfileCPU != "" {
		pf, err := os.Create(f.ProfileCPU)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer pf.Close()
		if err := pprof.StartCPUProfile(pf); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	cfg, err := resolve(f, set)
	if err != nil {
		return err
	}
	logger.Info().
		Str("version", Version).
		Str("pde", cfg.PDE).
		Int("order", cfg.Order).
		Ints("sizes", cfg.Study.Sizes).
		Ints("procs", cfg.Grid.Procs[:]).
		Msg("starting sbpcheck")

	if err := selfCheck(cfg, logger); err != nil {
		return err
	}

	start := time.Now()
	results, err := verify.Run(ctx, verify.Study{
		Options: cfg.Options(0),
		Sizes:   cfg.Study.Sizes,
		Time:    cfg.Study.Time,
		RStar:   cfg.Advection.RStar,
	}, logger)
	if err != nil {
		return err
	}

	if !f.Quiet {
		printTable(stdout, results)
	}

	var regions, ghosts int64
	var compute time.Duration
	for _, r := range results {
		regions += r.Stats.Regions
		ghosts += r.Stats.GhostPoints
		compute += r.Stats.ComputeTime
	}
	logger.Info().
		Int("grids", len(results)).
		Int64("regions", regions).
		Int64("ghost_points", ghosts).
		Dur("compute", compute).
		Dur("wall", time.Since(start)).
		Msg("convergence study done")
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "sbpcheck: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
