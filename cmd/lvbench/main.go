// Command lvbench times the lvnum execution strategies against each other.
//
// Usage:
//
//	lvbench [flags]
//
// Examples:
//
//	lvbench
//	lvbench -sizes 128,512 -strategies seq,parsimd
//	lvbench -check
//	lvbench -v -workers 4
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/katalvlaran/lvnum/tensor"
	"github.com/rs/zerolog"
)

var errMismatch = errors.New("lvbench: strategies disagree")

type benchOp struct {
	name string
	// elems reports how many result elements one run produces for size n.
	elems func(n int) int
	run   func(a, b, v *tensor.Tensor[float64], s tensor.Strategy) error
}

var ops = []benchOp{
	{"add", square, func(a, b, _ *tensor.Tensor[float64], s tensor.Strategy) error {
		_, err := a.Add(b, s)
		return err
	}},
	{"hadamard", square, func(a, b, _ *tensor.Tensor[float64], s tensor.Strategy) error {
		_, err := a.Hadamard(b, s)
		return err
	}},
	{"scale", square, func(a, _, _ *tensor.Tensor[float64], s tensor.Strategy) error {
		_, err := a.Scale(1.5, s)
		return err
	}},
	{"matvec", func(n int) int { return n }, func(a, _, v *tensor.Tensor[float64], s tensor.Strategy) error {
		_, err := a.MatVec(v, s)
		return err
	}},
	{"matmul", square, func(a, b, _ *tensor.Tensor[float64], s tensor.Strategy) error {
		_, err := a.MatMul(b, s)
		return err
	}},
}

func square(n int) int { return n * n }

func main() {
	sizes := flag.String("sizes", "64,128,256", "comma-separated square matrix sizes")
	strategies := flag.String("strategies", "all", "comma-separated strategies (seq, par, simd, parsimd) or all")
	workers := flag.Int("workers", 0, "worker count for parallel strategies (0 = NumCPU)")
	rounds := flag.Int("rounds", 5, "timed repetitions per cell")
	check := flag.Bool("check", false, "only verify that all strategies agree and exit")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lvbench [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Times elementwise and product operations per execution strategy.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	engOpts := []tensor.EngineOption{tensor.WithLogger(log)}
	if *workers > 0 {
		engOpts = append(engOpts, tensor.WithWorkers(*workers))
	}
	engine := tensor.NewEngine(engOpts...)
	info := engine.SIMDInfo()
	log.Info().Int("workers", engine.Workers()).Str("simd", info.Level).Int("lanes", info.LaneWidth).Msg("engine")

	if *check {
		if err := checkStrategies(engine); err != nil {
			log.Error().Err(err).Msg("check failed")
			os.Exit(1)
		}
		log.Info().Msg("all strategies agree")
		return
	}

	ns, err := parseSizes(*sizes)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -sizes")
	}
	ss, err := parseStrategies(*strategies)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -strategies")
	}
	if *rounds < 1 {
		log.Fatal().Int("rounds", *rounds).Msg("-rounds must be at least 1")
	}

	if err = run(os.Stdout, engine, ns, ss, *rounds, log); err != nil {
		log.Fatal().Err(err).Msg("benchmark failed")
	}
}

func run(w io.Writer, engine *tensor.Engine, sizes []int, strategies []tensor.Strategy, rounds int, log zerolog.Logger) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "op\tn\tstrategy\ttime\telems/s\tspeedup\t")

	opt := tensor.WithEngine(engine)
	for _, n := range sizes {
		a, err := tensor.RandomWithSeed[float64]([]int{n, n}, 1, -1, 1, opt)
		if err != nil {
			return err
		}
		b, err := tensor.RandomWithSeed[float64]([]int{n, n}, 2, -1, 1, opt)
		if err != nil {
			return err
		}
		v, err := tensor.RandomWithSeed[float64]([]int{n}, 3, -1, 1, opt)
		if err != nil {
			return err
		}

		for _, op := range ops {
			var base time.Duration
			for _, s := range strategies {
				d, err := timeOp(op, a, b, v, s, rounds)
				if err != nil {
					return fmt.Errorf("%s n=%d %s: %w", op.name, n, s, err)
				}
				log.Debug().Str("op", op.name).Int("n", n).Stringer("strategy", s).Dur("took", d).Msg("measured")

				if s == tensor.Sequential || base == 0 {
					base = d
				}
				rate := float64(op.elems(n)) / d.Seconds()
				fmt.Fprintf(tw, "%s\t%d\t%s\t%v\t%.3g\t%.2fx\t\n",
					op.name, n, s, d.Round(time.Microsecond), rate, float64(base)/float64(d))
			}
		}
	}

	return tw.Flush()
}

// timeOp returns the best wall time of rounds runs after one warm-up.
func timeOp(op benchOp, a, b, v *tensor.Tensor[float64], s tensor.Strategy, rounds int) (time.Duration, error) {
	if err := op.run(a, b, v, s); err != nil {
		return 0, err
	}
	best := time.Duration(1<<63 - 1)
	for i := 0; i < rounds; i++ {
		start := time.Now()
		if err := op.run(a, b, v, s); err != nil {
			return 0, err
		}
		if d := time.Since(start); d < best {
			best = d
		}
	}
	if best <= 0 {
		best = time.Nanosecond
	}
	return best, nil
}

// checkStrategies runs the 2×2 product, determinant and cofactor examples and
// a larger random product under every strategy.
func checkStrategies(engine *tensor.Engine) error {
	opt := tensor.WithEngine(engine)
	a, err := tensor.FromFlat(2, 2, []float64{1, 2, 3, 4}, opt)
	if err != nil {
		return err
	}
	b, err := tensor.FromFlat(2, 2, []float64{5, 6, 7, 8}, opt)
	if err != nil {
		return err
	}
	wantAB, _ := tensor.FromFlat(2, 2, []float64{19, 22, 43, 50}, opt)
	wantCof, _ := tensor.FromFlat(2, 2, []float64{4, -3, -2, 1}, opt)

	if det, err := a.Determinant(); err != nil || det != -2 {
		return fmt.Errorf("%w: determinant %v (err %v)", errMismatch, det, err)
	}

	x, err := tensor.RandomWithSeed[float64]([]int{67, 45}, 7, -1, 1, opt)
	if err != nil {
		return err
	}
	y, err := tensor.RandomWithSeed[float64]([]int{45, 31}, 8, -1, 1, opt)
	if err != nil {
		return err
	}
	ref, err := x.MatMul(y, tensor.Sequential)
	if err != nil {
		return err
	}

	for _, s := range tensor.Strategies() {
		ab, err := a.MatMul(b, s)
		if err != nil {
			return err
		}
		if !wantAB.Equal(ab) {
			return fmt.Errorf("%w: %s matmul\n%s", errMismatch, s, ab)
		}
		cof, err := a.CofactorMatrix(s)
		if err != nil {
			return err
		}
		if !wantCof.Equal(cof) {
			return fmt.Errorf("%w: %s cofactor\n%s", errMismatch, s, cof)
		}
		xy, err := x.MatMul(y, s)
		if err != nil {
			return err
		}
		if !ref.ApproxEqual(xy, 1e-9) {
			return fmt.Errorf("%w: %s random 67x45x31 product", errMismatch, s)
		}
	}
	return nil
}

func parseSizes(in string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(in, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("size %d must be positive", n)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, errors.New("no sizes given")
	}
	return out, nil
}

// parseStrategies keeps the given order, except that sequential is moved to
// the front so speedups have a baseline.
func parseStrategies(in string) ([]tensor.Strategy, error) {
	if strings.TrimSpace(in) == "all" {
		return tensor.Strategies(), nil
	}
	var rest []tensor.Strategy
	seq := false
	for _, f := range strings.Split(in, ",") {
		s, err := tensor.ParseStrategy(f)
		if err != nil {
			return nil, err
		}
		switch s {
		case tensor.Auto:
			return nil, errors.New("auto is not a concrete strategy")
		case tensor.Sequential:
			seq = true
		default:
			rest = append(rest, s)
		}
	}
	if seq {
		return append([]tensor.Strategy{tensor.Sequential}, rest...), nil
	}
	return rest, nil
}
