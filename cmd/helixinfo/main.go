// Command helixinfo factors a synthetic autocorrelation into a
// minimum-phase helix filter and prints the resulting coefficients and
// amplitude response.
//
// Usage:
//
//	helixinfo [flags]
//
// The target is an AR(1) autocorrelation r(k) = rho^|k| / (1 - rho^2) by
// default; -white selects a unit white-noise target instead.
//
// Examples:
//
//	helixinfo -lags 0,1,2
//	helixinfo -lags 0,1 -rho 0.8 -n 41
//	helixinfo -lags 0,1,2,3 -white
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-helix/dsp/filter/helix"
)

func main() {
	lagsFlag := flag.String("lags", "0,1,2", "comma-separated lag table")
	rho := flag.Float64("rho", 0.5, "AR(1) coefficient of the synthetic target, |rho| < 1")
	n := flag.Int("n", 21, "target autocorrelation length (rounded up to odd)")
	white := flag.Bool("white", false, "use a white-noise target instead of AR(1)")
	tol := flag.Float64("tol", 1e-10, "convergence tolerance")
	maxIter := flag.Int("maxiter", 1000, "iteration cap")
	respSize := flag.Int("resp", 16, "amplitude response grid size (power of two)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: helixinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Factors a synthetic autocorrelation into a minimum-phase helix filter.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  helixinfo -lags 0,1,2\n")
		fmt.Fprintf(os.Stderr, "  helixinfo -lags 0,1 -rho 0.8 -n 41\n")
		fmt.Fprintf(os.Stderr, "  helixinfo -lags 0,1,2,3 -white\n")
	}
	flag.Parse()

	lags, err := parseLags(*lagsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if math.Abs(*rho) >= 1 {
		fmt.Fprintf(os.Stderr, "error: |rho| must be < 1, got %v\n", *rho)
		os.Exit(1)
	}

	r := target(*n, *rho, *white)
	f, err := helix.Factor(r, lags,
		helix.WithTolerance(*tol),
		helix.WithMaxIterations(*maxIter),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := printFilter(f, *respSize); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseLags(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	lags := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid lag %q", p)
		}
		lags = append(lags, v)
	}
	return lags, nil
}

// target builds a symmetric autocorrelation of odd length.
func target(n int, rho float64, white bool) []float64 {
	if n < 3 {
		n = 3
	}
	if n%2 == 0 {
		n++
	}
	r := make([]float64, n)
	c := n / 2
	if white {
		r[c] = 1
		return r
	}
	scale := 1 / (1 - rho*rho)
	for k := 0; k <= c; k++ {
		v := math.Pow(rho, float64(k)) * scale
		r[c+k] = v
		r[c-k] = v
	}
	return r
}

func printFilter(f *helix.Filter, respSize int) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Lag\tCoefficient\n")
	fmt.Fprintf(tw, "---\t-----------\n")
	lags := f.Lags(1)
	for j, a := range f.Coefficients() {
		fmt.Fprintf(tw, "%d\t%+.8f\n", lags[j], a)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	resp, err := f.AmplitudeResponse(respSize)
	if err != nil {
		return err
	}
	fmt.Printf("\nAmplitude response (%d bins):\n", respSize)
	for i, v := range resp[:respSize/2+1] {
		fmt.Printf("  w=%.3fpi  |A|=%.6f\n", 2*float64(i)/float64(respSize), v)
	}
	return nil
}
