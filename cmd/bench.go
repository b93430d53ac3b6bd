/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gokinetics/InputParameters"
	"github.com/notargets/gokinetics/jacobian"
	"github.com/notargets/gokinetics/kinetics"
	"github.com/notargets/gokinetics/utils"
)

type BenchConfig struct {
	Iterations     int
	ParallelDegree int
	Jacobian       bool
}

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time scalar, batched and parallel evaluation over many cells",
	Long: `
Evaluates the production rates of every cell of the input state repeatedly,

gokinetics bench -I state.yaml -n 100 [--profile cpu|mem]`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			rs   *InputParameters.ReactorState
			e    *kinetics.Engine
			c, T []float64
		)
		if rs, e, err = loadState(cmd); err != nil {
			return
		}
		if cells, _ := cmd.Flags().GetInt("cells"); cells > 0 {
			rs.Cells = cells
		}
		if c, T, err = rs.CellStates(e); err != nil {
			return
		}
		bc := &BenchConfig{ParallelDegree: viper.GetInt("parallelDegree")}
		bc.Iterations, _ = cmd.Flags().GetInt("iterations")
		bc.Jacobian, _ = cmd.Flags().GetBool("jacobian")
		if pd, _ := cmd.Flags().GetInt("parallelDegree"); pd > 0 {
			bc.ParallelDegree = pd
		}
		switch prof, _ := cmd.Flags().GetString("profile"); prof {
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		case "":
		default:
			return fmt.Errorf("unknown profile %q, want cpu or mem", prof)
		}
		return RunBench(cmd.Context(), cmd.OutOrStdout(), e, c, T, rs.Form(), bc)
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	addInputFlag(BenchCmd)
	BenchCmd.Flags().IntP("cells", "k", 0, "number of cells, overrides the input file")
	BenchCmd.Flags().IntP("iterations", "n", 10, "evaluations of every cell per timing")
	BenchCmd.Flags().IntP("parallelDegree", "p", 0, "goroutines for the parallel timing, 0 uses every CPU")
	BenchCmd.Flags().BoolP("jacobian", "j", false, "also time block diagonal Jacobian assembly")
	BenchCmd.Flags().String("profile", "", "write a cpu or mem profile to the working directory")
}

func RunBench(ctx context.Context, w io.Writer, e *kinetics.Engine, c, T []float64,
	form kinetics.Formulation, bc *BenchConfig) (err error) {
	var (
		NS    = e.NS
		Cells = len(T)
		wdot  = make([]float64, Cells*NS)
		b     = e.NewBatch(Cells)
		rate  = func(d time.Duration) float64 {
			return float64(Cells*bc.Iterations) / d.Seconds()
		}
	)
	if ctx == nil {
		ctx = context.Background()
	}
	if bc.Iterations < 1 {
		bc.Iterations = 1
	}
	start := time.Now()
	for it := 0; it < bc.Iterations; it++ {
		for n := 0; n < Cells; n++ {
			e.ProductionRates(c[n*NS:(n+1)*NS], T[n], wdot[n*NS:(n+1)*NS])
		}
	}
	scalar := time.Since(start)

	start = time.Now()
	for it := 0; it < bc.Iterations; it++ {
		b.ProductionRates(c, T, wdot)
	}
	batch := time.Since(start)

	start = time.Now()
	for it := 0; it < bc.Iterations; it++ {
		if err = e.ProductionRatesParallel(ctx, bc.ParallelDegree, c, T, wdot); err != nil {
			return
		}
	}
	parallel := time.Since(start)
	if !utils.IsFinite(wdot) {
		return fmt.Errorf("non finite production rates")
	}
	fmt.Fprintf(w, "%d cells x %d iterations, %s, %d species, %d reactions\n",
		Cells, bc.Iterations, e.Mech.Name, NS, e.NR)
	fmt.Fprintf(w, "scalar   %12v %12.4g cells/s\n", scalar, rate(scalar))
	fmt.Fprintf(w, "batch    %12v %12.4g cells/s\n", batch, rate(batch))
	fmt.Fprintf(w, "parallel %12v %12.4g cells/s\n", parallel, rate(parallel))
	if bc.Jacobian {
		var (
			a      = jacobian.NewAssembler(e)
			p      = jacobian.NewPattern(e.Mech, form, Cells)
			values = make([]float64, p.NNZ())
		)
		start = time.Now()
		for it := 0; it < bc.Iterations; it++ {
			a.FillCSC(p, c, T, values)
		}
		jac := time.Since(start)
		fmt.Fprintf(w, "jacobian %12v %12.4g cells/s, nnz %d\n", jac, rate(jac), p.NNZ())
	}
	logger.Debug().Str("memory", utils.GetMemUsage()).Msg("bench done")
	return
}
