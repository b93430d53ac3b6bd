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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/notargets/gokinetics/InputParameters"
	"github.com/notargets/gokinetics/kinetics"
	"github.com/notargets/gokinetics/utils"
)

// EvaluateCmd represents the evaluate command
var EvaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Production rates, rates of progress and the temperature rate of one reactor state",
	Long: `
Evaluates the reaction rates of a homogeneous reactor state,

gokinetics evaluate -I state.yaml [--reactions]`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			rs *InputParameters.ReactorState
			e  *kinetics.Engine
			c  []float64
		)
		if rs, e, err = loadState(cmd); err != nil {
			return
		}
		if c, err = rs.Concentrations(e); err != nil {
			return
		}
		showReactions, _ := cmd.Flags().GetBool("reactions")
		out := cmd.OutOrStdout()
		rs.Print(out)
		return Evaluate(out, e, c, rs.Temperature, rs.Form(), showReactions)
	},
}

func init() {
	rootCmd.AddCommand(EvaluateCmd)
	addInputFlag(EvaluateCmd)
	EvaluateCmd.Flags().BoolP("reactions", "r", false, "print per reaction rate constants and rates of progress")
}

// Evaluate writes the source terms of one state as a table
func Evaluate(w io.Writer, e *kinetics.Engine, c []float64, T float64, form kinetics.Formulation,
	showReactions bool) error {
	var (
		NS, NR = e.NS, e.NR
		out    = make([]float64, NS+1)
	)
	e.SourceTerms(c, T, form, out)
	if !utils.IsFinite(out) {
		return fmt.Errorf("non finite source terms at T = %g", T)
	}
	names := e.Mech.SpeciesNames()
	fmt.Fprintf(w, "%-8s %14s %14s\n", "Species", "C (mol/cm^3)", "wdot (mol/cm^3/s)")
	for k := 0; k < NS; k++ {
		fmt.Fprintf(w, "%-8s %14.6e %14.6e\n", names[k], c[k], out[k])
	}
	fmt.Fprintf(w, "dT/dt (%s) = %14.6e K/s\n", form, out[NS])
	if !showReactions {
		return nil
	}
	var (
		kf, kr = make([]float64, NR), make([]float64, NR)
		qf, qr = make([]float64, NR), make([]float64, NR)
		kc     = make([]float64, NR)
	)
	e.RateConstants(c, T, kf, kr)
	e.ProgressRatesFR(c, T, qf, qr)
	e.EquilibriumConstantsT(T, kc)
	fmt.Fprintf(w, "%4s %-32s %12s %12s %12s %12s %12s\n", "Rxn", "Equation", "kf", "kr", "Kc", "qf", "qr")
	for i := 0; i < NR; i++ {
		fmt.Fprintf(w, "%4d %-32s %12.4e %12.4e %12.4e %12.4e %12.4e\n", e.Mech.ExternalIndex(i),
			e.Mech.Reactions[i].Equation, kf[i], kr[i], kc[i], qf[i], qr[i])
	}
	return nil
}
