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
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gokinetics/InputParameters"
	"github.com/notargets/gokinetics/jacobian"
	"github.com/notargets/gokinetics/kinetics"
)

// JacobianCmd represents the jacobian command
var JacobianCmd = &cobra.Command{
	Use:   "jacobian",
	Short: "Analytic Jacobian and sparsity pattern of one reactor state",
	Long: `
Assembles the analytic Jacobian of the species and temperature source terms,

gokinetics jacobian -I state.yaml [--precond] [--pattern]`,
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
		precond, _ := cmd.Flags().GetBool("precond")
		pattern, _ := cmd.Flags().GetBool("pattern")
		return WriteJacobian(cmd.OutOrStdout(), e, c, rs.Temperature, rs.Form(), precond, pattern)
	},
}

func init() {
	rootCmd.AddCommand(JacobianCmd)
	addInputFlag(JacobianCmd)
	JacobianCmd.Flags().BoolP("precond", "p", false, "drop the third body collider terms")
	JacobianCmd.Flags().BoolP("pattern", "s", false, "print the structural nonzero pattern instead of values")
}

func WriteJacobian(w io.Writer, e *kinetics.Engine, c []float64, T float64, form kinetics.Formulation,
	precond, pattern bool) error {
	var (
		a = jacobian.NewAssembler(e)
		p *jacobian.Pattern
		N = a.N
	)
	if precond {
		p = jacobian.NewPrecondPattern(e.Mech, form)
	} else {
		p = jacobian.NewPattern(e.Mech, form, 1)
	}
	fmt.Fprintln(w, p.String())
	if pattern {
		names := append(e.Mech.SpeciesNames(), "T")
		for i := 0; i < N; i++ {
			var sb strings.Builder
			for j := 0; j < N; j++ {
				if p.Has(i, j) {
					sb.WriteByte('x')
				} else {
					sb.WriteByte('.')
				}
			}
			fmt.Fprintf(w, "%-6s %s\n", names[i], sb.String())
		}
		return nil
	}
	J := make([]float64, N*N)
	if precond {
		a.Precond(c, T, form, J)
	} else {
		a.Dense(c, T, form, J)
	}
	fmt.Fprintf(w, "J = %.4g\n", mat.Formatted(mat.NewDense(N, N, J), mat.Prefix("    "), mat.Squeeze()))
	return nil
}
