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
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gokinetics/InputParameters"
	"github.com/notargets/gokinetics/kinetics"
	"github.com/notargets/gokinetics/mechanism"
)

var (
	cfgFile string
	logger  = zerolog.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gokinetics",
	Short: "Chemical kinetics source terms and Jacobians for reacting flow",
	Long: `
Evaluates species production rates, reactor temperature rates and their
analytic Jacobians for built in combustion mechanisms.

gokinetics evaluate -I state.yaml`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(viper.GetBool("verbose"))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gokinetics.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().StringP("mechanism", "m", "", "mechanism overriding the input file, one of "+
		fmt.Sprint(mechanism.Names()))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("mechanism", rootCmd.PersistentFlags().Lookup("mechanism"))
	viper.SetDefault("parallelDegree", 0)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Search config in home directory with name ".gokinetics" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".gokinetics")
	}
	viper.SetEnvPrefix("GOKINETICS")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()
}

// loadState reads the reactor state named by the -I flag and builds the
// engine of its mechanism
func loadState(cmd *cobra.Command) (rs *InputParameters.ReactorState, e *kinetics.Engine, err error) {
	var (
		fileName string
		mech     *mechanism.Mechanism
	)
	if fileName, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
		return
	}
	if len(fileName) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Example File:%s\n", InputParameters.ExampleFile)
		err = fmt.Errorf("must supply an input conditions file (-I, --inputConditionsFile)")
		return
	}
	if rs, err = InputParameters.ReadFile(fileName); err != nil {
		return
	}
	if name := viper.GetString("mechanism"); len(name) != 0 {
		rs.Mechanism = name
	}
	if mech, err = mechanism.Lookup(rs.Mechanism); err != nil {
		return
	}
	e = kinetics.NewEngine(mech, kinetics.WithLogger(logger))
	logger.Debug().Str("file", fileName).Str("mechanism", mech.Name).
		Float64("T", rs.Temperature).Int("cells", rs.Cells).Msg("reactor state loaded")
	return
}

func addInputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for the reactor state like:\n\t- Mechanism\n\t- Temperature, Pressure\n\t- Composition")
}
