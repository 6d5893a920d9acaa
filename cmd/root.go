package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string
var verbose bool
var targetName string
var targetDim int
var randomSeed int64
var epsilonInit float64
var adaptRounds int
var sampleCount int
var burnIn int64
var chainCount int
var monitorAddr string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "automala",
	Short: "Self-tuning MALA sampling for continuous targets",
	Long: `automala samples from a continuous unnormalized log density using
AutoMALA: at every step a locally appropriate step size is chosen by a
reversible doubling/halving search, so no per-target step size tuning is
needed. Among other features:

  - Built-in test targets (normal, banana, funnel)
  - Round-based calibration of the initial step size
  - Independent parallel chains with a live expvar progress monitor
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("automala\n")
		fmt.Printf("Verbose:  %v\n", verbose)
		fmt.Printf("Target:   %s (dim %d)\n", targetName, targetDim)
		fmt.Printf("Rnd Seed: %d\n", randomSeed)
		fmt.Printf("\nUse the run subcommand to sample\n")
	},
}

func initConfig() {
	if cfgFile == "" {
		return
	}

	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		logrus.WithError(err).Warnf("Could not read config file %s", cfgFile)
		return
	}
	logrus.WithField("config", viper.ConfigFileUsed()).Info("Using config file")

	// Config file values win over flag defaults but lose to explicit flags
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && viper.IsSet(f.Name) {
			_ = rootCmd.PersistentFlags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is none)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging (default is much more parsimonious)")

	rootCmd.PersistentFlags().StringVarP(&targetName, "target", "t", "normal", "Name of the registered target density")
	rootCmd.PersistentFlags().IntVarP(&targetDim, "dim", "d", 0, "Target dimension (0 uses the target's default)")
	rootCmd.PersistentFlags().Int64VarP(&randomSeed, "seed", "r", 1, "Random seed to use")
	rootCmd.PersistentFlags().Float64VarP(&epsilonInit, "epsilon", "e", 1.0, "Initial reference step size before adaptation")
	rootCmd.PersistentFlags().IntVar(&adaptRounds, "rounds", 10, "Step-size adaptation rounds (round i runs 2^i steps)")
	rootCmd.PersistentFlags().IntVarP(&sampleCount, "samples", "n", 2000, "Samples to record per chain")
	rootCmd.PersistentFlags().Int64VarP(&burnIn, "burnin", "b", 0, "Steps to discard before recording")
	rootCmd.PersistentFlags().IntVar(&chainCount, "chains", 1, "Independent chains to run in parallel")
	rootCmd.PersistentFlags().StringVar(&monitorAddr, "monitor", "", "Address for the expvar progress monitor (empty disables)")

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
