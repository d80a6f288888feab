package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/xgroup/cmd/group"
	"github.com/ValentinKolb/xgroup/cmd/perf"
	"github.com/ValentinKolb/xgroup/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
)

var (
	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "xgroup",
		Short: "memory-bounded grouping of large inputs",
		Long: fmt.Sprintf(`xgroup (v%s)

Groups large inputs by key with a fixed memory budget. Keys that do not fit
into memory are spilled (in memory, to a file or a pebble store) and grouped
in further sweeps.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of xgroup",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("xgroup v%s\n", Version)
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(group.GroupCmd)
	RootCmd.AddCommand(perf.PerfCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "", util.WrapString("Level at which logs are written to stderr (debug, info, warn, error). Levels can be set per logger (grouper, queue, container, cli), e.g. warn,queue=debug. Empty uses the defaults of each logger"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
