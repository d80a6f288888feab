package perf

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/xgroup/cmd/util"
	"github.com/ValentinKolb/xgroup/lib/common"
	"github.com/ValentinKolb/xgroup/lib/cursor"
	"github.com/ValentinKolb/xgroup/lib/grouper"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var plog = logger.GetLogger(common.LoggerCLI)

var (
	// PerfCmd benchmarks the grouper with all spill backends and trackers
	PerfCmd = &cobra.Command{
		Use:   "perf",
		Short: "Performance testing tool for the grouper",
		Long: `Group a synthetic data set with every combination of spill backend and tracker and print the time per run.
The memory budget flags apply to all runs; a budget below the number of keys makes the grouper spill.`,
		PreRunE: processPerfConfig,
		RunE:    run,
	}
	perfConfig   *common.GrouperConfig
	perfElements = 10_000
	perfKeys     = 100
	perfSkip     = make([]string, 0)
)

func init() {
	util.SetupGrouperFlags(PerfCmd)

	key := "elements"
	PerfCmd.Flags().Int(key, 10_000, util.WrapString("Number of elements grouped per run"))
	key = "keys"
	PerfCmd.Flags().Int(key, 100, util.WrapString("Number of distinct keys of the data set"))
	key = "skip"
	PerfCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. pebble/sorted,file/ordered)"))
	key = "csv"
	PerfCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	conf, err := util.GetGrouperConfig()
	if err != nil {
		return err
	}
	if err := common.InitLoggers(conf.LogLevel); err != nil {
		return err
	}
	perfConfig = conf

	perfElements = viper.GetInt("elements")
	perfKeys = viper.GetInt("keys")
	if perfElements < 0 || perfKeys <= 0 {
		return common.Errorf(common.RetCInvalidConfiguration, "elements must not be negative and keys must be positive")
	}
	perfSkip = strings.Split(viper.GetString("skip"), ",")
	return nil
}

func run(_ *cobra.Command, _ []string) error {
	fmt.Println("Performance testing tool for the grouper")

	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(perfConfig.String())
	fmt.Printf("Elements: %d\nKeys: %d\n", perfElements, perfKeys)
	fmt.Println()

	fmt.Println("starting tests...")

	input := dataSet(perfElements, perfKeys)
	results := make(map[string]testing.BenchmarkResult)

	for _, spill := range []common.SpillType{common.SpillMemory, common.SpillFile, common.SpillPebble} {
		for _, tr := range []common.TrackerType{common.TrackerOrdered, common.TrackerConcurrent, common.TrackerSorted} {
			name := fmt.Sprintf("%s/%s", spill, tr)
			if shouldSkip(name) {
				printResult(name, testing.BenchmarkResult{})
				continue
			}

			conf := *perfConfig
			conf.Spill, conf.Tracker = spill, tr

			var runErr error
			result := testing.Benchmark(func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					if err := groupOnce(&conf, name, input); err != nil {
						runErr = err
						b.FailNow()
					}
				}
			})
			if runErr != nil {
				plog.Errorf("(%s) - error grouping: %v", name, runErr)
				return runErr
			}

			results[name] = result
			printResult(name, result)
		}
	}

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// record is the element type of the synthetic data set
type record struct {
	Key     string
	Payload int
}

func dataSet(n, keys int) []record {
	out := make([]record, n)
	for i := range out {
		out[i] = record{Key: "key-" + strconv.Itoa((i*7919)%keys), Payload: i}
	}
	return out
}

// groupOnce groups input and drains all groups
func groupOnce(conf *common.GrouperConfig, name string, input []record) error {
	opts, err := util.GetGrouperOptions[record, string](conf, name)
	if err != nil {
		return err
	}
	g, err := grouper.NewNestedLoopsGrouper(cursor.FromSlice(input), func(r record) string { return r.Key }, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	if err := g.Open(); err != nil {
		return err
	}
	for {
		ok, err := g.HasNext()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		c, err := g.Next()
		if err != nil {
			return err
		}
		if _, err := cursor.Collect(c); err != nil {
			return err
		}
	}
}

func shouldSkip(test string) bool {
	return slices.Contains(perfSkip, test)
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-24sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1)
	elemsPerSec := float64(perfElements) / (nsPerOp / 1e9)

	fmt.Printf("%-24s%s/run\t%.0f elements/sec\n", test, time.Duration(nsPerOp), elemsPerSec)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"Test", "NsPerRun", "DurationPerRun", "ElementsPerSec",
		"Elements", "Keys", "MemSize", "ObjectSize", "KeySize", "MaxGroups",
		"Bag", "Codec",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, test := range names {
		nsPerOp := math.Max(float64(results[test].NsPerOp()), 1)
		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", float64(perfElements)/(nsPerOp/1e9)),
			strconv.Itoa(perfElements),
			strconv.Itoa(perfKeys),
			strconv.Itoa(perfConfig.MemSize),
			strconv.Itoa(perfConfig.ObjectSize),
			strconv.Itoa(perfConfig.KeySize),
			strconv.Itoa(perfConfig.MaxGroups()),
			string(perfConfig.Bag),
			string(perfConfig.Codec),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return writer.Error()
}
