package group

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/ValentinKolb/xgroup/cmd/util"
	"github.com/ValentinKolb/xgroup/lib/common"
	"github.com/ValentinKolb/xgroup/lib/cursor"
	"github.com/ValentinKolb/xgroup/lib/grouper"
	"github.com/hashicorp/go-multierror"
	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var plog = logger.GetLogger(common.LoggerCLI)

var (
	groupCmdConfig *common.GrouperConfig

	// GroupCmd groups the lines of a file (or stdin) by one of their fields
	GroupCmd = &cobra.Command{
		Use:   "group [file]",
		Short: "Group lines by a field",
		Long: `Group the lines of a file (or stdin if no file is given) by one of their fields and print one block per group.
The grouper keeps at most (mem-size - object-size) / key-size - 1 groups in memory. Lines of further keys are spilled and grouped in later sweeps.
The configuration can be set via command line flags or environment variables. The format of the environment variables is XGROUP_<flag> (e.g. XGROUP_MEM_SIZE=1048576)`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	util.SetupGrouperFlags(GroupCmd)

	key := "field"
	GroupCmd.Flags().Int(key, 1, util.WrapString("Field used as the group key (1-based, 0 = whole line)"))

	key = "delimiter"
	GroupCmd.Flags().String(key, ",", util.WrapString("Field delimiter"))

	key = "metrics"
	GroupCmd.Flags().Bool(key, false, util.WrapString("Print grouper metrics after the groups"))
}

// processConfig binds the flags to viper and reads the grouper configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	conf, err := util.GetGrouperConfig()
	if err != nil {
		return err
	}
	if viper.GetInt("field") < 0 {
		return common.Errorf(common.RetCInvalidConfiguration, "field must not be negative, got %d", viper.GetInt("field"))
	}
	if err := common.InitLoggers(conf.LogLevel); err != nil {
		return err
	}
	groupCmdConfig = conf
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer file.Close()
		in = file
	}

	plog.Debugf("configuration:%s", groupCmdConfig.String())

	opts, err := util.GetGrouperOptions[string, string](groupCmdConfig, "cli")
	if err != nil {
		return err
	}

	field, delimiter := viper.GetInt("field"), viper.GetString("delimiter")
	keyOf := func(line string) string {
		return Field(line, delimiter, field)
	}

	return GroupLines(in, cmd.OutOrStdout(), keyOf, opts, viper.GetBool("metrics"))
}

// GroupLines groups the lines of in with keyOf and writes the groups to out.
// Errors from closing the grouper (e.g. removing the spill file) are returned
// together with any earlier error.
func GroupLines(in io.Reader, w io.Writer, keyOf func(string) string, opts grouper.Options[string, string], printMetrics bool) (err error) {
	scanner := bufio.NewScanner(in)
	g, err := grouper.FromSeq(lines(scanner), keyOf, opts)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(w)
	defer func() {
		if cerr := g.Close(); cerr != nil {
			err = multierror.Append(err, cerr).ErrorOrNil()
		}
		if ferr := out.Flush(); ferr != nil {
			err = multierror.Append(err, ferr).ErrorOrNil()
		}
	}()

	if err := PrintGroups(out, g); err != nil {
		return err
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	info := g.GetInfo()
	plog.Infof("grouped %d lines into %d groups in %d sweeps (%d lines spilled)",
		info.ElementsRead-info.ElementsSpilled, info.GroupsEmitted, info.Sweeps, info.ElementsSpilled)

	if printMetrics {
		fmt.Fprintln(out)
		grouper.WriteMetrics(out)
		gometrics.WriteOnce(g.Metrics(), out)
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// lines yields the lines of scanner. Read errors are left in scanner.Err.
func lines(scanner *bufio.Scanner) iter.Seq[string] {
	return func(yield func(string) bool) {
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}
}

// Field returns the n-th (1-based) field of line, the whole line for n = 0
// and "" if the line has fewer fields.
func Field(line, delimiter string, n int) string {
	if n == 0 {
		return line
	}
	fields := strings.Split(line, delimiter)
	if n > len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[n-1])
}

// PrintGroups writes one block per group of g: a header with key and size
// followed by the indented elements.
func PrintGroups(w io.Writer, g *grouper.NestedLoopsGrouper[string, string]) error {
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

		key, c, err := g.NextGroup()
		if err != nil {
			return err
		}
		elems, err := cursor.Collect(c)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "[%s] (%d)\n", key, len(elems)); err != nil {
			return err
		}
		for _, e := range elems {
			if _, err := fmt.Fprintf(w, "  %s\n", e); err != nil {
				return err
			}
		}
	}
}
