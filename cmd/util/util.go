package util

import (
	"cmp"
	"strings"

	"github.com/ValentinKolb/xgroup/lib/bag"
	"github.com/ValentinKolb/xgroup/lib/codec"
	"github.com/ValentinKolb/xgroup/lib/common"
	"github.com/ValentinKolb/xgroup/lib/grouper"
	"github.com/ValentinKolb/xgroup/lib/queue"
	"github.com/ValentinKolb/xgroup/lib/queue/filequeue"
	"github.com/ValentinKolb/xgroup/lib/queue/pebblequeue"
	"github.com/ValentinKolb/xgroup/lib/tracker"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// --------------------------------------------------------------------------
// Configuration
// --------------------------------------------------------------------------

// SetupGrouperFlags adds the memory budget and backend flags to a command
func SetupGrouperFlags(cmd *cobra.Command) {
	key := "mem-size"
	cmd.PersistentFlags().Int(key, 64<<20, WrapString("Memory budget of the grouper in bytes"))

	key = "object-size"
	cmd.PersistentFlags().Int(key, 128, WrapString("Estimated size of one element in bytes"))

	key = "key-size"
	cmd.PersistentFlags().Int(key, 256, WrapString("Estimated bookkeeping cost of one group key in bytes. The grouper tracks (mem-size - object-size) / key-size - 1 groups per sweep"))

	key = "tracker"
	cmd.PersistentFlags().String(key, string(common.TrackerOrdered), WrapString("Map of the groups of a sweep (ordered, concurrent, sorted). Decides the order in which groups are printed"))

	key = "bag"
	cmd.PersistentFlags().String(key, string(common.BagList), WrapString("Store for the elements of one group (list, container)"))

	key = "spill"
	cmd.PersistentFlags().String(key, string(common.SpillMemory), WrapString("Queue for elements that did not fit into a sweep (memory, file, pebble)"))

	key = "spill-dir"
	cmd.PersistentFlags().String(key, "", WrapString("Directory for the file and pebble spill backends (default: os temp dir)"))

	key = "codec"
	cmd.PersistentFlags().String(key, string(common.CodecCBOR), WrapString("Encoding of spilled elements for the file and pebble backends (cbor, gob, json)"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("xgroup")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetGrouperConfig reads and validates the grouper configuration from viper
func GetGrouperConfig() (*common.GrouperConfig, error) {
	conf := &common.GrouperConfig{
		MemSize:    viper.GetInt("mem-size"),
		ObjectSize: viper.GetInt("object-size"),
		KeySize:    viper.GetInt("key-size"),
		Tracker:    common.TrackerType(viper.GetString("tracker")),
		Bag:        common.BagType(viper.GetString("bag")),
		Spill:      common.SpillType(viper.GetString("spill")),
		Codec:      common.CodecType(viper.GetString("codec")),
		SpillDir:   viper.GetString("spill-dir"),
		LogLevel:   viper.GetString("log-level"),
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// --------------------------------------------------------------------------
// Backends
// --------------------------------------------------------------------------

// GetTracker creates the tracker selected by the configuration
func GetTracker[K cmp.Ordered, E any](conf *common.GrouperConfig) (tracker.ITracker[K, bag.IBag[E]], error) {
	switch conf.Tracker {
	case common.TrackerOrdered:
		return tracker.NewOrdered[K, bag.IBag[E]](), nil
	case common.TrackerConcurrent:
		return tracker.NewConcurrent[K, bag.IBag[E]](), nil
	case common.TrackerSorted:
		return tracker.NewSorted[K, bag.IBag[E]](), nil
	default:
		return nil, common.Errorf(common.RetCInvalidConfiguration, "invalid tracker %s", conf.Tracker)
	}
}

// GetBagFactory returns the bag factory selected by the configuration
func GetBagFactory[E any](conf *common.GrouperConfig) (bag.Factory[E], error) {
	switch conf.Bag {
	case common.BagList:
		return bag.ListBagFactory[E](), nil
	case common.BagContainer:
		return bag.ContainerBagFactory[E](nil), nil
	default:
		return nil, common.Errorf(common.RetCInvalidConfiguration, "invalid bag %s", conf.Bag)
	}
}

// GetCodec creates the spill codec selected by the configuration
func GetCodec[E any](conf *common.GrouperConfig) (codec.ICodec[E], error) {
	switch conf.Codec {
	case common.CodecCBOR:
		return codec.NewCBORCodec[E]()
	case common.CodecGOB:
		return codec.NewGOBCodec[E](), nil
	case common.CodecJSON:
		return codec.NewJSONCodec[E](), nil
	default:
		return nil, common.Errorf(common.RetCInvalidConfiguration, "invalid codec %s", conf.Codec)
	}
}

// GetQueueFactory returns the spill queue factory selected by the configuration
func GetQueueFactory[E any](conf *common.GrouperConfig) (queue.Factory[E], error) {
	if conf.Spill == common.SpillMemory {
		return queue.ArrayQueueFactory[E](), nil
	}

	c, err := GetCodec[E](conf)
	if err != nil {
		return nil, err
	}
	switch conf.Spill {
	case common.SpillFile:
		return filequeue.Factory[E](filequeue.Options{Dir: conf.SpillDir}, c), nil
	case common.SpillPebble:
		return pebblequeue.Factory[E](pebblequeue.Options{Dir: conf.SpillDir}, c), nil
	default:
		return nil, common.Errorf(common.RetCInvalidConfiguration, "invalid spill %s", conf.Spill)
	}
}

// GetGrouperOptions assembles the grouper options for the configuration
func GetGrouperOptions[E any, K cmp.Ordered](conf *common.GrouperConfig, name string) (grouper.Options[E, K], error) {
	opts := grouper.FromConfig[E, K](conf)
	opts.Name = name

	var err error
	if opts.Tracker, err = GetTracker[K, E](conf); err != nil {
		return opts, err
	}
	if opts.NewBag, err = GetBagFactory[E](conf); err != nil {
		return opts, err
	}
	if opts.NewQueue, err = GetQueueFactory[E](conf); err != nil {
		return opts, err
	}
	return opts, nil
}
