package common

import (
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Backend identifiers
// --------------------------------------------------------------------------

type TrackerType string

const (
	TrackerOrdered    TrackerType = "ordered"
	TrackerConcurrent TrackerType = "concurrent"
	TrackerSorted     TrackerType = "sorted"
)

type SpillType string

const (
	SpillMemory SpillType = "memory"
	SpillFile   SpillType = "file"
	SpillPebble SpillType = "pebble"
)

type BagType string

const (
	BagList      BagType = "list"
	BagContainer BagType = "container"
)

type CodecType string

const (
	CodecCBOR CodecType = "cbor"
	CodecGOB  CodecType = "gob"
	CodecJSON CodecType = "json"
)

// --------------------------------------------------------------------------
// Grouper configuration struct
// --------------------------------------------------------------------------

// GrouperConfig holds all configuration parameters of a grouping run.
type GrouperConfig struct {
	// memory budget (bytes)
	MemSize    int
	ObjectSize int
	KeySize    int

	// backends
	Tracker TrackerType
	Bag     BagType
	Spill   SpillType
	Codec   CodecType

	// directory for external spill backends (empty = os temp dir)
	SpillDir string

	// Logging configuration
	LogLevel string
}

// MaxGroups returns the number of groups the memory budget can track at once
// (or a value < 1 if the budget is insufficient).
func (c *GrouperConfig) MaxGroups() int {
	if c.KeySize <= 0 {
		return 0
	}
	return (c.MemSize-c.ObjectSize)/c.KeySize - 1
}

// Validate checks the configuration for invalid values
func (c *GrouperConfig) Validate() error {
	switch c.Tracker {
	case TrackerOrdered, TrackerConcurrent, TrackerSorted:
	default:
		return Errorf(RetCInvalidConfiguration, "invalid tracker %q (expected one of: ordered, concurrent, sorted)", c.Tracker)
	}
	switch c.Bag {
	case BagList, BagContainer:
	default:
		return Errorf(RetCInvalidConfiguration, "invalid bag %q (expected one of: list, container)", c.Bag)
	}
	switch c.Spill {
	case SpillMemory, SpillFile, SpillPebble:
	default:
		return Errorf(RetCInvalidConfiguration, "invalid spill %q (expected one of: memory, file, pebble)", c.Spill)
	}
	switch c.Codec {
	case CodecCBOR, CodecGOB, CodecJSON:
	default:
		return Errorf(RetCInvalidConfiguration, "invalid codec %q (expected one of: cbor, gob, json)", c.Codec)
	}
	if _, err := ParseLogLevels(c.LogLevel); err != nil {
		return err
	}
	return CheckBudget(c.MemSize, c.ObjectSize, c.KeySize)
}

// CheckBudget returns an InvalidConfiguration error if a memory budget of
// memSize bytes can not hold two keys of keySize bytes plus one object of
// objectSize bytes. The check divides instead of multiplying, so huge sizes
// can not overflow into an accepted budget.
func CheckBudget(memSize, objectSize, keySize int) error {
	switch {
	case keySize <= 0:
		return Errorf(RetCInvalidConfiguration, "key size must be positive, got %d", keySize)
	case objectSize < 0:
		return Errorf(RetCInvalidConfiguration, "object size must not be negative, got %d", objectSize)
	case memSize < objectSize || (memSize-objectSize)/keySize < 2:
		return Errorf(RetCInvalidConfiguration,
			"memory size %d can not hold two keys of %d bytes and one object of %d bytes",
			memSize, keySize, objectSize)
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *GrouperConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Memory Budget")
	addField("Memory Size", fmt.Sprintf("%d bytes", c.MemSize))
	addField("Object Size", fmt.Sprintf("%d bytes", c.ObjectSize))
	addField("Key Size", fmt.Sprintf("%d bytes", c.KeySize))
	addField("Max Groups", fmt.Sprintf("%d", c.MaxGroups()))

	addSection("Backends")
	addField("Tracker", string(c.Tracker))
	addField("Bag", string(c.Bag))
	addField("Spill", string(c.Spill))
	if c.Spill != SpillMemory {
		addField("Codec", string(c.Codec))
		dir := c.SpillDir
		if dir == "" {
			dir = "(os temp dir)"
		}
		addField("Spill Directory", dir)
	}

	addSection("Logging")
	logLevel := c.LogLevel
	if logLevel == "" {
		logLevel = "(defaults)"
	}
	addField("Log Level", logLevel)

	return sb.String()
}
