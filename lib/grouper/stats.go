package grouper

import (
	"io"

	vmetrics "github.com/VictoriaMetrics/metrics"
	gometrics "github.com/rcrowley/go-metrics"
)

// --------------------------------------------------------------------------
// Process-wide metrics
// --------------------------------------------------------------------------

var (
	sweepsTotal   = vmetrics.NewCounter("xgroup_sweeps_total")
	readTotal     = vmetrics.NewCounter("xgroup_elements_read_total")
	spilledTotal  = vmetrics.NewCounter("xgroup_elements_spilled_total")
	groupsTotal   = vmetrics.NewCounter("xgroup_groups_emitted_total")
	groupSizeHist = vmetrics.NewHistogram("xgroup_group_size")
)

// WriteMetrics writes the process-wide counters of all groupers in Prometheus text format.
func WriteMetrics(w io.Writer) {
	vmetrics.WritePrometheus(w, false)
}

// --------------------------------------------------------------------------
// Per-operator statistics
// --------------------------------------------------------------------------

const groupSizeSample = 1028 // reservoir size of the group size histogram

// stats counts the work of one grouper in its own registry
type stats struct {
	registry  gometrics.Registry
	sweeps    gometrics.Counter
	read      gometrics.Counter
	spilled   gometrics.Counter
	emitted   gometrics.Counter
	groupSize gometrics.Histogram
}

func newStats() *stats {
	r := gometrics.NewRegistry()
	return &stats{
		registry:  r,
		sweeps:    gometrics.NewRegisteredCounter("sweeps", r),
		read:      gometrics.NewRegisteredCounter("elements.read", r),
		spilled:   gometrics.NewRegisteredCounter("elements.spilled", r),
		emitted:   gometrics.NewRegisteredCounter("groups.emitted", r),
		groupSize: gometrics.NewRegisteredHistogram("groups.size", r, gometrics.NewUniformSample(groupSizeSample)),
	}
}

func (s *stats) sweep() {
	s.sweeps.Inc(1)
	sweepsTotal.Inc()
}

func (s *stats) elementRead() {
	s.read.Inc(1)
	readTotal.Inc()
}

func (s *stats) elementSpilled() {
	s.spilled.Inc(1)
	spilledTotal.Inc()
}

func (s *stats) groupEmitted(size int) {
	s.emitted.Inc(1)
	s.groupSize.Update(int64(size))
	groupsTotal.Inc()
	groupSizeHist.Update(float64(size))
}

// --------------------------------------------------------------------------
// Info
// --------------------------------------------------------------------------

// GrouperInfo describes the configuration and progress of a grouper
type GrouperInfo struct {
	Name      string
	State     string
	MaxGroups int

	Sweeps          int64 // Number of started sweeps (first sweep included)
	ElementsRead    int64 // Elements routed, replayed elements are counted again
	ElementsSpilled int64 // Elements deferred to the spill queue
	GroupsEmitted   int64

	GroupSizeMin  int64
	GroupSizeMax  int64
	GroupSizeMean float64

	TrackedGroups int // Groups of the current sweep not yet emitted
	SpillSize     int // Elements waiting for the next sweep
}

func (s *stats) fill(info *GrouperInfo) {
	info.Sweeps = s.sweeps.Count()
	info.ElementsRead = s.read.Count()
	info.ElementsSpilled = s.spilled.Count()
	info.GroupsEmitted = s.emitted.Count()
	info.GroupSizeMin = s.groupSize.Min()
	info.GroupSizeMax = s.groupSize.Max()
	info.GroupSizeMean = s.groupSize.Mean()
}
