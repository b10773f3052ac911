package metrics

import (
	"maps"
	"time"

	"stepsearch/searcher"
)

// RunMetric summarizes one session run from first step to termination
type RunMetric struct {
	RunID      string
	Algorithm  searcher.Kind
	Status     searcher.Status
	Steps      int // Step calls, including ones that touched nothing
	Touched    int // Step calls that returned a node
	TreeSize   int
	GoalDepth  int // -1 without a goal
	GoalCost   float64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Attributes searcher.Attributes
}

type Collector interface {
	Start(runID string, kind searcher.Kind)
	AddStep(touched bool)
	// Complete snapshots alg once it is terminal. goal is nil when the run
	// produced no goal node.
	Complete(alg searcher.Algorithm, goal *searcher.Node) RunMetric
}

type collector struct {
	runID     string
	kind      searcher.Kind
	startTime time.Time
	steps     int
	touched   int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(runID string, kind searcher.Kind) {
	m.runID = runID
	m.kind = kind
	m.startTime = time.Now()
	m.steps = 0
	m.touched = 0
}

func (m *collector) AddStep(touched bool) {
	m.steps++
	if touched {
		m.touched++
	}
}

func (m *collector) Complete(alg searcher.Algorithm, goal *searcher.Node) RunMetric {
	end := time.Now()
	metric := RunMetric{
		RunID:      m.runID,
		Algorithm:  m.kind,
		Status:     alg.Status(),
		Steps:      m.steps,
		Touched:    m.touched,
		GoalDepth:  -1,
		StartTime:  m.startTime,
		EndTime:    end,
		Duration:   end.Sub(m.startTime),
		Attributes: maps.Clone(alg.Attributes()),
	}
	if root := alg.Tree(); root != nil {
		metric.TreeSize = root.Size()
	}
	if goal != nil {
		metric.GoalDepth = goal.Depth
		metric.GoalCost = goal.G
	}
	return metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(string, searcher.Kind) {}

func (m *dummyCollector) AddStep(bool) {}

func (m *dummyCollector) Complete(searcher.Algorithm, *searcher.Node) RunMetric {
	return RunMetric{}
}
