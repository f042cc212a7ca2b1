package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	MaxDepth   int // Requested depth
	Depth      int // Deepest completed iteration
	Duration   time.Duration
	Nodes      int
	Cutoffs    int
	TableHits  int
	Cancelled  bool
	Iterations int
}

type MoveMetric struct {
	Step int
	Side string
	SearchMetric
}

type GameMetric struct {
	GameID        string
	StartingSide  string
	Winner        string // "" for a game stopped at the turn cap
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalMoves    int
	FallbackMoves int // Moves substituted for illegal or failed agent answers
}

type Collector interface {
	Start(maxDepth int)
	AddNode()
	AddCutoff()
	AddTableHit()
	CompleteIteration(depth int)
	SetCancelled()
	Complete() SearchMetric
}

type collector struct {
	maxDepth   int
	startTime  time.Time
	depth      atomic.Int32
	iterations atomic.Int32
	nodes      atomic.Int64
	cutoffs    atomic.Int64
	tableHits  atomic.Int64
	cancelled  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(maxDepth int) {
	m.startTime = time.Now()
	m.maxDepth = maxDepth
	m.depth.Store(0)
	m.iterations.Store(0)
	m.nodes.Store(0)
	m.cutoffs.Store(0)
	m.tableHits.Store(0)
	m.cancelled.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddTableHit() {
	m.tableHits.Add(1)
}

func (m *collector) CompleteIteration(depth int) {
	m.depth.Store(int32(depth))
	m.iterations.Add(1)
}

func (m *collector) SetCancelled() {
	m.cancelled.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		MaxDepth:   m.maxDepth,
		Depth:      int(m.depth.Load()),
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Cutoffs:    int(m.cutoffs.Load()),
		TableHits:  int(m.tableHits.Load()),
		Cancelled:  m.cancelled.Load(),
		Iterations: int(m.iterations.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(maxDepth int)          {}
func (m *dummyCollector) AddNode()                    {}
func (m *dummyCollector) AddCutoff()                  {}
func (m *dummyCollector) AddTableHit()                {}
func (m *dummyCollector) CompleteIteration(depth int) {}
func (m *dummyCollector) SetCancelled()               {}
func (m *dummyCollector) Complete() SearchMetric      { return SearchMetric{} }
