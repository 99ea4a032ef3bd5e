package searcher

import (
	"time"
)

// SearchMetrics are the diagnostic counters of one top-level search call.
type SearchMetrics struct {
	StartTime    time.Time
	Duration     time.Duration
	Episodes     int64 // MCTS select/expand/rollout/backup cycles
	FullPlayouts int64 // Rollouts started from a non-terminal leaf
	Nodes        int64 // Minimax nodes searched
	CacheHits    int64
	Prunes       int64
	TreeSize     int
	IsTreeReused bool
}

type MetricsCollector interface {
	Start()
	AddEpisode()
	AddFullPlayout()
	AddNode()
	AddCacheHit()
	AddPrune()
	ReusedTree()
	SetTreeSize(size int)
	Complete() SearchMetrics
}

// Searches run on a single goroutine, so the collector needs no synchronization.
type metricsCollector struct {
	startTime    time.Time
	episodes     int64
	fullPlayouts int64
	nodes        int64
	cacheHits    int64
	prunes       int64
	treeSize     int
	treeReused   bool
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	*m = metricsCollector{startTime: time.Now()}
}

func (m *metricsCollector) AddEpisode() {
	m.episodes++
}

func (m *metricsCollector) AddFullPlayout() {
	m.fullPlayouts++
}

func (m *metricsCollector) AddNode() {
	m.nodes++
}

func (m *metricsCollector) AddCacheHit() {
	m.cacheHits++
}

func (m *metricsCollector) AddPrune() {
	m.prunes++
}

func (m *metricsCollector) ReusedTree() {
	m.treeReused = true
}

func (m *metricsCollector) SetTreeSize(size int) {
	m.treeSize = size
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Episodes:     m.episodes,
		FullPlayouts: m.fullPlayouts,
		Nodes:        m.nodes,
		CacheHits:    m.cacheHits,
		Prunes:       m.prunes,
		TreeSize:     m.treeSize,
		IsTreeReused: m.treeReused,
	}
}
