package session

import (
	"reflect"
	"sync"

	"astrodash/internal"
	"astrodash/internal/dataset"
	"astrodash/internal/pipeline"
)

// Session owns one immutable loaded table and answers filter-changed events
// with a freshly computed chart set. Every call recomputes the filtered
// view and all aggregates from scratch; only the identical-filters case is
// memoized. The mutex guards the memo and the table swap, the pipeline
// itself is pure.
type Session struct {
	topN int

	mu         sync.Mutex
	records    []internal.Record
	index      *dataset.Index
	memoFilter *pipeline.Filters
	memoSet    internal.ChartSet
}

func New(records []internal.Record, topN int) *Session {
	return &Session{
		topN:    topN,
		records: records,
		index:   dataset.BuildIndex(records),
	}
}

// Index returns the distinct filterable values of the current table.
func (s *Session) Index() *dataset.Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// DefaultFilters covers everything present in the current table.
func (s *Session) DefaultFilters() pipeline.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pipeline.DefaultFilters(s.index)
}

// Charts recomputes the chart set for f, returning the memoized result when
// f matches the previous call exactly. The comparison is on the whole
// filter value, so selections that merely serialize alike never alias.
func (s *Session) Charts(f pipeline.Filters) internal.ChartSet {
	s.mu.Lock()
	if s.memoFilter != nil && reflect.DeepEqual(*s.memoFilter, f) {
		set := s.memoSet
		s.mu.Unlock()
		return set
	}
	records := s.records
	s.mu.Unlock()

	set := pipeline.BuildChartSet(records, f, s.topN)

	s.mu.Lock()
	memo := f
	s.memoFilter = &memo
	s.memoSet = set
	s.mu.Unlock()
	return set
}

// Replace swaps in a freshly ingested table and drops the memo.
func (s *Session) Replace(records []internal.Record) {
	idx := dataset.BuildIndex(records)
	s.mu.Lock()
	s.records = records
	s.index = idx
	s.memoFilter = nil
	s.memoSet = internal.ChartSet{}
	s.mu.Unlock()
}
