// internal/domain/filter/store.go
package filter

import (
	"sync"

	"github.com/your-org/storefront/internal/pkg/metrics"
	"github.com/your-org/storefront/internal/pkg/state"
)

const storeName = "filters"

// State is a snapshot of the working filter configuration
type State struct {
	Filters     Options    `json:"filters"`
	SortOption  SortOption `json:"sort_option"`
	SearchQuery string     `json:"search_query"`
}

// Store holds the session's filters, sort option and search query. It is
// never persisted: a new Store always starts from the defaults.
type Store struct {
	mu       sync.Mutex
	state    State
	notifier state.Notifier[State]
	metrics  *metrics.Metrics
}

// NewStore creates a filter store at its defaults
func NewStore(m *metrics.Metrics) *Store {
	return &Store{
		state: State{
			Filters:    DefaultOptions(),
			SortOption: DefaultSortOption,
		},
		metrics: m,
	}
}

// SetFilters merges the non-nil fields of patch over the current filters
func (s *Store) SetFilters(patch Patch) {
	s.mutate("set_filters", func(st *State) {
		st.Filters = patch.apply(st.Filters)
	})
}

// ResetFilters restores the default filters. Sort and search are kept.
func (s *Store) ResetFilters() {
	s.mutate("reset_filters", func(st *State) {
		st.Filters = DefaultOptions()
	})
}

// SetSortOption replaces the sort option
func (s *Store) SetSortOption(opt SortOption) {
	s.mutate("set_sort_option", func(st *State) {
		st.SortOption = opt
	})
}

// SetSearchQuery replaces the search query
func (s *Store) SetSearchQuery(query string) {
	s.mutate("set_search_query", func(st *State) {
		st.SearchQuery = query
	})
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe registers fn to receive the state after every change
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	return s.notifier.Subscribe(fn)
}

func (s *Store) mutate(op string, fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.snapshot()
	s.mu.Unlock()

	s.metrics.ObserveMutation(storeName, op)
	s.notifier.Notify(snapshot)
}

func (s *Store) snapshot() State {
	st := s.state
	st.Filters = st.Filters.clone()
	return st
}
