package db

// SortKey is one SORTBY property of an aggregation.
type SortKey struct {
	Field string
	Desc  bool
}

// Reducer is one REDUCE clause of a GROUPBY step.
type Reducer struct {
	Func string // COUNT, MIN, MAX, ...
	Args []string
	As   string
}

// AggregateQuery is the input for FT.AGGREGATE.
//
// Steps run in this order: LOAD, GROUPBY with reducers, SORTBY, LIMIT.
// A nil GroupBy skips grouping; an empty non-nil GroupBy groups everything
// into one row (GROUPBY 0).
type AggregateQuery struct {
	IndexName string
	Query     string
	Load      []string
	GroupBy   []string
	Reducers  []Reducer
	SortBy    []SortKey
	Offset    int
	Limit     int
}

// Row is one aggregation result row, property name to raw value.
type Row map[string]string
