package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/plantdex/internal/db"
)

// SearchCount returns document count via FT.SEARCH with LIMIT 0 0.
func (s *Store) SearchCount(ctx context.Context, index, query string) (int, error) {
	raw, err := s.do(ctx, s.countCmd(index, query)).ToArray()
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Err: err}
	}
	return parseCount(raw)
}

// SearchCountMulti counts several queries in a single DoMulti round-trip.
func (s *Store) SearchCountMulti(ctx context.Context, index string, queries []string) ([]int, error) {
	if len(queries) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, len(queries))
	for i, q := range queries {
		cmds[i] = s.countCmd(index, q)
	}

	out := make([]int, len(queries))
	for i, res := range s.client.DoMulti(ctx, cmds...) {
		raw, err := res.ToArray()
		if err != nil {
			return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("query %q: %w", queries[i], err)}
		}
		if out[i], err = parseCount(raw); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Store) countCmd(index, query string) rueidis.Completed {
	return s.b().Arbitrary("FT.SEARCH").
		Args(index, query, "LIMIT", "0", "0", "DIALECT", "2").
		Build()
}

// Aggregate runs FT.AGGREGATE and returns its rows.
func (s *Store) Aggregate(ctx context.Context, q *db.AggregateQuery) ([]db.Row, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}

	cmd := s.b().Arbitrary("FT.AGGREGATE").Args(buildAggregateArgs(q)...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}
	return parseAggregateResult(raw), nil
}

// TagVals lists the distinct values of a TAG attribute.
func (s *Store) TagVals(ctx context.Context, index, field string) ([]string, error) {
	cmd := s.b().Arbitrary("FT.TAGVALS").Args(index, field).Build()
	vals, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpTagVals, Err: err}
	}
	return vals, nil
}

func buildAggregateArgs(q *db.AggregateQuery) []string {
	query := q.Query
	if query == "" {
		query = db.MatchAll
	}
	args := []string{q.IndexName, query}

	if len(q.Load) > 0 {
		args = append(args, "LOAD", strconv.Itoa(len(q.Load)))
		args = append(args, q.Load...)
	}

	if q.GroupBy != nil {
		args = append(args, "GROUPBY", strconv.Itoa(len(q.GroupBy)))
		args = append(args, q.GroupBy...)
		for _, r := range q.Reducers {
			args = append(args, "REDUCE", r.Func, strconv.Itoa(len(r.Args)))
			args = append(args, r.Args...)
			if r.As != "" {
				args = append(args, "AS", r.As)
			}
		}
	}

	if len(q.SortBy) > 0 {
		args = append(args, "SORTBY", strconv.Itoa(len(q.SortBy)*2))
		for _, k := range q.SortBy {
			dir := "ASC"
			if k.Desc {
				dir = "DESC"
			}
			args = append(args, "@"+k.Field, dir)
		}
	}

	if q.Limit > 0 {
		args = append(args, "LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit))
	}

	return append(args, "DIALECT", "2")
}

// --- Result parsing ---

func parseCount(raw []rueidis.RedisMessage) (int, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

// parseAggregateResult reads [total, row1, row2, ...] where each row is a flat
// name/value array. The leading total is not reliable for aggregations and is ignored.
func parseAggregateResult(raw []rueidis.RedisMessage) []db.Row {
	if len(raw) < 2 {
		return nil
	}
	rows := make([]db.Row, 0, len(raw)-1)
	for _, msg := range raw[1:] {
		fields, err := msg.ToArray()
		if err != nil {
			continue
		}
		rows = append(rows, parseFieldPairs(fields))
	}
	return rows
}

func parseFieldPairs(fields []rueidis.RedisMessage) db.Row {
	m := make(db.Row, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}
