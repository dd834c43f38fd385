package db

import (
	"fmt"
	"strings"
	"time"
)

// SearchParamType defines how a query parameter maps onto a column.
type SearchParamType int

const (
	SearchParamToken  SearchParamType = iota // exact match on a code/status column
	SearchParamDate                          // supports gt/lt/ge/le/ne prefixes
	SearchParamString                        // case-insensitive substring match
	SearchParamRef                           // foreign key match
	SearchParamNumber                        // supports gt/lt/ge/le/ne prefixes
)

// SearchParamConfig maps a query parameter to its database column.
type SearchParamConfig struct {
	Type   SearchParamType
	Column string
}

// SearchQuery builds SQL WHERE clauses from list filter parameters.
// It encapsulates the common search pattern used across all domain repositories.
type SearchQuery struct {
	table   string
	cols    string
	where   string
	args    []interface{}
	idx     int
	orderBy string
}

// NewSearchQuery creates a new SearchQuery for the given table and columns.
func NewSearchQuery(table, cols string) *SearchQuery {
	return &SearchQuery{
		table: table,
		cols:  cols,
		idx:   1,
	}
}

// Add appends a raw WHERE clause fragment (without leading "AND").
func (q *SearchQuery) Add(clause string, args ...interface{}) {
	q.where += " AND " + clause
	q.args = append(q.args, args...)
	q.idx += len(args)
}

// Idx returns the next available parameter index.
func (q *SearchQuery) Idx() int { return q.idx }

// ApplyParam applies a single search parameter using the config.
func (q *SearchQuery) ApplyParam(config SearchParamConfig, value string) {
	switch config.Type {
	case SearchParamDate:
		q.addOrdered(config.Column, value, true)
	case SearchParamNumber:
		q.addOrdered(config.Column, value, false)
	case SearchParamString:
		q.where += fmt.Sprintf(" AND %s ILIKE $%d", config.Column, q.idx)
		q.args = append(q.args, "%"+value+"%")
		q.idx++
	default: // token, ref
		q.where += fmt.Sprintf(" AND %s = $%d", config.Column, q.idx)
		q.args = append(q.args, value)
		q.idx++
	}
}

// ApplyParams applies all matching search parameters from the given map.
func (q *SearchQuery) ApplyParams(params map[string]string, configs map[string]SearchParamConfig) {
	for name, value := range params {
		if config, ok := configs[name]; ok {
			q.ApplyParam(config, value)
		}
	}
}

// addOrdered handles values with a comparison prefix such as "ge2024-01-01".
func (q *SearchQuery) addOrdered(column, raw string, isDate bool) {
	op := "="
	value := raw
	if len(raw) >= 2 {
		switch strings.ToLower(raw[:2]) {
		case "gt":
			op, value = ">", raw[2:]
		case "lt":
			op, value = "<", raw[2:]
		case "ge":
			op, value = ">=", raw[2:]
		case "le":
			op, value = "<=", raw[2:]
		case "ne":
			op, value = "!=", raw[2:]
		}
	}
	if isDate {
		if t, err := parseFlexDate(value); err == nil {
			q.where += fmt.Sprintf(" AND %s %s $%d", column, op, q.idx)
			q.args = append(q.args, t)
			q.idx++
			return
		}
	}
	q.where += fmt.Sprintf(" AND %s %s $%d", column, op, q.idx)
	q.args = append(q.args, value)
	q.idx++
}

// OrderBy sets the ORDER BY clause (without the "ORDER BY" keyword).
func (q *SearchQuery) OrderBy(orderBy string) {
	q.orderBy = orderBy
}

// CountSQL returns the count query SQL.
func (q *SearchQuery) CountSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE 1=1%s", q.table, q.where)
}

// CountArgs returns the arguments for the count query.
func (q *SearchQuery) CountArgs() []interface{} {
	return q.args
}

// DataSQL returns the data query SQL with LIMIT/OFFSET.
func (q *SearchQuery) DataSQL(limit, offset int) string {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE 1=1%s", q.cols, q.table, q.where)
	if q.orderBy != "" {
		sql += " ORDER BY " + q.orderBy
	}
	sql += fmt.Sprintf(" LIMIT $%d OFFSET $%d", q.idx, q.idx+1)
	return sql
}

// DataArgs returns the arguments for the data query.
func (q *SearchQuery) DataArgs(limit, offset int) []interface{} {
	return append(append([]interface{}{}, q.args...), limit, offset)
}

func parseFlexDate(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}
