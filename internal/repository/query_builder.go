package repository

import (
	"fmt"
	"strings"
)

// query accumulates a statement with positional placeholders. Arguments are
// numbered in the order they are bound, so fragments that bind values must be
// rendered in the same order they appear in the final SQL.
type query struct {
	base       string
	conditions []string
	tail       []string
	args       []interface{}
}

func newQuery(base string) *query {
	return &query{base: base}
}

// Bind appends an argument and returns its placeholder.
func (q *query) Bind(v interface{}) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

// Where adds a literal predicate.
func (q *query) Where(cond string) *query {
	q.conditions = append(q.conditions, cond)
	return q
}

// WhereBound binds every value and substitutes the placeholders into format
// in order.
func (q *query) WhereBound(format string, values ...interface{}) *query {
	placeholders := make([]interface{}, len(values))
	for i, v := range values {
		placeholders[i] = q.Bind(v)
	}
	return q.Where(fmt.Sprintf(format, placeholders...))
}

// Append adds a fragment after the WHERE clause.
func (q *query) Append(fragment string) *query {
	q.tail = append(q.tail, fragment)
	return q
}

// SQL renders the statement.
func (q *query) SQL() string {
	var b strings.Builder
	b.WriteString(q.base)
	if len(q.conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.conditions, " AND "))
	}
	for _, fragment := range q.tail {
		b.WriteString(" ")
		b.WriteString(fragment)
	}
	return b.String()
}

// Args returns the bound arguments.
func (q *query) Args() []interface{} {
	return q.args
}

func likePattern(term string) string {
	return "%" + strings.TrimSpace(term) + "%"
}
