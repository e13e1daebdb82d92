package postgrest

import (
	"net/url"
	"strings"
)

// Query builds the table path and filter string of one PostgREST request.
type Query struct {
	table  string
	params url.Values
	single bool
}

// From starts a query against table.
func From(table string) *Query {
	return &Query{table: table, params: url.Values{}}
}

// Select sets the column list, which may include embedded resources such as
// "id,users(name)".
func (q *Query) Select(columns string) *Query {
	q.params.Set("select", compact(columns))
	return q
}

func (q *Query) Eq(col, val string) *Query  { return q.filter(col, "eq."+val) }
func (q *Query) Neq(col, val string) *Query { return q.filter(col, "neq."+val) }
func (q *Query) Gte(col, val string) *Query { return q.filter(col, "gte."+val) }
func (q *Query) Lte(col, val string) *Query { return q.filter(col, "lte."+val) }

// In filters col to one of vals.
func (q *Query) In(col string, vals []string) *Query {
	return q.filter(col, "in."+list(vals))
}

// NotIn filters col to none of vals.
func (q *Query) NotIn(col string, vals []string) *Query {
	return q.filter(col, "not.in."+list(vals))
}

// Order appends an ordering term. Repeated calls add tiebreakers.
func (q *Query) Order(col string, desc bool) *Query {
	term := col + ".asc"
	if desc {
		term = col + ".desc"
	}
	if prev := q.params.Get("order"); prev != "" {
		term = prev + "," + term
	}
	q.params.Set("order", term)
	return q
}

// Single asks for exactly one row as a JSON object.
func (q *Query) Single() *Query {
	q.single = true
	return q
}

func (q *Query) filter(col, expr string) *Query {
	q.params.Add(col, expr)
	return q
}

// Path returns "/{table}?{params}" relative to the REST root.
func (q *Query) Path() string {
	if len(q.params) == 0 {
		return "/" + q.table
	}
	return "/" + q.table + "?" + q.params.Encode()
}

// list renders an in.(…) operand. Values are double-quoted so commas and
// parentheses inside them survive.
func list(vals []string) string {
	quoted := make([]string, len(vals))
	for i, v := range vals {
		v = strings.ReplaceAll(v, `\`, `\\`)
		v = strings.ReplaceAll(v, `"`, `\"`)
		quoted[i] = `"` + v + `"`
	}
	return "(" + strings.Join(quoted, ",") + ")"
}

// compact strips whitespace from a multi-line select list.
func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}
