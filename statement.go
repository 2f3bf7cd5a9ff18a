// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbuild

import (
	"strconv"
	"strings"
)

// SelectStatement assembles a SELECT query from fields, tables and
// conditions. Fields render qualified, so the same column reference works
// unambiguously however many tables take part. Methods mutate and return
// the statement for chaining.
type SelectStatement struct {
	fields   FieldList
	from     []Table
	where    Criterion
	groupBy  FieldList
	having   Criterion
	orderBy  FieldList
	distinct bool
	limit    int
	offset   int
}

// Select starts a SELECT statement over the given result fields.
func Select(fs ...Field) *SelectStatement {
	return &SelectStatement{fields: Fields(fs...), limit: -1, offset: -1}
}

// From names the tables to select from. Without it, AutoComplete derives
// the table list from the fields and conditions.
func (s *SelectStatement) From(ts ...Table) *SelectStatement {
	s.from = append(s.from, ts...)
	return s
}

// Where adds conditions, combined with AND.
func (s *SelectStatement) Where(cs ...Criterion) *SelectStatement {
	s.where = And(append([]Criterion{s.where}, cs...)...)
	return s
}

// GroupBy sets the grouping fields. Setting them explicitly stops
// AutoComplete from deriving its own.
func (s *SelectStatement) GroupBy(fs ...Field) *SelectStatement {
	s.groupBy = append(s.groupBy, fs...)
	return s
}

// Having adds post-grouping conditions, combined with AND.
func (s *SelectStatement) Having(cs ...Criterion) *SelectStatement {
	s.having = And(append([]Criterion{s.having}, cs...)...)
	return s
}

// OrderBy sets the ordering fields. Wrap them in Desc or Asc to fix the
// direction.
func (s *SelectStatement) OrderBy(fs ...Field) *SelectStatement {
	s.orderBy = append(s.orderBy, fs...)
	return s
}

// Distinct makes the statement select distinct rows.
func (s *SelectStatement) Distinct() *SelectStatement {
	s.distinct = true
	return s
}

// Limit caps the number of returned rows.
func (s *SelectStatement) Limit(n int) *SelectStatement {
	s.limit = n
	return s
}

// Offset skips the first n rows.
func (s *SelectStatement) Offset(n int) *SelectStatement {
	s.offset = n
	return s
}

// AutoComplete fills in the clauses the statement can derive itself. An
// empty FROM becomes the sorted set of tables referenced anywhere in the
// statement. An empty GROUP BY becomes the non-aggregate result fields,
// but only when the result list mixes aggregates with plain fields;
// all-plain and all-aggregate lists need no grouping.
func (s *SelectStatement) AutoComplete() *SelectStatement {
	if len(s.from) == 0 {
		ts := NewTableSet()
		s.fields.CollectTables(ts)
		s.where.CollectTables(ts)
		s.groupBy.CollectTables(ts)
		s.having.CollectTables(ts)
		s.orderBy.CollectTables(ts)
		s.from = ts.Sorted()
	}
	if len(s.groupBy) == 0 {
		var group FieldList
		var agg bool
		s.fields.SplitAggregate(&group, &agg)
		if agg && len(group) > 0 {
			s.groupBy = group
		}
	}
	return s
}

// SQL renders the statement. Clauses left empty are omitted; the
// statement is rendered as given, so call AutoComplete first if the FROM
// or GROUP BY clauses should be derived.
func (s *SelectStatement) SQL() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	if s.distinct {
		b.WriteString("DISTINCT ")
	}
	s.fields.WriteSQL(&b, true)
	if len(s.from) > 0 {
		b.WriteString(" FROM ")
		writeTables(&b, s.from)
	}
	if !s.where.IsEmpty() {
		b.WriteString(" WHERE ")
		s.where.WriteSQL(&b, true)
	}
	if len(s.groupBy) > 0 {
		b.WriteString(" GROUP BY ")
		s.groupBy.WriteSQL(&b, true)
	}
	if !s.having.IsEmpty() {
		b.WriteString(" HAVING ")
		s.having.WriteSQL(&b, true)
	}
	if len(s.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		s.orderBy.WriteSQL(&b, true)
	}
	if s.limit >= 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(s.limit))
	}
	if s.offset > 0 {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.Itoa(s.offset))
	}
	return b.String()
}

// InsertStatement assembles an INSERT. Rows come from an Assignment, an
// explicit query, or an implicit SELECT when the assigned values
// reference other tables.
type InsertStatement struct {
	table   Table
	values  Assignment
	columns FieldList
	query   *SelectStatement
}

// InsertInto starts an INSERT into the given table.
func InsertInto(t Table) *InsertStatement {
	return &InsertStatement{table: t}
}

// Values adds column settings for the inserted row.
func (s *InsertStatement) Values(as ...Assignment) *InsertStatement {
	for _, a := range as {
		s.values = s.values.Concat(a)
	}
	return s
}

// Columns names the target columns explicitly. Without it the column
// list is taken from the assigned settings.
func (s *InsertStatement) Columns(fs ...Field) *InsertStatement {
	s.columns = append(s.columns, fs...)
	return s
}

// Select makes the statement insert the rows produced by q.
func (s *InsertStatement) Select(q *SelectStatement) *InsertStatement {
	s.query = q
	return s
}

// valuesNeedSelect reports whether any assigned value references a
// table. Such an INSERT must read the values through a SELECT.
func (s *InsertStatement) valuesNeedSelect() bool {
	ts := NewTableSet()
	s.values.Values().CollectTables(ts)
	return ts.Len() > 0
}

// SQL renders the statement. The table renders by name alone; aliasing
// an INSERT target has no meaning.
func (s *InsertStatement) SQL() string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(s.table.Name())
	cols := s.columns
	if len(cols) == 0 {
		cols = s.values.Targets()
	}
	if len(cols) > 0 {
		b.WriteString(" (")
		cols.WriteSQL(&b, false)
		b.WriteByte(')')
	}
	switch {
	case s.query != nil:
		b.WriteByte(' ')
		b.WriteString(s.query.SQL())
	case s.valuesNeedSelect():
		ts := NewTableSet()
		values := s.values.Values()
		values.CollectTables(ts)
		b.WriteString(" SELECT ")
		values.WriteSQL(&b, true)
		b.WriteString(" FROM ")
		writeTables(&b, ts.Sorted())
	case s.values.Len() > 0:
		b.WriteString(" VALUES (")
		s.values.WriteSQL(&b, false)
		b.WriteByte(')')
	default:
		b.WriteString(" DEFAULT VALUES")
	}
	return b.String()
}

// UpdateStatement assembles an UPDATE.
type UpdateStatement struct {
	table Table
	set   Assignment
	from  []Table
	where Criterion
}

// Update starts an UPDATE of the given table.
func Update(t Table) *UpdateStatement {
	return &UpdateStatement{table: t}
}

// Set adds column settings.
func (s *UpdateStatement) Set(as ...Assignment) *UpdateStatement {
	for _, a := range as {
		s.set = s.set.Concat(a)
	}
	return s
}

// From names extra tables read by the settings or conditions.
func (s *UpdateStatement) From(ts ...Table) *UpdateStatement {
	s.from = append(s.from, ts...)
	return s
}

// Where adds conditions, combined with AND.
func (s *UpdateStatement) Where(cs ...Criterion) *UpdateStatement {
	s.where = And(append([]Criterion{s.where}, cs...)...)
	return s
}

// AutoComplete derives the FROM clause from the tables referenced by the
// settings and conditions. The updated table itself is excluded; naming
// it again in FROM would join the table against itself.
func (s *UpdateStatement) AutoComplete() *UpdateStatement {
	if len(s.from) == 0 {
		ts := NewTableSet()
		s.set.CollectTables(ts)
		s.where.CollectTables(ts)
		delete(ts, s.table)
		s.from = ts.Sorted()
	}
	return s
}

func (s *UpdateStatement) SQL() string {
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(s.table.Name())
	b.WriteString(" SET ")
	s.set.WriteSQL(&b, true)
	if len(s.from) > 0 {
		b.WriteString(" FROM ")
		writeTables(&b, s.from)
	}
	if !s.where.IsEmpty() {
		b.WriteString(" WHERE ")
		s.where.WriteSQL(&b, true)
	}
	return b.String()
}

// DeleteStatement assembles a DELETE.
type DeleteStatement struct {
	table Table
	where Criterion
}

// DeleteFrom starts a DELETE from the given table.
func DeleteFrom(t Table) *DeleteStatement {
	return &DeleteStatement{table: t}
}

// Where adds conditions, combined with AND.
func (s *DeleteStatement) Where(cs ...Criterion) *DeleteStatement {
	s.where = And(append([]Criterion{s.where}, cs...)...)
	return s
}

func (s *DeleteStatement) SQL() string {
	var b strings.Builder
	b.WriteString("DELETE FROM ")
	b.WriteString(s.table.Name())
	if !s.where.IsEmpty() {
		b.WriteString(" WHERE ")
		s.where.WriteSQL(&b, true)
	}
	return b.String()
}

func writeTables(b *strings.Builder, ts []Table) {
	for i, t := range ts {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
	}
}
