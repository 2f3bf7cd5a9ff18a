// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbuild

import "strings"

// Field is the capability shared by everything that can stand in a field
// position of a statement: column references, literals, function
// applications and lists of those. A Field must be immutable once built;
// a field stored in several lists or conditions is shared, never copied.
//
// New kinds of field can be added from outside the package by
// implementing Field.
type Field interface {
	// WriteSQL appends the SQL text of the field to b. When qualified
	// is true, column references are prefixed with their table.
	WriteSQL(b *strings.Builder, qualified bool)

	// CollectTables adds every table referenced below the field to ts.
	CollectTables(ts TableSet)

	// SplitAggregate separates aggregate from plain column references.
	// Plain columns append themselves to group. An aggregate
	// application sets *agg and does not descend into its argument: the
	// argument is summarised away and must not be offered for grouping.
	// Every other computed field descends into its operands.
	SplitAggregate(group *FieldList, agg *bool)
}

// Render returns the SQL text of a single field.
func Render(f Field, qualified bool) string {
	var b strings.Builder
	f.WriteSQL(&b, qualified)
	return b.String()
}

// Column is a reference to a named column, optionally belonging to a
// table occurrence.
type Column struct {
	table Table
	name  string
}

// NewColumn returns a reference to the named column of table t. A zero t
// gives the column no table affinity.
func NewColumn(t Table, name string) Column {
	return Column{table: t, name: name}
}

// Table returns the table occurrence the column belongs to.
func (c Column) Table() Table { return c.table }

// Name returns the column name.
func (c Column) Name() string { return c.name }

func (c Column) WriteSQL(b *strings.Builder, qualified bool) {
	if qualified && !c.table.IsZero() {
		b.WriteString(c.table.refName())
		b.WriteByte('.')
	}
	b.WriteString(c.name)
}

func (c Column) CollectTables(ts TableSet) {
	if !c.table.IsZero() {
		ts.Add(c.table)
	}
}

// A bare column is something to group by, never an aggregate.
func (c Column) SplitAggregate(group *FieldList, agg *bool) {
	*group = append(*group, c)
}

// FieldList is an ordered sequence of fields, rendered separated by
// commas. Lists never deduplicate: concatenation preserves argument order
// and a repeated field is emitted repeatedly.
type FieldList []Field

// Fields builds a list from the given fields, in order.
func Fields(fs ...Field) FieldList {
	list := make(FieldList, 0, len(fs))
	return append(list, fs...)
}

// Append returns a new list holding the receiver's fields followed by fs.
// The receiver is not modified.
func (l FieldList) Append(fs ...Field) FieldList {
	out := make(FieldList, 0, len(l)+len(fs))
	out = append(out, l...)
	return append(out, fs...)
}

// Concat returns the concatenation of both lists, in order.
func (l FieldList) Concat(m FieldList) FieldList {
	out := make(FieldList, 0, len(l)+len(m))
	out = append(out, l...)
	return append(out, m...)
}

func (l FieldList) WriteSQL(b *strings.Builder, qualified bool) {
	for i, f := range l {
		if i > 0 {
			b.WriteString(", ")
		}
		f.WriteSQL(b, qualified)
	}
}

func (l FieldList) CollectTables(ts TableSet) {
	for _, f := range l {
		f.CollectTables(ts)
	}
}

// Each element is judged on its own: one aggregate in the list sets *agg
// without keeping plain siblings out of group.
func (l FieldList) SplitAggregate(group *FieldList, agg *bool) {
	for _, f := range l {
		f.SplitAggregate(group, agg)
	}
}

// rawField is verbatim SQL text. Encoded literals and caller-supplied raw
// SQL both end up here; by the time a rawField exists its text is trusted.
type rawField struct {
	sql string
}

// nullField is the NULL literal emitted for absent assignment values.
var nullField = rawField{sql: "NULL"}

func (f rawField) WriteSQL(b *strings.Builder, qualified bool) {
	b.WriteString(f.sql)
}

func (f rawField) CollectTables(ts TableSet) {}

// A literal neither aggregates nor wants grouping.
func (f rawField) SplitAggregate(group *FieldList, agg *bool) {}

// funcField is a function application: opening text, an argument field,
// closing text. Aggregate applications consume their argument instead of
// exposing it to SplitAggregate.
type funcField struct {
	name      string // opening text, typically "fn("
	arg       Field
	suffix    string // closing text, typically ")"
	aggregate bool
}

func (f funcField) WriteSQL(b *strings.Builder, qualified bool) {
	b.WriteString(f.name)
	f.arg.WriteSQL(b, qualified)
	b.WriteString(f.suffix)
}

func (f funcField) CollectTables(ts TableSet) {
	f.arg.CollectTables(ts)
}

func (f funcField) SplitAggregate(group *FieldList, agg *bool) {
	if f.aggregate {
		*agg = true
		return
	}
	f.arg.SplitAggregate(group, agg)
}

// opField is a binary operator application over two fields.
type opField struct {
	left, right Field
	op          string
}

func (f opField) WriteSQL(b *strings.Builder, qualified bool) {
	f.left.WriteSQL(b, qualified)
	b.WriteByte(' ')
	b.WriteString(f.op)
	b.WriteByte(' ')
	f.right.WriteSQL(b, qualified)
}

func (f opField) CollectTables(ts TableSet) {
	f.left.CollectTables(ts)
	f.right.CollectTables(ts)
}

func (f opField) SplitAggregate(group *FieldList, agg *bool) {
	f.left.SplitAggregate(group, agg)
	f.right.SplitAggregate(group, agg)
}

// asField renames a field for the duration of one statement.
type asField struct {
	f    Field
	name string
}

func (f asField) WriteSQL(b *strings.Builder, qualified bool) {
	f.f.WriteSQL(b, qualified)
	b.WriteString(" AS ")
	b.WriteString(f.name)
}

func (f asField) CollectTables(ts TableSet) { f.f.CollectTables(ts) }

// Grouping works on the underlying field, not on its alias.
func (f asField) SplitAggregate(group *FieldList, agg *bool) {
	f.f.SplitAggregate(group, agg)
}
