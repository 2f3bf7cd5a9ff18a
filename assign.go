// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbuild

import "strings"

// Assignment is an ordered sequence of column settings for UPDATE and
// INSERT statements. Order is preserved into the generated SQL and
// duplicate targets are kept; merging them is the caller's business.
//
// The zero Assignment sets nothing.
type Assignment struct {
	pairs []assignPair
}

// assignPair is one "target = value" setting. A nil value sets the target
// to NULL.
type assignPair struct {
	target Field
	value  Field
}

// Assign sets target to the given value field. A nil value sets the
// target to SQL NULL.
func Assign(target, value Field) Assignment {
	return Assignment{pairs: []assignPair{{target: target, value: value}}}
}

// Concat returns the settings of a followed by the settings of b.
func (a Assignment) Concat(b Assignment) Assignment {
	pairs := make([]assignPair, 0, len(a.pairs)+len(b.pairs))
	pairs = append(pairs, a.pairs...)
	pairs = append(pairs, b.pairs...)
	return Assignment{pairs: pairs}
}

// Len returns the number of settings.
func (a Assignment) Len() int { return len(a.pairs) }

// WriteSQL appends the settings to b, joined by ", ". With withField each
// setting renders as "target = value"; without it only the values are
// emitted, for statements that fix the column order elsewhere. Targets
// render unqualified, as SET clauses require; values render qualified.
func (a Assignment) WriteSQL(b *strings.Builder, withField bool) {
	for i, p := range a.pairs {
		if i > 0 {
			b.WriteString(", ")
		}
		if withField {
			p.target.WriteSQL(b, false)
			b.WriteString(" = ")
		}
		if p.value == nil {
			b.WriteString("NULL")
		} else {
			p.value.WriteSQL(b, true)
		}
	}
}

// Render returns the SQL text of the settings.
func (a Assignment) Render(withField bool) string {
	var b strings.Builder
	a.WriteSQL(&b, withField)
	return b.String()
}

// Targets returns the target columns in setting order.
func (a Assignment) Targets() FieldList {
	out := make(FieldList, 0, len(a.pairs))
	for _, p := range a.pairs {
		out = append(out, p.target)
	}
	return out
}

// Values returns the value side of the settings in order, with a NULL
// literal standing in for absent values. INSERT ... SELECT statements use
// this as their select list.
func (a Assignment) Values() FieldList {
	out := make(FieldList, 0, len(a.pairs))
	for _, p := range a.pairs {
		if p.value == nil {
			out = append(out, nullField)
		} else {
			out = append(out, p.value)
		}
	}
	return out
}

// CollectTables adds the tables referenced by targets and present values
// to ts.
func (a Assignment) CollectTables(ts TableSet) {
	for _, p := range a.pairs {
		p.target.CollectTables(ts)
		if p.value != nil {
			p.value.CollectTables(ts)
		}
	}
}
