// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbuild

import "strings"

// Predicate is the payload of a Criterion. The built-in payloads cover
// comparisons, AND/OR/NOT combination and NULL tests; new kinds of
// condition can be added from outside the package by implementing
// Predicate and wrapping it with NewCriterion.
type Predicate interface {
	WriteSQL(b *strings.Builder, qualified bool)
	CollectTables(ts TableSet)
	SplitAggregate(group *FieldList, agg *bool)
}

// Criterion is a boolean condition for WHERE and HAVING clauses. The zero
// Criterion is the empty condition: it renders as no text, references no
// tables and is the identity element of And and Or.
type Criterion struct {
	p Predicate
}

// NewCriterion wraps a predicate in a Criterion.
func NewCriterion(p Predicate) Criterion { return Criterion{p: p} }

// IsEmpty reports whether c is the empty condition.
func (c Criterion) IsEmpty() bool { return c.p == nil }

func (c Criterion) WriteSQL(b *strings.Builder, qualified bool) {
	if c.p == nil {
		return
	}
	c.p.WriteSQL(b, qualified)
}

// Render returns the SQL text of the condition, "" when empty.
func (c Criterion) Render(qualified bool) string {
	var b strings.Builder
	c.WriteSQL(&b, qualified)
	return b.String()
}

func (c Criterion) CollectTables(ts TableSet) {
	if c.p != nil {
		c.p.CollectTables(ts)
	}
}

func (c Criterion) SplitAggregate(group *FieldList, agg *bool) {
	if c.p != nil {
		c.p.SplitAggregate(group, agg)
	}
}

// And returns c AND o.
func (c Criterion) And(o Criterion) Criterion { return And(c, o) }

// Or returns c OR o.
func (c Criterion) Or(o Criterion) Criterion { return Or(c, o) }

// comparePred is a binary comparison. The suffix carries trailing
// operator text such as an ESCAPE clause.
type comparePred struct {
	left   Field
	op     string
	right  Field
	suffix string
}

func (p comparePred) WriteSQL(b *strings.Builder, qualified bool) {
	p.left.WriteSQL(b, qualified)
	b.WriteByte(' ')
	b.WriteString(p.op)
	b.WriteByte(' ')
	p.right.WriteSQL(b, qualified)
	if p.suffix != "" {
		b.WriteByte(' ')
		b.WriteString(p.suffix)
	}
}

func (p comparePred) CollectTables(ts TableSet) {
	p.left.CollectTables(ts)
	p.right.CollectTables(ts)
}

// A comparison is never itself an aggregate; its operands may be.
func (p comparePred) SplitAggregate(group *FieldList, agg *bool) {
	p.left.SplitAggregate(group, agg)
	p.right.SplitAggregate(group, agg)
}

// Compare builds the comparison "left op right". The operator is emitted
// verbatim between the rendered operands.
func Compare(left Field, op string, right Field) Criterion {
	return Criterion{p: comparePred{left: left, op: op, right: right}}
}

// CompareSuffix is Compare with trailing operator text, as in
// "left LIKE right ESCAPE '!'".
func CompareSuffix(left Field, op string, right Field, suffix string) Criterion {
	return Criterion{p: comparePred{left: left, op: op, right: right, suffix: suffix}}
}

// boolPred combines subconditions with AND or OR.
type boolPred struct {
	op   string // "AND" or "OR"
	subs []Criterion
}

func (p boolPred) WriteSQL(b *strings.Builder, qualified bool) {
	for i, sub := range p.subs {
		if i > 0 {
			b.WriteByte(' ')
			b.WriteString(p.op)
			b.WriteByte(' ')
		}
		// Parenthesise a nested combination of the other operator.
		if nested, ok := sub.p.(boolPred); ok && nested.op != p.op {
			b.WriteByte('(')
			sub.WriteSQL(b, qualified)
			b.WriteByte(')')
		} else {
			sub.WriteSQL(b, qualified)
		}
	}
}

func (p boolPred) CollectTables(ts TableSet) {
	for _, sub := range p.subs {
		sub.CollectTables(ts)
	}
}

func (p boolPred) SplitAggregate(group *FieldList, agg *bool) {
	for _, sub := range p.subs {
		sub.SplitAggregate(group, agg)
	}
}

// combine flattens nested applications of the same operator and drops
// empty conditions, which makes the empty Criterion an identity element.
func combine(op string, cs []Criterion) Criterion {
	var subs []Criterion
	for _, c := range cs {
		if c.IsEmpty() {
			continue
		}
		if nested, ok := c.p.(boolPred); ok && nested.op == op {
			subs = append(subs, nested.subs...)
			continue
		}
		subs = append(subs, c)
	}
	switch len(subs) {
	case 0:
		return Criterion{}
	case 1:
		return subs[0]
	}
	return Criterion{p: boolPred{op: op, subs: subs}}
}

// And returns the conjunction of the given conditions. Empty conditions
// are skipped; And of nothing is the empty condition.
func And(cs ...Criterion) Criterion { return combine("AND", cs) }

// Or returns the disjunction of the given conditions.
func Or(cs ...Criterion) Criterion { return combine("OR", cs) }

// notPred negates a condition.
type notPred struct {
	sub Criterion
}

func (p notPred) WriteSQL(b *strings.Builder, qualified bool) {
	b.WriteString("NOT (")
	p.sub.WriteSQL(b, qualified)
	b.WriteByte(')')
}

func (p notPred) CollectTables(ts TableSet) { p.sub.CollectTables(ts) }

func (p notPred) SplitAggregate(group *FieldList, agg *bool) {
	p.sub.SplitAggregate(group, agg)
}

// Not negates a condition. Not of the empty condition is empty.
func Not(c Criterion) Criterion {
	if c.IsEmpty() {
		return c
	}
	return Criterion{p: notPred{sub: c}}
}

// nullPred is an IS NULL or IS NOT NULL test.
type nullPred struct {
	f   Field
	not bool
}

func (p nullPred) WriteSQL(b *strings.Builder, qualified bool) {
	p.f.WriteSQL(b, qualified)
	if p.not {
		b.WriteString(" IS NOT NULL")
	} else {
		b.WriteString(" IS NULL")
	}
}

func (p nullPred) CollectTables(ts TableSet) { p.f.CollectTables(ts) }

func (p nullPred) SplitAggregate(group *FieldList, agg *bool) {
	p.f.SplitAggregate(group, agg)
}

// IsNull tests f for NULL.
func IsNull(f Field) Criterion { return Criterion{p: nullPred{f: f}} }

// IsNotNull tests f for NOT NULL.
func IsNotNull(f Field) Criterion { return Criterion{p: nullPred{f: f, not: true}} }
