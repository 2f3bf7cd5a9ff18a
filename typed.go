// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbuild

import (
	"strings"
	"time"

	"github.com/canonical/sqlbuild/internal/quote"
)

// Type describes one scalar SQL type: the Go type T carrying its values
// and the encoder turning a value into a SQL literal. Its methods build
// the typed constructors and operators for that type. The encoder is the
// single place where escaping happens; a Type with a sloppy encoder is an
// injection hole.
type Type[T any] struct {
	Encode func(T) string
}

// The built-in scalar types. Project-specific types are declared the same
// way:
//
//	var Money = sqlbuild.Type[int64]{Encode: encodeCents}
var (
	Integer   = Type[int64]{Encode: quote.Int64}
	Float     = Type[float64]{Encode: quote.Float64}
	Text      = Type[string]{Encode: quote.String}
	Boolean   = Type[bool]{Encode: quote.Bool}
	Timestamp = Type[time.Time]{Encode: quote.Timestamp}
	Date      = Type[time.Time]{Encode: quote.Date}
	Blob      = Type[[]byte]{Encode: quote.Bytes}
)

// Typed is a field carrying the scalar type T. The tag exists only in the
// type system: comparisons and assignments accept matching Typed values
// or plain T values and nothing else, so a text field can never meet an
// integer literal. At runtime a Typed field is just the field it wraps.
type Typed[T any] struct {
	f   Field
	enc func(T) string
}

func (t Typed[T]) WriteSQL(b *strings.Builder, qualified bool) { t.f.WriteSQL(b, qualified) }

func (t Typed[T]) CollectTables(ts TableSet) { t.f.CollectTables(ts) }

func (t Typed[T]) SplitAggregate(group *FieldList, agg *bool) { t.f.SplitAggregate(group, agg) }

// Column returns a typed reference to the named column of table tab.
func (ty Type[T]) Column(tab Table, name string) Typed[T] {
	return Typed[T]{f: NewColumn(tab, name), enc: ty.Encode}
}

// Value wraps a Go value as a SQL literal, escaped by the type's encoder.
func (ty Type[T]) Value(v T) Typed[T] {
	return Typed[T]{f: rawField{sql: ty.Encode(v)}, enc: ty.Encode}
}

// Raw marks sql as already valid SQL text. No escaping is applied; the
// caller vouches for the text.
func (ty Type[T]) Raw(sql string) Typed[T] {
	return Typed[T]{f: rawField{sql: sql}, enc: ty.Encode}
}

// Null is the typed NULL literal.
func (ty Type[T]) Null() Typed[T] {
	return Typed[T]{f: nullField, enc: ty.Encode}
}

// Func returns a constructor for a function taking no arguments, for
// example a current-timestamp function. The name is rendered verbatim.
func (ty Type[T]) Func(name string) func() Typed[T] {
	return func() Typed[T] {
		return Typed[T]{f: rawField{sql: name}, enc: ty.Encode}
	}
}

// Apply returns a constructor applying a function to one field. The name
// carries the opening text and suffix the closing text:
//
//	var Lower = sqlbuild.Text.Apply("lower(", ")")
func (ty Type[T]) Apply(name, suffix string) func(Field) Typed[T] {
	return func(arg Field) Typed[T] {
		return Typed[T]{f: funcField{name: name, arg: arg, suffix: suffix}, enc: ty.Encode}
	}
}

// Aggregate is Apply for aggregate functions. A field built by an
// aggregate constructor reports itself to SplitAggregate and keeps its
// argument out of the grouping candidates.
func (ty Type[T]) Aggregate(name, suffix string) func(Field) Typed[T] {
	return func(arg Field) Typed[T] {
		return Typed[T]{f: funcField{name: name, arg: arg, suffix: suffix, aggregate: true}, enc: ty.Encode}
	}
}

// Operator returns a binary operator over two same-typed fields, rendered
// "left op right".
func (ty Type[T]) Operator(op string) func(Typed[T], Typed[T]) Typed[T] {
	return func(left, right Typed[T]) Typed[T] {
		return Typed[T]{f: opField{left: left, op: op, right: right}, enc: ty.Encode}
	}
}

// ScalarOperator returns an operator combining a typed field with a plain
// scalar of a second type, rendered "field op prefix encoded suffix". The
// prefix and suffix wrap the encoded operand:
//
//	var PlusInterval = sqlbuild.ScalarOperator[time.Time](sqlbuild.Text, "+", "interval ", "")
//	PlusInterval(created, "2 days") // renders: created + interval '2 days'
func ScalarOperator[T, S any](scalar Type[S], op, prefix, suffix string) func(Typed[T], S) Typed[T] {
	return func(f Typed[T], v S) Typed[T] {
		right := rawField{sql: prefix + scalar.Encode(v) + suffix}
		return Typed[T]{f: opField{left: f, op: op, right: right}, enc: f.enc}
	}
}

// value wraps a plain Go value with the field's own encoder.
func (t Typed[T]) value(v T) Typed[T] {
	return Typed[T]{f: rawField{sql: t.enc(v)}, enc: t.enc}
}

// Eq compares two same-typed fields for equality.
func (t Typed[T]) Eq(o Typed[T]) Criterion { return Compare(t, "=", o) }

// EqVal compares the field against a plain value.
func (t Typed[T]) EqVal(v T) Criterion { return Compare(t, "=", t.value(v)) }

// Ne compares two same-typed fields for inequality.
func (t Typed[T]) Ne(o Typed[T]) Criterion { return Compare(t, "<>", o) }

// NeVal compares the field against a plain value for inequality.
func (t Typed[T]) NeVal(v T) Criterion { return Compare(t, "<>", t.value(v)) }

// Lt builds "t < o".
func (t Typed[T]) Lt(o Typed[T]) Criterion { return Compare(t, "<", o) }

// LtVal builds "t < v" for a plain value.
func (t Typed[T]) LtVal(v T) Criterion { return Compare(t, "<", t.value(v)) }

// Le builds "t <= o".
func (t Typed[T]) Le(o Typed[T]) Criterion { return Compare(t, "<=", o) }

// LeVal builds "t <= v" for a plain value.
func (t Typed[T]) LeVal(v T) Criterion { return Compare(t, "<=", t.value(v)) }

// Gt builds "t > o".
func (t Typed[T]) Gt(o Typed[T]) Criterion { return Compare(t, ">", o) }

// GtVal builds "t > v" for a plain value.
func (t Typed[T]) GtVal(v T) Criterion { return Compare(t, ">", t.value(v)) }

// Ge builds "t >= o".
func (t Typed[T]) Ge(o Typed[T]) Criterion { return Compare(t, ">=", o) }

// GeVal builds "t >= v" for a plain value.
func (t Typed[T]) GeVal(v T) Criterion { return Compare(t, ">=", t.value(v)) }

// In tests the field against a list of values, "t IN (a, b, c)". In of no
// values is the empty condition.
func (t Typed[T]) In(vs ...T) Criterion {
	if len(vs) == 0 {
		return Criterion{}
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range vs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.enc(v))
	}
	b.WriteByte(')')
	return Compare(t, "IN", rawField{sql: b.String()})
}

// Set sets the field's column to a plain value in an UPDATE or INSERT.
func (t Typed[T]) Set(v T) Assignment { return Assign(t, t.value(v)) }

// SetField sets the field's column from another same-typed field.
func (t Typed[T]) SetField(o Typed[T]) Assignment { return Assign(t, o) }

// SetNull sets the field's column to NULL.
func (t Typed[T]) SetNull() Assignment { return Assign(t, nil) }
