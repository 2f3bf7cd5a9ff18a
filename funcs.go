// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbuild

import "github.com/canonical/sqlbuild/internal/quote"

// The built-in SQL functions and operators. Each is an instance of a
// Type constructor, so a project adds its own the same way, for example:
//
//	var Trim = sqlbuild.Text.Apply("trim(", ")")

// As renames a field in a result column list, "field AS name".
func As(f Field, name string) Field {
	return asField{f: f, name: name}
}

// Desc marks a field for descending order in an ORDER BY list.
func Desc(f Field) Field {
	return funcField{arg: f, suffix: " DESC"}
}

// Asc marks a field for ascending order in an ORDER BY list.
func Asc(f Field) Field {
	return funcField{arg: f, suffix: " ASC"}
}

var (
	// Count is the count aggregate over one field.
	Count = Integer.Aggregate("count(", ")")

	// Avg averages a field. The result is fractional even over integer
	// columns, so it carries the Float type.
	Avg = Float.Aggregate("avg(", ")")

	// Lower folds a text field to lower case.
	Lower = Text.Apply("lower(", ")")

	// Upper folds a text field to upper case.
	Upper = Text.Apply("upper(", ")")

	// Length is the character length of a text field.
	Length = Integer.Apply("length(", ")")

	// CurrentDate is the database's current date.
	CurrentDate = Date.Func("CURRENT_DATE")

	// CurrentTimestamp is the database's current timestamp.
	CurrentTimestamp = Timestamp.Func("CURRENT_TIMESTAMP")

	// Concat concatenates two text fields with the || operator.
	Concat = Text.Operator("||")

	// Plus, Minus and Times are integer arithmetic.
	Plus  = Integer.Operator("+")
	Minus = Integer.Operator("-")
	Times = Integer.Operator("*")
)

// CountAll is the row-counting aggregate count(*).
func CountAll() Typed[int64] {
	return Typed[int64]{
		f:   funcField{name: "count(", arg: rawField{sql: "*"}, suffix: ")", aggregate: true},
		enc: quote.Int64,
	}
}

// Sum totals a field, keeping its type.
func Sum[T any](f Typed[T]) Typed[T] {
	return Typed[T]{
		f:   funcField{name: "sum(", arg: f, suffix: ")", aggregate: true},
		enc: f.enc,
	}
}

// Min is the minimum of a field, keeping its type.
func Min[T any](f Typed[T]) Typed[T] {
	return Typed[T]{
		f:   funcField{name: "min(", arg: f, suffix: ")", aggregate: true},
		enc: f.enc,
	}
}

// Max is the maximum of a field, keeping its type.
func Max[T any](f Typed[T]) Typed[T] {
	return Typed[T]{
		f:   funcField{name: "max(", arg: f, suffix: ")", aggregate: true},
		enc: f.enc,
	}
}

// Coalesce returns the first non-NULL of two same-typed fields.
func Coalesce[T any](a, b Typed[T]) Typed[T] {
	return Typed[T]{
		f:   funcField{name: "coalesce(", arg: Fields(a, b), suffix: ")"},
		enc: a.enc,
	}
}

// Like matches a text field against a pattern, "f LIKE 'pattern'".
func Like(f Typed[string], pattern string) Criterion {
	return Compare(f, "LIKE", Text.Value(pattern))
}

// LikeEscape is Like with an explicit escape character,
// "f LIKE 'pattern' ESCAPE '\'".
func LikeEscape(f Typed[string], pattern string, escape rune) Criterion {
	return CompareSuffix(f, "LIKE", Text.Value(pattern), "ESCAPE "+quote.String(string(escape)))
}
