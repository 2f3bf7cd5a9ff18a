// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package quote encodes Go values as SQL literals. The encoders are the
// trust boundary of the builder: every plain value entering a statement
// passes through exactly one of them, and nothing downstream escapes the
// result again.
package quote

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// String encodes s as a single-quoted SQL string, doubling embedded
// quotes.
func String(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Int64 encodes v as a decimal literal.
func Int64(v int64) string {
	return strconv.FormatInt(v, 10)
}

// Float64 encodes v as a numeric literal in the shortest exact form.
func Float64(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Bool encodes v as the TRUE or FALSE keyword.
func Bool(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

// Timestamp encodes a point in time as a quoted timestamp literal, in
// UTC with second precision.
func Timestamp(v time.Time) string {
	return "'" + v.UTC().Format("2006-01-02 15:04:05") + "'"
}

// Date encodes the date part of v, in UTC.
func Date(v time.Time) string {
	return "'" + v.UTC().Format("2006-01-02") + "'"
}

// Bytes encodes a blob as a hexadecimal literal.
func Bytes(v []byte) string {
	return fmt.Sprintf("X'%X'", v)
}
