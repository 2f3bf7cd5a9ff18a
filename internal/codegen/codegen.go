// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package codegen renders Go table declarations from a database schema.
package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/canonical/sqlbuild/internal/schema"
)

// initialisms are name parts spelled in full upper case, the way Go
// names them.
var initialisms = map[string]string{
	"api":  "API",
	"html": "HTML",
	"id":   "ID",
	"ip":   "IP",
	"json": "JSON",
	"sql":  "SQL",
	"uid":  "UID",
	"url":  "URL",
	"uuid": "UUID",
}

var titler = cases.Title(language.Und, cases.NoLower)

// GoName converts a snake_case schema name to an exported Go name.
// Common initialisms keep their upper-case spelling, so team_id becomes
// TeamID.
func GoName(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if u, ok := initialisms[strings.ToLower(p)]; ok {
			parts[i] = u
			continue
		}
		parts[i] = titler.String(p)
	}
	return strings.Join(parts, "")
}

// File renders a Go source file declaring a table variable and typed
// column variables for every table of s, in schema order.
func File(s *schema.Schema, pkg string) []byte {
	var b bytes.Buffer
	b.WriteString("// Code generated by sqlbuild-gen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString("import \"github.com/canonical/sqlbuild\"\n")

	for _, t := range s.Tables {
		tableVar := GoName(t.Name)
		fmt.Fprintf(&b, "\n// %s is the %s table.\n", tableVar, t.Name)
		fmt.Fprintf(&b, "var %s = sqlbuild.NewTable(%q)\n", tableVar, t.Name)
		if len(t.Columns) > 0 {
			b.WriteByte('\n')
		}
		for _, col := range t.Columns {
			fmt.Fprintf(&b, "var %s%s = sqlbuild.%s.Column(%s, %q)",
				tableVar, GoName(col.Name), schema.Types[col.Type], tableVar, col.Name)
			if col.Nullable {
				b.WriteString(" // nullable")
			}
			b.WriteByte('\n')
		}
	}
	return b.Bytes()
}
