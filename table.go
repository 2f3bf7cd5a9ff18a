// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbuild

import (
	"sort"
	"unique"
)

// Table identifies one occurrence of a database table in a query: a table
// name plus an optional instance alias. Two Table values refer to the same
// occurrence exactly when both components are equal. Instances distinguish
// multiple occurrences of one table, as in a self join.
//
// The zero Table carries no name. Columns built on it have no table
// affinity: they render bare and contribute nothing to table collection.
type Table struct {
	name     unique.Handle[string]
	instance unique.Handle[string]
}

// NewTable returns the identity of the named table.
func NewTable(name string) Table {
	return Table{name: intern(name)}
}

// As returns the same table under an instance alias. Columns on the aliased
// table qualify with the alias, and FROM clauses emit "name AS alias".
func (t Table) As(instance string) Table {
	t.instance = intern(instance)
	return t
}

// Name returns the table name, or "" for the zero Table.
func (t Table) Name() string { return handleString(t.name) }

// Instance returns the instance alias, or "" when the table is not aliased.
func (t Table) Instance() string { return handleString(t.instance) }

// IsZero reports whether t carries no name at all.
func (t Table) IsZero() bool { return t == Table{} }

// refName is the name columns qualify with: the instance when aliased,
// otherwise the table name.
func (t Table) refName() string {
	if s := t.Instance(); s != "" {
		return s
	}
	return t.Name()
}

// String renders the table as it appears in a FROM clause.
func (t Table) String() string {
	if t.Instance() == "" {
		return t.Name()
	}
	return t.Name() + " AS " + t.Instance()
}

// intern deduplicates a name string. The zero handle stands for the absent
// name, so every absent name compares equal and never reaches Value.
func intern(s string) unique.Handle[string] {
	if s == "" {
		return unique.Handle[string]{}
	}
	return unique.Make(s)
}

func handleString(h unique.Handle[string]) string {
	if h == (unique.Handle[string]{}) {
		return ""
	}
	return h.Value()
}

// TableSet is a set of table identities, deduplicated by value equality.
// It is filled in by the CollectTables walks over expression trees.
type TableSet map[Table]bool

// NewTableSet returns an empty set.
func NewTableSet() TableSet { return TableSet{} }

// Add inserts t into the set. Adding a table twice has no effect.
func (ts TableSet) Add(t Table) { ts[t] = true }

// Contains reports whether t is in the set.
func (ts TableSet) Contains(t Table) bool { return ts[t] }

// Len returns the number of distinct tables in the set.
func (ts TableSet) Len() int { return len(ts) }

// Sorted returns the tables ordered by name then instance. Collection
// order depends on the shape of the tree, so anything rendering the set,
// such as an automatic FROM clause, goes through Sorted.
func (ts TableSet) Sorted() []Table {
	tables := make([]Table, 0, len(ts))
	for t := range ts {
		tables = append(tables, t)
	}
	sort.Slice(tables, func(i, j int) bool {
		if tables[i].Name() != tables[j].Name() {
			return tables[i].Name() < tables[j].Name()
		}
		return tables[i].Instance() < tables[j].Instance()
	})
	return tables
}
