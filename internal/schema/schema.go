// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package schema reads the database descriptions consumed by the
// sqlbuild-gen tool.
package schema

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoTables is returned for a schema describing no tables.
	ErrNoTables = errors.New("schema describes no tables")

	// ErrMissingName is returned when a table or column has no name.
	ErrMissingName = errors.New("missing name")

	// ErrDuplicateName is returned when two tables, or two columns of
	// one table, share a name.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrUnknownType is returned for a column type the builder has no
	// encoder for.
	ErrUnknownType = errors.New("unknown column type")
)

// Types maps schema column types to the builder types the generator
// emits columns with.
var Types = map[string]string{
	"integer":   "Integer",
	"float":     "Float",
	"text":      "Text",
	"boolean":   "Boolean",
	"timestamp": "Timestamp",
	"date":      "Date",
	"blob":      "Blob",
}

// Schema is a database description.
type Schema struct {
	Tables []Table `yaml:"tables"`
}

// Table describes one table.
type Table struct {
	Name    string   `yaml:"name"`
	Columns []Column `yaml:"columns"`
}

// Column describes one column.
type Column struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Nullable bool   `yaml:"nullable"`
}

// Load reads and validates the schema file at path.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load schema: %s", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("cannot load schema %q: %s", path, err)
	}
	return s, nil
}

// Parse reads and validates a schema from YAML text.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("cannot parse schema: %s", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the schema and reports every problem found, not just
// the first.
func (s *Schema) Validate() error {
	if len(s.Tables) == 0 {
		return ErrNoTables
	}
	var errs []error
	tableNames := map[string]bool{}
	for i, t := range s.Tables {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("table %d: %w", i, ErrMissingName))
		} else {
			if tableNames[t.Name] {
				errs = append(errs, fmt.Errorf("table %q: %w", t.Name, ErrDuplicateName))
			}
			tableNames[t.Name] = true
		}

		columnNames := map[string]bool{}
		for j, col := range t.Columns {
			if col.Name == "" {
				errs = append(errs, fmt.Errorf("table %q, column %d: %w", t.Name, j, ErrMissingName))
			} else {
				if columnNames[col.Name] {
					errs = append(errs, fmt.Errorf("table %q, column %q: %w", t.Name, col.Name, ErrDuplicateName))
				}
				columnNames[col.Name] = true
			}

			if _, ok := Types[col.Type]; !ok {
				errs = append(errs, fmt.Errorf("table %q, column %q: %w %q", t.Name, col.Name, ErrUnknownType, col.Type))
			}
		}
	}
	return errors.Join(errs...)
}
