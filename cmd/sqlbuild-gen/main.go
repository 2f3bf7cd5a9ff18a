// Copyright 2025 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Command sqlbuild-gen generates Go table declarations from a YAML
// database schema.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/canonical/sqlbuild/internal/codegen"
	"github.com/canonical/sqlbuild/internal/schema"
)

func newRootCommand() *cobra.Command {
	var out string
	var pkg string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "sqlbuild-gen <schema.yaml>",
		Short: "Generate sqlbuild table declarations from a schema",
		Long: `sqlbuild-gen reads a YAML database schema and writes a Go source file
declaring a table variable and typed column variables for every table,
ready to build statements against with sqlbuild.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.Nop()
			if verbose {
				logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
			}
			return generate(logger, args[0], out, pkg)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&pkg, "package", "p", "db", "package name of the generated file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	return cmd
}

func generate(logger zerolog.Logger, schemaPath, out, pkg string) error {
	s, err := schema.Load(schemaPath)
	if err != nil {
		return err
	}
	logger.Info().Str("schema", schemaPath).Int("tables", len(s.Tables)).Msg("schema loaded")

	src := codegen.File(s, pkg)
	if out == "" {
		_, err := os.Stdout.Write(src)
		return err
	}
	if err := os.WriteFile(out, src, 0o644); err != nil {
		return fmt.Errorf("cannot write declarations: %s", err)
	}
	logger.Info().Str("file", out).Msg("declarations written")
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
