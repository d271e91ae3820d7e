// This file adds a lightweight linter/validator for Config values. It performs
// static checks over a decoded Config and returns a list of issues (errors and
// warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Config.
//
// Path is a dotted path into the config (e.g. "database.kind",
// "source.datasets.enrollment"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation / linting of a Config. It does not
// mutate the config; callers decide whether warnings are fatal.
func Validate(c Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(c.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "job",
			Message:  "job is empty; metrics and logs will use a generic run name",
		})
	}

	issues = append(issues, validateSource(c.Source)...)
	issues = append(issues, validateClean(c.Clean)...)
	issues = append(issues, validateDatabase(c.Database)...)

	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.BaseURL) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.base_url",
			Message:  "source.base_url must not be empty",
		})
	}

	for _, ds := range []struct {
		path string
		code string
	}{
		{"source.datasets.enrollment", s.Datasets.Enrollment},
		{"source.datasets.graduation", s.Datasets.Graduation},
		{"source.datasets.spending", s.Datasets.Spending},
	} {
		if strings.TrimSpace(ds.code) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     ds.path,
				Message:  "dataset code must not be empty",
			})
		}
	}

	if s.TimeoutSeconds < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.timeout_seconds",
			Message:  "timeout_seconds must not be negative",
		})
	}

	return issues
}

func validateClean(c Clean) []Issue {
	var issues []Issue

	if c.YearMin > c.YearMax {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "clean.year_min",
			Message:  fmt.Sprintf("year window [%d, %d] is empty", c.YearMin, c.YearMax),
		})
	}
	if c.YearMin < 1900 || c.YearMax > 2100 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "clean",
			Message:  fmt.Sprintf("year window [%d, %d] looks implausible for education statistics", c.YearMin, c.YearMax),
		})
	}

	return issues
}

func validateDatabase(d Database) []Issue {
	var issues []Issue

	if strings.TrimSpace(d.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "database.kind",
			Message:  "database.kind must not be empty",
		})
		return issues
	}

	// Known backend kinds. Unknown kinds are warnings (for forward
	// compatibility with backends registered elsewhere).
	known := map[string]struct{}{
		"sqlite":   {},
		"postgres": {},
		"mysql":    {},
		"mssql":    {},
	}
	if _, ok := known[d.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "database.kind",
			Message:  fmt.Sprintf("unknown database kind %q; ensure a matching backend is registered", d.Kind),
		})
	}

	if strings.TrimSpace(d.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "database.dsn",
			Message:  "database.dsn must not be empty",
		})
	}

	for _, tb := range []struct {
		path string
		name string
	}{
		{"database.tables.enrollment", d.Tables.Enrollment},
		{"database.tables.graduation", d.Tables.Graduation},
		{"database.tables.spending", d.Tables.Spending},
		{"database.tables.countries", d.Tables.Countries},
	} {
		if strings.TrimSpace(tb.name) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     tb.path,
				Message:  "table name must not be empty",
			})
		}
	}

	return issues
}
