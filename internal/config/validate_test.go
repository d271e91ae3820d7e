package config

import "testing"

func validConfig() Config {
	c := Config{
		Job: "edu",
		Source: Source{
			BaseURL: "https://stats.oecd.org/SDMX-JSON/data/",
			Datasets: Datasets{
				Enrollment: "EDU_ENRL",
				Graduation: "EDU_GRAD",
				Spending:   "EDU_FIN",
			},
		},
		Database: Database{
			Kind: "sqlite",
			DSN:  "edu.db",
			Tables: Tables{
				Enrollment: "education_enrollment",
				Graduation: "education_graduation",
				Spending:   "education_spending",
				Countries:  "countries",
			},
		},
	}
	c.applyDefaults()
	return c
}

func countSeverity(issues []Issue, sev IssueSeverity) int {
	n := 0
	for _, iss := range issues {
		if iss.Severity == sev {
			n++
		}
	}
	return n
}

func TestValidateClean(t *testing.T) {
	t.Parallel()

	if issues := Validate(validConfig()); len(issues) != 0 {
		t.Errorf("valid config produced issues: %v", issues)
	}
}

func TestValidateFindings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*Config)
		path     string
		severity IssueSeverity
	}{
		{
			name:     "empty base url",
			mutate:   func(c *Config) { c.Source.BaseURL = "" },
			path:     "source.base_url",
			severity: SeverityError,
		},
		{
			name:     "empty dataset code",
			mutate:   func(c *Config) { c.Source.Datasets.Spending = " " },
			path:     "source.datasets.spending",
			severity: SeverityError,
		},
		{
			name:     "negative timeout",
			mutate:   func(c *Config) { c.Source.TimeoutSeconds = -1 },
			path:     "source.timeout_seconds",
			severity: SeverityError,
		},
		{
			name:     "inverted year window",
			mutate:   func(c *Config) { c.Clean.YearMin = 2024; c.Clean.YearMax = 2020 },
			path:     "clean.year_min",
			severity: SeverityError,
		},
		{
			name:     "implausible year window",
			mutate:   func(c *Config) { c.Clean.YearMin = 1200 },
			path:     "clean",
			severity: SeverityWarning,
		},
		{
			name:     "empty database kind",
			mutate:   func(c *Config) { c.Database.Kind = "" },
			path:     "database.kind",
			severity: SeverityError,
		},
		{
			name:     "unknown database kind",
			mutate:   func(c *Config) { c.Database.Kind = "oracle" },
			path:     "database.kind",
			severity: SeverityWarning,
		},
		{
			name:     "empty dsn",
			mutate:   func(c *Config) { c.Database.DSN = "" },
			path:     "database.dsn",
			severity: SeverityError,
		},
		{
			name:     "empty table name",
			mutate:   func(c *Config) { c.Database.Tables.Countries = "" },
			path:     "database.tables.countries",
			severity: SeverityError,
		},
		{
			name:     "empty job is a warning",
			mutate:   func(c *Config) { c.Job = "" },
			path:     "job",
			severity: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := validConfig()
			tt.mutate(&c)
			issues := Validate(c)

			found := false
			for _, iss := range issues {
				if iss.Path == tt.path && iss.Severity == tt.severity {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate = %v, want %s at %s", issues, tt.severity, tt.path)
			}
		})
	}
}

func TestIssueError(t *testing.T) {
	t.Parallel()

	iss := Issue{Severity: SeverityError, Path: "database.dsn", Message: "must not be empty"}
	want := "error at database.dsn: must not be empty"
	if got := iss.Error(); got != want {
		t.Errorf("Issue.Error() = %q, want %q", got, want)
	}
}
