// Package pipeline orchestrates one end-to-end run: fetch the three OECD
// datasets, decode and clean them, synthesize country metadata, and load
// everything into the configured storage backend.
//
// The run is sequential and single-threaded, and fails fast:
// stage-level errors (fetch, decode, schema, load) halt the run and surface
// verbatim. Only row-level problems are recovered, as silent drops during
// cleaning.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"edustats/internal/clean"
	"edustats/internal/config"
	"edustats/internal/country"
	"edustats/internal/load"
	"edustats/internal/metrics"
	"edustats/internal/oecd"
	"edustats/internal/schema"
	"edustats/internal/storage"
	"edustats/pkg/records"
)

// Summary reports what one run did, per dataset kind and overall.
type Summary struct {
	Started  time.Time
	Finished time.Time

	Decoded map[clean.Kind]int
	Cleaned map[clean.Kind]int
	Dropped map[clean.Kind]map[string]int
	Loaded  map[clean.Kind]int64

	Countries   int64
	TableCounts map[string]int64
}

// Pipeline runs the transform-and-load flow for one configuration.
type Pipeline struct {
	cfg     config.Config
	client  *oecd.Client
	verbose bool

	// now is swappable in tests.
	now func() time.Time
}

// New builds a Pipeline from cfg. verbose enables per-step progress logging.
func New(cfg config.Config, verbose bool) *Pipeline {
	client := oecd.NewClient(oecd.ClientConfig{
		BaseURL:     cfg.Source.BaseURL,
		StartPeriod: cfg.Source.StartPeriod,
		EndPeriod:   cfg.Source.EndPeriod,
		Timeout:     cfg.Source.Timeout(),
	})
	return &Pipeline{cfg: cfg, client: client, verbose: verbose, now: time.Now}
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.verbose {
		log.Printf(format, args...)
	}
}

// fetchDecode fetches one dataset and decodes its observations. Both failure
// modes are fatal to the run and surface verbatim.
func (p *Pipeline) fetchDecode(ctx context.Context, kind clean.Kind, dataset string, extra url.Values) ([]records.Record, error) {
	start := time.Now()
	payload, err := p.client.FetchDataset(ctx, dataset, extra)
	metrics.RecordStep(p.cfg.Job, "fetch_"+string(kind), err, time.Since(start))
	if err != nil {
		return nil, err
	}

	start = time.Now()
	recs, err := oecd.Decode(payload)
	metrics.RecordStep(p.cfg.Job, "decode_"+string(kind), err, time.Since(start))
	if err != nil {
		return nil, err
	}

	metrics.RecordDataset(p.cfg.Job, 1)
	metrics.RecordRows(p.cfg.Job, "decoded", int64(len(recs)))
	p.logf("pipeline: %s: decoded %d records", kind, len(recs))
	return recs, nil
}

// Run executes one full pipeline run and returns its summary. Any stage
// error (fetch, decode, schema bootstrap, load) is returned as-is alongside
// the partial summary.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{
		Started: p.now(),
		Decoded: map[clean.Kind]int{},
		Cleaned: map[clean.Kind]int{},
		Dropped: map[clean.Kind]map[string]int{},
		Loaded:  map[clean.Kind]int64{},
	}

	// Extract.
	enrollRaw, err := p.fetchDecode(ctx, clean.KindEnrollment, p.cfg.Source.Datasets.Enrollment, nil)
	if err != nil {
		return sum, err
	}
	gradRaw, err := p.fetchDecode(ctx, clean.KindGraduation, p.cfg.Source.Datasets.Graduation, nil)
	if err != nil {
		return sum, err
	}
	spendRaw, err := p.fetchDecode(ctx, clean.KindSpending, p.cfg.Source.Datasets.Spending, url.Values{
		"measure": []string{"USD"},
	})
	if err != nil {
		return sum, err
	}
	sum.Decoded[clean.KindEnrollment] = len(enrollRaw)
	sum.Decoded[clean.KindGraduation] = len(gradRaw)
	sum.Decoded[clean.KindSpending] = len(spendRaw)

	// Transform.
	cleaner := clean.NewCleaner(
		clean.YearWindow{Min: p.cfg.Clean.YearMin, Max: p.cfg.Clean.YearMax},
		country.NewResolver(),
	)
	cleaner.Reject = func(d clean.Drop) {
		if sum.Dropped[d.Kind] == nil {
			sum.Dropped[d.Kind] = map[string]int{}
		}
		sum.Dropped[d.Kind][d.Reason]++
		metrics.RecordRows(p.cfg.Job, "dropped", 1)
	}

	start := time.Now()
	enroll := cleaner.CleanEnrollment(enrollRaw)
	grad := cleaner.CleanGraduation(gradRaw)
	spend := cleaner.CleanSpending(spendRaw)
	metrics.RecordStep(p.cfg.Job, "clean", nil, time.Since(start))

	sum.Cleaned[clean.KindEnrollment] = len(enroll)
	sum.Cleaned[clean.KindGraduation] = len(grad)
	sum.Cleaned[clean.KindSpending] = len(spend)
	metrics.RecordRows(p.cfg.Job, "cleaned", int64(len(enroll)+len(grad)+len(spend)))
	p.logf("pipeline: cleaned %d enrollment, %d graduation, %d spending rows",
		len(enroll), len(grad), len(spend))

	metas := country.Synthesize(country.NewResolver(), p.now(),
		clean.Countries(enroll), clean.Countries(grad), clean.Countries(spend))
	p.logf("pipeline: synthesized %d country metadata rows", len(metas))

	// Local artifacts before any database work, so a load failure still
	// leaves the cleaned data on disk.
	if p.cfg.Output.Dir != "" {
		if err := p.writeArtifacts(enroll, grad, spend, sum); err != nil {
			log.Printf("pipeline: write artifacts: %v", err)
		}
	}

	// Load. Countries go first so fact rows always reference existing codes.
	repo, err := storage.New(ctx, storage.Config{Kind: p.cfg.Database.Kind, DSN: p.cfg.Database.DSN})
	if err != nil {
		return sum, fmt.Errorf("pipeline: open storage: %w", err)
	}
	defer repo.Close()

	tables := schema.Tables{
		Enrollment: p.cfg.Database.Tables.Enrollment,
		Graduation: p.cfg.Database.Tables.Graduation,
		Spending:   p.cfg.Database.Tables.Spending,
		Countries:  p.cfg.Database.Tables.Countries,
	}
	start = time.Now()
	err = schema.Ensure(ctx, repo, p.cfg.Database.Kind, tables)
	metrics.RecordStep(p.cfg.Job, "ensure_schema", err, time.Since(start))
	if err != nil {
		return sum, err
	}

	loader := load.NewLoader(repo, tables)

	start = time.Now()
	n, err := loader.UpsertCountries(ctx, metas)
	metrics.RecordStep(p.cfg.Job, "load_countries", err, time.Since(start))
	sum.Countries = n
	if err != nil {
		return sum, fmt.Errorf("pipeline: load countries: %w", err)
	}

	type appendStep struct {
		kind clean.Kind
		run  func() (int64, error)
	}
	steps := []appendStep{
		{clean.KindEnrollment, func() (int64, error) { return loader.AppendEnrollment(ctx, enroll) }},
		{clean.KindGraduation, func() (int64, error) { return loader.AppendGraduation(ctx, grad) }},
		{clean.KindSpending, func() (int64, error) { return loader.AppendSpending(ctx, spend) }},
	}
	for _, s := range steps {
		start = time.Now()
		n, err := s.run()
		metrics.RecordStep(p.cfg.Job, "load_"+string(s.kind), err, time.Since(start))
		sum.Loaded[s.kind] = n
		metrics.RecordRows(p.cfg.Job, "loaded", n)
		if err != nil {
			// Rows already written stay written; report the partial count.
			return sum, fmt.Errorf("pipeline: load %s: %w", s.kind, err)
		}
		p.logf("pipeline: loaded %d %s rows", n, s.kind)
	}

	sum.TableCounts = p.tableCounts(ctx, repo, tables)
	for table, n := range sum.TableCounts {
		log.Printf("pipeline: table %s: %d rows", table, n)
	}

	sum.Finished = p.now()
	return sum, nil
}

// tableCounts reads the post-load row counts of every destination table.
// Count failures are logged, not fatal: the load itself already succeeded.
func (p *Pipeline) tableCounts(ctx context.Context, repo storage.Repository, t schema.Tables) map[string]int64 {
	out := make(map[string]int64, 4)
	for _, table := range []string{t.Countries, t.Enrollment, t.Graduation, t.Spending} {
		n, err := repo.Count(ctx, table)
		if err != nil {
			log.Printf("pipeline: count %s: %v", table, err)
			continue
		}
		out[table] = n
	}
	return out
}
