// Package releasegen parses releasegen command flags and writes a synthetic
// seat release event log.
package releasegen

import (
	"context"
	"flag"
	"io"
	"strconv"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/louisbranch/seatrelease/internal/cmd/dataset"
	entrypoint "github.com/louisbranch/seatrelease/internal/platform/cmd"
	"github.com/louisbranch/seatrelease/internal/platform/otel"
	"github.com/louisbranch/seatrelease/internal/platform/progress"
	"github.com/louisbranch/seatrelease/internal/random"
	"github.com/louisbranch/seatrelease/internal/release"
	"github.com/louisbranch/seatrelease/internal/release/generator"
)

// EventsStream names the random stream used for release draws.
const EventsStream = "events"

// Config holds releasegen command configuration.
type Config struct {
	dataset.Grid
	dataset.Generation
	OutPath string `env:"SEATRELEASE_EVENTS_PATH" envDefault:"data/03_synthetic/club_members_app.csv" validate:"required"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Grid.BindFlags(fs)
	cfg.Generation.BindFlags(fs)
	fs.StringVar(&cfg.OutPath, "out", cfg.OutPath, "Event log output path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := dataset.Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates the event log and saves it to cfg.OutPath.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceReleaseGen, func(ctx context.Context) error {
		report := progress.New(out)
		seed, err := random.Resolve(cfg.Seed)
		if err != nil {
			return err
		}
		runID := uuid.NewString()
		report.Stepf("Run %s (seed %s)", runID, strconv.FormatInt(seed, 10))

		ctx, span := otel.StartStage(ctx, entrypoint.ServiceReleaseGen,
			attribute.String("run.id", runID),
			attribute.Int64("run.seed", seed),
		)
		params := dataset.GeneratorParams(cfg.Grid, cfg.Generation)
		events, err := generator.Generate(ctx, params, random.Stream(seed, EventsStream), report)
		if err == nil {
			err = release.SaveFile(cfg.OutPath, events)
		}
		otel.EndStage(span, err)
		if err != nil {
			return err
		}

		Summarize(report, events, params.Zones, cfg.OutPath)
		return nil
	})
}

// Summarize prints the row count, output path and per-zone release totals.
func Summarize(report *progress.Reporter, events []release.Event, zones []string, path string) {
	perZone := make(map[string]int, len(zones))
	for _, ev := range events {
		perZone[ev.ZoneID]++
	}
	report.Stepf("Dataset saved to '%s'", path)
	report.Detailf("Total rows: %d", len(events))
	for _, zone := range zones {
		report.Detailf("Zone %s: %d releases", zone, perZone[zone])
	}
}
