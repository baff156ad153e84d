// Package pipeline parses pipeline command flags and runs event generation
// and feature building in one process.
package pipeline

import (
	"context"
	"flag"
	"io"
	"strconv"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/louisbranch/seatrelease/internal/cmd/dataset"
	featurescmd "github.com/louisbranch/seatrelease/internal/cmd/features"
	"github.com/louisbranch/seatrelease/internal/cmd/releasegen"
	"github.com/louisbranch/seatrelease/internal/features"
	entrypoint "github.com/louisbranch/seatrelease/internal/platform/cmd"
	"github.com/louisbranch/seatrelease/internal/platform/otel"
	"github.com/louisbranch/seatrelease/internal/platform/progress"
	"github.com/louisbranch/seatrelease/internal/random"
	"github.com/louisbranch/seatrelease/internal/release"
	"github.com/louisbranch/seatrelease/internal/release/generator"
)

// Config holds pipeline command configuration. The event log is only
// written when EventsPath is set.
type Config struct {
	dataset.Grid
	dataset.Generation
	EventsPath string `env:"SEATRELEASE_EVENTS_PATH"`
	OutPath    string `env:"SEATRELEASE_FEATURES_PATH" envDefault:"data/03_synthetic/match_data_timeseries.csv" validate:"required"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Grid.BindFlags(fs)
	cfg.Generation.BindFlags(fs)
	fs.StringVar(&cfg.EventsPath, "events", cfg.EventsPath, "Also save the event log to this path")
	fs.StringVar(&cfg.OutPath, "out", cfg.OutPath, "Feature table output path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := dataset.Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates events and builds the feature table from them in memory.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePipeline, func(ctx context.Context) error {
		report := progress.New(out)
		seed, err := random.Resolve(cfg.Seed)
		if err != nil {
			return err
		}
		runID := uuid.NewString()
		report.Stepf("Run %s (seed %s)", runID, strconv.FormatInt(seed, 10))

		ctx, span := otel.StartStage(ctx, entrypoint.ServicePipeline,
			attribute.String("run.id", runID),
			attribute.Int64("run.seed", seed),
		)
		rows, err := run(ctx, cfg, seed, report)
		otel.EndStage(span, err)
		if err != nil {
			return err
		}

		featurescmd.Summarize(report, rows, cfg.OutPath)
		return nil
	})
}

func run(ctx context.Context, cfg Config, seed int64, report *progress.Reporter) ([]features.FeatureRow, error) {
	params := dataset.GeneratorParams(cfg.Grid, cfg.Generation)
	events, err := generator.Generate(ctx, params, random.Stream(seed, releasegen.EventsStream), report)
	if err != nil {
		return nil, err
	}
	if cfg.EventsPath != "" {
		if err := release.SaveFile(cfg.EventsPath, events); err != nil {
			return nil, err
		}
		releasegen.Summarize(report, events, params.Zones, cfg.EventsPath)
	}

	rows, err := features.Build(ctx, events, cfg.FeatureParams(), random.Stream(seed, featurescmd.StaticStream), report)
	if err != nil {
		return nil, err
	}
	if err := features.SaveTable(cfg.OutPath, rows); err != nil {
		return nil, err
	}
	return rows, nil
}
