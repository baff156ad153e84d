// Package features parses features command flags and builds the training
// table from a saved event log.
package features

import (
	"context"
	"flag"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/louisbranch/seatrelease/internal/cmd/dataset"
	"github.com/louisbranch/seatrelease/internal/features"
	entrypoint "github.com/louisbranch/seatrelease/internal/platform/cmd"
	"github.com/louisbranch/seatrelease/internal/platform/otel"
	"github.com/louisbranch/seatrelease/internal/platform/progress"
	"github.com/louisbranch/seatrelease/internal/random"
	"github.com/louisbranch/seatrelease/internal/release"
)

// StaticStream names the random stream used for static feature draws.
const StaticStream = "static"

// sampleRows is how many trailing rows are echoed after a build.
const sampleRows = 5

// Config holds features command configuration.
type Config struct {
	dataset.Grid
	EventsPath string `env:"SEATRELEASE_EVENTS_PATH" envDefault:"data/03_synthetic/club_members_app.csv" validate:"required"`
	OutPath    string `env:"SEATRELEASE_FEATURES_PATH" envDefault:"data/03_synthetic/match_data_timeseries.csv" validate:"required"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Grid.BindFlags(fs)
	fs.StringVar(&cfg.EventsPath, "events", cfg.EventsPath, "Event log input path")
	fs.StringVar(&cfg.OutPath, "out", cfg.OutPath, "Feature table output path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := dataset.Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads the event log, builds the feature table and saves it.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceFeatures, func(ctx context.Context) error {
		report := progress.New(out)
		seed, err := random.Resolve(cfg.Seed)
		if err != nil {
			return err
		}
		runID := uuid.NewString()
		report.Stepf("Run %s (seed %s)", runID, strconv.FormatInt(seed, 10))

		ctx, span := otel.StartStage(ctx, entrypoint.ServiceFeatures,
			attribute.String("run.id", runID),
			attribute.Int64("run.seed", seed),
		)
		report.Stepf("Loading event log from '%s'...", cfg.EventsPath)
		rows, err := loadAndBuild(ctx, cfg, seed, report)
		if err == nil {
			err = features.SaveTable(cfg.OutPath, rows)
		}
		otel.EndStage(span, err)
		if err != nil {
			return err
		}

		Summarize(report, rows, cfg.OutPath)
		return nil
	})
}

func loadAndBuild(ctx context.Context, cfg Config, seed int64, report *progress.Reporter) ([]features.FeatureRow, error) {
	events, err := release.LoadFile(cfg.EventsPath)
	if err != nil {
		return nil, err
	}
	report.Detailf("Loaded %d releases.", len(events))
	return features.Build(ctx, events, cfg.FeatureParams(), random.Stream(seed, StaticStream), report)
}

// Summarize prints the output path, the row count and the last rows of the
// table as a sample.
func Summarize(report *progress.Reporter, rows []features.FeatureRow, path string) {
	report.Stepf("Processing complete!")
	report.Detailf("Final dataset saved to '%s'", path)
	report.Detailf("Total rows: %d", len(rows))
	if len(rows) == 0 {
		return
	}
	report.Stepf("Sample of the final data:")
	w := report.Writer()
	_, _ = io.WriteString(w, strings.Join(features.TableColumns, ",")+"\n")
	for _, row := range rows[max(0, len(rows)-sampleRows):] {
		_, _ = io.WriteString(w, strings.Join(row.Record(), ",")+"\n")
	}
}
