package features

import (
	"context"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/louisbranch/seatrelease/internal/platform/errors"
	"github.com/louisbranch/seatrelease/internal/platform/otel"
	"github.com/louisbranch/seatrelease/internal/platform/progress"
	"github.com/louisbranch/seatrelease/internal/release"
)

// Build runs every stage over a materialized event log and returns the
// training table sorted by match, zone and prediction date. rng feeds the
// static feature draws only.
func Build(ctx context.Context, events []release.Event, p Params, rng *rand.Rand, report *progress.Reporter) ([]FeatureRow, error) {
	if err := p.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidConfig, "feature params", err)
	}

	report.Stepf("Step 1: Creating the time-series scaffold...")
	scaffold, err := stage(ctx, "scaffold", func(context.Context) ([]ScaffoldRow, error) {
		return BuildScaffold(p), nil
	})
	if err != nil {
		return nil, err
	}
	report.Detailf("Scaffold created with %d rows.", len(scaffold))

	report.Stepf("Step 2: Calculating time-dependent features...")
	series, err := stage(ctx, "time_series", func(context.Context) ([]TimeSeriesRow, error) {
		return BuildTimeSeries(scaffold, events)
	})
	if err != nil {
		return nil, fmt.Errorf("time series: %w", err)
	}
	report.Detailf("Time-dependent features calculated.")

	report.Stepf("Step 3: Generating static features...")
	static, err := stage(ctx, "static", func(context.Context) ([]StaticRow, error) {
		return GenerateStatic(p.NumMatches, rng)
	})
	if err != nil {
		return nil, fmt.Errorf("static features: %w", err)
	}
	report.Detailf("Static features generated.")

	report.Stepf("Step 4: Calculating final target variable...")
	targets, err := stage(ctx, "targets", func(context.Context) (map[SeriesKey]int, error) {
		return Targets(events), nil
	})
	if err != nil {
		return nil, err
	}

	report.Stepf("Step 5: Merging all tables...")
	return stage(ctx, "assemble", func(context.Context) ([]FeatureRow, error) {
		return Assemble(series, static, targets), nil
	})
}

type sized interface {
	~[]ScaffoldRow | ~[]TimeSeriesRow | ~[]StaticRow | ~[]FeatureRow | ~map[SeriesKey]int
}

// stage runs fn in its own span, recording the output size.
func stage[T sized](ctx context.Context, name string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	ctx, span := otel.StartStage(ctx, name)
	out, err := fn(ctx)
	if err == nil {
		span.SetAttributes(attribute.Int("rows", len(out)))
	}
	otel.EndStage(span, err)
	if err != nil {
		return zero, err
	}
	return out, nil
}
