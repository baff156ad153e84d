// Package dataset holds the configuration shared by the dataset commands.
package dataset

import (
	"flag"
	"strings"

	"github.com/louisbranch/seatrelease/internal/features"
	"github.com/louisbranch/seatrelease/internal/platform/config"
	apperrors "github.com/louisbranch/seatrelease/internal/platform/errors"
	"github.com/louisbranch/seatrelease/internal/release"
	"github.com/louisbranch/seatrelease/internal/release/generator"
)

// Grid sizes the match calendar shared by generation and feature building.
type Grid struct {
	NumMatches int      `env:"SEATRELEASE_NUM_MATCHES" envDefault:"10" validate:"min=1"`
	NumDays    int      `env:"SEATRELEASE_NUM_DAYS" envDefault:"90" validate:"min=1"`
	Zones      []string `env:"SEATRELEASE_ZONES" envDefault:"A,B,C,D" envSeparator:"," validate:"min=1,unique,dive,required"`
	Seed       int64    `env:"SEATRELEASE_SEED" envDefault:"0"`
}

// BindFlags registers the grid flags on fs using the current values as
// defaults.
func (g *Grid) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&g.NumMatches, "matches", g.NumMatches, "Number of matches")
	fs.IntVar(&g.NumDays, "days", g.NumDays, "Days before each match covered by the release window")
	fs.Var(zoneList{zones: &g.Zones}, "zones", "Comma-separated zone ids")
	fs.Int64Var(&g.Seed, "seed", g.Seed, "Random seed for reproducibility (0 = random)")
}

// FeatureParams returns the scaffold parameters for the grid.
func (g Grid) FeatureParams() features.Params {
	return features.Params{
		NumMatches: g.NumMatches,
		NumDays:    g.NumDays,
		Zones:      append([]string(nil), g.Zones...),
		Schedule:   release.DefaultSchedule(),
	}
}

// Generation controls the volume of synthetic releases.
type Generation struct {
	SeatsPerZone   int     `env:"SEATRELEASE_SEATS_PER_ZONE" envDefault:"5000" validate:"min=1"`
	AvgReleaseRate float64 `env:"SEATRELEASE_AVG_RELEASE_RATE" envDefault:"0.40" validate:"gte=0,lte=1"`
}

// BindFlags registers the generation flags on fs.
func (g *Generation) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&g.SeatsPerZone, "seats", g.SeatsPerZone, "Seats per zone")
	fs.Float64Var(&g.AvgReleaseRate, "rate", g.AvgReleaseRate, "Average share of seats released per match and zone")
}

// GeneratorParams combines the grid and generation settings.
func GeneratorParams(g Grid, gen Generation) generator.Params {
	return generator.Params{
		NumMatches:     g.NumMatches,
		NumDays:        g.NumDays,
		Zones:          append([]string(nil), g.Zones...),
		SeatsPerZone:   gen.SeatsPerZone,
		AvgReleaseRate: gen.AvgReleaseRate,
		Schedule:       release.DefaultSchedule(),
	}
}

// Validate checks cfg's struct tags and reports failures as invalid
// configuration.
func Validate(cfg any) error {
	if err := config.Validate(cfg); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidConfig, "invalid configuration", err)
	}
	return nil
}

type zoneList struct {
	zones *[]string
}

func (z zoneList) String() string {
	if z.zones == nil {
		return ""
	}
	return strings.Join(*z.zones, ",")
}

// Set replaces the zone list. Empty entries are kept so validation can
// reject them.
func (z zoneList) Set(value string) error {
	parts := strings.Split(value, ",")
	zones := make([]string, 0, len(parts))
	for _, part := range parts {
		zones = append(zones, strings.TrimSpace(part))
	}
	*z.zones = zones
	return nil
}
