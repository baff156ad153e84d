// Package features turns a seat release event log into a dense daily
// training table.
//
// The table has one row per (match, zone, day before match). Each row
// carries the releases seen that day, the running total so far, a trailing
// seven day velocity, static match context and the final release count the
// forecast is trained against.
//
// Stages derive new slices from their inputs and never modify them:
//
//	BuildScaffold   -> []ScaffoldRow
//	BuildTimeSeries -> []TimeSeriesRow
//	GenerateStatic  -> []StaticRow
//	Targets         -> map[SeriesKey]int
//	Assemble        -> []FeatureRow
//
// Build runs all of them in order.
package features
