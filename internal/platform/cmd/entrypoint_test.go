package cmd

import (
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Output string `env:"CMD_TEST_OUTPUT" envDefault:"data/out.csv"`
	Mode   string `env:"CMD_TEST_MODE" envDefault:"batch"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_OUTPUT", "env.csv")
	t.Setenv("CMD_TEST_MODE", "env-mode")
	fs := flag.NewFlagSet("test", flag.ContinueOnError)

	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfgRef.Output, "out", cfgRef.Output, "output")
	fs.StringVar(&cfgRef.Mode, "mode", cfgRef.Mode, "mode")
	if err := ParseArgs(fs, []string{"-out", "flag.csv"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	if cfgRef.Output != "flag.csv" {
		t.Fatalf("expected flag value for output, got %q", cfgRef.Output)
	}
	if cfgRef.Mode != "env-mode" {
		t.Fatalf("expected env default mode, got %q", cfgRef.Mode)
	}
}

func TestParseConfigReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DotEnvFile), []byte("CMD_TEST_DOTENV_MODE=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	testChdir(t, dir)
	t.Setenv("CMD_TEST_DOTENV_MODE", "")
	os.Unsetenv("CMD_TEST_DOTENV_MODE")

	var cfg struct {
		Mode string `env:"CMD_TEST_DOTENV_MODE" envDefault:"default"`
	}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Mode != "from-dotenv" {
		t.Fatalf("expected dotenv mode, got %q", cfg.Mode)
	}
}

func TestParseConfigFromArgsReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_OUTPUT", "configarg.csv")
	t.Setenv("CMD_TEST_MODE", "configarg-mode")

	cfgRef := testConfig{}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	fs.StringVar(&cfgRef.Output, "out", "", "output")
	fs.StringVar(&cfgRef.Mode, "mode", "", "mode")
	if err := ParseConfigFromArgs(&cfgRef, fs, []string{"-out", "flag2.csv"}); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfgRef.Output != "flag2.csv" {
		t.Fatalf("expected parsed flag output, got %q", cfgRef.Output)
	}
	if cfgRef.Mode != "configarg-mode" {
		t.Fatalf("expected env default mode, got %q", cfgRef.Mode)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected parse config to reject nil target")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceFeatures, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryPropagatesRunError(t *testing.T) {
	t.Setenv("SEATRELEASE_OTEL_ENDPOINT", "")
	want := errors.New("stage failed")

	err := RunWithTelemetry(context.Background(), ServicePipeline, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("expected run error, got %v", err)
	}
}

// testChdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func testChdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
