package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/logbench/internal/backend"
	"github.com/wesleyorama2/logbench/internal/bench"
	"github.com/wesleyorama2/logbench/internal/config"
	"github.com/wesleyorama2/logbench/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark matrix",
	Long: `Run every configured backend through the full scenario matrix and
append one CSV row per scenario.

Default matrix mode:
  logbench run

Config file mode:
  logbench run --config bench.yaml

Environment overrides:
  LOGBENCH_TOTAL        messages per measured pass (default 200000)
  LOGBENCH_WARMUP       messages per warm-up pass (default 4096)
  LOGBENCH_TIMEOUT_SEC  watchdog budget in seconds, 0 disables (default 600)`,
	RunE: runBenchmark,
}

func init() {
	runCmd.Flags().String("config", "", "YAML config file overriding the default matrix")
	runCmd.Flags().String("output", "", "results CSV path (default "+config.DefaultOutput+")")
	runCmd.Flags().Int("total", 0, "messages per measured pass")
	runCmd.Flags().Int("warmup", 0, "messages per warm-up pass")
	runCmd.Flags().Int("timeout", 0, "watchdog budget in seconds, 0 disables")
	runCmd.Flags().Bool("no-color", false, "disable colored output")
	runCmd.Flags().Bool("quiet", false, "suppress progress lines, keep one summary per scenario")
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	backends, err := buildBackends(cfg.Backends)
	if err != nil {
		return err
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	quiet, _ := cmd.Flags().GetBool("quiet")

	driver := &bench.Driver{
		Backends: backends,
		Matrix:   cfg.Matrix(),
		Results:  report.NewCSV(cfg.Output),
		Progress: report.NewConsole(cmd.OutOrStdout(), noColor, quiet),
	}

	watchdog := bench.StartWatchdog(cfg.Timeout(), nil)
	defer watchdog.Stop()

	return driver.Run()
}

// resolveConfig layers defaults, the optional config file, environment
// overrides and finally explicit flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("total") {
		cfg.TotalMessages, _ = cmd.Flags().GetInt("total")
	}
	if cmd.Flags().Changed("warmup") {
		cfg.WarmupMessages, _ = cmd.Flags().GetInt("warmup")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSec, _ = cmd.Flags().GetInt("timeout")
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.Output = out
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildBackends resolves configured backend names to implementations.
func buildBackends(names []string) ([]bench.Backend, error) {
	dir := os.TempDir()
	backends := make([]bench.Backend, 0, len(names))
	for _, name := range names {
		switch name {
		case "slog":
			backends = append(backends, backend.NewSlog(dir))
		case "simp-lee":
			backends = append(backends, backend.NewSimpLee(dir))
		default:
			return nil, fmt.Errorf("unknown backend %q", name)
		}
	}
	return backends, nil
}
