package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

func main() {
	backendPath := flag.String("backend", "", "backend description YAML (built-in device when empty)")
	control := flag.Int("control", 0, "control qubit index")
	target := flag.Int("target", 1, "target qubit index")
	durations := flag.String("durations", "128:1024:128", "CR pulse duration sweep in samples")
	amp := flag.String("amp", "0.2", "CR pulse amplitude")
	sigma := flag.Float64("sigma", 32, "Gaussian edge sigma in samples")
	risefall := flag.Int("risefall", 64, "rise/fall duration in samples")
	cancel := flag.String("cancel", "", "cancellation tone amplitude (empty disables the tone)")
	echo := flag.Bool("echo", false, "build the echoed (CR2) sequence instead of CR1")
	out := flag.String("o", "experiments.yaml", "export path (.yaml or .json)")
	headless := flag.Bool("headless", false, "build and export without starting the TUI")
	logPath := flag.String("log", "", "append structured logs to this file")
	flag.Parse()

	log := newLogger(*logPath, *headless)

	backend := DefaultBackend()
	if *backendPath != "" {
		var err error
		backend, err = LoadBackend(*backendPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	cfg := RabiConfig{Sigma: *sigma, Risefall: *risefall}
	cfg.Samples = parseDurations(*durations)
	if cfg.Samples == nil {
		fmt.Fprintf(os.Stderr, "invalid -durations %q\n", *durations)
		os.Exit(1)
	}
	crAmp, ok := parseComplexAmp(*amp)
	if !ok {
		fmt.Fprintf(os.Stderr, "invalid -amp %q\n", *amp)
		os.Exit(1)
	}
	cfg.Amp = crAmp
	if *cancel != "" {
		canAmp, ok := parseComplexAmp(*cancel)
		if !ok {
			fmt.Fprintf(os.Stderr, "invalid -cancel %q\n", *cancel)
			os.Exit(1)
		}
		cfg.Cancellation = CancellationTone{Enabled: true, Amp: canAmp}
	}

	if *headless {
		if err := runHeadless(backend, *control, *target, cfg, *echo, *out, log); err != nil {
			log.Error().Err(err).Msg("build failed")
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	m := initialModel(backend, *control, *target, cfg, *echo, *out, log)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger wires zerolog: to a file when requested, to a console writer in
// headless mode, and silent otherwise (the TUI owns the terminal).
func newLogger(path string, headless bool) zerolog.Logger {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			return zerolog.New(f).With().Timestamp().Logger()
		}
		fmt.Fprintf(os.Stderr, "log file: %v\n", err)
	}
	if headless {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.Nop()
}

// runHeadless builds the full tomography experiment set and writes it to
// the export path.
func runHeadless(b *Backend, cQubit, tQubit int, cfg RabiConfig, echoed bool, out string, log zerolog.Logger) error {
	cmdDef := b.CmdDef()

	build := CR1RabiSchedules
	if echoed {
		build = CR2RabiSchedules
	}
	times, rabi, err := build(cQubit, tQubit, b, cfg, cmdDef)
	if err != nil {
		return err
	}
	experiments, err := CRTomographySchedules(cQubit, tQubit, b, rabi, cmdDef)
	if err != nil {
		return err
	}

	set := buildExperimentSet(b, cQubit, tQubit, echoed, times, experiments)
	if err := writeExperimentSet(out, set); err != nil {
		return err
	}
	log.Info().
		Str("backend", b.Name).
		Int("sweep_points", len(rabi)).
		Int("schedules", len(experiments)).
		Str("path", out).
		Msg("experiment set written")
	return nil
}
