package main

import "fmt"

// CancellationTone is the explicit choice between an active cancellation
// flat-top on the target drive and a plain delay of equal length. A disabled
// tone with a non-zero Amp is still a delay.
type CancellationTone struct {
	Enabled bool
	Amp     complex128
}

// RabiConfig carries the sweep and pulse-shape parameters shared by the two
// Rabi builders. Durations are in samples; no validation is applied here.
type RabiConfig struct {
	Samples      []int
	Amp          complex128
	Sigma        float64
	Risefall     int
	Cancellation CancellationTone
}

// crEnvelope builds the flat-top CR envelope for one sweep point.
func (cfg RabiConfig) crEnvelope(dur int, sign float64) Envelope {
	return GaussianSquare{
		Duration: dur,
		Amp:      cfg.Amp * complex(sign, 0),
		Sigma:    cfg.Sigma,
		Risefall: cfg.Risefall,
	}
}

// cancelEnvelope builds the matching cancellation envelope, or an
// equal-length delay when no tone is requested.
func (cfg RabiConfig) cancelEnvelope(dur int, sign float64) Envelope {
	if !cfg.Cancellation.Enabled {
		return Delay{Duration: dur}
	}
	return GaussianSquare{
		Duration: dur,
		Amp:      cfg.Cancellation.Amp * complex(sign, 0),
		Sigma:    cfg.Sigma,
		Risefall: cfg.Risefall,
	}
}

// crTimes converts sweep durations to physical times in seconds
// (samples x dt, with dt in nanoseconds).
func crTimes(b *Backend, samples []int) []float64 {
	times := make([]float64, len(samples))
	for i, n := range samples {
		times[i] = float64(n) * b.DT * 1e-9
	}
	return times
}

// CR1RabiSchedules builds the unechoed (single-pulse) CR Rabi sweep: one
// schedule per requested duration, each holding the CR flat-top on the
// coupling channel and the cancellation tone (or delay) on the target drive,
// both starting at zero and ending together. No state preparation or
// measurement is added here.
//
// Returns the sweep durations converted to physical time alongside the
// schedules.
func CR1RabiSchedules(cQubit, tQubit int, b *Backend, cfg RabiConfig, cmdDef *CmdDef) ([]float64, []*Schedule, error) {
	if cmdDef == nil {
		cmdDef = b.CmdDef()
	}
	_, tDrive, crDrive, err := crChannels(cQubit, tQubit, b, cmdDef)
	if err != nil {
		return nil, nil, err
	}

	schedules := make([]*Schedule, 0, len(cfg.Samples))
	for i, dur := range cfg.Samples {
		sched := NewSchedule(fmt.Sprintf("%d", i))
		sched.Add(0, crDrive, cfg.crEnvelope(dur, +1))
		sched.Add(0, tDrive, cfg.cancelEnvelope(dur, +1))
		schedules = append(schedules, sched)
	}

	return crTimes(b, cfg.Samples), schedules, nil
}

// CR2RabiSchedules builds the echoed (two-pulse) CR Rabi sweep. Each sweep
// point splits its duration in half (integer truncation - odd durations are
// not compensated) and plays: positive half CR, control-qubit flip, negative
// half CR, flip again. A buffer gap precedes each flip; the negative half
// starts immediately after the first flip ends, so the total duration is
// exactly 2*(dur/2) + 2*buffer + 2*flip.
func CR2RabiSchedules(cQubit, tQubit int, b *Backend, cfg RabiConfig, cmdDef *CmdDef) ([]float64, []*Schedule, error) {
	if cmdDef == nil {
		cmdDef = b.CmdDef()
	}
	_, tDrive, crDrive, err := crChannels(cQubit, tQubit, b, cmdDef)
	if err != nil {
		return nil, nil, err
	}

	echoPi, err := cmdDef.Get("x", []int{cQubit})
	if err != nil {
		return nil, nil, err
	}
	buffer := b.Buffer

	schedules := make([]*Schedule, 0, len(cfg.Samples))
	for i, dur := range cfg.Samples {
		sched := NewSchedule(fmt.Sprintf("%d", i))
		half := dur / 2

		sched.Add(0, crDrive, cfg.crEnvelope(half, +1))
		sched.Add(0, tDrive, cfg.cancelEnvelope(half, +1))
		sched.Insert(sched.Duration()+buffer, echoPi)

		off := sched.Duration()
		sched.Add(off, crDrive, cfg.crEnvelope(half, -1))
		sched.Add(off, tDrive, cfg.cancelEnvelope(half, -1))
		sched.Insert(sched.Duration()+buffer, echoPi)

		schedules = append(schedules, sched)
	}

	return crTimes(b, cfg.Samples), schedules, nil
}
