package main

import (
	"fmt"
	"math"
	"math/cmplx"
	"slices"
	"strings"
)

// ChannelKind identifies the hardware line an instruction plays on.
type ChannelKind int

const (
	DriveChannel   ChannelKind = iota // qubit drive line (d)
	ControlChannel                    // inter-qubit coupling line carrying the CR drive (u)
	MeasureChannel                    // readout stimulus line (m)
	AcquireChannel                    // readout acquisition (a)
)

// prefix returns the conventional short channel prefix.
func (k ChannelKind) prefix() string {
	switch k {
	case DriveChannel:
		return "d"
	case ControlChannel:
		return "u"
	case MeasureChannel:
		return "m"
	case AcquireChannel:
		return "a"
	}
	return "?"
}

// Channel is a resolved hardware channel handle. Handles are only meaningful
// for the backend they were resolved against.
type Channel struct {
	Kind  ChannelKind
	Index int
}

func (c Channel) String() string {
	return fmt.Sprintf("%s%d", c.Kind.prefix(), c.Index)
}

// channelLess orders channels by kind, then index (d < u < m < a).
func channelLess(a, b Channel) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Index < b.Index
}

// ──────────────────────────── Envelopes ────────────────────────────

// Envelope is one of a closed set of pulse shapes. Dur is the length in
// samples; At evaluates the complex amplitude at sample t for display
// purposes only - nothing here synthesizes hardware waveforms.
type Envelope interface {
	Dur() int
	At(t int) complex128
	ShapeName() string
}

// GaussianSquare is a flat-top pulse: Gaussian rise/fall edges around a
// constant-amplitude plateau.
type GaussianSquare struct {
	Duration int
	Amp      complex128
	Sigma    float64
	Risefall int
}

func (g GaussianSquare) Dur() int { return g.Duration }

func (g GaussianSquare) At(t int) complex128 {
	if t < 0 || t >= g.Duration {
		return 0
	}
	edge := func(dt float64) complex128 {
		if g.Sigma <= 0 {
			return g.Amp
		}
		return g.Amp * complex(math.Exp(-dt*dt/(2*g.Sigma*g.Sigma)), 0)
	}
	switch {
	case t < g.Risefall:
		return edge(float64(g.Risefall - t))
	case t >= g.Duration-g.Risefall:
		return edge(float64(t - (g.Duration - g.Risefall - 1)))
	default:
		return g.Amp
	}
}

func (g GaussianSquare) ShapeName() string { return "gf" }

// Gaussian is a plain Gaussian pulse centred at Duration/2.
type Gaussian struct {
	Duration int
	Amp      complex128
	Sigma    float64
}

func (g Gaussian) Dur() int { return g.Duration }

func (g Gaussian) At(t int) complex128 {
	if t < 0 || t >= g.Duration || g.Sigma <= 0 {
		return 0
	}
	dt := float64(t) - float64(g.Duration)/2
	return g.Amp * complex(math.Exp(-dt*dt/(2*g.Sigma*g.Sigma)), 0)
}

func (g Gaussian) ShapeName() string { return "gauss" }

// Constant is a square pulse, used for the measurement stimulus.
type Constant struct {
	Duration int
	Amp      complex128
}

func (c Constant) Dur() int { return c.Duration }

func (c Constant) At(t int) complex128 {
	if t < 0 || t >= c.Duration {
		return 0
	}
	return c.Amp
}

func (c Constant) ShapeName() string { return "const" }

// Delay occupies a channel for a duration without driving it. Used as the
// zero-amplitude placeholder when no cancellation tone is requested.
type Delay struct {
	Duration int
}

func (d Delay) Dur() int          { return d.Duration }
func (d Delay) At(int) complex128 { return 0 }
func (d Delay) ShapeName() string { return "delay" }

// Acquire marks the readout acquisition window on an acquire channel.
type Acquire struct {
	Duration int
}

func (a Acquire) Dur() int          { return a.Duration }
func (a Acquire) At(int) complex128 { return 0 }
func (a Acquire) ShapeName() string { return "acquire" }

// isPulse reports whether the envelope actually drives its channel.
// Delays and acquisition windows are timing bookkeeping, not pulses.
func isPulse(e Envelope) bool {
	switch e.(type) {
	case Delay, Acquire:
		return false
	}
	return true
}

// ──────────────────────────── Schedule ────────────────────────────

// Instruction binds an envelope to a channel at a start offset (in samples).
type Instruction struct {
	Channel Channel
	Start   int
	Env     Envelope
}

// Stop returns the sample at which the instruction ends.
func (in Instruction) Stop() int { return in.Start + in.Env.Dur() }

// Schedule is an ordered composition of timed pulse instructions. Schedules
// are freshly built per call and compose by explicit insertion; total
// duration is the maximum instruction stop time.
type Schedule struct {
	Name  string
	insts []Instruction
}

// NewSchedule creates an empty named schedule.
func NewSchedule(name string) *Schedule {
	return &Schedule{Name: name}
}

// Add places a single envelope on a channel at the given start offset.
func (s *Schedule) Add(start int, ch Channel, env Envelope) {
	s.insts = append(s.insts, Instruction{Channel: ch, Start: start, Env: env})
}

// Insert places every instruction of sub into s, shifted by at.
func (s *Schedule) Insert(at int, sub *Schedule) {
	for _, in := range sub.insts {
		s.insts = append(s.insts, Instruction{
			Channel: in.Channel,
			Start:   in.Start + at,
			Env:     in.Env,
		})
	}
}

// Shift returns a copy of the schedule with every instruction moved by dt.
func (s *Schedule) Shift(dt int) *Schedule {
	out := NewSchedule(s.Name)
	out.Insert(dt, s)
	return out
}

// Duration returns the maximum stop time over all instructions, 0 when empty.
func (s *Schedule) Duration() int {
	d := 0
	for _, in := range s.insts {
		d = max(d, in.Stop())
	}
	return d
}

// Filter returns a new schedule keeping only instructions matching pred.
func (s *Schedule) Filter(pred func(Instruction) bool) *Schedule {
	out := NewSchedule(s.Name)
	for _, in := range s.insts {
		if pred(in) {
			out.insts = append(out.insts, in)
		}
	}
	return out
}

// Instructions returns the instructions sorted by start time, then channel.
func (s *Schedule) Instructions() []Instruction {
	out := slices.Clone(s.insts)
	slices.SortStableFunc(out, func(a, b Instruction) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		if channelLess(a.Channel, b.Channel) {
			return -1
		}
		if channelLess(b.Channel, a.Channel) {
			return 1
		}
		return 0
	})
	return out
}

// Channels returns the distinct channels used, in kind/index order.
func (s *Schedule) Channels() []Channel {
	seen := map[Channel]bool{}
	var out []Channel
	for _, in := range s.insts {
		if !seen[in.Channel] {
			seen[in.Channel] = true
			out = append(out, in.Channel)
		}
	}
	slices.SortFunc(out, func(a, b Channel) int {
		if channelLess(a, b) {
			return -1
		}
		if channelLess(b, a) {
			return 1
		}
		return 0
	})
	return out
}

// amplitudeAt returns the summed amplitude on a channel at sample t.
func (s *Schedule) amplitudeAt(ch Channel, t int) complex128 {
	var a complex128
	for _, in := range s.insts {
		if in.Channel == ch && t >= in.Start && t < in.Stop() {
			a += in.Env.At(t - in.Start)
		}
	}
	return a
}

// formatAmp renders a complex amplitude compactly ("0.2", "0.1+0.05i").
func formatAmp(a complex128) string {
	if imag(a) == 0 {
		return fmt.Sprintf("%g", real(a))
	}
	s := fmt.Sprintf("%g%+gi", real(a), imag(a))
	return strings.ReplaceAll(s, "+-", "-")
}

// absAmp is the envelope magnitude used for display scaling.
func absAmp(a complex128) float64 { return cmplx.Abs(a) }
