package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// instructionsOn collects a schedule's instructions for one channel, in
// start order.
func instructionsOn(s *Schedule, ch Channel) []Instruction {
	var out []Instruction
	for _, in := range s.Instructions() {
		if in.Channel == ch {
			out = append(out, in)
		}
	}
	return out
}

func TestCR1RabiSchedules(t *testing.T) {
	b := DefaultBackend()
	cfg := RabiConfig{Samples: []int{10, 20}, Amp: 0.2, Sigma: 2, Risefall: 2}

	times, scheds, err := CR1RabiSchedules(0, 1, b, cfg, nil)
	require.NoError(t, err)
	require.Len(t, scheds, 2)
	require.Len(t, times, 2)

	_, tDrive, crDrive, err := crChannels(0, 1, b, nil)
	require.NoError(t, err)

	for i, s := range scheds {
		// One sweep point per schedule, duration equal to its sample count.
		assert.Equal(t, cfg.Samples[i], s.Duration(), "schedule %d", i)

		crInsts := instructionsOn(s, crDrive)
		require.Len(t, crInsts, 1)
		assert.Equal(t, 0, crInsts[0].Start)
		gs, ok := crInsts[0].Env.(GaussianSquare)
		require.True(t, ok)
		assert.Equal(t, complex128(0.2), gs.Amp)
		assert.Equal(t, cfg.Samples[i], gs.Duration)

		// No cancellation requested: the target drive holds a delay of the
		// same length, keeping both channels isochronous.
		tInsts := instructionsOn(s, tDrive)
		require.Len(t, tInsts, 1)
		assert.IsType(t, Delay{}, tInsts[0].Env)
		assert.Equal(t, cfg.Samples[i], tInsts[0].Env.Dur())
	}
}

func TestCR1RabiCancellationTone(t *testing.T) {
	b := DefaultBackend()
	cfg := RabiConfig{
		Samples:      []int{64},
		Amp:          0.2,
		Sigma:        16,
		Risefall:     8,
		Cancellation: CancellationTone{Enabled: true, Amp: 0.04},
	}

	_, scheds, err := CR1RabiSchedules(0, 1, b, cfg, nil)
	require.NoError(t, err)
	require.Len(t, scheds, 1)

	_, tDrive, _, err := crChannels(0, 1, b, nil)
	require.NoError(t, err)

	tInsts := instructionsOn(scheds[0], tDrive)
	require.Len(t, tInsts, 1)
	gs, ok := tInsts[0].Env.(GaussianSquare)
	require.True(t, ok, "cancellation tone must be a flat-top, got %s", tInsts[0].Env.ShapeName())
	assert.Equal(t, complex128(0.04), gs.Amp)
	assert.Equal(t, 64, gs.Duration)
}

func TestCR1RabiDisabledToneIgnoresAmp(t *testing.T) {
	b := DefaultBackend()
	cfg := RabiConfig{
		Samples:      []int{32},
		Amp:          0.2,
		Sigma:        8,
		Risefall:     4,
		Cancellation: CancellationTone{Enabled: false, Amp: 0.5},
	}

	_, scheds, err := CR1RabiSchedules(0, 1, b, cfg, nil)
	require.NoError(t, err)

	_, tDrive, _, err := crChannels(0, 1, b, nil)
	require.NoError(t, err)

	tInsts := instructionsOn(scheds[0], tDrive)
	require.Len(t, tInsts, 1)
	assert.IsType(t, Delay{}, tInsts[0].Env)
}

func TestCRTimesScaleWithDT(t *testing.T) {
	b := DefaultBackend()
	cfg := RabiConfig{Samples: []int{100, 200, 300}, Amp: 0.1, Sigma: 8, Risefall: 4}

	times, _, err := CR1RabiSchedules(0, 1, b, cfg, nil)
	require.NoError(t, err)
	require.Len(t, times, 3)

	for i, n := range cfg.Samples {
		want := float64(n) * b.DT * 1e-9
		assert.InDelta(t, want, times[i], 1e-18)
	}
	// Doubling the sample count doubles the physical time.
	assert.InDelta(t, 2*times[0], times[1], 1e-18)
}

func TestCR2RabiDuration(t *testing.T) {
	b := DefaultBackend()
	flipDur := b.Defaults.X.Duration
	buffer := b.Buffer

	cases := []struct {
		name string
		dur  int
	}{
		{"even", 256},
		{"odd loses a sample", 257},
		{"small", 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := RabiConfig{Samples: []int{c.dur}, Amp: 0.2, Sigma: 16, Risefall: 8}
			_, scheds, err := CR2RabiSchedules(0, 1, b, cfg, nil)
			require.NoError(t, err)
			require.Len(t, scheds, 1)

			want := 2*(c.dur/2) + 2*buffer + 2*flipDur
			assert.Equal(t, want, scheds[0].Duration())
		})
	}
}

func TestCR2RabiStructure(t *testing.T) {
	b := DefaultBackend()
	cfg := RabiConfig{Samples: []int{200}, Amp: 0.2, Sigma: 16, Risefall: 8}

	_, scheds, err := CR2RabiSchedules(0, 1, b, cfg, nil)
	require.NoError(t, err)
	s := scheds[0]

	cDrive, _, crDrive, err := crChannels(0, 1, b, nil)
	require.NoError(t, err)

	half := 100
	buffer := b.Buffer
	flipDur := b.Defaults.X.Duration

	crInsts := instructionsOn(s, crDrive)
	require.Len(t, crInsts, 2)
	pos := crInsts[0].Env.(GaussianSquare)
	neg := crInsts[1].Env.(GaussianSquare)
	assert.Equal(t, complex128(0.2), pos.Amp)
	assert.Equal(t, complex128(-0.2), neg.Amp)
	assert.Equal(t, half, pos.Duration)
	assert.Equal(t, half, neg.Duration)

	// Positive half at 0, first flip after a buffer, negative half right
	// after the flip, second flip after another buffer.
	assert.Equal(t, 0, crInsts[0].Start)
	flips := instructionsOn(s, cDrive)
	require.Len(t, flips, 2)
	assert.Equal(t, half+buffer, flips[0].Start)
	assert.Equal(t, half+buffer+flipDur, crInsts[1].Start)
	assert.Equal(t, 2*half+2*buffer+flipDur, flips[1].Start)
}

func TestCR2RabiChannelError(t *testing.T) {
	b := DefaultBackend()
	cfg := RabiConfig{Samples: []int{64}, Amp: 0.2, Sigma: 16, Risefall: 8}

	_, _, err := CR2RabiSchedules(0, 4, b, cfg, nil)
	require.ErrorIs(t, err, ErrNoCrossResonance)
}
