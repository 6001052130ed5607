package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRabiFixture(t *testing.T, b *Backend, samples []int) []*Schedule {
	t.Helper()
	cfg := RabiConfig{Samples: samples, Amp: 0.2, Sigma: 16, Risefall: 8}
	_, scheds, err := CR1RabiSchedules(0, 1, b, cfg, nil)
	require.NoError(t, err)
	return scheds
}

func TestTomographyEnumerationOrder(t *testing.T) {
	b := DefaultBackend()
	rabi := buildRabiFixture(t, b, []int{64, 128})

	scheds, err := CRTomographySchedules(0, 1, b, rabi, nil)
	require.NoError(t, err)
	require.Len(t, scheds, len(rabi)*6)

	// index = rabiIdx*6 + basisIdx*2 + controlState, bases x, y, z.
	for rabiIdx := range rabi {
		for basisIdx, basis := range tomographyBases {
			for _, state := range []int{0, 1} {
				idx := rabiIdx*6 + basisIdx*2 + state
				want := fmt.Sprintf("%d,%s,%d", rabiIdx, basis, state)
				assert.Equal(t, want, scheds[idx].Name, "index %d", idx)
			}
		}
	}
}

func TestTomographyControlStatePreparation(t *testing.T) {
	b := DefaultBackend()
	rabi := buildRabiFixture(t, b, []int{64})

	scheds, err := CRTomographySchedules(0, 1, b, rabi, nil)
	require.NoError(t, err)

	cDrive := b.Drive(0)
	_, _, crDrive, err := crChannels(0, 1, b, nil)
	require.NoError(t, err)
	flipDur := b.Defaults.X.Duration
	buffer := b.Buffer

	// x basis, control in |1>: flip at t=0, CR drive after flip plus buffer.
	s1 := scheds[1]
	require.Equal(t, "0,x,1", s1.Name)
	flips := instructionsOn(s1, cDrive)
	require.NotEmpty(t, flips)
	assert.Equal(t, 0, flips[0].Start)
	crInsts := instructionsOn(s1, crDrive)
	require.Len(t, crInsts, 1)
	assert.Equal(t, flipDur+buffer, crInsts[0].Start)

	// x basis, control in |0>: no flip, CR drive starts after one buffer.
	s0 := scheds[0]
	require.Equal(t, "0,x,0", s0.Name)
	assert.Empty(t, instructionsOn(s0, cDrive))
	crInsts = instructionsOn(s0, crDrive)
	require.Len(t, crInsts, 1)
	assert.Equal(t, buffer, crInsts[0].Start)
}

func TestTomographyBasesIsochronous(t *testing.T) {
	b := DefaultBackend()
	rabi := buildRabiFixture(t, b, []int{64})

	scheds, err := CRTomographySchedules(0, 1, b, rabi, nil)
	require.NoError(t, err)

	// For a fixed control state the x, y and z schedules end together; the
	// z basis has no projection pulse but its measurement is delayed to
	// match.
	for _, state := range []int{0, 1} {
		xDur := scheds[0*2+state].Duration()
		yDur := scheds[1*2+state].Duration()
		zDur := scheds[2*2+state].Duration()
		assert.Equal(t, xDur, yDur, "state %d", state)
		assert.Equal(t, xDur, zDur, "state %d", state)
	}

	// State |1> schedules are longer by exactly the flip duration.
	flipDur := b.Defaults.X.Duration
	assert.Equal(t, scheds[0].Duration()+flipDur, scheds[1].Duration())
}

func TestTomographyMeasurementCoversMeasMap(t *testing.T) {
	b := DefaultBackend()
	rabi := buildRabiFixture(t, b, []int{64})

	scheds, err := CRTomographySchedules(0, 1, b, rabi, nil)
	require.NoError(t, err)

	// Every schedule measures the full first measurement group.
	for _, s := range scheds {
		for _, q := range b.MeasMap[0] {
			m := instructionsOn(s, Channel{Kind: MeasureChannel, Index: q})
			require.Len(t, m, 1, "schedule %s qubit %d", s.Name, q)
			assert.IsType(t, Constant{}, m[0].Env)
			a := instructionsOn(s, Channel{Kind: AcquireChannel, Index: q})
			require.Len(t, a, 1, "schedule %s qubit %d", s.Name, q)
			assert.IsType(t, Acquire{}, a[0].Env)
		}
	}
}

func TestTomographyMeasurementAfterRabi(t *testing.T) {
	b := DefaultBackend()
	rabi := buildRabiFixture(t, b, []int{64})

	scheds, err := CRTomographySchedules(0, 1, b, rabi, nil)
	require.NoError(t, err)

	_, _, crDrive, err := crChannels(0, 1, b, nil)
	require.NoError(t, err)

	for _, s := range scheds {
		crInsts := instructionsOn(s, crDrive)
		require.Len(t, crInsts, 1)
		crStop := crInsts[0].Stop()
		m := instructionsOn(s, Channel{Kind: MeasureChannel, Index: 1})
		require.Len(t, m, 1)
		assert.Greater(t, m[0].Start, crStop, "schedule %s", s.Name)
	}
}

func TestTomographyRequiresMeasurementGroup(t *testing.T) {
	b := DefaultBackend()
	rabi := buildRabiFixture(t, b, []int{64})

	// A backend stripped of its measurement grouping must fail cleanly,
	// not crash on the group lookup.
	b.MeasMap = nil
	_, err := CRTomographySchedules(0, 1, b, rabi, b.CmdDef())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "measurement group")
}

func TestTomographyPropagatesChannelErrors(t *testing.T) {
	b := DefaultBackend()
	rabi := buildRabiFixture(t, b, []int{64})

	// A command mapping without an x primitive for the control qubit fails
	// during state preparation lookup.
	cmdDef := NewCmdDef()
	_, err := CRTomographySchedules(0, 1, b, rabi, cmdDef)
	require.Error(t, err)
}
