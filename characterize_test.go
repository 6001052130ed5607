package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRChannelsResolvesThreeDistinctChannels(t *testing.T) {
	b := DefaultBackend()

	cDrive, tDrive, crDrive, err := crChannels(0, 1, b, nil)
	require.NoError(t, err)

	assert.Equal(t, Channel{Kind: DriveChannel, Index: 0}, cDrive)
	assert.Equal(t, Channel{Kind: DriveChannel, Index: 1}, tDrive)
	assert.Equal(t, ControlChannel, crDrive.Kind)
	assert.NotEqual(t, cDrive, tDrive)
	assert.NotEqual(t, cDrive, crDrive)
	assert.NotEqual(t, tDrive, crDrive)
}

func TestCRChannelsDeterministic(t *testing.T) {
	b := DefaultBackend()
	cmdDef := b.CmdDef()

	_, _, first, err := crChannels(1, 2, b, cmdDef)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, _, again, err := crChannels(1, 2, b, cmdDef)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCRChannelsDirectionMatters(t *testing.T) {
	b := DefaultBackend()

	_, _, fwd, err := crChannels(0, 1, b, nil)
	require.NoError(t, err)
	_, _, rev, err := crChannels(1, 0, b, nil)
	require.NoError(t, err)

	// Opposite directions of the same pair drive distinct coupling channels.
	assert.NotEqual(t, fwd, rev)
}

func TestCRChannelsNoCrossResonance(t *testing.T) {
	b := DefaultBackend()

	// Qubits 0 and 3 are not coupled on the linear device.
	_, _, _, err := crChannels(0, 3, b, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoCrossResonance))
	assert.False(t, errors.Is(err, ErrNoControlChannel))

	var cerr *CharacterizationError
	require.True(t, errors.As(err, &cerr))
	assert.Contains(t, cerr.Error(), "0-3")
}

func TestCRChannelsNoControlChannel(t *testing.T) {
	b := DefaultBackend()
	cmdDef := b.CmdDef()

	// Override the cx primitive with a realization that drives only the
	// qubit lines, never a coupling channel.
	cmdDef.Register("cx", []int{0, 1}, func(...float64) *Schedule {
		s := NewSchedule("cx_degenerate")
		s.Add(0, b.Drive(0), Gaussian{Duration: 64, Amp: 0.25, Sigma: 16})
		s.Add(0, b.Drive(1), Gaussian{Duration: 64, Amp: 0.25, Sigma: 16})
		// A delay on a coupling channel is not a pulse and must not count.
		s.Add(0, Channel{Kind: ControlChannel, Index: 0}, Delay{Duration: 64})
		return s
	})

	_, _, _, err := crChannels(0, 1, b, cmdDef)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoControlChannel))
	assert.False(t, errors.Is(err, ErrNoCrossResonance))

	var cerr *CharacterizationError
	assert.True(t, errors.As(err, &cerr))
}

func TestCRChannelsNilCmdDefDerivesFromBackend(t *testing.T) {
	b := DefaultBackend()

	_, _, withNil, err := crChannels(2, 3, b, nil)
	require.NoError(t, err)
	_, _, withExplicit, err := crChannels(2, 3, b, b.CmdDef())
	require.NoError(t, err)

	assert.Equal(t, withExplicit, withNil)
}
