package main

import (
	"errors"
	"fmt"
)

// Sentinel variants for the two terminal characterization failures: the
// backend has no cx primitive for the requested pair, or the primitive
// exists but drives no coupling channel.
var (
	ErrNoCrossResonance = errors.New("cross resonance not defined")
	ErrNoControlChannel = errors.New("no valid control channel")
)

// CharacterizationError signals a missing hardware capability discovered
// while resolving channels for a CR experiment. It unwraps to one of the
// sentinel variants above.
type CharacterizationError struct {
	Msg string
	err error
}

func (e *CharacterizationError) Error() string { return e.Msg }
func (e *CharacterizationError) Unwrap() error { return e.err }

// crChannels resolves the three channels a CR experiment needs: the control
// qubit drive, the target qubit drive, and the coupling channel carrying the
// cross-resonance drive. The coupling channel is found by scanning the pulse
// instructions of the backend's canonical cx primitive for the pair.
//
// A nil cmdDef derives a fresh mapping from the backend defaults. Failures
// are immediate and terminal; no partial results are returned.
func crChannels(cQubit, tQubit int, b *Backend, cmdDef *CmdDef) (cDrive, tDrive, crDrive Channel, err error) {
	if cmdDef == nil {
		cmdDef = b.CmdDef()
	}

	cxRef, getErr := cmdDef.Get("cx", []int{cQubit, tQubit})
	if getErr != nil {
		return Channel{}, Channel{}, Channel{}, &CharacterizationError{
			Msg: fmt.Sprintf("cross resonance is not defined for qubits %d-%d", cQubit, tQubit),
			err: ErrNoCrossResonance,
		}
	}

	pulses := cxRef.Filter(func(in Instruction) bool { return isPulse(in.Env) })
	found := false
	for _, ch := range pulses.Channels() {
		if ch.Kind == ControlChannel {
			crDrive = ch
			found = true
			break
		}
	}
	if !found {
		return Channel{}, Channel{}, Channel{}, &CharacterizationError{
			Msg: "no valid control channel to drive cross resonance",
			err: ErrNoControlChannel,
		}
	}

	return b.Drive(cQubit), b.Drive(tQubit), crDrive, nil
}
