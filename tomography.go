package main

import (
	"fmt"
	"math"
)

// tomographyBases is the fixed measurement-basis enumeration order. Fitters
// slicing results rely on it; changing it is a breaking contract change.
var tomographyBases = [3]string{"x", "y", "z"}

// CRTomographySchedules wraps each CR Rabi schedule with state preparation
// and measurement: one output per (rabi schedule x basis x control state)
// combination, 6 per rabi schedule, enumerated as
//
//	index = rabiIdx*6 + basisIdx*2 + controlState
//
// with bases in x, y, z order and control states 0, 1. Each schedule is
// named "rabiIdx,basis,state". The x and y basis rotations are u2 pulses on
// the target qubit (half- and quarter-turn phases); z needs no rotation, so
// its measurement is shifted by the same delay to keep the bases
// isochronous.
func CRTomographySchedules(cQubit, tQubit int, b *Backend, rabiSchedules []*Schedule, cmdDef *CmdDef) ([]*Schedule, error) {
	if cmdDef == nil {
		cmdDef = b.CmdDef()
	}
	if len(b.MeasMap) == 0 {
		return nil, fmt.Errorf("tomography: backend defines no measurement groups")
	}
	buffer := b.Buffer

	// pi pulse to flip the control qubit into |1>
	flipCtrl, err := cmdDef.Get("x", []int{cQubit})
	if err != nil {
		return nil, err
	}
	measure, err := cmdDef.Get("measure", b.MeasMap[0])
	if err != nil {
		return nil, err
	}

	xProj, err := cmdDef.Get("u2", []int{tQubit}, 0, math.Pi)
	if err != nil {
		return nil, err
	}
	yProj, err := cmdDef.Get("u2", []int{tQubit}, 0, 0.5*math.Pi)
	if err != nil {
		return nil, err
	}

	projDelay := max(xProj.Duration(), yProj.Duration()) + buffer

	xBasis := xProj.Shift(0)
	xBasis.Insert(projDelay, measure)
	yBasis := yProj.Shift(0)
	yBasis.Insert(projDelay, measure)
	zBasis := measure.Shift(projDelay)

	basisSchedules := map[string]*Schedule{
		"x": xBasis,
		"y": yBasis,
		"z": zBasis,
	}

	flipDur := flipCtrl.Duration()

	schedules := make([]*Schedule, 0, len(rabiSchedules)*6)
	for rabiIdx, rabiSched := range rabiSchedules {
		for _, basis := range tomographyBases {
			for _, cState := range [2]int{0, 1} {
				sched := NewSchedule(fmt.Sprintf("%d,%s,%d", rabiIdx, basis, cState))

				crOffset := buffer
				if cState == 1 {
					sched.Insert(0, flipCtrl)
					crOffset = flipDur + buffer
				}
				sched.Insert(crOffset, rabiSched)
				sched.Insert(sched.Duration()+buffer, basisSchedules[basis])

				schedules = append(schedules, sched)
			}
		}
	}

	return schedules, nil
}
