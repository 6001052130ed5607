package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

// InstructionDump is the serialized form of one timed pulse instruction.
type InstructionDump struct {
	Channel  string `yaml:"channel" json:"channel"`
	Start    int    `yaml:"start" json:"start"`
	Duration int    `yaml:"duration" json:"duration"`
	Shape    string `yaml:"shape" json:"shape"`
	Amp      string `yaml:"amp,omitempty" json:"amp,omitempty"`
}

// ScheduleDump is the serialized form of one schedule.
type ScheduleDump struct {
	Name         string            `yaml:"name" json:"name"`
	Duration     int               `yaml:"duration" json:"duration"`
	Instructions []InstructionDump `yaml:"instructions" json:"instructions"`
}

// ExperimentSet is the full export payload: the tomography schedules in
// their fixed enumeration order plus the context a fitter needs to slice
// them (backend identity, sweep times, qubit pair).
type ExperimentSet struct {
	Backend   string         `yaml:"backend" json:"backend"`
	Control   int            `yaml:"control_qubit" json:"control_qubit"`
	Target    int            `yaml:"target_qubit" json:"target_qubit"`
	DTNanos   float64        `yaml:"dt_ns" json:"dt_ns"`
	Echoed    bool           `yaml:"echoed" json:"echoed"`
	CRTimes   []float64      `yaml:"cr_times" json:"cr_times"`
	Schedules []ScheduleDump `yaml:"schedules" json:"schedules"`
}

// dumpAmp extracts the display amplitude of an envelope; empty for
// non-driving envelopes (delay, acquire).
func dumpAmp(e Envelope) string {
	switch env := e.(type) {
	case GaussianSquare:
		return formatAmp(env.Amp)
	case Gaussian:
		return formatAmp(env.Amp)
	case Constant:
		return formatAmp(env.Amp)
	}
	return ""
}

// dumpSchedule flattens a schedule into its serialized form, instructions in
// start-time order.
func dumpSchedule(s *Schedule) ScheduleDump {
	d := ScheduleDump{Name: s.Name, Duration: s.Duration()}
	for _, in := range s.Instructions() {
		d.Instructions = append(d.Instructions, InstructionDump{
			Channel:  in.Channel.String(),
			Start:    in.Start,
			Duration: in.Env.Dur(),
			Shape:    in.Env.ShapeName(),
			Amp:      dumpAmp(in.Env),
		})
	}
	return d
}

// buildExperimentSet assembles the export payload. Schedule order is
// preserved exactly; consumers index it as rabiIdx*6 + basisIdx*2 + state.
func buildExperimentSet(b *Backend, cQubit, tQubit int, echoed bool, times []float64, schedules []*Schedule) ExperimentSet {
	set := ExperimentSet{
		Backend: b.Name,
		Control: cQubit,
		Target:  tQubit,
		DTNanos: b.DT,
		Echoed:  echoed,
		CRTimes: times,
	}
	for _, s := range schedules {
		set.Schedules = append(set.Schedules, dumpSchedule(s))
	}
	return set
}

// marshalExperimentSet encodes the set as YAML or JSON.
func marshalExperimentSet(set ExperimentSet, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(set, "", "  ")
	case "yaml", "yml":
		return yaml.Marshal(set)
	}
	return nil, fmt.Errorf("export: unsupported format %q", format)
}

// writeExperimentSet writes the set to path, picking the format from the
// file extension (.json, .yaml, .yml).
func writeExperimentSet(path string, set ExperimentSet) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		format = "yaml"
	}
	data, err := marshalExperimentSet(set, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
