package main

import (
	"bytes"
	"fmt"
	"math/cmplx"
	"os"
	"strconv"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

// GatePulse holds the calibrated defaults for a single-qubit drive pulse.
type GatePulse struct {
	Duration int     `yaml:"duration"`
	Amp      float64 `yaml:"amp"`
	Sigma    float64 `yaml:"sigma"`
}

// MeasurePulse holds the calibrated defaults for the readout stimulus.
type MeasurePulse struct {
	Duration int     `yaml:"duration"`
	Amp      float64 `yaml:"amp"`
}

// CRPulse holds the calibrated defaults of the flat-top CR drive inside the
// backend's canonical cx realization.
type CRPulse struct {
	Duration int     `yaml:"duration"`
	Amp      float64 `yaml:"amp"`
	Sigma    float64 `yaml:"sigma"`
	Risefall int     `yaml:"risefall"`
}

// CalDefaults is the backend's calibrated pulse library.
type CalDefaults struct {
	X       GatePulse    `yaml:"x"`
	U2      GatePulse    `yaml:"u2"`
	Measure MeasurePulse `yaml:"measure"`
	CX      CRPulse      `yaml:"cx"`
}

// Coupling assigns a coupling (control) channel index to an ordered qubit
// pair. The cx primitive for (Control, Target) drives this channel.
type Coupling struct {
	Control int `yaml:"control"`
	Target  int `yaml:"target"`
	Channel int `yaml:"channel"`
}

// Backend describes a target system: calibration defaults, channel
// assignments, sample timing, and measurement grouping. It is read-only for
// the duration of any builder call.
type Backend struct {
	Name      string      `yaml:"name"`
	NumQubits int         `yaml:"num_qubits"`
	DT        float64     `yaml:"dt_ns"` // sample interval in nanoseconds
	Buffer    int         `yaml:"buffer"`
	MeasMap   [][]int     `yaml:"meas_map"`
	Couplings []Coupling  `yaml:"couplings"`
	Defaults  CalDefaults `yaml:"defaults"`
}

// Drive returns the analog drive channel for a qubit.
func (b *Backend) Drive(q int) Channel {
	return Channel{Kind: DriveChannel, Index: q}
}

// coupling returns the coupling assignment for an ordered qubit pair.
func (b *Backend) coupling(c, t int) (Coupling, bool) {
	for _, cu := range b.Couplings {
		if cu.Control == c && cu.Target == t {
			return cu, true
		}
	}
	return Coupling{}, false
}

// DefaultBackend returns a built-in five-qubit linear device with plausible
// calibration values, used when no backend file is supplied.
func DefaultBackend() *Backend {
	b := &Backend{
		Name:      "qtp_linear5",
		NumQubits: 5,
		DT:        0.2222,
		Buffer:    2,
		MeasMap:   [][]int{{0, 1, 2, 3, 4}},
		Defaults: CalDefaults{
			X:       GatePulse{Duration: 64, Amp: 0.25, Sigma: 16},
			U2:      GatePulse{Duration: 32, Amp: 0.125, Sigma: 8},
			Measure: MeasurePulse{Duration: 800, Amp: 0.1},
			CX:      CRPulse{Duration: 512, Amp: 0.18, Sigma: 32, Risefall: 128},
		},
	}
	for q := 0; q < b.NumQubits-1; q++ {
		b.Couplings = append(b.Couplings,
			Coupling{Control: q, Target: q + 1, Channel: 2 * q},
			Coupling{Control: q + 1, Target: q, Channel: 2*q + 1},
		)
	}
	return b
}

// LoadBackend reads a backend description from a YAML file. Unknown fields
// are rejected so typos in calibration files surface immediately.
func LoadBackend(path string) (*Backend, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backend: %w", err)
	}
	return ParseBackend(data)
}

// ParseBackend decodes a YAML backend description.
func ParseBackend(data []byte) (*Backend, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var b Backend
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("parse backend: %w", err)
	}
	if b.NumQubits < 1 {
		return nil, fmt.Errorf("parse backend: num_qubits must be at least 1")
	}
	if len(b.MeasMap) == 0 {
		return nil, fmt.Errorf("parse backend: meas_map must define at least one measurement group")
	}
	return &b, nil
}

// ToYAML renders the backend as a YAML document for the editor panel.
func (b *Backend) ToYAML() string {
	out, err := yaml.Marshal(b)
	if err != nil {
		return ""
	}
	return string(out)
}

// ──────────────────────────── Command definitions ────────────────────────────

// CmdBuilder builds the pulse realization of an operation. Parameterized
// operations (u2) receive their phase parameters here.
type CmdBuilder func(params ...float64) *Schedule

type cmdKey struct {
	name   string
	qubits string
}

func qubitsKey(qubits []int) string {
	parts := make([]string, len(qubits))
	for i, q := range qubits {
		parts[i] = strconv.Itoa(q)
	}
	return strings.Join(parts, ",")
}

// CmdDef maps (operation name, qubit tuple) to a canonical timed pulse
// realization. It is an explicit snapshot: builders must be handed the same
// CmdDef for every lookup within one call so that durations stay consistent.
type CmdDef struct {
	entries map[cmdKey]CmdBuilder
}

// NewCmdDef creates an empty command-definition mapping.
func NewCmdDef() *CmdDef {
	return &CmdDef{entries: make(map[cmdKey]CmdBuilder)}
}

// Register adds or replaces the realization of an operation on a qubit tuple.
func (cd *CmdDef) Register(name string, qubits []int, build CmdBuilder) {
	cd.entries[cmdKey{name: name, qubits: qubitsKey(qubits)}] = build
}

// Has reports whether an operation is defined for a qubit tuple.
func (cd *CmdDef) Has(name string, qubits []int) bool {
	_, ok := cd.entries[cmdKey{name: name, qubits: qubitsKey(qubits)}]
	return ok
}

// Get resolves the schedule for an operation on a qubit tuple.
func (cd *CmdDef) Get(name string, qubits []int, params ...float64) (*Schedule, error) {
	build, ok := cd.entries[cmdKey{name: name, qubits: qubitsKey(qubits)}]
	if !ok {
		return nil, fmt.Errorf("cmd_def: %s on qubits %s not defined", name, qubitsKey(qubits))
	}
	return build(params...), nil
}

// CmdDef derives a fresh command-definition mapping from the backend's
// calibration defaults: x, u2 and measure per qubit group, and a cx
// realization per coupling.
func (b *Backend) CmdDef() *CmdDef {
	cd := NewCmdDef()
	d := b.Defaults

	for q := 0; q < b.NumQubits; q++ {
		q := q
		cd.Register("x", []int{q}, func(...float64) *Schedule {
			s := NewSchedule(fmt.Sprintf("x_q%d", q))
			s.Add(0, b.Drive(q), Gaussian{Duration: d.X.Duration, Amp: complex(d.X.Amp, 0), Sigma: d.X.Sigma})
			return s
		})
		cd.Register("u2", []int{q}, func(params ...float64) *Schedule {
			var p0, p1 float64
			if len(params) > 0 {
				p0 = params[0]
			}
			if len(params) > 1 {
				p1 = params[1]
			}
			s := NewSchedule(fmt.Sprintf("u2_q%d", q))
			amp := complex(d.U2.Amp, 0) * cmplx.Rect(1, (p0+p1)/2)
			s.Add(0, b.Drive(q), Gaussian{Duration: d.U2.Duration, Amp: amp, Sigma: d.U2.Sigma})
			return s
		})
	}

	for _, group := range b.MeasMap {
		group := group
		cd.Register("measure", group, func(...float64) *Schedule {
			s := NewSchedule("measure")
			for _, q := range group {
				s.Add(0, Channel{Kind: MeasureChannel, Index: q}, Constant{Duration: d.Measure.Duration, Amp: complex(d.Measure.Amp, 0)})
				s.Add(0, Channel{Kind: AcquireChannel, Index: q}, Acquire{Duration: d.Measure.Duration})
			}
			return s
		})
	}

	for _, cu := range b.Couplings {
		cu := cu
		cd.Register("cx", []int{cu.Control, cu.Target}, func(...float64) *Schedule {
			// Echoed realization: flip, CR half drive, flip, CR half drive.
			s := NewSchedule(fmt.Sprintf("cx_q%d_q%d", cu.Control, cu.Target))
			crCh := Channel{Kind: ControlChannel, Index: cu.Channel}
			half := d.CX.Duration / 2
			cr := GaussianSquare{Duration: half, Amp: complex(d.CX.Amp, 0), Sigma: d.CX.Sigma, Risefall: d.CX.Risefall}
			crNeg := cr
			crNeg.Amp = -cr.Amp

			s.Add(0, b.Drive(cu.Control), Gaussian{Duration: d.X.Duration, Amp: complex(d.X.Amp, 0), Sigma: d.X.Sigma})
			off := d.X.Duration + b.Buffer
			s.Add(off, crCh, cr)
			off += half + b.Buffer
			s.Add(off, b.Drive(cu.Control), Gaussian{Duration: d.X.Duration, Amp: complex(d.X.Amp, 0), Sigma: d.X.Sigma})
			off += d.X.Duration + b.Buffer
			s.Add(off, crCh, crNeg)
			return s
		})
	}

	return cd
}
