package units

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedUnit reports a speed unit name outside the registry.
var ErrUnsupportedUnit = errors.New("unsupported speed unit")

// Unit identifies one speed unit by its canonical code.
type Unit struct {
	code string
}

type entry struct {
	code    string   // canonical code used in config and flags
	label   string   // label rendered in caption text
	display string   // human-readable name
	factor  float64  // multiplier to meters per second
	aliases []string // accepted spellings
}

var speeds = []entry{
	{"mph", "mph", "miles per hour", 0.44704, []string{"mi/h", "milesperhour"}},
	{"kph", "km/h", "kilometers per hour", 1.0 / 3.6, []string{"km/h", "kmh", "kmph", "kilometersperhour"}},
	{"mps", "m/s", "meters per second", 1.0, []string{"m/s", "ms", "meterspersecond"}},
	{"knots", "kn", "knots", 0.514444, []string{"kn", "kt", "kts", "knot"}},
}

var byName map[string]*entry

func init() {
	byName = make(map[string]*entry, len(speeds)*3)
	for i := range speeds {
		e := &speeds[i]
		byName[e.code] = e
		for _, alias := range e.aliases {
			byName[alias] = e
		}
	}
}

// Parse resolves a unit name or alias to its canonical Unit.
// Unknown names return ErrUnsupportedUnit wrapped with the offending value.
func Parse(name string) (Unit, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Unit{}, fmt.Errorf("%w: empty name", ErrUnsupportedUnit)
	}
	e, ok := byName[key]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedUnit, name, supportedList())
	}
	return Unit{code: e.code}, nil
}

// MustParse is Parse for registry-known constants in tests and defaults.
// It panics on unknown names.
func MustParse(name string) Unit {
	u, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return u
}

// Code returns the canonical unit code (e.g. "mph", "kph").
func (u Unit) Code() string { return u.code }

// Label returns the short label rendered after speed values in captions.
func (u Unit) Label() string {
	if e, ok := byName[u.code]; ok {
		return e.label
	}
	return u.code
}

// DisplayName returns the long human-readable unit name.
func (u Unit) DisplayName() string {
	if e, ok := byName[u.code]; ok {
		return e.display
	}
	return u.code
}

// IsZero reports whether the unit was never initialized via Parse.
func (u Unit) IsZero() bool { return u.code == "" }

func (u Unit) String() string { return u.code }

// Convert rescales value from one unit to another. Conversion is a single
// linear factor through meters per second.
func Convert(value float64, from, to Unit) float64 {
	if from.code == to.code {
		return value
	}
	fe, fok := byName[from.code]
	te, tok := byName[to.code]
	if !fok || !tok {
		return value
	}
	return value * fe.factor / te.factor
}

// Supported returns the canonical codes in registry order.
func Supported() []string {
	codes := make([]string, 0, len(speeds))
	for i := range speeds {
		codes = append(codes, speeds[i].code)
	}
	return codes
}

func supportedList() string {
	return strings.Join(Supported(), ", ")
}
