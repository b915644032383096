package propulsion

import (
	"strings"

	"github.com/aerocats/massprops/internal/units"
)

// Catalog entries are SI: newtons, metres, amps, volts.

// Motor is an electric motor.
type Motor struct {
	Name     string
	Weight   float64
	Length   float64
	Diameter float64
	Imax     float64
	Vmax     float64
	Kv       float64
}

// Propeller is a fixed-pitch propeller.
type Propeller struct {
	Name      string
	Weight    float64
	Diameter  float64
	Pitch     float64
	Thickness float64
}

// Battery is a battery pack.
type Battery struct {
	Name    string
	Weight  float64
	Voltage float64
	Cells   int
	// Capacity in amp hours.
	Capacity float64
	CRating  float64
	Size     [3]float64
}

// MaxCurrent is the continuous discharge limit in amps.
func (b Battery) MaxCurrent() float64 { return b.Capacity * b.CRating }

// Energy is the stored energy in watt hours.
func (b Battery) Energy() float64 { return b.Voltage * b.Capacity }

// SpeedController is an electronic speed controller.
type SpeedController struct {
	Name   string
	Weight float64
	Imax   float64
	Size   [3]float64
}

const gf = units.GF

var motors = map[string]Motor{
	"hacker_a50_14l": {Name: "Hacker_A50_14L", Weight: 445 * gf, Length: 46.8 * units.MM, Diameter: 59.98 * units.MM, Imax: 55, Vmax: 23.5, Kv: 310},
	"scorpion250kv":  {Name: "Scorpion250KV", Weight: 450 * gf, Length: 48.8 * units.MM, Diameter: 64.9 * units.MM, Imax: 65, Vmax: 23.5, Kv: 250},
}

var propellers = map[string]Propeller{
	"apc_20x8e":  {Name: "APC 20x8E", Weight: 4.05 * units.OZF, Diameter: 20 * units.IN, Pitch: 8 * units.IN, Thickness: 0.5 * units.IN},
	"apc_22x12e": {Name: "APC 22x12E", Weight: 159.89 * gf, Diameter: 22 * units.IN, Pitch: 12 * units.IN, Thickness: 0.5 * units.IN},
	"apc_24x12e": {Name: "APC 24x12E", Weight: 150 * gf, Diameter: 24 * units.IN, Pitch: 12 * units.IN, Thickness: 0.5 * units.IN},
}

var batteries = map[string]Battery{
	"turnigy_6cell_3000": {
		Name: "Turnigy_6Cell_3000", Weight: 0.915 * units.LBF, Voltage: 22.2, Cells: 6, Capacity: 3, CRating: 25,
		Size: [3]float64{1.5 * units.IN, 1.5 * units.IN, 5.5 * units.IN},
	},
}

var speedControllers = map[string]SpeedController{
	"phoenix10":  {Name: "Phoenix10", Weight: 7 * gf, Imax: 10},
	"phoenix25":  {Name: "Phoenix25", Weight: 19 * gf, Imax: 25},
	"phoenix100": {Name: "Phoenix100", Weight: 72.9 * gf, Imax: 100, Size: [3]float64{2.8 * units.IN, 2 * units.IN, 0.9 * units.IN}},
	"x5":         {Name: "X5", Weight: 5 * gf, Imax: 5},
}

func key(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// LookupMotor returns a catalogued motor.
func LookupMotor(name string) (Motor, bool) {
	m, ok := motors[key(name)]
	return m, ok
}

// LookupPropeller returns a catalogued propeller.
func LookupPropeller(name string) (Propeller, bool) {
	p, ok := propellers[key(name)]
	return p, ok
}

// LookupBattery returns a catalogued battery.
func LookupBattery(name string) (Battery, bool) {
	b, ok := batteries[key(name)]
	return b, ok
}

// LookupSpeedController returns a catalogued speed controller.
func LookupSpeedController(name string) (SpeedController, bool) {
	s, ok := speedControllers[key(name)]
	return s, ok
}
