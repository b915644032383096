// Package propulsion builds the motor, propeller, battery and speed
// controller group and checks that their current ratings are compatible.
package propulsion

import (
	"errors"
	"fmt"

	"github.com/aerocats/massprops/internal/parts"
	"github.com/aerocats/massprops/pkg/core"
)

// ErrUnknownPart is returned when a model name is not in the catalog.
var ErrUnknownPart = errors.New("unknown catalog part")

// Default weight groups.
const (
	LabelPropulsion  = "Propulsion"
	LabelElectronics = "Electronics"
)

// Mount locates a part inside the fuselage.
type Mount struct {
	Section  string    `mapstructure:"section"`
	Face     string    `mapstructure:"face"`
	Fraction []float64 `mapstructure:"fraction"`
}

// Locator resolves mounts to body-frame points.
type Locator interface {
	Locate(m Mount) (core.Vec3, error)
}

// Config selects catalog parts by Model; any explicit value overrides the
// catalog entry. Values are in the definition file's input units except
// electrical quantities, which are always amps, volts and mAh.
type Config struct {
	Name            string                `mapstructure:"name"`
	Motor           MotorConfig           `mapstructure:"motor"`
	Propeller       PropellerConfig       `mapstructure:"propeller"`
	Battery         BatteryConfig         `mapstructure:"battery"`
	SpeedController SpeedControllerConfig `mapstructure:"speedController"`
}

type MotorConfig struct {
	Model       string  `mapstructure:"model"`
	Weight      float64 `mapstructure:"weight"`
	Length      float64 `mapstructure:"length"`
	Diameter    float64 `mapstructure:"diameter"`
	Imax        float64 `mapstructure:"imax"`
	Vmax        float64 `mapstructure:"vmax"`
	WeightGroup string  `mapstructure:"weightGroup"`
}

type PropellerConfig struct {
	Model       string  `mapstructure:"model"`
	Weight      float64 `mapstructure:"weight"`
	Diameter    float64 `mapstructure:"diameter"`
	Pitch       float64 `mapstructure:"pitch"`
	Thickness   float64 `mapstructure:"thickness"`
	WeightGroup string  `mapstructure:"weightGroup"`
}

type BatteryConfig struct {
	Model   string  `mapstructure:"model"`
	Weight  float64 `mapstructure:"weight"`
	Voltage float64 `mapstructure:"voltage"`
	Cells   int     `mapstructure:"cells"`
	// Capacity in mAh.
	Capacity    float64   `mapstructure:"capacity"`
	CRating     float64   `mapstructure:"cRating"`
	Size        []float64 `mapstructure:"size"`
	Mount       Mount     `mapstructure:"mount"`
	WeightGroup string    `mapstructure:"weightGroup"`
}

type SpeedControllerConfig struct {
	Model       string    `mapstructure:"model"`
	Weight      float64   `mapstructure:"weight"`
	Imax        float64   `mapstructure:"imax"`
	Size        []float64 `mapstructure:"size"`
	Mount       Mount     `mapstructure:"mount"`
	WeightGroup string    `mapstructure:"weightGroup"`
}

// Propulsion is the built propulsion group with the resolved parts.
type Propulsion struct {
	Group           *core.Group
	Motor           Motor
	Propeller       Propeller
	Battery         Battery
	SpeedController SpeedController
}

// Build assembles the propulsion group. The motor's back face sits at
// firewall and the propeller in front of the motor, both on the thrust line
// through firewall. Battery and speed controller are mounted through loc.
func Build(cfg Config, env parts.Env, firewall core.Vec3, loc Locator) (*Propulsion, error) {
	name := cfg.Name
	if name == "" {
		name = "Propulsion"
	}
	p := &Propulsion{}
	var err error
	if p.Motor, err = resolveMotor(cfg.Motor, env); err != nil {
		return nil, err
	}
	if p.Propeller, err = resolvePropeller(cfg.Propeller, env); err != nil {
		return nil, err
	}
	if p.Battery, err = resolveBattery(cfg.Battery, env); err != nil {
		return nil, err
	}
	if p.SpeedController, err = resolveSpeedController(cfg.SpeedController, env); err != nil {
		return nil, err
	}

	b := core.NewGroupBuilder(name).Label(LabelPropulsion)

	if p.Motor.Weight > 0 {
		m := p.Motor
		b.AddElement(core.Element{
			Name:        "Motor",
			Weight:      m.Weight,
			Position:    firewall.Add(core.NewVec3(-m.Length/2, 0, 0)),
			WeightGroup: orDefault(cfg.Motor.WeightGroup, LabelPropulsion),
			Inertia:     core.CylinderInertia(env.Mass(m.Weight), m.Length, m.Diameter),
		})
	}
	if p.Propeller.Weight > 0 {
		pr := p.Propeller
		b.AddElement(core.Element{
			Name:        "Propeller",
			Weight:      pr.Weight,
			Position:    firewall.Add(core.NewVec3(-p.Motor.Length-pr.Thickness/2, 0, 0)),
			WeightGroup: orDefault(cfg.Propeller.WeightGroup, LabelPropulsion),
			Inertia:     core.DiskInertia(env.Mass(pr.Weight), pr.Diameter),
		})
	}
	if p.Battery.Weight > 0 {
		e, err := mounted("Battery", p.Battery.Weight, p.Battery.Size, cfg.Battery.Mount, env, loc)
		if err != nil {
			return nil, err
		}
		e.WeightGroup = orDefault(cfg.Battery.WeightGroup, LabelElectronics)
		b.AddElement(e)
	}
	if p.SpeedController.Weight > 0 {
		e, err := mounted("SpeedController", p.SpeedController.Weight, p.SpeedController.Size, cfg.SpeedController.Mount, env, loc)
		if err != nil {
			return nil, err
		}
		e.WeightGroup = orDefault(cfg.SpeedController.WeightGroup, LabelElectronics)
		b.AddElement(e)
	}

	if p.Group, err = b.Build(); err != nil {
		return nil, err
	}
	return p, nil
}

// Warnings reports rating mismatches between the parts. Unset ratings are skipped.
func (p *Propulsion) Warnings() []string {
	var out []string
	m := p.Motor
	if m.Imax > 0 && p.SpeedController.Imax > 0 && p.SpeedController.Imax < m.Imax {
		out = append(out, fmt.Sprintf("speed controller %s is rated %.1f A, below motor %s max %.1f A",
			p.SpeedController.Name, p.SpeedController.Imax, m.Name, m.Imax))
	}
	if bi := p.Battery.MaxCurrent(); m.Imax > 0 && bi > 0 && bi < m.Imax {
		out = append(out, fmt.Sprintf("battery %s delivers %.1f A, below motor %s max %.1f A",
			p.Battery.Name, bi, m.Name, m.Imax))
	}
	if m.Vmax > 0 && p.Battery.Voltage > m.Vmax {
		out = append(out, fmt.Sprintf("battery %s at %.1f V exceeds motor %s max %.1f V",
			p.Battery.Name, p.Battery.Voltage, m.Name, m.Vmax))
	}
	return out
}

func mounted(name string, weight float64, size [3]float64, m Mount, env parts.Env, loc Locator) (core.Element, error) {
	if loc == nil {
		return core.Element{}, fmt.Errorf("%s: no locator for mount in %q", name, m.Section)
	}
	pos, err := loc.Locate(m)
	if err != nil {
		return core.Element{}, fmt.Errorf("%s: %w", name, err)
	}
	return env.Box(name, weight, pos, size[0], size[1], size[2]), nil
}

func resolveMotor(c MotorConfig, env parts.Env) (Motor, error) {
	var m Motor
	if c.Model != "" {
		var ok bool
		if m, ok = LookupMotor(c.Model); !ok {
			return Motor{}, fmt.Errorf("%w: motor %q", ErrUnknownPart, c.Model)
		}
	}
	override(&m.Weight, env.Conv.Force(c.Weight))
	override(&m.Length, env.Conv.Length(c.Length))
	override(&m.Diameter, env.Conv.Length(c.Diameter))
	override(&m.Imax, c.Imax)
	override(&m.Vmax, c.Vmax)
	if m.Name == "" {
		m.Name = "motor"
	}
	return m, nil
}

func resolvePropeller(c PropellerConfig, env parts.Env) (Propeller, error) {
	var p Propeller
	if c.Model != "" {
		var ok bool
		if p, ok = LookupPropeller(c.Model); !ok {
			return Propeller{}, fmt.Errorf("%w: propeller %q", ErrUnknownPart, c.Model)
		}
	}
	override(&p.Weight, env.Conv.Force(c.Weight))
	override(&p.Diameter, env.Conv.Length(c.Diameter))
	override(&p.Pitch, env.Conv.Length(c.Pitch))
	override(&p.Thickness, env.Conv.Length(c.Thickness))
	return p, nil
}

func resolveBattery(c BatteryConfig, env parts.Env) (Battery, error) {
	var b Battery
	if c.Model != "" {
		var ok bool
		if b, ok = LookupBattery(c.Model); !ok {
			return Battery{}, fmt.Errorf("%w: battery %q", ErrUnknownPart, c.Model)
		}
	}
	override(&b.Weight, env.Conv.Force(c.Weight))
	override(&b.Voltage, c.Voltage)
	override(&b.Capacity, c.Capacity/1000)
	override(&b.CRating, c.CRating)
	if c.Cells > 0 {
		b.Cells = c.Cells
	}
	if len(c.Size) > 0 {
		size, err := env.Vec(c.Size)
		if err != nil {
			return Battery{}, fmt.Errorf("battery: %w", err)
		}
		b.Size = [3]float64{size.X, size.Y, size.Z}
	}
	if b.Name == "" {
		b.Name = "battery"
	}
	return b, nil
}

func resolveSpeedController(c SpeedControllerConfig, env parts.Env) (SpeedController, error) {
	var s SpeedController
	if c.Model != "" {
		var ok bool
		if s, ok = LookupSpeedController(c.Model); !ok {
			return SpeedController{}, fmt.Errorf("%w: speed controller %q", ErrUnknownPart, c.Model)
		}
	}
	override(&s.Weight, env.Conv.Force(c.Weight))
	override(&s.Imax, c.Imax)
	if len(c.Size) > 0 {
		size, err := env.Vec(c.Size)
		if err != nil {
			return SpeedController{}, fmt.Errorf("speed controller: %w", err)
		}
		s.Size = [3]float64{size.X, size.Y, size.Z}
	}
	if s.Name == "" {
		s.Name = "speed controller"
	}
	return s, nil
}

func override(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
