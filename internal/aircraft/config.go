package aircraft

import (
	"github.com/aerocats/massprops/internal/fuselage"
	"github.com/aerocats/massprops/internal/materials"
	"github.com/aerocats/massprops/internal/propulsion"
	"github.com/aerocats/massprops/internal/units"
	"github.com/aerocats/massprops/internal/wing"
)

// Config is a complete aircraft definition file. Lengths and weights are in
// Units; everything is converted to SI when the aircraft is built.
type Config struct {
	Name  string       `mapstructure:"name"`
	Units units.System `mapstructure:"units"`
	// Materials adds named materials derived from the default library.
	Materials map[string]materials.Spec `mapstructure:"materials"`

	Fuselage fuselage.Config `mapstructure:"fuselage"`

	// WingX is the x of the main wing root leading edge behind the nose.
	WingX float64 `mapstructure:"wingX"`
	// WingFuseFrac puts the wing root between the fuselage bottom (0) and top (1).
	WingFuseFrac float64               `mapstructure:"wingFuseFrac"`
	Wing         *wing.SurfaceConfig   `mapstructure:"wing"`
	BoxWing      *wing.BiplaneConfig   `mapstructure:"boxWing"`
	HTail        *TailConfig           `mapstructure:"htail"`
	VTail        *TailConfig           `mapstructure:"vtail"`
	MainGear     *MainGearConfig       `mapstructure:"mainGear"`
	NoseGear     *NoseGearConfig       `mapstructure:"noseGear"`
	Propulsion   *propulsion.Config    `mapstructure:"propulsion"`
	Equipment    []EquipmentConfig     `mapstructure:"equipment"`
	// EngineAlign puts the thrust line between the bottom (0) and top (1) of
	// the nose front bulkhead. Zero keeps the fuselage thrust line at z=0.
	EngineAlign float64 `mapstructure:"engineAlign"`
}

// TailConfig places a tail surface L behind the wing root leading edge,
// sitting on the top of the aftmost fuselage section raised by Z.
type TailConfig struct {
	L       float64            `mapstructure:"l"`
	Z       float64            `mapstructure:"z"`
	Surface wing.SurfaceConfig `mapstructure:",squash"`
}

// MainGearConfig is a bow strut with a wheel at each end.
type MainGearConfig struct {
	// X is the axle position; zero puts it at the wing root quarter chord.
	X              float64 `mapstructure:"x"`
	GearHeight     float64 `mapstructure:"gearHeight"`
	WheelDiam      float64 `mapstructure:"wheelDiam"`
	WheelThickness float64 `mapstructure:"wheelThickness"`
	// HalfTrack is the lateral distance from the centreline to each wheel.
	HalfTrack   float64 `mapstructure:"halfTrack"`
	StrutWeight float64 `mapstructure:"strutWeight"`
	WheelWeight float64 `mapstructure:"wheelWeight"`
	WeightGroup string  `mapstructure:"weightGroup"`
}

// NoseGearConfig is a single strut and wheel under the nose.
type NoseGearConfig struct {
	// X is measured from the nose front bulkhead.
	X              float64 `mapstructure:"x"`
	WheelDiam      float64 `mapstructure:"wheelDiam"`
	WheelThickness float64 `mapstructure:"wheelThickness"`
	StrutWeight    float64 `mapstructure:"strutWeight"`
	WheelWeight    float64 `mapstructure:"wheelWeight"`
	WeightGroup    string  `mapstructure:"weightGroup"`
}

// EquipmentConfig is a component mounted in a fuselage section but reported
// outside the fuselage structure, such as receivers and payload fixtures.
type EquipmentConfig struct {
	Section   string                   `mapstructure:"section"`
	Component fuselage.ComponentConfig `mapstructure:",squash"`
}

// Label defaults for subsystems that do not set their own.
const (
	LabelLandingGear = "LandingGear"
	LabelEquipment   = "Equipment"
)
