package aircraft

import (
	"errors"

	"github.com/aerocats/massprops/internal/fuselage"
	"github.com/aerocats/massprops/internal/parts"
	"github.com/aerocats/massprops/pkg/core"
)

var errGearNeedsFuselage = errors.New("landing gear needs a fuselage")

// mainGear builds the bow strut and wheels and returns the ground z.
func mainGear(c MainGearConfig, env parts.Env, layout fuselage.Layout, x float64) (*core.Group, float64, error) {
	box, ok := layout.SectionAt(x)
	if !ok {
		return nil, 0, errGearNeedsFuselage
	}
	conv := env.Conv
	bottom := box.Bottom()
	ground := bottom - conv.Length(c.GearHeight)
	d := conv.Length(c.WheelDiam)
	axle := ground + d/2
	track := conv.Length(c.HalfTrack)

	b := core.NewGroupBuilder("MainGear").Label(orDefault(c.WeightGroup, LabelLandingGear))
	if w := conv.Force(c.StrutWeight); w > 0 {
		pos := core.NewVec3(x, 0, (bottom+axle)/2)
		b.AddElement(env.Box("Strut", w, pos, conv.Length(c.WheelThickness), 2*track, bottom-axle))
	}
	if w := conv.Force(c.WheelWeight); w > 0 {
		t := conv.Length(c.WheelThickness)
		b.AddElement(wheel("LeftWheel", w, core.NewVec3(x, -track, axle), d, t, env))
		b.AddElement(wheel("RightWheel", w, core.NewVec3(x, track, axle), d, t, env))
	}
	g, err := b.Build()
	return g, ground, err
}

// noseGear builds a strut from the nose bottom down to a single wheel. With a
// main gear the wheel stands on the same ground plane; otherwise it hangs one
// wheel diameter below the nose.
func noseGear(c NoseGearConfig, env parts.Env, layout fuselage.Layout, ground float64, haveGround bool) (*core.Group, error) {
	boxes := layout.Sections()
	if len(boxes) == 0 {
		return nil, errGearNeedsFuselage
	}
	conv := env.Conv
	x := boxes[0].StartX + conv.Length(c.X)
	box, _ := layout.SectionAt(x)
	bottom := box.Bottom()
	d := conv.Length(c.WheelDiam)
	if !haveGround {
		ground = bottom - d
	}
	axle := ground + d/2

	b := core.NewGroupBuilder("NoseGear").Label(orDefault(c.WeightGroup, LabelLandingGear))
	if w := conv.Force(c.StrutWeight); w > 0 {
		b.AddElement(env.Rod("Strut", w, core.NewVec3(x, 0, bottom), core.NewVec3(x, 0, axle)))
	}
	if w := conv.Force(c.WheelWeight); w > 0 {
		b.AddElement(wheel("Wheel", w, core.NewVec3(x, 0, axle), d, conv.Length(c.WheelThickness), env))
	}
	return b.Build()
}

// wheel is a thin disk spinning about the y axis.
func wheel(name string, weight float64, pos core.Vec3, diam, thickness float64, env parts.Env) core.Element {
	m := env.Mass(weight)
	r := diam / 2
	side := m*r*r/4 + m*thickness*thickness/12
	return core.Element{
		Name:     name,
		Weight:   weight,
		Position: pos,
		Inertia:  core.DiagonalInertia(side, m*r*r/2, side),
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
