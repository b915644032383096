package fuselage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aerocats/massprops/pkg/core"
)

// ErrUnknownSection is returned when a placement names a section that does not exist.
var ErrUnknownSection = errors.New("unknown fuselage section")

// ErrUnknownFace is returned for a mounting face other than the six box faces.
var ErrUnknownFace = errors.New("unknown mounting face")

// Face is the section wall a component is mounted against.
type Face string

const (
	Front  Face = "front"
	Back   Face = "back"
	Left   Face = "left"
	Right  Face = "right"
	Top    Face = "top"
	Bottom Face = "bottom"
)

// ParseFace accepts any capitalisation of a face name.
func ParseFace(s string) (Face, error) {
	f := Face(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case Front, Back, Left, Right, Top, Bottom:
		return f, nil
	case "":
		return Front, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFace, s)
}

// Box is the bounding box of one fuselage section in SI body axes.
type Box struct {
	Name   string
	StartX float64
	Length float64
	Width  float64
	Height float64
	// Top is the z of the section's upper surface.
	Top float64

	backHeight float64
}

// EndX returns the x of the back bulkhead.
func (b Box) EndX() float64 { return b.StartX + b.Length }

// Bottom returns the z of the section's lower surface.
func (b Box) Bottom() float64 { return b.Top - b.Height }

// Place maps fractional coordinates measured from a mounting face to a point.
// Fractions run across the box from the reference wall: fx from the front (or
// back) bulkhead, fy from the left (or right) wall, fz from the bottom (or top).
// The face flips the axis normal to it. Values outside [0,1] extend past the walls.
func (b Box) Place(face Face, frac core.Vec3) core.Vec3 {
	fx, fy, fz := frac.X, frac.Y, frac.Z
	switch face {
	case Back:
		fx = 1 - fx
	case Right:
		fy = 1 - fy
	case Top:
		fz = 1 - fz
	}
	return core.NewVec3(
		b.StartX+fx*b.Length,
		-b.Width/2+fy*b.Width,
		b.Bottom()+fz*b.Height,
	)
}

// Layout is the ordered set of section boxes. Other subsystems use it to mount
// parts inside the fuselage.
type Layout struct {
	boxes []Box
}

// Sections returns a copy of the section boxes, nose first.
func (l Layout) Sections() []Box {
	out := make([]Box, len(l.boxes))
	copy(out, l.boxes)
	return out
}

// Section looks a box up by name.
func (l Layout) Section(name string) (Box, error) {
	for _, b := range l.boxes {
		if strings.EqualFold(b.Name, name) {
			return b, nil
		}
	}
	return Box{}, fmt.Errorf("%w: %q", ErrUnknownSection, name)
}

// Place resolves a mounting inside a named section.
func (l Layout) Place(section string, face Face, frac core.Vec3) (core.Vec3, error) {
	b, err := l.Section(section)
	if err != nil {
		return core.Vec3{}, err
	}
	return b.Place(face, frac), nil
}

// Length returns the overall fuselage length.
func (l Layout) Length() float64 {
	if len(l.boxes) == 0 {
		return 0
	}
	last := l.boxes[len(l.boxes)-1]
	return last.EndX() - l.boxes[0].StartX
}

// Tail returns the aftmost section box.
func (l Layout) Tail() (Box, bool) {
	if len(l.boxes) == 0 {
		return Box{}, false
	}
	return l.boxes[len(l.boxes)-1], true
}

// Reference resolves the design CG reference for a section and fraction.
func (l Layout) Reference(section string, frac float64) (core.DesignReference, error) {
	b, err := l.Section(section)
	if err != nil {
		return core.DesignReference{}, err
	}
	return core.DesignReference{Section: b.Name, StartX: b.StartX, Length: b.Length, Fraction: frac}, nil
}

// SectionAt returns the section spanning body x. Points ahead of the nose
// map to the first section and points behind the tail to the last.
func (l Layout) SectionAt(x float64) (Box, bool) {
	if len(l.boxes) == 0 {
		return Box{}, false
	}
	for _, b := range l.boxes {
		if x <= b.EndX() {
			return b, true
		}
	}
	return l.boxes[len(l.boxes)-1], true
}

// Locate resolves a mount against the layout. An empty face means the front
// wall and an empty fraction the section centre.
func (l Layout) Locate(section, face string, frac []float64) (core.Vec3, error) {
	f, err := ParseFace(face)
	if err != nil {
		return core.Vec3{}, err
	}
	v, err := fraction(frac)
	if err != nil {
		return core.Vec3{}, err
	}
	return l.Place(section, f, v)
}
