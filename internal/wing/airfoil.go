package wing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownAirfoil is returned for a section that is neither in the table
// nor a NACA 4-digit designation.
var ErrUnknownAirfoil = errors.New("unknown airfoil")

// Airfoil carries the section properties the weight estimates need.
type Airfoil struct {
	Name string
	// Thickness is the maximum thickness as a fraction of chord.
	Thickness float64
}

// shapeArea is the integral of the normalised NACA thickness distribution
// over the chord. Section area is shapeArea * Thickness * chord^2.
const shapeArea = 0.68505

var airfoils = map[string]Airfoil{
	"s1223":    {Name: "S1223", Thickness: 0.121},
	"e423":     {Name: "E423", Thickness: 0.125},
	"naca0009": {Name: "NACA0009", Thickness: 0.09},
	"naca0012": {Name: "NACA0012", Thickness: 0.12},
	"naca0015": {Name: "NACA0015", Thickness: 0.15},
	"flat":     {Name: "Flat", Thickness: 0},
}

// LookupAirfoil finds a section by name. NACA 4-digit names outside the table
// take their thickness from the last two digits.
func LookupAirfoil(name string) (Airfoil, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
	if a, ok := airfoils[key]; ok {
		return a, nil
	}
	if strings.HasPrefix(key, "naca") && len(key) == 8 {
		if tt, err := strconv.Atoi(key[6:]); err == nil {
			return Airfoil{Name: strings.ToUpper(key), Thickness: float64(tt) / 100}, nil
		}
	}
	return Airfoil{}, fmt.Errorf("%w: %q", ErrUnknownAirfoil, name)
}

// AreaRatio returns section area over chord squared.
func (a Airfoil) AreaRatio() float64 { return shapeArea * a.Thickness }

// ThicknessAt returns the local thickness, as a fraction of chord, at chord
// fraction fc. It follows the NACA 4-digit distribution scaled to the
// section's maximum thickness.
func (a Airfoil) ThicknessAt(fc float64) float64 {
	if fc <= 0 || fc >= 1 {
		return 0
	}
	x := fc
	return a.Thickness * 10 * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x + 0.2843*x*x*x - 0.1015*x*x*x*x)
}
