// pkg/core/inertia.go
package core

// Inertia is a symmetric inertia tensor in kg*m^2.
// Ixy, Ixz and Iyz are the off-diagonal tensor entries (negated products of inertia).
// The zero value describes a point mass.
type Inertia struct {
	Ixx float64 `json:"ixx"`
	Iyy float64 `json:"iyy"`
	Izz float64 `json:"izz"`
	Ixy float64 `json:"ixy"`
	Ixz float64 `json:"ixz"`
	Iyz float64 `json:"iyz"`
}

// DiagonalInertia builds a tensor with principal axes aligned to the body frame.
func DiagonalInertia(ixx, iyy, izz float64) Inertia {
	return Inertia{Ixx: ixx, Iyy: iyy, Izz: izz}
}

// BoxInertia returns the centroidal inertia of a solid box with edge lengths
// lx, ly, lz along the body axes.
func BoxInertia(mass, lx, ly, lz float64) Inertia {
	return Inertia{
		Ixx: mass * (ly*ly + lz*lz) / 12,
		Iyy: mass * (lx*lx + lz*lz) / 12,
		Izz: mass * (lx*lx + ly*ly) / 12,
	}
}

// CylinderInertia returns the centroidal inertia of a solid cylinder whose
// axis runs along body X, such as a motor can.
func CylinderInertia(mass, length, diameter float64) Inertia {
	r := diameter / 2
	transverse := mass * (3*r*r + length*length) / 12
	return Inertia{
		Ixx: mass * r * r / 2,
		Iyy: transverse,
		Izz: transverse,
	}
}

// RodInertia returns the centroidal inertia of a slender rod of the given
// length lying along dir.
func RodInertia(mass, length float64, dir Vec3) Inertia {
	u := dir.Normalize()
	k := mass * length * length / 12
	return projectorComplement(u).Scale(k)
}

// DiskInertia returns the centroidal inertia of a thin disk spinning about
// body X, used for propellers.
func DiskInertia(mass, diameter float64) Inertia {
	r := diameter / 2
	return Inertia{
		Ixx: mass * r * r / 2,
		Iyy: mass * r * r / 4,
		Izz: mass * r * r / 4,
	}
}

// Add returns the sum of two tensors
func (i Inertia) Add(o Inertia) Inertia {
	return Inertia{
		Ixx: i.Ixx + o.Ixx,
		Iyy: i.Iyy + o.Iyy,
		Izz: i.Izz + o.Izz,
		Ixy: i.Ixy + o.Ixy,
		Ixz: i.Ixz + o.Ixz,
		Iyz: i.Iyz + o.Iyz,
	}
}

// Scale multiplies every entry by k
func (i Inertia) Scale(k float64) Inertia {
	return Inertia{
		Ixx: i.Ixx * k,
		Iyy: i.Iyy * k,
		Izz: i.Izz * k,
		Ixy: i.Ixy * k,
		Ixz: i.Ixz * k,
		Iyz: i.Iyz * k,
	}
}

// About returns the scalar moment of inertia about an axis through the
// centroid with direction u. u must be a unit vector.
func (i Inertia) About(u Vec3) float64 {
	return u.X*u.X*i.Ixx + u.Y*u.Y*i.Iyy + u.Z*u.Z*i.Izz +
		2*(u.X*u.Y*i.Ixy+u.X*u.Z*i.Ixz+u.Y*u.Z*i.Iyz)
}

// Translate applies the parallel-axis theorem: the tensor of a body of the
// given mass about a point offset by d from its centroid.
func (i Inertia) Translate(mass float64, d Vec3) Inertia {
	return i.Add(pointTensor(mass, d))
}

// Mirror reflects the tensor across the XZ symmetry plane.
func (i Inertia) Mirror() Inertia {
	m := i
	m.Ixy = -i.Ixy
	m.Iyz = -i.Iyz
	return m
}

// IsFinite reports whether every entry is a finite number.
func (i Inertia) IsFinite() bool {
	return isFinite(i.Ixx) && isFinite(i.Iyy) && isFinite(i.Izz) &&
		isFinite(i.Ixy) && isFinite(i.Ixz) && isFinite(i.Iyz)
}

// pointTensor is m(|d|^2 E - d d^T).
func pointTensor(mass float64, d Vec3) Inertia {
	return Inertia{
		Ixx: mass * (d.Y*d.Y + d.Z*d.Z),
		Iyy: mass * (d.X*d.X + d.Z*d.Z),
		Izz: mass * (d.X*d.X + d.Y*d.Y),
		Ixy: -mass * d.X * d.Y,
		Ixz: -mass * d.X * d.Z,
		Iyz: -mass * d.Y * d.Z,
	}
}

// projectorComplement is E - u u^T for a unit vector u.
func projectorComplement(u Vec3) Inertia {
	return Inertia{
		Ixx: 1 - u.X*u.X,
		Iyy: 1 - u.Y*u.Y,
		Izz: 1 - u.Z*u.Z,
		Ixy: -u.X * u.Y,
		Ixz: -u.X * u.Z,
		Iyz: -u.Y * u.Z,
	}
}
