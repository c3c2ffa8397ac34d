package particle

import "math"

// Quat is a rotation quaternion, scalar first: (w, x, y, z).
type Quat [4]float64

func IdentityQuat() Quat {
	return Quat{1, 0, 0, 0}
}

// FromAxisAngle builds the quaternion rotating by angle radians around axis.
// The axis does not need to be normalized.
func FromAxisAngle(axis Vec3, angle float64) Quat {
	n := axis.Norm()
	if n == 0 {
		return IdentityQuat()
	}
	s := math.Sin(angle/2) / n
	return Quat{
		math.Cos(angle / 2),
		axis[0] * s,
		axis[1] * s,
		axis[2] * s,
	}
}

// Mul composes rotations: (q.Mul(p)).Rotate(v) == q.Rotate(p.Rotate(v)).
func (q Quat) Mul(p Quat) Quat {
	return Quat{
		q[0]*p[0] - q[1]*p[1] - q[2]*p[2] - q[3]*p[3],
		q[0]*p[1] + q[1]*p[0] + q[2]*p[3] - q[3]*p[2],
		q[0]*p[2] - q[1]*p[3] + q[2]*p[0] + q[3]*p[1],
		q[0]*p[3] + q[1]*p[2] - q[2]*p[1] + q[3]*p[0],
	}
}

func (q Quat) Conj() Quat {
	return Quat{q[0], -q[1], -q[2], -q[3]}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2w(u x v) + 2(u x (u x v)), u = vector part.
	u := Vec3{q[1], q[2], q[3]}
	uv := u.Cross(v)
	uuv := u.Cross(uv)
	return v.Add(uv.Scale(2 * q[0])).Add(uuv.Scale(2))
}

func (q Quat) Norm() float64 {
	return math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
}

// Normalize returns the unit quaternion, or identity if q is degenerate.
func (q Quat) Normalize() Quat {
	n := q.Norm()
	if n == 0 {
		return IdentityQuat()
	}
	return Quat{q[0] / n, q[1] / n, q[2] / n, q[3] / n}
}
