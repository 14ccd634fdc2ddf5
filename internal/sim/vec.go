package sim

import "math"

// Vec3 is a world position. The simulation plane is XZ; Y is ground height
// and only changes through floor-collapse relocation.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// XZDistSq returns squared distance on the simulation plane. This is the
// hot-path comparison: callers compare against squared thresholds and
// never take a square root.
func (v Vec3) XZDistSq(o Vec3) float64 {
	dx := v.X - o.X
	dz := v.Z - o.Z
	return dx*dx + dz*dz
}

// XZDist returns true distance on the plane. Only used off the hot path
// (collapse delay scaling, diagnostics).
func (v Vec3) XZDist(o Vec3) float64 {
	return math.Sqrt(v.XZDistSq(o))
}

// XZNormalized returns the unit direction toward o on the plane, or the
// zero vector when the two points coincide.
func (v Vec3) XZNormalized(o Vec3) Vec3 {
	dx := o.X - v.X
	dz := o.Z - v.Z
	d := math.Sqrt(dx*dx + dz*dz)
	if d == 0 {
		return Vec3{}
	}
	return Vec3{X: dx / d, Z: dz / d}
}

// Rect is an axis-aligned region of the XZ plane (world bounds).
type Rect struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

// Empty reports whether the rect contains no points (inverted bounds).
func (r Rect) Empty() bool {
	return r.MaxX < r.MinX || r.MaxZ < r.MinZ
}

func (r Rect) Contains(p Vec3) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.MinX && p.X <= r.MaxX && p.Z >= r.MinZ && p.Z <= r.MaxZ
}

// Clamp forces p inside the rect. On an empty rect the min corner wins;
// callers that care must check Contains afterwards.
func (r Rect) Clamp(p Vec3) Vec3 {
	if p.X < r.MinX {
		p.X = r.MinX
	} else if p.X > r.MaxX {
		p.X = r.MaxX
	}
	if p.Z < r.MinZ {
		p.Z = r.MinZ
	} else if p.Z > r.MaxZ {
		p.Z = r.MaxZ
	}
	return p
}
