package math

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinSphereWidthSegments  uint32 = 3
	MinSphereHeightSegments uint32 = 2
)

// GenerateSphere builds a UV sphere centred on the origin. Rows run from the
// north pole (+Y) to the south pole, each row holding widthSegments+1
// vertices so the seam column is duplicated. Pole rows emit a single
// triangle per quad. Segment counts below the minimum are raised to it.
func GenerateSphere(radius float32, widthSegments, heightSegments uint32) ([]Vertex3D, []uint32) {
	widthSegments = max(widthSegments, MinSphereWidthSegments)
	heightSegments = max(heightSegments, MinSphereHeightSegments)

	vertices := make([]Vertex3D, 0, (widthSegments+1)*(heightSegments+1))
	grid := make([][]uint32, heightSegments+1)
	index := uint32(0)

	for iy := uint32(0); iy <= heightSegments; iy++ {
		row := make([]uint32, widthSegments+1)
		v := float64(iy) / float64(heightSegments)

		// Nudge pole texcoords to the centre of their quad.
		uOffset := 0.0
		if iy == 0 {
			uOffset = 0.5 / float64(widthSegments)
		} else if iy == heightSegments {
			uOffset = -0.5 / float64(widthSegments)
		}

		theta := v * gomath.Pi
		for ix := uint32(0); ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * gomath.Pi

			x := -float64(radius) * gomath.Cos(phi) * gomath.Sin(theta)
			y := float64(radius) * gomath.Cos(theta)
			z := float64(radius) * gomath.Sin(phi) * gomath.Sin(theta)

			position := mgl32.Vec3{float32(x), float32(y), float32(z)}
			vertices = append(vertices, Vertex3D{
				Position: position,
				Normal:   NormalizeSafe(position),
				Texcoord: mgl32.Vec2{float32(u + uOffset), float32(1 - v)},
			})
			row[ix] = index
			index++
		}
		grid[iy] = row
	}

	indices := make([]uint32, 0, widthSegments*(heightSegments-1)*6)
	for iy := uint32(0); iy < heightSegments; iy++ {
		for ix := uint32(0); ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]

			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}
	return vertices, indices
}

// GeometryGenerateNormals computes smooth vertex normals: every face adds its
// area-weighted normal to its three vertices, then each sum is normalized.
func GeometryGenerateNormals(vertices []Vertex3D, indices []uint32) {
	for i := range vertices {
		vertices[i].Normal = mgl32.Vec3{}
	}
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		cb := vertices[i2].Position.Sub(vertices[i1].Position)
		ab := vertices[i0].Position.Sub(vertices[i1].Position)
		n := cb.Cross(ab)

		vertices[i0].Normal = vertices[i0].Normal.Add(n)
		vertices[i1].Normal = vertices[i1].Normal.Add(n)
		vertices[i2].Normal = vertices[i2].Normal.Add(n)
	}
	for i := range vertices {
		vertices[i].Normal = NormalizeSafe(vertices[i].Normal)
	}
}

// NormalizeSafe returns v scaled to unit length, or the zero vector when v
// has no length.
func NormalizeSafe(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

func GeometryCalculateExtents(vertices []Vertex3D) Extents3D {
	if len(vertices) == 0 {
		return Extents3D{}
	}
	e := Extents3D{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		for axis := 0; axis < 3; axis++ {
			e.Min[axis] = min(e.Min[axis], v.Position[axis])
			e.Max[axis] = max(e.Max[axis], v.Position[axis])
		}
	}
	return e
}
