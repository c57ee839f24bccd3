package scene

import "github.com/go-gl/mathgl/mgl64"

// Camera describes the viewing transform.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	FOVYRad float64
	Near    float64
	Far     float64
}

// DefaultCamera looks at the origin from +Z with a 75° vertical field of view.
func DefaultCamera() Camera {
	return Camera{
		Position: mgl64.Vec3{0, 0, 10},
		Up:       mgl64.Vec3{0, 1, 0},
		FOVYRad:  mgl64.DegToRad(75),
		Near:     0.1,
		Far:      1000,
	}
}

// View returns the camera view matrix.
func (c Camera) View() mgl64.Mat4 {
	up := c.Up
	if up == (mgl64.Vec3{}) {
		up = mgl64.Vec3{0, 1, 0}
	}
	return mgl64.LookAtV(c.Position, c.Target, up)
}

// Projection returns the perspective matrix for a target aspect.
func (c Camera) Projection(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	fov := c.FOVYRad
	if fov <= 0 {
		fov = 1
	}
	near, far := c.Near, c.Far
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = near + 1000
	}
	return mgl64.Perspective(fov, aspect, near, far)
}

// Group is the transform shared by every sprite in the cloud.
type Group struct {
	RotX float64
	RotY float64
}

// Matrix returns the group rotation, X applied after Y (XYZ Euler order).
func (g Group) Matrix() mgl64.Mat4 {
	return mgl64.HomogRotate3DX(g.RotX).Mul4(mgl64.HomogRotate3DY(g.RotY))
}
