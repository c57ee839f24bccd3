// Package scene projects the icon cloud's sprite group onto a 2D target.
//
// Pipeline (fixed):
//
//	Sprites → Group transform → View → Projection → Depth sort → Target.
//
// Sprites are billboards: they always face the viewer, so only their centre
// goes through the transform; their on-screen size follows from perspective.
// Drawing is back to front so semi-transparent sprites blend correctly.
package scene
