// Package pipeline is a small, predictable software triangle rasterizer.
//
// It converts 2D triangles with optional per-vertex attributes into fragments and
// writes them into a caller-provided Target. There is no GPU abstraction, no depth
// buffer and no clipping against a view volume.
//
// Pipeline (fixed):
//
//	Triangle2 → Rasterize → []Fragment → Composite → Target.
//
// Rasterize snaps vertices to integer pixels, sorts them by y and walks flat-top and
// flat-bottom spans scanline by scanline. Attributes are blended with barycentric
// weights; an attribute survives interpolation only when every vertex carries it.
//
// Lines, polygons and 3D primitives are part of the geometry vocabulary but are not
// rasterized.
package pipeline
