// Package scene describes what gets drawn each tick and drives the pipeline
// over it.
//
// A Scene is a flat list of 2D primitives in draw order. Scenes are built in code
// (Default) or loaded from YAML/TOML files (Load, LoadFile) and can be reloaded
// when the file changes (Watch). Driver renders a scene into a pipeline.Target
// once per tick.
package scene

import "scanline/pipeline"

// Scene is a list of primitives in draw order. It is not modified while being
// rendered; reloads replace the whole value.
type Scene struct {
	Name string

	// Width and Height are the preferred frame size; zero means no preference.
	Width  int
	Height int

	Clear      pipeline.Color
	Primitives []pipeline.Primitive2D
}

// Default returns the reference scene: one triangle with a color per vertex on
// a black background.
func Default() *Scene {
	tri := pipeline.Tri2(
		pipeline.V2(100, 250), pipeline.V2(300, 300), pipeline.V2(300, 100),
		pipeline.Colored(1, 0.5, 0, 1),
		pipeline.Colored(0, 1, 0.5, 1),
		pipeline.Colored(0.5, 0, 1, 1),
	)
	return &Scene{
		Name:       "default",
		Width:      600,
		Height:     600,
		Clear:      pipeline.Black,
		Primitives: []pipeline.Primitive2D{tri},
	}
}

// Triangles returns the scene's triangles in draw order and the number of
// primitives that are not rasterized.
func (s *Scene) Triangles() (tris []pipeline.Triangle2, skipped int) {
	if s == nil {
		return nil, 0
	}
	for _, p := range s.Primitives {
		if t, ok := p.(pipeline.Triangle2); ok {
			tris = append(tris, t)
			continue
		}
		skipped++
	}
	return tris, skipped
}
