package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"scanline/pipeline"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for scene files with an unsupported extension.
var ErrUnknownFormat = errors.New("scene: unknown file format")

// Format is a scene file encoding.
type Format uint8

const (
	FormatYAML Format = iota + 1
	FormatTOML
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// fileScene is the on-disk layout. Vectors are plain number lists so both
// encodings share one schema.
type fileScene struct {
	Name      string         `yaml:"name" toml:"name"`
	Width     int            `yaml:"width" toml:"width"`
	Height    int            `yaml:"height" toml:"height"`
	Clear     []float64      `yaml:"clear" toml:"clear"`
	Triangles []fileTriangle `yaml:"triangles" toml:"triangles"`
	Lines     []fileLine     `yaml:"lines" toml:"lines"`
	Polygons  []fileTriangle `yaml:"polygons" toml:"polygons"`
}

// fileTriangle holds one primitive with optional per-vertex attribute lists.
// An attribute list, when present, needs one entry per vertex.
type fileTriangle struct {
	Vertices  [][]float64 `yaml:"vertices" toml:"vertices"`
	Colors    [][]float64 `yaml:"colors" toml:"colors"`
	TexCoords [][]float64 `yaml:"texcoords" toml:"texcoords"`
	Normals   [][]float64 `yaml:"normals" toml:"normals"`
	World     [][]float64 `yaml:"world" toml:"world"`
}

type fileLine struct {
	Vertices [][]float64 `yaml:"vertices" toml:"vertices"`
}

// LoadFile reads a scene file; the extension selects the format.
func LoadFile(path string) (*Scene, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	s, err := Load(bytes.NewReader(data), f)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Load decodes a scene.
func Load(r io.Reader, f Format) (*Scene, error) {
	var fs fileScene
	switch f {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&fs); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scene: yaml: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&fs); err != nil {
			return nil, fmt.Errorf("scene: toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: format %d", ErrUnknownFormat, f)
	}
	return fs.build()
}

func (fs fileScene) build() (*Scene, error) {
	s := &Scene{Name: fs.Name, Width: fs.Width, Height: fs.Height, Clear: pipeline.Black}
	if fs.Width < 0 || fs.Height < 0 {
		return nil, fmt.Errorf("scene: negative size %dx%d", fs.Width, fs.Height)
	}
	if fs.Clear != nil {
		c, err := vec4(fs.Clear)
		if err != nil {
			return nil, fmt.Errorf("scene: clear: %w", err)
		}
		s.Clear = pipeline.ColorFromVector(c)
	}

	for i, ft := range fs.Triangles {
		v, meta, err := ft.decode()
		if err != nil {
			return nil, fmt.Errorf("scene: triangle %d: %w", i, err)
		}
		t, err := pipeline.NewTriangle2(v, meta)
		if err != nil {
			return nil, fmt.Errorf("scene: triangle %d: %w", i, err)
		}
		s.Primitives = append(s.Primitives, t)
	}
	for i, fl := range fs.Lines {
		v, err := vec2s(fl.Vertices)
		if err != nil {
			return nil, fmt.Errorf("scene: line %d: %w", i, err)
		}
		l, err := pipeline.NewLine2(v)
		if err != nil {
			return nil, fmt.Errorf("scene: line %d: %w", i, err)
		}
		s.Primitives = append(s.Primitives, l)
	}
	for i, fp := range fs.Polygons {
		v, meta, err := fp.decode()
		if err != nil {
			return nil, fmt.Errorf("scene: polygon %d: %w", i, err)
		}
		p, err := pipeline.NewPolygon2(v, meta)
		if err != nil {
			return nil, fmt.Errorf("scene: polygon %d: %w", i, err)
		}
		s.Primitives = append(s.Primitives, p)
	}
	return s, nil
}

func (ft fileTriangle) decode() ([]pipeline.Vector2, []pipeline.VertexMetadata, error) {
	v, err := vec2s(ft.Vertices)
	if err != nil {
		return nil, nil, err
	}
	meta := make([]pipeline.VertexMetadata, len(v))

	if err := attr(ft.Colors, meta, "colors", vec4, func(m *pipeline.VertexMetadata, c pipeline.Vector4) { *m = m.WithColor(c) }); err != nil {
		return nil, nil, err
	}
	if err := attr(ft.TexCoords, meta, "texcoords", vec2, func(m *pipeline.VertexMetadata, c pipeline.Vector2) { *m = m.WithTexCoord(c) }); err != nil {
		return nil, nil, err
	}
	if err := attr(ft.Normals, meta, "normals", vec3, func(m *pipeline.VertexMetadata, c pipeline.Vector3) { *m = m.WithNormal(c) }); err != nil {
		return nil, nil, err
	}
	if err := attr(ft.World, meta, "world", vec3, func(m *pipeline.VertexMetadata, c pipeline.Vector3) { *m = m.WithWorldPos(c) }); err != nil {
		return nil, nil, err
	}
	return v, meta, nil
}

// attr fills one attribute slot of every vertex. A missing list leaves the slot
// absent.
func attr[V any](raw [][]float64, meta []pipeline.VertexMetadata, name string, conv func([]float64) (V, error), set func(*pipeline.VertexMetadata, V)) error {
	if raw == nil {
		return nil
	}
	if len(raw) != len(meta) {
		return fmt.Errorf("%s: got %d entries for %d vertices: %w", name, len(raw), len(meta), pipeline.ErrArity)
	}
	for i, r := range raw {
		v, err := conv(r)
		if err != nil {
			return fmt.Errorf("%s %d: %w", name, i, err)
		}
		set(&meta[i], v)
	}
	return nil
}

func vec2s(raw [][]float64) ([]pipeline.Vector2, error) {
	out := make([]pipeline.Vector2, len(raw))
	for i, r := range raw {
		v, err := vec2(r)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func vec2(r []float64) (pipeline.Vector2, error) {
	if len(r) != 2 {
		return pipeline.Vector2{}, fmt.Errorf("got %d components, want 2", len(r))
	}
	return pipeline.V2(r[0], r[1]), nil
}

func vec3(r []float64) (pipeline.Vector3, error) {
	if len(r) != 3 {
		return pipeline.Vector3{}, fmt.Errorf("got %d components, want 3", len(r))
	}
	return pipeline.V3(r[0], r[1], r[2]), nil
}

// vec4 accepts RGB (alpha defaults to 1) or RGBA.
func vec4(r []float64) (pipeline.Vector4, error) {
	switch len(r) {
	case 3:
		return pipeline.V4(r[0], r[1], r[2], 1), nil
	case 4:
		return pipeline.V4(r[0], r[1], r[2], r[3]), nil
	default:
		return pipeline.Vector4{}, fmt.Errorf("got %d components, want 3 or 4", len(r))
	}
}
