package pipeline

// VertexMetadata carries the optional per-vertex attributes.
//
// Each attribute is independently present (non-nil) or absent (nil). Values are
// treated as immutable once a primitive is built.
type VertexMetadata struct {
	WorldPos *Vector3 // position in world space, for lighting
	TexCoord *Vector2
	Normal   *Vector3
	Color    *Vector4
}

// WithWorldPos returns a copy of m with the world position set.
func (m VertexMetadata) WithWorldPos(v Vector3) VertexMetadata { m.WorldPos = &v; return m }

// WithTexCoord returns a copy of m with the texture coordinate set.
func (m VertexMetadata) WithTexCoord(v Vector2) VertexMetadata { m.TexCoord = &v; return m }

// WithNormal returns a copy of m with the normal set.
func (m VertexMetadata) WithNormal(v Vector3) VertexMetadata { m.Normal = &v; return m }

// WithColor returns a copy of m with the color set.
func (m VertexMetadata) WithColor(v Vector4) VertexMetadata { m.Color = &v; return m }

// Colored is shorthand for VertexMetadata{}.WithColor(V4(r, g, b, a)).
func Colored(r, g, b, a float64) VertexMetadata {
	return VertexMetadata{}.WithColor(V4(r, g, b, a))
}

// Empty reports whether no attribute is present.
func (m VertexMetadata) Empty() bool {
	return m.WorldPos == nil && m.TexCoord == nil && m.Normal == nil && m.Color == nil
}
