package scene

import "github.com/go-gl/mathgl/mgl64"

// GeometryObject holds a mesh's triangulated, per-corner-flattened
// vertex data: nothing is deduplicated across triangles, matching the
// source's own flat-corner-array layout (so Indices is always the
// trivial 0..N-1 sequence — it is kept for API parity with consumers
// that expect an explicit index buffer).
type GeometryObject struct {
	Base

	Vertices  []mgl64.Vec3
	Normals   []mgl64.Vec3
	UVs       [][2]float64
	Colors    [][4]float64
	Tangents  []mgl64.Vec3
	Indices   []int32

	AllSameMaterial bool
	MaterialIndices []int32 // one entry per triangle, unless AllSameMaterial

	ToOldVertices []int32   // new (corner) index -> original vertex index
	ToNewVertices [][]int32 // original vertex index -> list of corner indices

	SkinID ObjectID

	toOldCorners  []int32 // new index -> original PolygonVertexIndex flat position
	toOldPolygon  []int32 // new index -> original polygon index
	triangleCount int
}

// decodePolygonVertexIndex walks the sign-bit-marks-last convention
// into per-polygon original vertex ids.
func decodePolygonVertexIndex(raw []int32) (polygons [][]int32) {
	var cur []int32
	for _, v := range raw {
		if v < 0 {
			cur = append(cur, -v-1)
			polygons = append(polygons, cur)
			cur = nil
		} else {
			cur = append(cur, v)
		}
	}
	if len(cur) > 0 {
		polygons = append(polygons, cur)
	}
	return polygons
}

// buildGeometry triangulates and post-processes a Geometry element,
// per the geometry post-processor design: fan triangulation, then
// attribute splat/remap for every present per-corner layer.
func buildGeometry(b Base, el *Element) (*GeometryObject, error) {
	verticesEl := el.Child("Vertices")
	pvEl := el.Child("PolygonVertexIndex")
	if verticesEl == nil || len(verticesEl.Properties) == 0 {
		return nil, newErrorf(ErrFormat, "geometry %q missing Vertices", b.name)
	}
	if pvEl == nil || len(pvEl.Properties) == 0 {
		return nil, newErrorf(ErrFormat, "geometry %q missing PolygonVertexIndex", b.name)
	}

	rawVerts := verticesEl.Properties[0].Float64Array()
	origVertexCount := len(rawVerts) / 3
	origVertices := make([]mgl64.Vec3, origVertexCount)
	for i := 0; i < origVertexCount; i++ {
		origVertices[i] = mgl64.Vec3{rawVerts[i*3], rawVerts[i*3+1], rawVerts[i*3+2]}
	}

	pvRaw := pvEl.Properties[0].Int32Array()
	polygons := decodePolygonVertexIndex(pvRaw)

	g := &GeometryObject{Base: b}

	// Build per-original-corner (flat PolygonVertexIndex position)
	// bookkeeping alongside triangulation, so Direct/IndexToDirect
	// ByPolygonVertex layers (declared in original flat corner order)
	// remap correctly onto triangulated corners.
	cornerPos := 0
	for polyIdx, poly := range polygons {
		k := len(poly)
		firstCorner := cornerPos
		cornerPos += k
		if k < 3 {
			continue
		}
		for i := 2; i < k; i++ {
			g.appendTriCorner(poly[0], firstCorner, polyIdx)
			g.appendTriCorner(poly[i-1], firstCorner+i-1, polyIdx)
			g.appendTriCorner(poly[i], firstCorner+i, polyIdx)
			g.triangleCount++
		}
	}

	g.Vertices = make([]mgl64.Vec3, len(g.ToOldVertices))
	for i, oldV := range g.ToOldVertices {
		g.Vertices[i] = origVertices[oldV]
	}
	g.Indices = make([]int32, len(g.Vertices))
	for i := range g.Indices {
		g.Indices[i] = int32(i)
	}

	g.ToNewVertices = make([][]int32, origVertexCount)
	for i, oldV := range g.ToOldVertices {
		g.ToNewVertices[oldV] = append(g.ToNewVertices[oldV], int32(i))
	}

	if normEl := findLayerElement(el, "LayerElementNormal"); normEl != nil {
		if vals, ok := g.splatLayer(normEl, "Normals", "NormalsIndex", 3); ok {
			g.Normals = toVec3Slice(vals)
		}
	}
	if uvEl := findLayerElement(el, "LayerElementUV"); uvEl != nil {
		if vals, ok := g.splatLayer(uvEl, "UV", "UVIndex", 2); ok {
			g.UVs = toVec2Slice(vals)
		}
	}
	if colorEl := findLayerElement(el, "LayerElementColor"); colorEl != nil {
		if vals, ok := g.splatLayer(colorEl, "Colors", "ColorIndex", 4); ok {
			g.Colors = toVec4Slice(vals)
		}
	}
	if tanEl := findLayerElement(el, "LayerElementTangent"); tanEl != nil {
		if vals, ok := g.splatLayer(tanEl, "Tangents", "TangentsIndex", 3); ok {
			g.Tangents = toVec3Slice(vals)
		}
	}
	if matEl := findLayerElement(el, "LayerElementMaterial"); matEl != nil {
		if err := g.splatMaterials(matEl, polygons); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func (g *GeometryObject) appendTriCorner(origVertex int32, origCorner, polyIdx int) {
	g.ToOldVertices = append(g.ToOldVertices, origVertex)
	g.toOldCorners = append(g.toOldCorners, int32(origCorner))
	g.toOldPolygon = append(g.toOldPolygon, int32(polyIdx))
}

func findLayerElement(el *Element, id string) *Element { return el.Child(id) }

func mappingAndReference(layer *Element) (mapping, reference string) {
	if m := layer.Child("MappingInformationType"); m != nil && len(m.Properties) > 0 {
		mapping = m.Properties[0].ToString()
	}
	if r := layer.Child("ReferenceInformationType"); r != nil && len(r.Properties) > 0 {
		reference = r.Properties[0].ToString()
	}
	return mapping, reference
}

// splatLayer expands a per-corner attribute layer (arrayChildID holds
// the raw flat values, indexArrayChildID the optional IndexToDirect
// index array) to one n-tuple per triangulated corner.
func (g *GeometryObject) splatLayer(layer *Element, arrayChildID, indexArrayChildID string, n int) ([]float64, bool) {
	arrayEl := layer.Child(arrayChildID)
	if arrayEl == nil || len(arrayEl.Properties) == 0 {
		return nil, false
	}
	raw := arrayEl.Properties[0].Float64Array()

	var idx []int32
	if indexEl := layer.Child(indexArrayChildID); indexEl != nil && len(indexEl.Properties) > 0 {
		idx = indexEl.Properties[0].Int32Array()
	}

	mapping, reference := mappingAndReference(layer)

	out := make([]float64, len(g.ToOldVertices)*n)
	for i := range g.ToOldVertices {
		var srcIdx int
		switch mapping {
		case "ByPolygonVertex":
			srcIdx = int(g.toOldCorners[i])
		case "ByVertex", "ByVertice":
			srcIdx = int(g.ToOldVertices[i])
		case "ByPolygon":
			srcIdx = int(g.toOldPolygon[i])
		default:
			// Unknown mapping mode: tolerable mismatch, zero-fill whole layer.
			continue
		}

		directIdx := srcIdx
		switch reference {
		case "Direct":
			// directIdx already set
		case "IndexToDirect":
			if srcIdx < 0 || srcIdx >= len(idx) {
				directIdx = -1
			} else {
				directIdx = int(idx[srcIdx])
			}
		default:
			directIdx = -1
		}

		if directIdx < 0 || (directIdx+1)*n > len(raw) {
			continue // tolerable: leave this corner's slot zero-filled
		}
		copy(out[i*n:(i+1)*n], raw[directIdx*n:(directIdx+1)*n])
	}
	return out, true
}

// splatMaterials broadcasts LayerElementMaterial to one index per
// triangle (ByPolygon+IndexToDirect) or accepts AllSame with no
// per-triangle assignment; any other mapping is a hard FormatError.
func (g *GeometryObject) splatMaterials(layer *Element, polygons [][]int32) error {
	mapping, reference := mappingAndReference(layer)
	if mapping == "AllSame" {
		g.AllSameMaterial = true
		return nil
	}
	if mapping != "ByPolygon" || reference != "IndexToDirect" {
		return newErrorf(ErrFormat, "unsupported material mapping %q/%q", mapping, reference)
	}
	matEl := layer.Child("Materials")
	if matEl == nil || len(matEl.Properties) == 0 {
		return newErrorf(ErrFormat, "LayerElementMaterial missing Materials array")
	}
	perPolygon := matEl.Properties[0].Int32Array()

	g.MaterialIndices = make([]int32, 0, g.triangleCount)
	for polyIdx, poly := range polygons {
		k := len(poly)
		if k < 3 {
			continue
		}
		triCount := k - 2
		var matIdx int32
		if polyIdx < len(perPolygon) {
			matIdx = perPolygon[polyIdx]
		}
		for i := 0; i < triCount; i++ {
			g.MaterialIndices = append(g.MaterialIndices, matIdx)
		}
	}
	return nil
}

func toVec3Slice(flat []float64) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(flat)/3)
	for i := range out {
		out[i] = mgl64.Vec3{flat[i*3], flat[i*3+1], flat[i*3+2]}
	}
	return out
}

func toVec2Slice(flat []float64) [][2]float64 {
	out := make([][2]float64, len(flat)/2)
	for i := range out {
		out[i] = [2]float64{flat[i*2], flat[i*2+1]}
	}
	return out
}

func toVec4Slice(flat []float64) [][4]float64 {
	out := make([][4]float64, len(flat)/4)
	for i := range out {
		out[i] = [4]float64{flat[i*4], flat[i*4+1], flat[i*4+2], flat[i*4+3]}
	}
	return out
}
