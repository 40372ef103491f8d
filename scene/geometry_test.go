package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatArrayProp(vals ...float64) *Property {
	return &Property{Tag: TagDoubleArray, arrayDouble: vals, arrayCount: len(vals)}
}

func intArrayProp(vals ...int32) *Property {
	return &Property{Tag: TagInt32Array, arrayInt32: vals, arrayCount: len(vals)}
}

func stringProp(s string) *Property {
	return &Property{Tag: TagString, scalarStr: s, raw: []byte(s)}
}

func child(id string, props ...*Property) *Element {
	return &Element{ID: []byte(id), Properties: props}
}

// buildQuadGeometryElement constructs a single-quad Geometry element
// (vertices 0,1,2,3 in a fan) with a ByPolygonVertex/IndexToDirect UV
// layer and a ByPolygon/IndexToDirect material layer.
func buildQuadGeometryElement() *Element {
	g := &Element{ID: []byte("Geometry")}
	g.addChild(child("Vertices", floatArrayProp(
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	)))
	g.addChild(child("PolygonVertexIndex", intArrayProp(0, 1, 2, -4)))

	uvLayer := &Element{ID: []byte("LayerElementUV")}
	uvLayer.addChild(child("MappingInformationType", stringProp("ByPolygonVertex")))
	uvLayer.addChild(child("ReferenceInformationType", stringProp("IndexToDirect")))
	uvLayer.addChild(child("UV", floatArrayProp(0, 0, 1, 0, 1, 1, 0, 1)))
	uvLayer.addChild(child("UVIndex", intArrayProp(0, 1, 2, 3)))
	g.addChild(uvLayer)

	matLayer := &Element{ID: []byte("LayerElementMaterial")}
	matLayer.addChild(child("MappingInformationType", stringProp("ByPolygon")))
	matLayer.addChild(child("ReferenceInformationType", stringProp("IndexToDirect")))
	matLayer.addChild(child("Materials", intArrayProp(5)))
	g.addChild(matLayer)

	return g
}

func TestBuildGeometryTriangulatesQuadIntoTwoTriangles(t *testing.T) {
	b := newBase(1, "quad", KindGeometry, nil)
	geo, err := buildGeometry(b, buildQuadGeometryElement())
	require.NoError(t, err)

	require.Len(t, geo.Vertices, 6)
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, geo.Vertices[0])
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, geo.Vertices[1])
	assert.Equal(t, mgl64.Vec3{1, 1, 0}, geo.Vertices[2])
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, geo.Vertices[3])
	assert.Equal(t, mgl64.Vec3{1, 1, 0}, geo.Vertices[4])
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, geo.Vertices[5])

	assert.Equal(t, []int32{0, 1, 2, 0, 2, 3}, geo.ToOldVertices)
	for i, idx := range geo.Indices {
		assert.EqualValues(t, i, idx)
	}
}

func TestBuildGeometrySplatsUVByPolygonVertexIndexToDirect(t *testing.T) {
	b := newBase(1, "quad", KindGeometry, nil)
	geo, err := buildGeometry(b, buildQuadGeometryElement())
	require.NoError(t, err)

	require.Len(t, geo.UVs, 6)
	assert.Equal(t, [2]float64{0, 0}, geo.UVs[0])
	assert.Equal(t, [2]float64{1, 0}, geo.UVs[1])
	assert.Equal(t, [2]float64{1, 1}, geo.UVs[2])
	assert.Equal(t, [2]float64{0, 0}, geo.UVs[3])
	assert.Equal(t, [2]float64{1, 1}, geo.UVs[4])
	assert.Equal(t, [2]float64{0, 1}, geo.UVs[5])
}

func TestBuildGeometryMaterialBroadcastByPolygon(t *testing.T) {
	b := newBase(1, "quad", KindGeometry, nil)
	geo, err := buildGeometry(b, buildQuadGeometryElement())
	require.NoError(t, err)

	assert.False(t, geo.AllSameMaterial)
	assert.Equal(t, []int32{5, 5}, geo.MaterialIndices)
}

func TestBuildGeometryMaterialAllSame(t *testing.T) {
	el := buildQuadGeometryElement()
	// Replace the material layer with an AllSame one.
	matLayer := el.Child("LayerElementMaterial")
	matLayer.FirstChild = nil
	matLayer.addChild(child("MappingInformationType", stringProp("AllSame")))

	b := newBase(1, "quad", KindGeometry, nil)
	geo, err := buildGeometry(b, el)
	require.NoError(t, err)
	assert.True(t, geo.AllSameMaterial)
	assert.Nil(t, geo.MaterialIndices)
}

func TestBuildGeometryUnsupportedMaterialMappingErrors(t *testing.T) {
	el := buildQuadGeometryElement()
	matLayer := el.Child("LayerElementMaterial")
	matLayer.FirstChild = nil
	matLayer.addChild(child("MappingInformationType", stringProp("ByVertex")))
	matLayer.addChild(child("ReferenceInformationType", stringProp("Direct")))

	b := newBase(1, "quad", KindGeometry, nil)
	_, err := buildGeometry(b, el)
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrFormat, le.Kind)
}

func TestBuildGeometryMissingVerticesIsFatal(t *testing.T) {
	el := &Element{ID: []byte("Geometry")}
	el.addChild(child("PolygonVertexIndex", intArrayProp(0, 1, -3)))
	b := newBase(1, "broken", KindGeometry, nil)
	_, err := buildGeometry(b, el)
	require.Error(t, err)
}

func TestDecodePolygonVertexIndexTriangleAndQuad(t *testing.T) {
	polys := decodePolygonVertexIndex([]int32{0, 1, -3, 0, 1, 2, -4})
	require.Len(t, polys, 2)
	assert.Equal(t, []int32{0, 1, 2}, polys[0])
	assert.Equal(t, []int32{0, 1, 2, 3}, polys[1])
}

func TestClusterPostProcessExpandsOldVertexWeights(t *testing.T) {
	geoBase := newBase(10, "geo", KindGeometry, nil)
	geo, err := buildGeometry(geoBase, buildQuadGeometryElement())
	require.NoError(t, err)

	skin := &SkinObject{Base: newBase(20, "skin", KindSkin, nil), GeometryID: 10}
	cluster := &ClusterObject{
		Base:       newBase(30, "cluster", KindCluster, nil),
		rawIndices: []int32{0, 2},
		rawWeights: []float64{1.0, 0.5},
	}
	skin.Clusters = []ObjectID{30}
	geo.SkinID = 20

	sc := &Scene{
		objects: map[ObjectID]Object{10: geo, 20: skin, 30: cluster},
		order:   []ObjectID{10, 20, 30},
		skinIDs: []ObjectID{20},
	}

	clusterPostProcess(sc)

	// old vertex 0 maps to new corners {0, 3}; old vertex 2 maps to {2, 4}.
	require.Len(t, cluster.Indices, 4)
	require.Len(t, cluster.Weights, 4)
	for i, newIdx := range cluster.Indices {
		switch newIdx {
		case 0, 3:
			assert.InDelta(t, 1.0, cluster.Weights[i], 1e-9)
		case 2, 4:
			assert.InDelta(t, 0.5, cluster.Weights[i], 1e-9)
		default:
			t.Fatalf("unexpected new vertex index %d", newIdx)
		}
	}
}
