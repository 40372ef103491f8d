package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFBXDocument = `
GlobalSettings:  {
	Properties70:  {
		P: "UpAxis", "int", "Integer", "",1
		P: "TimeMode", "enum", "Time Mode", "",6
	}
}
Objects:  {
	Geometry: 2000, "geoCube` + "\x00\x01" + `Geometry", "Mesh" {
		Vertices: *12: { 0,0,0,1,0,0,1,1,0,0,1,0 }
		PolygonVertexIndex: *4: { 0,1,2,-4 }
	}
	Material: 3000, "lambert1` + "\x00\x01" + `Material", "" {
		Properties70: {
			P: "DiffuseColor", "Color", "", "A",1,0,0
		}
	}
	Model: 1000, "pCube1` + "\x00\x01" + `Model", "Mesh" {
		Properties70: {
			P: "Lcl Translation", "Lcl Translation", "", "A",1,2,3
		}
	}
	AnimationStack: 5000, "Take 001` + "\x00\x01" + `AnimStack", "" {
		LocalStart: 0
		LocalStop: 100
	}
	AnimationLayer: 5001, "BaseLayer` + "\x00\x01" + `AnimLayer", "" {
		Properties70: {
			P: "LayerID", "int", "", "",1
		}
	}
	AnimationCurveNode: 5002, "T` + "\x00\x01" + `AnimCurveNode", "" {
	}
	AnimationCurve: 5003, "` + "\x00\x01" + `AnimCurve", "" {
		KeyTime: *2: { 0,100 }
		KeyValueFloat: *2: { 0.0,10.0 }
	}
}
Connections:  {
	C: "OO",2000,1000
	C: "OO",3000,1000
	C: "OO",1000,0
	C: "OO",5001,5000
	C: "OO",5002,5001
	C: "OO",5003,5002
	C: "OP",5002,1000, "Lcl Translation"
}
`

func loadTestScene(t *testing.T) *Scene {
	t.Helper()
	sc, err := Load([]byte(testFBXDocument))
	require.NoError(t, err)
	require.NotNil(t, sc)
	return sc
}

func TestLoadParsesAllObjectKinds(t *testing.T) {
	sc := loadTestScene(t)
	assert.False(t, sc.IsBinary)
	assert.Equal(t, 1, sc.MeshCount())
	assert.Equal(t, 1, sc.MaterialCount())
	assert.Equal(t, 1, sc.AnimationStackCount())
}

func TestLoadResolvesMeshGeometryAndMaterial(t *testing.T) {
	sc := loadTestScene(t)
	mesh := sc.MeshAt(0)
	require.NotNil(t, mesh)
	geo, ok := sc.Geometry(mesh.GeometryID)
	require.True(t, ok)
	assert.Len(t, geo.Vertices, 6)
	require.Len(t, mesh.Materials, 1)
	mat, ok := sc.Material(mesh.Materials[0])
	require.True(t, ok)
	assert.Equal(t, "lambert1", mat.Name())
}

func TestLoadResolvesMeshUnderRoot(t *testing.T) {
	sc := loadTestScene(t)
	mesh := sc.MeshAt(0)
	root := sc.Root()
	assert.EqualValues(t, RootObjectID, mesh.Node.ParentID)
	assert.Contains(t, root.NodeData().Children, mesh.ID())
}

func TestLoadRetrievesStaticProperties(t *testing.T) {
	sc := loadTestScene(t)
	mesh := sc.MeshAt(0)
	translation := mesh.Properties().MustGet("Lcl Translation").Vec3()
	assert.Equal(t, 1.0, translation[0])
	assert.Equal(t, 2.0, translation[1])
	assert.Equal(t, 3.0, translation[2])
}

func TestLoadGlobalSettingsFrameRate(t *testing.T) {
	sc := loadTestScene(t)
	assert.Equal(t, 30.0, sc.FrameRate())
}

func TestLoadPrepTakeConnectionsThenEvaluatesAnimation(t *testing.T) {
	sc := loadTestScene(t)
	require.Equal(t, 1, sc.AnimationStackCount())
	require.True(t, sc.PrepTakeConnections(0))

	mesh := sc.MeshAt(0)
	slot := mesh.Properties().MustGet("Lcl Translation")
	require.NotZero(t, slot.FirstCurveNode())

	got := evalAnimatableVec3(sc, slot, 50)
	assert.InDelta(t, 5.0, got[0], 1e-9)
	assert.Equal(t, 0.0, got[1])
	assert.Equal(t, 0.0, got[2])
}

func TestLoadRejectsGarbageInput(t *testing.T) {
	_, err := Load([]byte("this is not fbx at all"))
	require.Error(t, err)
}

func TestLoadWithConfigFileOverridesFrameRate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fbxconfig.yaml")
	require.NoError(t, os.WriteFile(path, []byte("custom_frame_rates:\n  6: 29.0\n"), 0o644))

	sc, err := Load([]byte(testFBXDocument), WithConfigFile(path))
	require.NoError(t, err)
	assert.Equal(t, 29.0, sc.FrameRate())
}

func TestLoadWithConfigFileSurfacesReadError(t *testing.T) {
	_, err := Load([]byte(testFBXDocument), WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)
}

func TestLoadEmptyDocumentProducesRootOnlyScene(t *testing.T) {
	sc, err := Load([]byte("; just a comment\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, sc.AllObjectCount())
	assert.Equal(t, 0, sc.MeshCount())
}
