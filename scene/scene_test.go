package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalSettingsFrameRateTableLookup(t *testing.T) {
	gs := GlobalSettings{TimeMode: 6}
	assert.Equal(t, 30.0, gs.FrameRate())
}

func TestGlobalSettingsFrameRateCustomMode(t *testing.T) {
	gs := GlobalSettings{TimeMode: 14, CustomFrameRate: 59.94}
	assert.Equal(t, 59.94, gs.FrameRate())
}

func TestGlobalSettingsFrameRateUnknownMode(t *testing.T) {
	gs := GlobalSettings{TimeMode: 999}
	assert.Equal(t, -1.0, gs.FrameRate())
}

func TestParseGlobalSettingsFromElement(t *testing.T) {
	root := &Element{ID: []byte("(root)")}
	gsEl := &Element{ID: []byte("GlobalSettings")}
	p70 := &Element{ID: []byte("Properties70")}
	p70.addChild(&Element{ID: []byte("P"), Properties: []*Property{
		stringProp("UpAxis"), stringProp("int"), stringProp(""), stringProp(""),
		&Property{Tag: TagInt32, scalarInt: 1},
	}})
	p70.addChild(&Element{ID: []byte("P"), Properties: []*Property{
		stringProp("UnitScaleFactor"), stringProp("double"), stringProp(""), stringProp(""),
		&Property{Tag: TagDouble, scalarFloat: 2.54},
	}})
	gsEl.addChild(p70)
	root.addChild(gsEl)

	gs := parseGlobalSettings(root)
	assert.Equal(t, 1, gs.UpAxis)
	assert.InDelta(t, 2.54, gs.UnitScaleFactor, 1e-9)
}

func TestSceneFindObjectByName(t *testing.T) {
	mesh := &MeshObject{Base: newBase(1, "Cube", KindMesh, nil)}
	sc := &Scene{
		objects: map[ObjectID]Object{1: mesh},
		order:   []ObjectID{1},
	}
	found, ok := sc.FindObjectByName("Cube")
	require.True(t, ok)
	assert.Equal(t, ObjectID(1), found.ID())

	_, ok = sc.FindObjectByName("missing")
	assert.False(t, ok)
}

func TestSceneTakeInfoByName(t *testing.T) {
	sc := &Scene{TakeInfos: []TakeInfoRecord{{Name: "Walk"}, {Name: "Run"}}}
	rec, ok := sc.TakeInfoByName("Run")
	require.True(t, ok)
	assert.Equal(t, "Run", rec.Name)

	_, ok = sc.TakeInfoByName("Jump")
	assert.False(t, ok)
}

func TestSceneAllObjectsPreservesFactoryOrder(t *testing.T) {
	root := &SceneRootObject{Base: newNodeBase(RootObjectID, "RootNode", KindSceneRoot, nil)}
	a := &NullNodeObject{Base: newBase(1, "a", KindNullNode, nil)}
	b := &NullNodeObject{Base: newBase(2, "b", KindNullNode, nil)}
	sc := &Scene{
		objects: map[ObjectID]Object{RootObjectID: root, 1: a, 2: b},
		order:   []ObjectID{RootObjectID, 1, 2},
	}
	all := sc.AllObjects()
	require.Len(t, all, 3)
	assert.Equal(t, ObjectID(0), all[0].ID())
	assert.Equal(t, ObjectID(1), all[1].ID())
	assert.Equal(t, ObjectID(2), all[2].ID())
}
