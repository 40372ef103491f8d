package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWiredScene(objs map[ObjectID]Object, order []ObjectID) *Scene {
	sc := &Scene{objects: objs, order: order}
	for _, o := range objs {
		if setter, ok := o.(interface{ setScene(*Scene) }); ok {
			setter.setScene(sc)
		}
	}
	return sc
}

func TestResolveOOEdgeMeshGeometryAndMaterial(t *testing.T) {
	mesh := &MeshObject{Base: newNodeBase(1, "mesh", KindMesh, nil)}
	geo := &GeometryObject{Base: newBase(2, "geo", KindGeometry, nil)}
	mat := &MaterialObject{Base: newBase(3, "mat", KindMaterial, nil)}
	sc := newWiredScene(map[ObjectID]Object{1: mesh, 2: geo, 3: mat}, []ObjectID{1, 2, 3})

	require.NoError(t, resolveOOEdge(sc, geo, mesh))
	require.NoError(t, resolveOOEdge(sc, mat, mesh))

	assert.EqualValues(t, 2, mesh.GeometryID)
	assert.Equal(t, []ObjectID{3}, mesh.Materials)
}

func TestResolveOOEdgeDuplicateGeometryIsInvariantError(t *testing.T) {
	mesh := &MeshObject{Base: newNodeBase(1, "mesh", KindMesh, nil), GeometryID: 99}
	geo := &GeometryObject{Base: newBase(2, "geo", KindGeometry, nil)}
	sc := newWiredScene(map[ObjectID]Object{1: mesh, 2: geo}, []ObjectID{1, 2})

	err := resolveOOEdge(sc, geo, mesh)
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrInvariant, le.Kind)
}

func TestResolveOOEdgeBuildsNodeParentChildTree(t *testing.T) {
	parent := &NullNodeObject{Base: newNodeBase(1, "parent", KindNullNode, nil)}
	childNode := &NullNodeObject{Base: newNodeBase(2, "child", KindNullNode, nil)}
	sc := newWiredScene(map[ObjectID]Object{1: parent, 2: childNode}, []ObjectID{1, 2})

	require.NoError(t, resolveOOEdge(sc, childNode, parent))
	assert.EqualValues(t, 1, childNode.Node.ParentID)
	assert.Equal(t, []ObjectID{2}, parent.Node.Children)
}

func TestResolveOOEdgeNodeAttributeAssignment(t *testing.T) {
	attr := &GenericObject{Base: newBase(5, "attr", KindUnknown, &Element{ID: []byte("NodeAttribute")})}
	mesh := &MeshObject{Base: newNodeBase(1, "mesh", KindMesh, nil)}
	sc := newWiredScene(map[ObjectID]Object{1: mesh, 5: attr}, []ObjectID{1, 5})

	require.NoError(t, resolveOOEdge(sc, attr, mesh))
	assert.EqualValues(t, 5, mesh.Node.NodeAttribute)
}

func TestResolveOPEdgeTextureToMaterial(t *testing.T) {
	tex := &TextureObject{Base: newBase(1, "tex", KindTexture, nil)}
	mat := &MaterialObject{Base: newBase(2, "mat", KindMaterial, nil)}
	declareMaterialSlots(&mat.Base.props)
	sc := newWiredScene(map[ObjectID]Object{1: tex, 2: mat}, []ObjectID{1, 2})

	resolveOPEdge(sc, tex, mat, "DiffuseColor")
	assert.EqualValues(t, 1, mat.DiffuseTextureID)
}

func TestResolveOPEdgeCurveNodeOwnership(t *testing.T) {
	mesh := &MeshObject{Base: newNodeBase(1, "mesh", KindMesh, nil)}
	cn := &AnimationCurveNodeObject{Base: newBase(2, "cn", KindAnimationCurveNode, nil)}
	sc := newWiredScene(map[ObjectID]Object{1: mesh, 2: cn}, []ObjectID{1, 2})

	resolveOPEdge(sc, cn, mesh, "Lcl Rotation")
	assert.EqualValues(t, 1, cn.OwnerID)
	assert.Equal(t, "Lcl Rotation", cn.PropertyName)
	assert.Equal(t, ModeRotation, cn.Mode)
}

func TestParseConnectionsReadsCRows(t *testing.T) {
	root := &Element{ID: []byte("(root)")}
	conns := &Element{ID: []byte("Connections")}
	conns.addChild(&Element{ID: []byte("C"), Properties: []*Property{
		stringProp("OO"),
		&Property{Tag: TagInt64, scalarInt: 2},
		&Property{Tag: TagInt64, scalarInt: 1},
	}})
	conns.addChild(&Element{ID: []byte("C"), Properties: []*Property{
		stringProp("OP"),
		&Property{Tag: TagInt64, scalarInt: 2},
		&Property{Tag: TagInt64, scalarInt: 1},
		stringProp("Lcl Translation"),
	}})
	root.addChild(conns)

	edges := parseConnections(root)
	require.Len(t, edges, 2)
	assert.Equal(t, "OO", edges[0].kind)
	assert.EqualValues(t, 2, edges[0].from)
	assert.EqualValues(t, 1, edges[0].to)
	assert.Equal(t, "OP", edges[1].kind)
	assert.Equal(t, "Lcl Translation", edges[1].property)
}
