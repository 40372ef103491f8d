package scene

import "github.com/go-gl/mathgl/mgl64"

// Rotation orders, matching FBX's RotationOrder enum. SPHERIC_XYZ (6)
// and any other value outside 0..5 is folded into EulerXYZ at retrieval
// time, per the format's own documented equivalence.
const (
	EulerXYZ = iota
	EulerXZY
	EulerYZX
	EulerYXZ
	EulerZXY
	EulerZYX
)

// NodeData is the shared state of every node-kind object (anything
// that participates in the parent/child tree): pivots and transform
// flags, child list, and the one-slot global-transform cache keyed by
// evaluation time, per the cache-in-const-method design note.
type NodeData struct {
	ParentID      ObjectID
	Children      []ObjectID
	NodeAttribute ObjectID

	RotationActive bool
	RotationOrder  int

	cacheValid  bool
	cacheTime   int64
	cacheGlobal mgl64.Mat4
}

// Node is satisfied by every node-kind object; GlobalTransformOf and
// localTransformOf operate against it so the transform evaluator is
// written once and shared by Mesh/LimbNode/Null/Camera/Light/SceneRoot.
type Node interface {
	Object
	NodeData() *NodeData
}

func declareNodeSlots(pl *PropertyList) {
	pl.Declare(&PropertySlot{Name: "Lcl Translation", Kind: SlotVec3, Animatable: true})
	pl.Declare(&PropertySlot{Name: "Lcl Rotation", Kind: SlotVec3, Animatable: true})
	pl.Declare(&PropertySlot{Name: "Lcl Scaling", Kind: SlotVec3, Animatable: true, valVec3: mgl64.Vec3{1, 1, 1}})
	pl.Declare(&PropertySlot{Name: "Visibility", Kind: SlotBool, Animatable: true, valBool: true})
	pl.Declare(&PropertySlot{Name: "RotationOffset", Kind: SlotVec3})
	pl.Declare(&PropertySlot{Name: "RotationPivot", Kind: SlotVec3})
	pl.Declare(&PropertySlot{Name: "PreRotation", Kind: SlotVec3})
	pl.Declare(&PropertySlot{Name: "PostRotation", Kind: SlotVec3})
	pl.Declare(&PropertySlot{Name: "ScalingOffset", Kind: SlotVec3})
	pl.Declare(&PropertySlot{Name: "ScalingPivot", Kind: SlotVec3})
	pl.Declare(&PropertySlot{Name: "RotationActive", Kind: SlotBool})
	pl.Declare(&PropertySlot{Name: "RotationOrder", Kind: SlotInt})
}

// SceneRootObject is the synthetic id-0 root every loaded scene has,
// standing in for the source's implicit RootNode.
type SceneRootObject struct {
	Base
	Node NodeData
}

func (o *SceneRootObject) NodeData() *NodeData { return &o.Node }

// MeshObject references one Geometry and an ordered material list, and
// carries the geometric pivot distinct from the node transform itself.
type MeshObject struct {
	Base
	Node       NodeData
	GeometryID ObjectID
	Materials  []ObjectID
}

func (o *MeshObject) NodeData() *NodeData { return &o.Node }

func declareMeshSlots(pl *PropertyList) {
	pl.Declare(&PropertySlot{Name: "GeometricTranslation", Kind: SlotVec3})
	pl.Declare(&PropertySlot{Name: "GeometricRotation", Kind: SlotVec3})
	pl.Declare(&PropertySlot{Name: "GeometricScaling", Kind: SlotVec3, valVec3: mgl64.Vec3{1, 1, 1}})
}

// LimbNodeObject is a skeleton joint: no geometry, just size and a
// display color.
type LimbNodeObject struct {
	Base
	Node NodeData
}

func (o *LimbNodeObject) NodeData() *NodeData { return &o.Node }

func declareLimbNodeSlots(pl *PropertyList) {
	pl.Declare(&PropertySlot{Name: "Size", Kind: SlotDouble, valDouble: 100})
	pl.Declare(&PropertySlot{Name: "Color", Kind: SlotColor, valVec3: mgl64.Vec3{0.8, 0.8, 0.8}})
}

// NullNodeObject is a plain locator/group node.
type NullNodeObject struct {
	Base
	Node NodeData
}

func (o *NullNodeObject) NodeData() *NodeData { return &o.Node }

func declareNullNodeSlots(pl *PropertyList) {
	pl.Declare(&PropertySlot{Name: "Size", Kind: SlotDouble, valDouble: 100})
}

// CameraObject carries the pivots and film/aperture parameters needed
// to compose both a projection and a view matrix.
type CameraObject struct {
	Base
	Node NodeData
}

func (o *CameraObject) NodeData() *NodeData { return &o.Node }

func declareCameraSlots(pl *PropertyList) {
	pl.Declare(&PropertySlot{Name: "FieldOfView", Kind: SlotDouble, Animatable: true, valDouble: 40})
	pl.Declare(&PropertySlot{Name: "FocalLength", Kind: SlotDouble, Animatable: true, valDouble: 35})
	pl.Declare(&PropertySlot{Name: "NearPlane", Kind: SlotDouble, valDouble: 1})
	pl.Declare(&PropertySlot{Name: "FarPlane", Kind: SlotDouble, valDouble: 1000})
	pl.Declare(&PropertySlot{Name: "FilmWidth", Kind: SlotDouble, valDouble: 0.816})
	pl.Declare(&PropertySlot{Name: "FilmHeight", Kind: SlotDouble, valDouble: 0.612})
	pl.Declare(&PropertySlot{Name: "AspectWidth", Kind: SlotDouble, valDouble: 1})
	pl.Declare(&PropertySlot{Name: "AspectHeight", Kind: SlotDouble, valDouble: 1})
	pl.Declare(&PropertySlot{Name: "InterestPosition", Kind: SlotVec3})
	pl.Declare(&PropertySlot{Name: "LookAtProperty", Kind: SlotObjectRef})
}

// LightKind mirrors FBX's LightType enum (0=point, 1=directional,
// 2=spot).
type LightKind int

const (
	LightPoint LightKind = iota
	LightDirectional
	LightSpot
)

type LightObject struct {
	Base
	Node NodeData
	Type LightKind
}

func (o *LightObject) NodeData() *NodeData { return &o.Node }

func declareLightSlots(pl *PropertyList) {
	pl.Declare(&PropertySlot{Name: "LightType", Kind: SlotInt})
	pl.Declare(&PropertySlot{Name: "Intensity", Kind: SlotDouble, Animatable: true, valDouble: 100})
	pl.Declare(&PropertySlot{Name: "Color", Kind: SlotColor, Animatable: true, valVec3: mgl64.Vec3{1, 1, 1}})
	pl.Declare(&PropertySlot{Name: "InnerAngle", Kind: SlotDouble, Animatable: true})
	pl.Declare(&PropertySlot{Name: "OuterAngle", Kind: SlotDouble, Animatable: true, valDouble: 45})
}
