package scene

// ObjectID is the file's own stable 64-bit id. Relationships between
// objects are modeled as ObjectID handles resolved through the owning
// Scene's lookup table rather than raw pointers between peers. Peer
// objects still embed a back-pointer to their owning *Scene (Go's
// collector handles the resulting cycles natively).
type ObjectID int64

// RootObjectID is the synthetic scene root; it is the only object
// permitted id 0.
const RootObjectID ObjectID = 0

// ObjectKind is the tagged-variant discriminant standing in for the
// source's inheritance hierarchy (Object -> Model -> Mesh/Camera/...).
type ObjectKind int

const (
	KindUnknown ObjectKind = iota
	KindSceneRoot
	KindMesh
	KindLimbNode
	KindNullNode
	KindCamera
	KindLight
	KindGeometry
	KindMaterial
	KindTexture
	KindSkin
	KindCluster
	KindAnimationStack
	KindAnimationLayer
	KindAnimationCurveNode
	KindAnimationCurve
	KindPose
)

func (k ObjectKind) String() string {
	switch k {
	case KindSceneRoot:
		return "SceneRoot"
	case KindMesh:
		return "Mesh"
	case KindLimbNode:
		return "LimbNode"
	case KindNullNode:
		return "Null"
	case KindCamera:
		return "Camera"
	case KindLight:
		return "Light"
	case KindGeometry:
		return "Geometry"
	case KindMaterial:
		return "Material"
	case KindTexture:
		return "Texture"
	case KindSkin:
		return "Skin"
	case KindCluster:
		return "Cluster"
	case KindAnimationStack:
		return "AnimationStack"
	case KindAnimationLayer:
		return "AnimationLayer"
	case KindAnimationCurveNode:
		return "AnimationCurveNode"
	case KindAnimationCurve:
		return "AnimationCurve"
	case KindPose:
		return "Pose"
	default:
		return "Unknown"
	}
}

// IsNode reports whether this kind participates in the parent/child
// node tree (as opposed to a plain attachment like Geometry/Material).
func (k ObjectKind) IsNode() bool {
	switch k {
	case KindSceneRoot, KindMesh, KindLimbNode, KindNullNode, KindCamera, KindLight:
		return true
	default:
		return false
	}
}

// Object is the common surface every scene entity satisfies. Concrete
// kinds embed Base (and node kinds also carry a NodeData field) to get
// it for free rather than reimplementing the common plumbing in each kind.
type Object interface {
	ID() ObjectID
	Name() string
	Kind() ObjectKind
	Element() *Element
	Properties() *PropertyList
	scene() *Scene
}

// Base is the shared header embedded into every concrete object type,
// standing in for the source's common Object base class.
type Base struct {
	id    ObjectID
	name  string
	kind  ObjectKind
	elem  *Element
	props PropertyList
	sc    *Scene
}

func (b *Base) ID() ObjectID            { return b.id }
func (b *Base) Name() string            { return b.name }
func (b *Base) Kind() ObjectKind        { return b.kind }
func (b *Base) Element() *Element       { return b.elem }
func (b *Base) Properties() *PropertyList { return &b.props }
func (b *Base) scene() *Scene            { return b.sc }
func (b *Base) setScene(sc *Scene)       { b.sc = sc }
