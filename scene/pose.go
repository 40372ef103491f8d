package scene

import "github.com/go-gl/mathgl/mgl64"

// PoseBindEntry is one node's bind-time world matrix, as recorded by a
// BindPose's PoseNode child.
type PoseBindEntry struct {
	NodeID ObjectID
	Matrix mgl64.Mat4
}

// PoseObject is a Pose/BindPose record: not consulted by the transform
// evaluator (the format itself only stores these for consumer use), but
// decoded and exposed so a caller that needs the original bind state
// (e.g. to re-skin against a different pose) can get at it.
type PoseObject struct {
	Base
	Nodes []PoseBindEntry
}

func buildPose(b Base, el *Element) *PoseObject {
	p := &PoseObject{Base: b}
	for _, pn := range el.ChildrenNamed("PoseNode") {
		nodeEl := pn.Child("Node")
		matEl := pn.Child("Matrix")
		if nodeEl == nil || len(nodeEl.Properties) == 0 || matEl == nil || len(matEl.Properties) == 0 {
			continue
		}
		vals := matEl.Properties[0].Float64Array()
		if len(vals) != 16 {
			continue
		}
		var m mgl64.Mat4
		copy(m[:], vals)
		p.Nodes = append(p.Nodes, PoseBindEntry{NodeID: ObjectID(nodeEl.Properties[0].ToInt64()), Matrix: m})
	}
	return p
}
