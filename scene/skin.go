package scene

import "github.com/go-gl/mathgl/mgl64"

// SkinObject owns an ordered list of Clusters deforming one Geometry.
type SkinObject struct {
	Base
	GeometryID ObjectID
	Clusters   []ObjectID
}

// ClusterObject is one bone's weighted influence over a geometry's
// vertices. Indices/Weights are in post-triangulation ("new") vertex
// space, built by clusterPostProcess once the owning Skin's Geometry
// is resolved and triangulated.
type ClusterObject struct {
	Base

	SkinID     ObjectID
	LinkBoneID ObjectID

	TransformMatrix     mgl64.Mat4
	TransformLinkMatrix mgl64.Mat4

	Indices []int32
	Weights []float64

	rawIndices []int32
	rawWeights []float64
}

func buildCluster(b Base, el *Element) *ClusterObject {
	c := &ClusterObject{Base: b, TransformMatrix: mgl64.Ident4(), TransformLinkMatrix: mgl64.Ident4()}
	if idxEl := el.Child("Indexes"); idxEl != nil && len(idxEl.Properties) > 0 {
		c.rawIndices = idxEl.Properties[0].Int32Array()
	}
	if wEl := el.Child("Weights"); wEl != nil && len(wEl.Properties) > 0 {
		c.rawWeights = wEl.Properties[0].Float64Array()
	}
	if tEl := el.Child("Transform"); tEl != nil && len(tEl.Properties) > 0 {
		c.TransformMatrix = matrixFromFlat16(tEl.Properties[0].Float64Array())
	}
	if tlEl := el.Child("TransformLink"); tlEl != nil && len(tlEl.Properties) > 0 {
		c.TransformLinkMatrix = matrixFromFlat16(tlEl.Properties[0].Float64Array())
	}
	return c
}

func matrixFromFlat16(flat []float64) mgl64.Mat4 {
	var m mgl64.Mat4
	n := len(flat)
	if n > 16 {
		n = 16
	}
	copy(m[:n], flat[:n])
	return m
}

// clusterPostProcess expands every cluster's raw old-vertex-space
// indices/weights into post-triangulation corner space, via the
// owning geometry's ToNewVertices multimap. A raw index with no
// expansion (an old vertex the triangulator dropped) is skipped
// silently.
func clusterPostProcess(sc *Scene) {
	for _, skinID := range sc.skinIDs {
		skin, ok := sc.Skin(skinID)
		if !ok {
			continue
		}
		geom, ok := sc.Geometry(skin.GeometryID)
		if !ok {
			continue
		}
		for _, clusterID := range skin.Clusters {
			cluster, ok := sc.Cluster(clusterID)
			if !ok {
				continue
			}
			for i, oldIdx := range cluster.rawIndices {
				if i >= len(cluster.rawWeights) {
					break
				}
				w := cluster.rawWeights[i]
				if int(oldIdx) < 0 || int(oldIdx) >= len(geom.ToNewVertices) {
					continue
				}
				for _, newIdx := range geom.ToNewVertices[oldIdx] {
					cluster.Indices = append(cluster.Indices, newIdx)
					cluster.Weights = append(cluster.Weights, w)
				}
			}
		}
	}
}
