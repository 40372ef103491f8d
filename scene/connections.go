package scene

// connEdge is one row of the file's flat Connections table. `from` is
// always the child/source id, `to` the parent/destination id,
// matching the OP rule's own from/to naming ("from = child id, to =
// parent id") generalized to OO and PP edges too.
type connEdge struct {
	kind     string
	from, to ObjectID
	property string
}

func parseConnections(root *Element) []connEdge {
	connEl := root.Child("Connections")
	if connEl == nil {
		return nil
	}
	var edges []connEdge
	for _, c := range connEl.ChildrenNamed("C") {
		if len(c.Properties) < 3 {
			continue
		}
		e := connEdge{
			kind: c.Properties[0].ToString(),
			from: ObjectID(c.Properties[1].ToInt64()),
			to:   ObjectID(c.Properties[2].ToInt64()),
		}
		if len(c.Properties) > 3 {
			e.property = c.Properties[3].ToString()
		}
		edges = append(edges, e)
	}
	return edges
}

// resolveConnections walks the Connections table twice: a forward pass
// over the OO edges (parent/child structure), then a forward pass over
// the OP edges (property/curve-node attachment). Missing endpoints are dropped
// silently; only the structural double-binding invariants are fatal.
func resolveConnections(sc *Scene, edges []connEdge) error {
	for _, e := range edges {
		if e.kind != "OO" {
			continue
		}
		from, fromOK := sc.objects[e.from]
		to, toOK := sc.objects[e.to]
		if !fromOK || !toOK {
			continue
		}
		if err := resolveOOEdge(sc, from, to); err != nil {
			return err
		}
	}
	for _, e := range edges {
		if e.kind != "OP" {
			continue
		}
		from, fromOK := sc.objects[e.from]
		to, toOK := sc.objects[e.to]
		if !fromOK || !toOK {
			continue
		}
		resolveOPEdge(sc, from, to, e.property)
	}
	// PP edges carry no known consumer in this scope; they are parsed
	// but intentionally not interpreted.
	return nil
}

func resolveOOEdge(sc *Scene, from, to Object) error {
	if from.Element() != nil && string(from.Element().ID) == "NodeAttribute" {
		if node, ok := to.(Node); ok {
			nd := node.NodeData()
			if nd.NodeAttribute != 0 {
				return newErrorf(ErrInvariant, "object %d already has a node attribute", int64(to.ID()))
			}
			nd.NodeAttribute = from.ID()
		}
		return nil
	}

	switch toObj := to.(type) {
	case *MeshObject:
		switch fromObj := from.(type) {
		case *GeometryObject:
			if toObj.GeometryID != 0 {
				return newErrorf(ErrInvariant, "mesh %d already has a geometry", int64(to.ID()))
			}
			toObj.GeometryID = fromObj.ID()
		case *MaterialObject:
			toObj.Materials = append(toObj.Materials, fromObj.ID())
		}
	case *SkinObject:
		if fromObj, ok := from.(*ClusterObject); ok {
			if fromObj.SkinID != 0 {
				return newErrorf(ErrInvariant, "cluster %d already bound to a skin", int64(from.ID()))
			}
			fromObj.SkinID = toObj.ID()
			toObj.Clusters = append(toObj.Clusters, fromObj.ID())
		}
	case *GeometryObject:
		if fromObj, ok := from.(*SkinObject); ok {
			if toObj.SkinID != 0 {
				return newErrorf(ErrInvariant, "geometry %d already has a skin", int64(to.ID()))
			}
			toObj.SkinID = fromObj.ID()
			fromObj.GeometryID = toObj.ID()
		}
	case *ClusterObject:
		switch from.(type) {
		case *LimbNodeObject, *MeshObject, *NullNodeObject:
			if toObj.LinkBoneID != 0 {
				return newErrorf(ErrInvariant, "cluster %d already has a link bone", int64(to.ID()))
			}
			toObj.LinkBoneID = from.ID()
		}
	case *AnimationStackObject:
		if fromObj, ok := from.(*AnimationLayerObject); ok {
			toObj.Layers = append(toObj.Layers, fromObj.ID())
		}
	case *AnimationLayerObject:
		switch fromObj := from.(type) {
		case *AnimationCurveNodeObject:
			toObj.CurveNodes = append(toObj.CurveNodes, fromObj.ID())
			fromObj.LayerID = toObj.ID()
		case *AnimationLayerObject:
			toObj.SubLayers = append(toObj.SubLayers, fromObj.ID())
			fromObj.ParentLayerID = toObj.ID()
		}
	case *AnimationCurveNodeObject:
		if fromObj, ok := from.(*AnimationCurveObject); ok {
			toObj.attachCurve(fromObj.ID())
		}
	}

	// The base Model-to-Model OO edges form the node parent/child tree
	// itself; this is the routing table's implicit baseline case, not
	// called out as its own bullet since every other rule layers on
	// top of it.
	if node, ok := to.(Node); ok {
		if fromObj, ok := from.(Node); ok {
			fromObj.NodeData().ParentID = node.ID()
			node.NodeData().Children = append(node.NodeData().Children, fromObj.ID())
		}
	}
	return nil
}

func resolveOPEdge(sc *Scene, from, to Object, property string) {
	if tex, ok := from.(*TextureObject); ok {
		if mat, ok := to.(*MaterialObject); ok {
			switch property {
			case "DiffuseColor":
				mat.DiffuseTextureID = tex.ID()
			case "NormalMap", "Bump":
				mat.NormalTextureID = tex.ID()
			}
			return
		}
	}

	if cn, ok := from.(*AnimationCurveNodeObject); ok {
		cn.OwnerID = to.ID()
		cn.PropertyName = property
		cn.Mode = curveNodeModeForProperty(property)
		return
	}

	if slot, ok := to.Properties().Get(property); ok && slot.Kind == SlotObjectRef {
		slot.SetObjectRef(from.ID())
	}
}
