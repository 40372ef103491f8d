package scene

import "strings"

// GenericObject is the catch-all kind for elements under Objects that
// this implementation does not model with a dedicated struct (stray
// NodeAttribute blocks, unrecognized Deformer/Model subclasses such as
// Constraint/Shader placeholders, and anything future exporters add) —
// a supplemented feature beyond the core object kinds, so files
// carrying them still load instead of failing on an unrecognized
// top-level element id or class discriminant.
type GenericObject struct {
	Base
}

// splitNameClass splits FBX's `"Name\x00\x01Class"` object-name
// encoding. Text-dialect files sometimes use "::" instead.
func splitNameClass(raw string) (name, class string) {
	if i := strings.Index(raw, "\x00\x01"); i >= 0 {
		return raw[:i], raw[i+2:]
	}
	if i := strings.Index(raw, "::"); i >= 0 {
		return raw[:i], raw[i+2:]
	}
	return raw, ""
}

func elementObjectID(el *Element) ObjectID {
	if len(el.Properties) == 0 {
		return 0
	}
	return ObjectID(el.Properties[0].ToInt64())
}

func elementNameAndClass(el *Element) (name, class string) {
	if len(el.Properties) > 1 {
		name, class = splitNameClass(el.Properties[1].ToString())
	}
	if len(el.Properties) > 2 {
		if c := el.Properties[2].ToString(); c != "" {
			class = c
		}
	}
	return name, class
}

func newBase(id ObjectID, name string, kind ObjectKind, el *Element) Base {
	return Base{id: id, name: name, kind: kind, elem: el}
}

func newNodeBase(id ObjectID, name string, kind ObjectKind, el *Element) Base {
	b := newBase(id, name, kind, el)
	declareNodeSlots(&b.props)
	return b
}

// parseObjects is the factory pass: it seeds id 0 with the synthetic
// root and dispatches every Objects child on its element id and class
// discriminant. Declared-default property slots are attached here;
// retrieveProperties (run by Load before connection resolution)
// overwrites them from each element's Properties70 block.
func parseObjects(root *Element) (objects map[ObjectID]Object, order []ObjectID, err error) {
	objects = make(map[ObjectID]Object)

	sceneRoot := &SceneRootObject{Base: newNodeBase(RootObjectID, "RootNode", KindSceneRoot, nil)}
	objects[RootObjectID] = sceneRoot
	order = append(order, RootObjectID)

	objectsEl := root.Child("Objects")
	if objectsEl == nil {
		return objects, order, nil
	}

	for _, el := range objectsEl.Children() {
		id := elementObjectID(el)
		if id == 0 {
			continue // malformed entry with no id: skip rather than collide with the synthetic root
		}
		name, class := elementNameAndClass(el)

		obj, oerr := buildObjectFromElement(id, name, class, el)
		if oerr != nil {
			return nil, nil, oerr
		}
		if obj == nil {
			continue
		}
		if _, dup := objects[id]; dup {
			return nil, nil, newErrorf(ErrInvariant, "duplicate object id %d", id)
		}
		objects[id] = obj
		order = append(order, id)
	}
	return objects, order, nil
}

func buildObjectFromElement(id ObjectID, name, class string, el *Element) (Object, error) {
	switch string(el.ID) {
	case "Model":
		return buildModel(id, name, class, el)
	case "Geometry":
		b := newBase(id, name, KindGeometry, el)
		return buildGeometry(b, el)
	case "Material":
		b := newBase(id, name, KindMaterial, el)
		declareMaterialSlots(&b.props)
		return &MaterialObject{Base: b}, nil
	case "Texture", "Video":
		b := newBase(id, name, KindTexture, el)
		return buildTexture(b, el), nil
	case "Deformer":
		return buildDeformer(id, name, class, el)
	case "AnimationStack":
		b := newBase(id, name, KindAnimationStack, el)
		stack := &AnimationStackObject{Base: b}
		if ltEl := el.Child("LocalStop"); ltEl != nil && len(ltEl.Properties) > 0 {
			stack.LoopStop = ltEl.Properties[0].ToInt64()
		}
		if lsEl := el.Child("LocalStart"); lsEl != nil && len(lsEl.Properties) > 0 {
			stack.LoopStart = lsEl.Properties[0].ToInt64()
		}
		return stack, nil
	case "AnimationLayer":
		b := newBase(id, name, KindAnimationLayer, el)
		declareAnimationLayerSlots(&b.props)
		return &AnimationLayerObject{Base: b}, nil
	case "AnimationCurveNode":
		b := newBase(id, name, KindAnimationCurveNode, el)
		return &AnimationCurveNodeObject{Base: b}, nil
	case "AnimationCurve":
		b := newBase(id, name, KindAnimationCurve, el)
		return buildCurve(b, el), nil
	case "Pose":
		b := newBase(id, name, KindPose, el)
		return buildPose(b, el), nil
	default:
		b := newBase(id, name, KindUnknown, el)
		return &GenericObject{Base: b}, nil
	}
}

func buildModel(id ObjectID, name, class string, el *Element) (Object, error) {
	switch class {
	case "Mesh":
		b := newNodeBase(id, name, KindMesh, el)
		declareMeshSlots(&b.props)
		return &MeshObject{Base: b}, nil
	case "LimbNode":
		b := newNodeBase(id, name, KindLimbNode, el)
		declareLimbNodeSlots(&b.props)
		return &LimbNodeObject{Base: b}, nil
	case "Null", "Root":
		b := newNodeBase(id, name, KindNullNode, el)
		declareNullNodeSlots(&b.props)
		return &NullNodeObject{Base: b}, nil
	case "Camera":
		b := newNodeBase(id, name, KindCamera, el)
		declareCameraSlots(&b.props)
		return &CameraObject{Base: b}, nil
	case "Light":
		b := newNodeBase(id, name, KindLight, el)
		declareLightSlots(&b.props)
		return &LightObject{Base: b}, nil
	default:
		// Shader placeholders (CameraSwitcher, Marker, IKEffector, and
		// other Model subclasses this decoder does not give a dedicated
		// kind) are kept rather than rejected, mirroring buildDeformer's
		// default below.
		b := newBase(id, name, KindUnknown, el)
		return &GenericObject{Base: b}, nil
	}
}

func buildDeformer(id ObjectID, name, class string, el *Element) (Object, error) {
	switch class {
	case "Cluster":
		b := newBase(id, name, KindCluster, el)
		return buildCluster(b, el), nil
	case "Skin":
		b := newBase(id, name, KindSkin, el)
		return &SkinObject{Base: b}, nil
	default:
		b := newBase(id, name, KindUnknown, el)
		return &GenericObject{Base: b}, nil
	}
}

func buildTexture(b Base, el *Element) *TextureObject {
	t := &TextureObject{Base: b}
	if fn := el.Child("FileName"); fn != nil && len(fn.Properties) > 0 {
		t.FileName = fn.Properties[0].ToString()
	}
	if rfn := el.Child("RelativeFilename"); rfn != nil && len(rfn.Properties) > 0 {
		t.RelativeFileName = rfn.Properties[0].ToString()
	}
	return t
}

func buildCurve(b Base, el *Element) *AnimationCurveObject {
	c := &AnimationCurveObject{Base: b}
	if kt := el.Child("KeyTime"); kt != nil && len(kt.Properties) > 0 {
		c.Times = kt.Properties[0].Int64Array()
	}
	if kv := el.Child("KeyValueFloat"); kv != nil && len(kv.Properties) > 0 {
		c.Values = kv.Properties[0].Float64Array()
	}
	if kf := el.Child("KeyAttrFlags"); kf != nil && len(kf.Properties) > 0 {
		c.Flags = kf.Properties[0].Int32Array()
	}
	return c
}
