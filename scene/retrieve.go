package scene

// properties70Entries returns the Properties70 block's P children for
// an object element, or nil if it has none.
func properties70Entries(objElement *Element) []*Element {
	p70 := objElement.Child("Properties70")
	if p70 == nil {
		return nil
	}
	return p70.ChildrenNamed("P")
}

// propertyEntry splits one `P: name, type, label, flags, value...`
// element into its name and trailing value properties.
func propertyEntry(p *Element) (name string, values []*Property) {
	if len(p.Properties) < 4 {
		return "", nil
	}
	return p.Properties[0].ToString(), p.Properties[4:]
}

// retrieveProperties overwrites every declared slot on pl from el's
// Properties70 block, the way `Retrieve` overwrites factory-declared
// defaults from the element tree. Unknown names and arity/type
// mismatches are silently skipped.
func retrieveProperties(pl *PropertyList, el *Element) {
	for _, p := range properties70Entries(el) {
		name, values := propertyEntry(p)
		if name == "" || len(values) == 0 {
			continue
		}
		slot, ok := pl.Get(name)
		if !ok {
			continue
		}
		switch slot.Kind {
		case SlotVec3, SlotColor:
			if len(values) >= 3 {
				pl.SetVec3FromElementProperties(name, values[0], values[1], values[2])
			}
		default:
			pl.SetFromElementProperty(name, values[0])
		}
	}
}

// retrieveNodeData copies RotationActive/RotationOrder off their
// slots into the plain NodeData fields the transform evaluator reads
// directly (they are not animatable, so a slot round-trip per
// evaluation would be wasted work).
func retrieveNodeData(nd *NodeData, pl *PropertyList) {
	nd.RotationActive = pl.MustGet("RotationActive").Bool()
	order := int(pl.MustGet("RotationOrder").Int())
	if order < 0 || order > EulerZYX {
		order = EulerXYZ
	}
	nd.RotationOrder = order
}
