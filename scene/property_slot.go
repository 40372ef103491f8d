package scene

import "github.com/go-gl/mathgl/mgl64"

// SlotKind is the tagged-variant discriminant for a PropertySlot's
// payload, standing in for the source's per-type property subclasses.
type SlotKind int

const (
	SlotBool SlotKind = iota
	SlotInt
	SlotDouble
	SlotVec3
	SlotColor
	SlotEnum
	SlotObjectRef
)

// PropertySlot is one named, typed value on an Object. Animatable
// slots (Bool, Double, Vec3, Color) additionally carry the head of a chain
// of AnimationCurveNode ids, one per active layer; traversal follows
// each curve-node's NextInStack field, in layer-attach order.
type PropertySlot struct {
	Name       string
	Kind       SlotKind
	Animatable bool

	valBool   bool
	valInt    int64
	valDouble float64
	valVec3   mgl64.Vec3
	valEnum   string
	valRef    ObjectID

	firstCurveNode ObjectID
}

func (s *PropertySlot) Bool() bool          { return s.valBool }
func (s *PropertySlot) SetBool(v bool)      { s.valBool = v }
func (s *PropertySlot) Int() int64          { return s.valInt }
func (s *PropertySlot) SetInt(v int64)      { s.valInt = v }
func (s *PropertySlot) Double() float64     { return s.valDouble }
func (s *PropertySlot) SetDouble(v float64) { s.valDouble = v }
func (s *PropertySlot) Vec3() mgl64.Vec3    { return s.valVec3 }
func (s *PropertySlot) SetVec3(v mgl64.Vec3) { s.valVec3 = v }
func (s *PropertySlot) Enum() string        { return s.valEnum }
func (s *PropertySlot) SetEnum(v string)    { s.valEnum = v }
func (s *PropertySlot) ObjectRef() ObjectID { return s.valRef }
func (s *PropertySlot) SetObjectRef(v ObjectID) { s.valRef = v }

// FirstCurveNode is the head of this slot's per-layer attachment
// chain, or 0 if nothing is attached.
func (s *PropertySlot) FirstCurveNode() ObjectID { return s.firstCurveNode }

// PropertyList is an ordered, name-keyed set of property slots on an
// Object, declared at construction time with defaults and then
// overwritten from the element tree during Retrieve.
type PropertyList struct {
	order []string
	slots map[string]*PropertySlot
}

// Declare registers a slot, in declaration order. Re-declaring a name
// replaces the slot (a kind that declares the same slot twice is a
// programmer error in a factory, not a file-driven condition, so this
// does not return an error).
func (pl *PropertyList) Declare(slot *PropertySlot) {
	if pl.slots == nil {
		pl.slots = make(map[string]*PropertySlot)
	}
	if _, exists := pl.slots[slot.Name]; !exists {
		pl.order = append(pl.order, slot.Name)
	}
	pl.slots[slot.Name] = slot
}

func (pl *PropertyList) Get(name string) (*PropertySlot, bool) {
	s, ok := pl.slots[name]
	return s, ok
}

func (pl *PropertyList) MustGet(name string) *PropertySlot {
	s, ok := pl.slots[name]
	if !ok {
		return &PropertySlot{Name: name}
	}
	return s
}

// Names returns slot names in declaration order.
func (pl *PropertyList) Names() []string {
	out := make([]string, len(pl.order))
	copy(out, pl.order)
	return out
}

// SetFromElementProperty overwrites a declared slot's value from a
// decoded tokenizer Property, following the slot's kind. Unknown slot
// names or type mismatches are no-ops (the resolver and Retrieve phase
// both treat this as a silent skip, per the connection-resolver OP
// rule for non-existent or type-mismatched slots).
func (pl *PropertyList) SetFromElementProperty(name string, p *Property) bool {
	slot, ok := pl.slots[name]
	if !ok || p == nil {
		return false
	}
	switch slot.Kind {
	case SlotBool:
		slot.valBool = p.ToBool()
	case SlotInt:
		slot.valInt = p.ToInt64()
	case SlotDouble:
		slot.valDouble = p.ToFloat64()
	case SlotEnum:
		slot.valEnum = p.ToString()
	default:
		return false
	}
	return true
}

// SetVec3FromElementProperties overwrites a Vec3/Color slot from three
// consecutive scalar properties (FBX stores vector-valued Properties70
// entries as three trailing numeric properties after the name/type/
// flags columns).
func (pl *PropertyList) SetVec3FromElementProperties(name string, x, y, z *Property) bool {
	slot, ok := pl.slots[name]
	if !ok || (slot.Kind != SlotVec3 && slot.Kind != SlotColor) {
		return false
	}
	slot.valVec3 = mgl64.Vec3{x.ToFloat64(), y.ToFloat64(), z.ToFloat64()}
	return true
}

// attachCurveNode extends an animatable slot's per-layer chain by
// appending curveNodeID after the current tail, walking NextInStack
// links through sc's object table.
func (pl *PropertyList) attachCurveNode(sc *Scene, name string, curveNodeID ObjectID) bool {
	slot, ok := pl.slots[name]
	if !ok || !slot.Animatable {
		return false
	}
	if slot.firstCurveNode == 0 {
		slot.firstCurveNode = curveNodeID
		return true
	}
	cur := slot.firstCurveNode
	for {
		cn, ok := sc.CurveNode(cur)
		if !ok || cn.NextInStack == 0 {
			break
		}
		cur = cn.NextInStack
	}
	if cn, ok := sc.CurveNode(cur); ok {
		cn.NextInStack = curveNodeID
	}
	return true
}

// detachAll clears every animatable slot's chain head, the first step
// of PrepTakeConnections.
func (pl *PropertyList) detachAll() {
	for _, s := range pl.slots {
		if s.Animatable {
			s.firstCurveNode = 0
		}
	}
}
