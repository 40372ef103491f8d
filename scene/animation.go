package scene

import (
	"math"
	"sort"
)

// ticksPerSecond is the FBX tick unit: an i64 count of 1/46186158000
// second intervals.
const ticksPerSecond = 46186158000

// FBXTick is a duration expressed in the format's native tick unit, as
// stored in KeyTime arrays and Take/AnimationStack loop bounds.
type FBXTick int64

// Seconds converts t to seconds.
func (t FBXTick) Seconds() float64 {
	return float64(t) / ticksPerSecond
}

// FromSeconds converts a duration in seconds to the nearest FBXTick.
func FromSeconds(seconds float64) FBXTick {
	return FBXTick(math.Round(seconds * ticksPerSecond))
}

// CurveNodeMode classifies what an AnimationCurveNode drives on its
// owner, derived from matching the connection's `property` name
// against the canonical property names during connection resolution.
type CurveNodeMode int

const (
	ModeCustom CurveNodeMode = iota
	ModeTranslation
	ModeRotation
	ModeScaling
	ModeVisibility
	ModeFieldOfView
)

func curveNodeModeForProperty(name string) CurveNodeMode {
	switch name {
	case "Lcl Translation":
		return ModeTranslation
	case "Lcl Rotation":
		return ModeRotation
	case "Lcl Scaling":
		return ModeScaling
	case "Visibility":
		return ModeVisibility
	case "Field Of View", "FieldOfView":
		return ModeFieldOfView
	default:
		return ModeCustom
	}
}

// AnimationStackObject is one take: a loop range in FBX ticks and an
// ordered layer list (ordered by each layer's user-assigned LayerID).
type AnimationStackObject struct {
	Base
	LoopStart int64
	LoopStop  int64
	Layers    []ObjectID
}

func (s *AnimationStackObject) sortLayers(sc *Scene) {
	sort.SliceStable(s.Layers, func(i, j int) bool {
		li, _ := sc.AnimationLayer(s.Layers[i])
		lj, _ := sc.AnimationLayer(s.Layers[j])
		if li == nil || lj == nil {
			return false
		}
		return li.LayerID < lj.LayerID
	})
}

// AnimationLayerObject is an ordered list of curve-nodes plus sub-layer
// nesting and blend parameters; blending itself is left to consumers
// (the core only ever returns the base-layer sample, per the animation
// evaluator's design).
type AnimationLayerObject struct {
	Base

	LayerID       int64
	ParentLayerID ObjectID
	SubLayers     []ObjectID
	CurveNodes    []ObjectID
}

func declareAnimationLayerSlots(pl *PropertyList) {
	pl.Declare(&PropertySlot{Name: "LayerID", Kind: SlotInt})
	pl.Declare(&PropertySlot{Name: "BlendMode", Kind: SlotEnum, valEnum: "Additive"})
	pl.Declare(&PropertySlot{Name: "Weight", Kind: SlotDouble, valDouble: 100})
}

// AnimationCurveNodeObject binds up to three curves (x, y, z channels)
// to one named property on one owner, on one layer, with a
// next-in-stack link so a property's chain visits one curve-node per
// layer in attach order.
type AnimationCurveNodeObject struct {
	Base

	OwnerID      ObjectID
	PropertyName string
	LayerID      ObjectID
	Mode         CurveNodeMode

	CurveX, CurveY, CurveZ ObjectID
	NextInStack            ObjectID
}

// attachCurve binds the next free channel slot, in arrival order, per
// the connection resolver's "up to three" rule.
func (n *AnimationCurveNodeObject) attachCurve(curveID ObjectID) {
	switch {
	case n.CurveX == 0:
		n.CurveX = curveID
	case n.CurveY == 0:
		n.CurveY = curveID
	case n.CurveZ == 0:
		n.CurveZ = curveID
	}
}

// Evaluate samples all three channels at t, returning 0 for any
// channel with no attached curve.
func (n *AnimationCurveNodeObject) Evaluate(t int64) (x, y, z float64) {
	sc := n.scene()
	if curve, ok := sc.Curve(n.CurveX); ok {
		x = curve.Evaluate(t)
	}
	if curve, ok := sc.Curve(n.CurveY); ok {
		y = curve.Evaluate(t)
	}
	if curve, ok := sc.Curve(n.CurveZ); ok {
		z = curve.Evaluate(t)
	}
	return x, y, z
}

// AnimationCurveObject is parallel arrays of integer FBX ticks and
// float values, with single-entry memoization of the last evaluation.
type AnimationCurveObject struct {
	Base

	Times  []int64
	Values []float64
	Flags  []int32

	cacheValid bool
	cacheTime  int64
	cacheValue float64
}

// Evaluate linearly interpolates between the bracketing keyframes,
// clamping to the first/last value outside the curve's range, and
// memoizes the (t, result) pair so a repeated call with the same t is
// a cache hit.
func (c *AnimationCurveObject) Evaluate(t int64) float64 {
	if c.cacheValid && c.cacheTime == t {
		return c.cacheValue
	}
	v := c.evaluateUncached(t)
	c.cacheValid = true
	c.cacheTime = t
	c.cacheValue = v
	return v
}

func (c *AnimationCurveObject) evaluateUncached(t int64) float64 {
	if len(c.Times) == 0 {
		return 0
	}
	if t <= c.Times[0] {
		return c.Values[0]
	}
	last := len(c.Times) - 1
	if t >= c.Times[last] {
		return c.Values[last]
	}
	i := sort.Search(len(c.Times), func(i int) bool { return c.Times[i] >= t })
	if i <= 0 {
		return c.Values[0]
	}
	if c.Times[i] == t {
		return c.Values[i]
	}
	t0, t1 := c.Times[i-1], c.Times[i]
	v0, v1 := c.Values[i-1], c.Values[i]
	if t1 == t0 {
		return v0
	}
	alpha := float64(t-t0) / float64(t1-t0)
	return v0*(1-alpha) + v1*alpha
}

// PrepTakeConnections rebuilds every object's animatable-slot
// attachment chains for the take at stackIndex: it detaches all
// existing chains, then for each layer in stack order (by LayerID)
// attaches that layer's curve-nodes to their owners' matching slots,
// extending each slot's per-layer chain.
func (sc *Scene) PrepTakeConnections(stackIndex int) bool {
	if stackIndex < 0 || stackIndex >= len(sc.stackIDs) {
		return false
	}
	stack, ok := sc.AnimationStack(sc.stackIDs[stackIndex])
	if !ok {
		return false
	}
	stack.sortLayers(sc)

	for _, obj := range sc.objects {
		obj.Properties().detachAll()
	}

	for _, layerID := range stack.Layers {
		layer, ok := sc.AnimationLayer(layerID)
		if !ok {
			continue
		}
		for _, cnID := range layer.CurveNodes {
			cn, ok := sc.CurveNode(cnID)
			if !ok {
				continue
			}
			owner, ok := sc.Object(cn.OwnerID)
			if !ok {
				continue
			}
			cn.NextInStack = 0
			owner.Properties().attachCurveNode(sc, cn.PropertyName, cnID)
		}
	}
	return true
}
