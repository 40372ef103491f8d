package scene

import (
	"github.com/fbxgo/scene/internal/dlog"
	"github.com/go-gl/mathgl/mgl64"
)

// frameRateTable implements the TimeMode -> frame rate mapping; index
// 14 (custom) is represented by its literal table value (-2) and
// resolved against GlobalSettings.CustomFrameRate by FrameRate().
var frameRateTable = map[int]float64{
	0: 1, 1: 120, 2: 100, 3: 60, 4: 50, 5: 48, 6: 30, 7: 30,
	8: 29.9700262, 9: 29.9700262, 10: 25, 11: 24, 12: 1000, 13: 23.976, 14: -2,
}

// GlobalSettings mirrors the file's root-level GlobalSettings element:
// scene-wide defaults not owned by any single object.
type GlobalSettings struct {
	UpAxis                  int
	UpAxisSign              int
	FrontAxis               int
	FrontAxisSign           int
	CoordAxis               int
	CoordAxisSign           int
	UnitScaleFactor         float64
	OriginalUnitScaleFactor float64
	AmbientColor            mgl64.Vec3
	TimeMode                int
	CustomFrameRate         float64
}

func parseGlobalSettings(root *Element) GlobalSettings {
	gs := GlobalSettings{UnitScaleFactor: 1, OriginalUnitScaleFactor: 1, CustomFrameRate: -1}
	el := root.Child("GlobalSettings")
	if el == nil {
		return gs
	}
	for _, p := range properties70Entries(el) {
		name, values := propertyEntry(p)
		if len(values) == 0 {
			continue
		}
		switch name {
		case "UpAxis":
			gs.UpAxis = int(values[0].ToInt64())
		case "UpAxisSign":
			gs.UpAxisSign = int(values[0].ToInt64())
		case "FrontAxis":
			gs.FrontAxis = int(values[0].ToInt64())
		case "FrontAxisSign":
			gs.FrontAxisSign = int(values[0].ToInt64())
		case "CoordAxis":
			gs.CoordAxis = int(values[0].ToInt64())
		case "CoordAxisSign":
			gs.CoordAxisSign = int(values[0].ToInt64())
		case "UnitScaleFactor":
			gs.UnitScaleFactor = values[0].ToFloat64()
		case "OriginalUnitScaleFactor":
			gs.OriginalUnitScaleFactor = values[0].ToFloat64()
		case "AmbientColor":
			if len(values) >= 3 {
				gs.AmbientColor = mgl64.Vec3{values[0].ToFloat64(), values[1].ToFloat64(), values[2].ToFloat64()}
			}
		case "TimeMode":
			gs.TimeMode = int(values[0].ToInt64())
		case "CustomFrameRate":
			gs.CustomFrameRate = values[0].ToFloat64()
		}
	}
	return gs
}

// FrameRate resolves GlobalSettings.TimeMode through frameRateTable,
// substituting CustomFrameRate for the custom sentinel (mode 14).
func (gs GlobalSettings) FrameRate() float64 {
	if gs.TimeMode == 14 {
		return gs.CustomFrameRate
	}
	if rate, ok := frameRateTable[gs.TimeMode]; ok {
		return rate
	}
	return -1
}

// TakeInfoRecord is a legacy (pre-FBX-2010) Take record: modern files
// carry this same information as AnimationStack objects instead, but
// the legacy Takes block is still parsed for older exporters.
type TakeInfoRecord struct {
	Name                         string
	FileName                     string
	LocalTimeStart, LocalTimeStop     int64
	ReferenceTimeStart, ReferenceTimeStop int64
}

func parseTakeInfos(root *Element) []TakeInfoRecord {
	takesEl := root.Child("Takes")
	if takesEl == nil {
		return nil
	}
	var out []TakeInfoRecord
	for _, t := range takesEl.ChildrenNamed("Take") {
		rec := TakeInfoRecord{}
		if len(t.Properties) > 0 {
			rec.Name = t.Properties[0].ToString()
		}
		if fn := t.Child("FileName"); fn != nil && len(fn.Properties) > 0 {
			rec.FileName = fn.Properties[0].ToString()
		}
		if lt := t.Child("LocalTime"); lt != nil && len(lt.Properties) >= 2 {
			rec.LocalTimeStart = lt.Properties[0].ToInt64()
			rec.LocalTimeStop = lt.Properties[1].ToInt64()
		}
		if rt := t.Child("ReferenceTime"); rt != nil && len(rt.Properties) >= 2 {
			rec.ReferenceTimeStart = rt.Properties[0].ToInt64()
			rec.ReferenceTimeStop = rt.Properties[1].ToInt64()
		}
		out = append(out, rec)
	}
	return out
}

// EvalInfo is the per-scene evaluation context (current time, playing
// flag), kept scene-scoped rather than as a process-wide global. The
// transform and animation evaluators in this package always take an
// explicit time; none of them reads EvalInfo.
type EvalInfo struct {
	CurrentTime int64
	Playing     bool
}

// Scene owns every tokenized element, every typed object, and the
// input buffer (property string/raw views may reference into it).
type Scene struct {
	root    *Element
	buf     []byte
	Version int32
	IsBinary bool

	objects map[ObjectID]Object
	order   []ObjectID

	meshIDs       []ObjectID
	materialIDs   []ObjectID
	lightIDs      []ObjectID
	cameraIDs     []ObjectID
	stackIDs      []ObjectID
	skinIDs       []ObjectID
	constraintIDs []ObjectID

	GlobalSettings GlobalSettings
	TakeInfos      []TakeInfoRecord
	EvalInfo       EvalInfo

	// FrameRateOverrides is an optional TimeMode->rate table loaded via
	// WithConfigFile, consulted by FrameRate before frameRateTable.
	FrameRateOverrides map[int]float64

	logger *dlog.Logger
}

func (sc *Scene) Object(id ObjectID) (Object, bool) {
	o, ok := sc.objects[id]
	return o, ok
}

func (sc *Scene) Node(id ObjectID) (Node, bool) {
	o, ok := sc.objects[id]
	if !ok {
		return nil, false
	}
	n, ok := o.(Node)
	return n, ok
}

func (sc *Scene) Geometry(id ObjectID) (*GeometryObject, bool) {
	o, ok := sc.objects[id]
	if !ok {
		return nil, false
	}
	g, ok := o.(*GeometryObject)
	return g, ok
}

func (sc *Scene) Material(id ObjectID) (*MaterialObject, bool) {
	o, ok := sc.objects[id]
	if !ok {
		return nil, false
	}
	m, ok := o.(*MaterialObject)
	return m, ok
}

func (sc *Scene) Texture(id ObjectID) (*TextureObject, bool) {
	o, ok := sc.objects[id]
	if !ok {
		return nil, false
	}
	t, ok := o.(*TextureObject)
	return t, ok
}

func (sc *Scene) Skin(id ObjectID) (*SkinObject, bool) {
	o, ok := sc.objects[id]
	if !ok {
		return nil, false
	}
	s, ok := o.(*SkinObject)
	return s, ok
}

func (sc *Scene) Cluster(id ObjectID) (*ClusterObject, bool) {
	o, ok := sc.objects[id]
	if !ok {
		return nil, false
	}
	c, ok := o.(*ClusterObject)
	return c, ok
}

func (sc *Scene) AnimationStack(id ObjectID) (*AnimationStackObject, bool) {
	o, ok := sc.objects[id]
	if !ok {
		return nil, false
	}
	s, ok := o.(*AnimationStackObject)
	return s, ok
}

func (sc *Scene) AnimationLayer(id ObjectID) (*AnimationLayerObject, bool) {
	o, ok := sc.objects[id]
	if !ok {
		return nil, false
	}
	l, ok := o.(*AnimationLayerObject)
	return l, ok
}

func (sc *Scene) CurveNode(id ObjectID) (*AnimationCurveNodeObject, bool) {
	o, ok := sc.objects[id]
	if !ok {
		return nil, false
	}
	n, ok := o.(*AnimationCurveNodeObject)
	return n, ok
}

func (sc *Scene) Curve(id ObjectID) (*AnimationCurveObject, bool) {
	o, ok := sc.objects[id]
	if !ok {
		return nil, false
	}
	c, ok := o.(*AnimationCurveObject)
	return c, ok
}

// AllObjects returns every object (including the synthetic root), in
// factory order.
func (sc *Scene) AllObjects() []Object {
	out := make([]Object, 0, len(sc.order))
	for _, id := range sc.order {
		out = append(out, sc.objects[id])
	}
	return out
}

func (sc *Scene) AllObjectCount() int { return len(sc.order) }

func (sc *Scene) MeshCount() int { return len(sc.meshIDs) }
func (sc *Scene) MeshAt(i int) *MeshObject {
	m, _ := sc.Object(sc.meshIDs[i])
	if mesh, ok := m.(*MeshObject); ok {
		return mesh
	}
	return nil
}

func (sc *Scene) MaterialCount() int { return len(sc.materialIDs) }
func (sc *Scene) MaterialAt(i int) *MaterialObject {
	mat, _ := sc.Material(sc.materialIDs[i])
	return mat
}

func (sc *Scene) LightCount() int { return len(sc.lightIDs) }
func (sc *Scene) LightAt(i int) *LightObject {
	o, _ := sc.Object(sc.lightIDs[i])
	if l, ok := o.(*LightObject); ok {
		return l
	}
	return nil
}

func (sc *Scene) CameraCount() int { return len(sc.cameraIDs) }
func (sc *Scene) CameraAt(i int) *CameraObject {
	o, _ := sc.Object(sc.cameraIDs[i])
	if c, ok := o.(*CameraObject); ok {
		return c
	}
	return nil
}

func (sc *Scene) AnimationStackCount() int { return len(sc.stackIDs) }
func (sc *Scene) AnimationStackAt(i int) *AnimationStackObject {
	s, _ := sc.AnimationStack(sc.stackIDs[i])
	return s
}

// Root returns the synthetic scene-root node (id 0).
func (sc *Scene) Root() Node {
	n, _ := sc.Node(RootObjectID)
	return n
}

func (sc *Scene) RootElement() *Element { return sc.root }

// FrameRate resolves the scene's effective frame rate: an embedding
// application's config-file override for this TimeMode takes
// precedence over the format's built-in table.
func (sc *Scene) FrameRate() float64 {
	if rate, ok := sc.FrameRateOverrides[sc.GlobalSettings.TimeMode]; ok {
		return rate
	}
	return sc.GlobalSettings.FrameRate()
}

func (sc *Scene) TakeInfoByName(name string) (TakeInfoRecord, bool) {
	for _, t := range sc.TakeInfos {
		if t.Name == name {
			return t, true
		}
	}
	return TakeInfoRecord{}, false
}

// FindObjectByName performs the facade's one documented O(n) lookup:
// a linear scan over all objects by name.
func (sc *Scene) FindObjectByName(name string) (Object, bool) {
	for _, id := range sc.order {
		if o := sc.objects[id]; o.Name() == name {
			return o, true
		}
	}
	return nil, false
}
