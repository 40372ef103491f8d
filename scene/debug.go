package scene

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

var dumpConfig *spew.ConfigState

func init() {
	dumpConfig = spew.NewDefaultConfig()
	dumpConfig.DisableCapacities = true
	dumpConfig.DisableMethods = true
}

// DumpElement returns a human-readable structural dump of an Element
// subtree, for diagnosing tokenizer output without reaching for a
// debugger.
func DumpElement(e *Element) string {
	return dumpConfig.Sdump(e)
}

// DumpObject returns a structural dump of a single scene object,
// including its declared property slots.
func DumpObject(o Object) string {
	if o == nil {
		return "<nil object>"
	}
	return fmt.Sprintf("%s %q (id=%d)\n%s", o.Kind(), o.Name(), int64(o.ID()), dumpConfig.Sdump(o))
}

// DumpScene writes a one-line summary of every object in the scene,
// in factory order.
func DumpScene(sc *Scene) string {
	out := fmt.Sprintf("scene: version=%d binary=%v objects=%d\n", sc.Version, sc.IsBinary, sc.AllObjectCount())
	for _, o := range sc.AllObjects() {
		out += fmt.Sprintf("  [%d] %s %q\n", int64(o.ID()), o.Kind(), o.Name())
	}
	return out
}
