package scene

import (
	"github.com/fbxgo/scene/config"
	"github.com/fbxgo/scene/internal/dlog"
)

type loadConfig struct {
	logger             *dlog.Logger
	charmap            string
	initialTime        int64
	frameRateOverrides map[int]float64
	configErr          error
}

// LoadOption configures a Load call beyond the required byte buffer.
type LoadOption func(*loadConfig)

// WithLogger routes tokenizer-fallback diagnostics to l instead of
// discarding them. Tolerated mismatches are not logged.
func WithLogger(l *dlog.Logger) LoadOption {
	return func(c *loadConfig) { c.logger = l }
}

// WithCharmap selects the legacy 8-bit codepage used to decode string
// properties (default Windows-1252). This is a process-wide setting
// (see config.SetEncoding) — safe under this package's single-threaded-load
// contract, not under concurrent loads with different codepages.
func WithCharmap(name string) LoadOption {
	return func(c *loadConfig) { c.charmap = name }
}

// WithInitialTime seeds the scene's EvalInfo.CurrentTime (in FBX
// ticks) used as the default evaluation time by callers that omit an
// explicit one.
func WithInitialTime(ticks int64) LoadOption {
	return func(c *loadConfig) { c.initialTime = ticks }
}

// WithConfigFile loads an embedding application's YAML config (see
// config.LoadFile) and applies it to this load: its encoding (if set)
// replaces the charmap chosen by any earlier WithCharmap option (a
// WithCharmap placed after it wins), and its custom_frame_rates table is consulted
// by Scene.FrameRate ahead of the format's built-in TimeMode table. A
// read or parse failure is deferred and surfaced as Load's error.
func WithConfigFile(path string) LoadOption {
	return func(c *loadConfig) {
		f, err := config.LoadFile(path)
		if err != nil {
			c.configErr = err
			return
		}
		if f.Encoding != "" {
			c.charmap = f.Encoding
		}
		c.frameRateOverrides = f.CustomFrameRate
	}
}

// Load tokenizes, assembles, and resolves a complete FBX scene from a
// contiguous byte buffer. Binary tokenization is tried first; if the
// buffer isn't binary FBX (or binary tokenization fails partway
// through), the text tokenizer is retried before giving up.
func Load(data []byte, opts ...LoadOption) (sc *Scene, err error) {
	cfg := loadConfig{logger: dlog.Discard}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.configErr != nil {
		return nil, wrapErrorf(ErrFormat, cfg.configErr, "applying config file option")
	}
	if cfg.charmap != "" {
		if cerr := config.SetEncoding(cfg.charmap); cerr != nil {
			return nil, wrapErrorf(ErrFormat, cerr, "applying charmap option %q", cfg.charmap)
		}
	}

	root, version, isBinary, binErr := tokenizeBinary(data)
	if root == nil {
		textRoot, textErr := tokenizeText(data)
		if textErr != nil {
			if binErr != nil {
				cfg.logger.Errorf("binary tokenize failed: %v; text fallback failed: %v", binErr, textErr)
				return nil, wrapErrorf(ErrFormat, binErr, "binary parse failed and text fallback also failed: %v", textErr)
			}
			return nil, textErr
		}
		cfg.logger.Infof("binary tokenizer declined, parsed as text FBX")
		root = textRoot
		isBinary = false
	} else if binErr != nil {
		return nil, binErr
	}

	objects, order, ferr := parseObjects(root)
	if ferr != nil {
		return nil, ferr
	}

	sc = &Scene{
		root:     root,
		buf:      data,
		Version:  version,
		IsBinary: isBinary,
		objects:  objects,
		order:    order,
		logger:   cfg.logger,
	}
	sc.EvalInfo.CurrentTime = cfg.initialTime
	sc.GlobalSettings = parseGlobalSettings(root)
	sc.TakeInfos = parseTakeInfos(root)
	sc.FrameRateOverrides = cfg.frameRateOverrides

	for _, id := range order {
		obj := objects[id]
		if setter, ok := obj.(interface{ setScene(*Scene) }); ok {
			setter.setScene(sc)
		}
	}

	for _, id := range order {
		obj := objects[id]
		if obj.Element() != nil {
			retrieveProperties(obj.Properties(), obj.Element())
		}
		if node, ok := obj.(Node); ok {
			retrieveNodeData(node.NodeData(), node.Properties())
		}
		switch o := obj.(type) {
		case *MeshObject:
			sc.meshIDs = append(sc.meshIDs, o.ID())
		case *MaterialObject:
			sc.materialIDs = append(sc.materialIDs, o.ID())
		case *LightObject:
			sc.lightIDs = append(sc.lightIDs, o.ID())
		case *CameraObject:
			sc.cameraIDs = append(sc.cameraIDs, o.ID())
		case *AnimationStackObject:
			sc.stackIDs = append(sc.stackIDs, o.ID())
		case *SkinObject:
			sc.skinIDs = append(sc.skinIDs, o.ID())
		case *AnimationLayerObject:
			o.LayerID = o.Properties().MustGet("LayerID").Int()
		}
	}

	edges := parseConnections(root)
	if err := resolveConnections(sc, edges); err != nil {
		return nil, err
	}

	clusterPostProcess(sc)

	for _, id := range sc.stackIDs {
		stack, _ := sc.AnimationStack(id)
		if stack != nil {
			stack.sortLayers(sc)
		}
	}

	return sc, nil
}
