package scene

import "github.com/go-gl/mathgl/mgl64"

// MaterialObject is a fixed palette of color/factor slots plus two
// texture attachment slots, matching the FBX "Material" object's
// closed (not user-extensible) property set.
type MaterialObject struct {
	Base

	DiffuseTextureID ObjectID
	NormalTextureID  ObjectID
}

func declareMaterialSlots(pl *PropertyList) {
	pl.Declare(&PropertySlot{Name: "AmbientColor", Kind: SlotColor})
	pl.Declare(&PropertySlot{Name: "DiffuseColor", Kind: SlotColor, valVec3: mgl64.Vec3{0.8, 0.8, 0.8}})
	pl.Declare(&PropertySlot{Name: "EmissiveColor", Kind: SlotColor})
	pl.Declare(&PropertySlot{Name: "SpecularColor", Kind: SlotColor})
	pl.Declare(&PropertySlot{Name: "TransparentColor", Kind: SlotColor})
	pl.Declare(&PropertySlot{Name: "Bump", Kind: SlotVec3})
	pl.Declare(&PropertySlot{Name: "NormalMap", Kind: SlotVec3})
	pl.Declare(&PropertySlot{Name: "ReflectionColor", Kind: SlotColor})
	pl.Declare(&PropertySlot{Name: "DisplacementColor", Kind: SlotColor})

	pl.Declare(&PropertySlot{Name: "AmbientFactor", Kind: SlotDouble})
	pl.Declare(&PropertySlot{Name: "DiffuseFactor", Kind: SlotDouble, valDouble: 1})
	pl.Declare(&PropertySlot{Name: "EmissiveFactor", Kind: SlotDouble})
	pl.Declare(&PropertySlot{Name: "SpecularFactor", Kind: SlotDouble})
	pl.Declare(&PropertySlot{Name: "TransparencyFactor", Kind: SlotDouble})
	pl.Declare(&PropertySlot{Name: "ReflectionFactor", Kind: SlotDouble})
	pl.Declare(&PropertySlot{Name: "DisplacementFactor", Kind: SlotDouble})
	pl.Declare(&PropertySlot{Name: "Shininess", Kind: SlotDouble, valDouble: 20})
}

// TextureObject carries the filename data views a Material or layered
// texture stack points at.
type TextureObject struct {
	Base
	FileName         string
	RelativeFileName string
}
