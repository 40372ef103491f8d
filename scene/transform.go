package scene

import "github.com/go-gl/mathgl/mgl64"

const degToRad = 3.141592653589793 / 180

func axisMatrix(axis byte, angleRad float64) mgl64.Mat4 {
	switch axis {
	case 'X':
		return mgl64.HomogRotate3DX(angleRad)
	case 'Y':
		return mgl64.HomogRotate3DY(angleRad)
	default:
		return mgl64.HomogRotate3DZ(angleRad)
	}
}

// eulerOrderAxes returns, in application order (first axis rotates
// the point first), the three axis letters for a RotationOrder value.
func eulerOrderAxes(order int) [3]byte {
	switch order {
	case EulerXZY:
		return [3]byte{'X', 'Z', 'Y'}
	case EulerYZX:
		return [3]byte{'Y', 'Z', 'X'}
	case EulerYXZ:
		return [3]byte{'Y', 'X', 'Z'}
	case EulerZXY:
		return [3]byte{'Z', 'X', 'Y'}
	case EulerZYX:
		return [3]byte{'Z', 'Y', 'X'}
	default: // EulerXYZ and the SPHERIC_XYZ alias
		return [3]byte{'X', 'Y', 'Z'}
	}
}

// composeEuler builds the rotation matrix for `degrees` under the
// given order: axes are combined right-to-left in application order so
// the first-listed axis acts on the point first.
func composeEuler(order int, degrees mgl64.Vec3) mgl64.Mat4 {
	axes := eulerOrderAxes(order)
	angle := map[byte]float64{
		'X': degrees[0] * degToRad,
		'Y': degrees[1] * degToRad,
		'Z': degrees[2] * degToRad,
	}
	m := mgl64.Ident4()
	for i := 2; i >= 0; i-- {
		m = m.Mul4(axisMatrix(axes[i], angle[axes[i]]))
	}
	return m
}

var vec3Zero = mgl64.Vec3{0, 0, 0}

// evalAnimatableVec3 samples an animatable vec3 slot at time t: when a
// curve-node chain is attached, the base-layer (first) curve-node's
// per-channel evaluation wins outright (zero for any of its missing
// channels, per the animation evaluator's contract); otherwise the
// slot's static value is used.
func evalAnimatableVec3(sc *Scene, slot *PropertySlot, t int64) mgl64.Vec3 {
	if slot == nil {
		return vec3Zero
	}
	if slot.Animatable && slot.firstCurveNode != 0 {
		if cn, ok := sc.CurveNode(slot.firstCurveNode); ok {
			x, y, z := cn.Evaluate(t)
			return mgl64.Vec3{x, y, z}
		}
	}
	return slot.valVec3
}

// localTransformOf composes the ten-term FBX local transform, or the
// cheap T*R*S path when every pivot/offset is zero and RotationActive
// is false.
func localTransformOf(n Node, t int64) mgl64.Mat4 {
	sc := n.scene()
	pl := n.Properties()
	nd := n.NodeData()

	translation := evalAnimatableVec3(sc, pl.MustGet("Lcl Translation"), t)
	rotationDeg := evalAnimatableVec3(sc, pl.MustGet("Lcl Rotation"), t)
	scaling := evalAnimatableVec3(sc, pl.MustGet("Lcl Scaling"), t)

	rotOff := pl.MustGet("RotationOffset").Vec3()
	rotPiv := pl.MustGet("RotationPivot").Vec3()
	preRot := pl.MustGet("PreRotation").Vec3()
	postRot := pl.MustGet("PostRotation").Vec3()
	sclOff := pl.MustGet("ScalingOffset").Vec3()
	sclPiv := pl.MustGet("ScalingPivot").Vec3()

	if !nd.RotationActive &&
		rotOff == vec3Zero && rotPiv == vec3Zero &&
		preRot == vec3Zero && postRot == vec3Zero &&
		sclOff == vec3Zero && sclPiv == vec3Zero {
		T := mgl64.Translate3D(translation[0], translation[1], translation[2])
		R := composeEuler(nd.RotationOrder, rotationDeg)
		S := mgl64.Scale3D(scaling[0], scaling[1], scaling[2])
		return T.Mul4(R).Mul4(S)
	}

	R := composeEuler(nd.RotationOrder, rotationDeg)
	Rpre := mgl64.Ident4()
	RpostInv := mgl64.Ident4()
	if nd.RotationActive {
		Rpre = composeEuler(EulerXYZ, preRot)
		RpostInv = composeEuler(EulerZYX, postRot.Mul(-1))
	}

	T := mgl64.Translate3D(translation[0], translation[1], translation[2])
	Roff := mgl64.Translate3D(rotOff[0], rotOff[1], rotOff[2])
	Rp := mgl64.Translate3D(rotPiv[0], rotPiv[1], rotPiv[2])
	RpInv := mgl64.Translate3D(-rotPiv[0], -rotPiv[1], -rotPiv[2])
	Soff := mgl64.Translate3D(sclOff[0], sclOff[1], sclOff[2])
	Sp := mgl64.Translate3D(sclPiv[0], sclPiv[1], sclPiv[2])
	SpInv := mgl64.Translate3D(-sclPiv[0], -sclPiv[1], -sclPiv[2])
	S := mgl64.Scale3D(scaling[0], scaling[1], scaling[2])

	return T.Mul4(Roff).Mul4(Rp).Mul4(Rpre).Mul4(R).Mul4(RpostInv).Mul4(RpInv).Mul4(Soff).Mul4(Sp).Mul4(S).Mul4(SpInv)
}

// GlobalTransformOf returns n's local-to-world transform at time t,
// recursing up through parent nodes, with a one-slot cache keyed by t
// (any time change invalidates and recomputes).
func GlobalTransformOf(n Node, t int64) mgl64.Mat4 {
	nd := n.NodeData()
	if nd.cacheValid && nd.cacheTime == t {
		return nd.cacheGlobal
	}
	local := localTransformOf(n, t)

	var global mgl64.Mat4
	sc := n.scene()
	if parent, ok := sc.Node(nd.ParentID); ok && parent.ID() != n.ID() {
		global = GlobalTransformOf(parent, t).Mul4(local)
	} else {
		global = local
	}

	nd.cacheValid = true
	nd.cacheTime = t
	nd.cacheGlobal = global
	return global
}

// GlobalTranslation extracts world-space translation from columns
// 12-14 of the global matrix (mgl64.Mat4 is column-major, so these are
// simply indices 12, 13, 14 of the flat array).
func GlobalTranslation(n Node, t int64) mgl64.Vec3 {
	m := GlobalTransformOf(n, t)
	return mgl64.Vec3{m[12], m[13], m[14]}
}

// GlobalScale extracts world-space scale as the column norms of the
// global matrix. Sign recovery for negative scales is not attempted:
// this mirrors the source's own lossy column-norm behavior.
func GlobalScale(n Node, t int64) mgl64.Vec3 {
	m := GlobalTransformOf(n, t)
	col := func(i int) mgl64.Vec3 { return mgl64.Vec3{m[i], m[i+1], m[i+2]} }
	return mgl64.Vec3{col(0).Len(), col(4).Len(), col(8).Len()}
}

// ViewMatrix returns the inverse of c's global transform at time t:
// the matrix that carries world-space coordinates into camera space.
func (c *CameraObject) ViewMatrix(t int64) mgl64.Mat4 {
	return GlobalTransformOf(c, t).Inv()
}

// ProjectionMatrix builds a right-handed perspective projection from
// c's FieldOfView, aspect ratio, and near/far plane slots.
// FieldOfView is read as a static value rather than sampled through
// its curve-node chain: camera FOV animation is rare enough that the
// evaluator does not special-case a scalar animatable slot for it.
func (c *CameraObject) ProjectionMatrix(aspectRatio float64) mgl64.Mat4 {
	pl := c.Properties()
	fovRad := pl.MustGet("FieldOfView").Double() * degToRad
	near := pl.MustGet("NearPlane").Double()
	far := pl.MustGet("FarPlane").Double()
	return mgl64.Perspective(fovRad, aspectRatio, near, far)
}

// LocalRotationQuat returns n's local "Lcl Rotation" slot (sampled at t,
// honoring RotationOrder) as a quaternion rather than Euler degrees, for
// callers that need to interpolate or compare rotations without gimbal
// issues.
func LocalRotationQuat(n Node, t int64) mgl64.Quat {
	sc := n.scene()
	nd := n.NodeData()
	rotationDeg := evalAnimatableVec3(sc, n.Properties().MustGet("Lcl Rotation"), t)
	return mgl64.Mat4ToQuat(composeEuler(nd.RotationOrder, rotationDeg))
}
