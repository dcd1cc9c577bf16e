// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"skelview/conlog"
	"skelview/cvar"
)

var (
	BoneLinkScale  *cvar.Cvar
	BoneNodeSize   *cvar.Cvar
	CamFar         *cvar.Cvar
	CamFov         *cvar.Cvar
	CamNear        *cvar.Cvar
	CamSensitivity *cvar.Cvar
	CamSpeed       *cvar.Cvar
	Developer      *cvar.Cvar
	MeshKeepFrames *cvar.Cvar
	ModelAlpha     *cvar.Cvar
	ModelNormalize *cvar.Cvar
	VideoHeight    *cvar.Cvar
	VideoVSync     *cvar.Cvar
	VideoWidth     *cvar.Cvar
)

func init() {
	BoneLinkScale = cvar.MustRegister("bone_link_scale", "1", cvar.ARCHIVE)
	BoneNodeSize = cvar.MustRegister("bone_node_size", "0.015", cvar.ARCHIVE)
	CamFar = cvar.MustRegister("cam_far", "100", cvar.ARCHIVE)
	CamFov = cvar.MustRegister("cam_fov", "45", cvar.ARCHIVE)
	CamNear = cvar.MustRegister("cam_near", "0.001", cvar.ARCHIVE)
	CamSensitivity = cvar.MustRegister("cam_sensitivity", "0.1", cvar.ARCHIVE)
	CamSpeed = cvar.MustRegister("cam_speed", "0.5", cvar.ARCHIVE)
	Developer = cvar.MustRegister("developer", "0", cvar.NONE)
	MeshKeepFrames = cvar.MustRegister("mesh_keepframes", "300", cvar.ARCHIVE)
	ModelAlpha = cvar.MustRegister("model_alpha", "0.3", cvar.ARCHIVE)
	ModelNormalize = cvar.MustRegister("model_normalize", "1", cvar.ARCHIVE)
	VideoHeight = cvar.MustRegister("vid_height", "900", cvar.ARCHIVE)
	VideoVSync = cvar.MustRegister("vid_vsync", "1", cvar.ARCHIVE)
	VideoWidth = cvar.MustRegister("vid_width", "1200", cvar.ARCHIVE)

	Developer.SetCallback(func(cv *cvar.Cvar) {
		conlog.SetDebug(cv.Bool())
	})
}
