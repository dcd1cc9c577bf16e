// SPDX-License-Identifier: GPL-2.0-or-later

package gametime

import (
	"time"

	"skelview/math"
)

// Frame delta limits in seconds. A stalled frame must not teleport the
// camera.
const (
	minFrameTime = 0.0005
	maxFrameTime = 0.1
)

type GameTime struct {
	start      time.Time
	time       float64
	oldTime    float64
	frameTime  float64
	frameCount int
}

func New() *GameTime {
	return &GameTime{start: time.Now()}
}

func (h *GameTime) Time() float64      { return h.time }
func (h *GameTime) FrameTime() float64 { return h.frameTime }
func (h *GameTime) FrameCount() int    { return h.frameCount }

// UpdateTime starts a new frame.
func (h *GameTime) UpdateTime() {
	h.Advance(time.Since(h.start).Seconds())
}

// Advance moves the clock to now seconds since start.
func (h *GameTime) Advance(now float64) {
	h.time = now
	h.frameTime = math.Clamp(minFrameTime, h.time-h.oldTime, maxFrameTime)
	h.oldTime = h.time
	h.frameCount++
}
