package core

import zxcore "github.com/user-none/efuse/api"

// soundSink forwards engine audio to the host and notes that the current
// frame produced some.
type soundSink struct {
	c *Core
}

func (s soundSink) Frame(samples []int16) {
	s.c.host.AudioSampleBatch(samples)
	s.c.someAudio = true
}

// Run emulates one host frame.
//
// While a tape plays with fast loading on, emulation continues until the
// tape stops. Otherwise it runs until the engine has delivered audio, so
// every call feeds the host's audio clock even when the engine only emits
// sound every other frame.
func (c *Core) Run() {
	if c.engine == nil {
		return
	}

	if c.host.VariablesUpdated() {
		c.updateVariables()
	}

	c.video.frameDone = false
	c.someAudio = false

	if c.settings.FastLoad && c.engine.TapePlaying() {
		for c.engine.TapePlaying() {
			c.step()
		}
	} else {
		for !c.someAudio {
			c.step()
		}
	}

	c.render()
}

func (c *Core) step() {
	c.host.InputPoll()
	c.poll()
	c.engine.Step()
	c.engine.ProcessEvents()
}

// render reports any geometry change and presents the frame.
func (c *Core) render() {
	if c.geom.dirty {
		g := c.geom.host()
		c.host.SetGeometry(g)
		c.geom.dirty = false
		c.geom.reported = true
		c.log.Logf(zxcore.LogInfo, "Set geometry to %dx%d (max %dx%d)", g.BaseWidth, g.BaseHeight, g.MaxWidth, g.MaxHeight)
	}

	w, h := c.geom.softWidth, c.geom.softHeight
	pitch := hardWidth * 2

	if !c.video.frameDone {
		c.host.VideoRefresh(nil, w, h, pitch)
		return
	}

	frame := c.video.primary
	if o := c.input.overlay; o.visible {
		c.video.composeOverlay(o.transparent, o.cursorX, o.cursorY)
		frame = c.video.secondary
	}
	c.host.VideoRefresh(frame[c.geom.pixelOffset:], w, h, pitch)
}
