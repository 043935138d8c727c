package core

import (
	"strconv"

	zxcore "github.com/user-none/efuse/api"
)

// Option keys.
const (
	OptionHideBorder  = "fuse_hide_border"
	OptionFastLoad    = "fuse_fast_load"
	OptionLoadSound   = "fuse_load_sound"
	OptionSpeakerType = "fuse_speaker_type"
	OptionStereoAY    = "fuse_ay_stereo_separation"
	OptionTransparent = "fuse_key_ovrlay_transp"
	OptionHoldTime    = "fuse_key_hold_time"
)

// Variables are the core options registered with the host.
var Variables = []Variable{
	{OptionHideBorder, "Hide Video Border; disabled|enabled"},
	{OptionFastLoad, "Tape Fast Load; enabled|disabled"},
	{OptionLoadSound, "Tape Load Sound; enabled|disabled"},
	{OptionSpeakerType, "Speaker Type; tv speaker|beeper|unfiltered"},
	{OptionStereoAY, "AY Stereo Separation; none|acb|abc"},
	{OptionTransparent, "Transparent Keyboard Overlay; enabled|disabled"},
	{OptionHoldTime, "Time to Release Key in ms; 500|1000|100|300"},
}

// choice maps an option value to what the engine expects.
type choice struct {
	value string
	name  string
}

var speakerChoices = []choice{
	{"tv speaker", string(zxcore.SpeakerTV)},
	{"beeper", string(zxcore.SpeakerBeeper)},
	{"unfiltered", string(zxcore.SpeakerUnfiltered)},
}

var stereoChoices = []choice{
	{"none", string(zxcore.StereoNone)},
	{"acb", string(zxcore.StereoACB)},
	{"abc", string(zxcore.StereoABC)},
}

var holdTimes = []int64{500, 1000, 100, 300}

// options are the resolved option values.
type options struct {
	hideBorder  bool
	fastLoad    bool
	loadSound   bool
	speaker     string
	stereo      string
	transparent bool
	holdMs      int64
}

func defaultOptions() options {
	return options{
		fastLoad:    true,
		loadSound:   true,
		speaker:     speakerChoices[0].name,
		stereo:      stereoChoices[0].name,
		transparent: true,
		holdMs:      holdTimes[0],
	}
}

// readOptions resolves every option from the host. Values the host does not
// report, or reports with an unknown value, keep their previous setting.
func (c *Core) readOptions() {
	o := &c.opts
	c.updateBool(OptionHideBorder, &o.hideBorder)
	c.updateBool(OptionFastLoad, &o.fastLoad)
	c.updateBool(OptionLoadSound, &o.loadSound)
	c.updateChoice(OptionSpeakerType, &o.speaker, speakerChoices)
	c.updateChoice(OptionStereoAY, &o.stereo, stereoChoices)
	c.updateBool(OptionTransparent, &o.transparent)
	c.updateLong(OptionHoldTime, &o.holdMs, holdTimes)
}

// applyOptions pushes the resolved options into the geometry, the overlay
// and the engine settings.
func (c *Core) applyOptions() {
	c.geom.set(c.opts.hideBorder)
	c.log.Logf(zxcore.LogInfo, "Soft resolution set to %dx%d", c.geom.softWidth, c.geom.softHeight)

	c.settings.AccelerateLoad = c.opts.fastLoad
	c.settings.FastLoad = c.opts.fastLoad
	c.settings.LoadSound = c.opts.loadSound
	c.settings.SpeakerType = zxcore.SpeakerType(c.opts.speaker)
	c.settings.StereoAY = zxcore.StereoAY(c.opts.stereo)

	c.input.overlay.transparent = c.opts.transparent
	c.input.overlay.holdMicros = c.opts.holdMs * 1000

	if c.engine != nil {
		c.engine.Apply(c.settings)
	}
}

func (c *Core) updateVariables() {
	c.readOptions()
	c.applyOptions()
}

func (c *Core) updateBool(key string, dst *bool) {
	if v, ok := c.host.Variable(key); ok {
		switch v {
		case "enabled":
			*dst = true
		case "disabled":
			*dst = false
		default:
			c.log.Logf(zxcore.LogError, "Invalid value for %s: %s", key, v)
		}
	}
	c.log.Logf(zxcore.LogInfo, "%s set to %t", key, *dst)
}

func (c *Core) updateChoice(key string, dst *string, choices []choice) {
	if v, ok := c.host.Variable(key); ok {
		found := false
		for _, ch := range choices {
			if v == ch.value {
				*dst = ch.name
				found = true
				break
			}
		}
		if !found {
			c.log.Logf(zxcore.LogError, "Invalid value for %s: %q", key, v)
		}
	}
	c.log.Logf(zxcore.LogInfo, "%s set to %q", key, *dst)
}

func (c *Core) updateLong(key string, dst *int64, values []int64) {
	if v, ok := c.host.Variable(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		found := false
		if err == nil {
			for _, allowed := range values {
				if n == allowed {
					*dst = n
					found = true
					break
				}
			}
		}
		if !found {
			c.log.Logf(zxcore.LogError, "Invalid value for %s: %s", key, v)
		}
	}
	c.log.Logf(zxcore.LogInfo, "%s set to %d", key, *dst)
}
