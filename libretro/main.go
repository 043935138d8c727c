// Package libretro exposes a ZX Spectrum engine as a libretro core. An
// engine binding registers its factory from init and is built with
// -buildmode=c-shared.
package libretro

/*
#include "libretro.h"
#include "cfuncs.h"
*/
import "C"
import (
	"unsafe"

	zxcore "github.com/user-none/efuse/api"
	"github.com/user-none/efuse/core"
)

// Header ids for the devices and buttons the core routes. They must agree
// with the values in package core.
const (
	JoypadB      = C.RETRO_DEVICE_ID_JOYPAD_B
	JoypadY      = C.RETRO_DEVICE_ID_JOYPAD_Y
	JoypadSelect = C.RETRO_DEVICE_ID_JOYPAD_SELECT
	JoypadStart  = C.RETRO_DEVICE_ID_JOYPAD_START
	JoypadUp     = C.RETRO_DEVICE_ID_JOYPAD_UP
	JoypadDown   = C.RETRO_DEVICE_ID_JOYPAD_DOWN
	JoypadLeft   = C.RETRO_DEVICE_ID_JOYPAD_LEFT
	JoypadRight  = C.RETRO_DEVICE_ID_JOYPAD_RIGHT
	JoypadA      = C.RETRO_DEVICE_ID_JOYPAD_A

	DeviceJoypad   = C.RETRO_DEVICE_JOYPAD
	DeviceKeyboard = C.RETRO_DEVICE_KEYBOARD
	DeviceAnalog   = C.RETRO_DEVICE_ANALOG
)

var (
	factory zxcore.EngineFactory
	adapter *core.Core
	host    = newCHost()
	sysInfo zxcore.SystemInfo

	// Pre-allocated C strings (allocated once, kept for the process)
	libNameStr   *C.char
	libVerStr    *C.char
	validExtStr  *C.char
	stringsReady bool
)

// RegisterEngine sets the EngineFactory served by the core.
// Must be called during init() before any retro_* function runs.
func RegisterEngine(f zxcore.EngineFactory) {
	factory = f
	adapter = core.New(host, f)
	sysInfo = adapter.SystemInfo()
}

//export retro_set_environment
func retro_set_environment(cb C.retro_environment_t) {
	C._retro_set_environment(cb)

	noGame := C.bool(true)
	C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_SUPPORT_NO_GAME, unsafe.Pointer(&noGame))

	if adapter != nil {
		adapter.SetEnvironment()
	}
}

//export retro_set_video_refresh
func retro_set_video_refresh(cb C.retro_video_refresh_t) {
	C._retro_set_video_refresh(cb)
}

//export retro_set_audio_sample
func retro_set_audio_sample(cb C.retro_audio_sample_t) {
	C._retro_set_audio_sample(cb)
}

//export retro_set_audio_sample_batch
func retro_set_audio_sample_batch(cb C.retro_audio_sample_batch_t) {
	C._retro_set_audio_sample_batch(cb)
}

//export retro_set_input_poll
func retro_set_input_poll(cb C.retro_input_poll_t) {
	C._retro_set_input_poll(cb)
}

//export retro_set_input_state
func retro_set_input_state(cb C.retro_input_state_t) {
	C._retro_set_input_state(cb)
}

//export retro_init
func retro_init() {
	ensureStrings()
	if adapter != nil {
		adapter.Init()
	}
}

//export retro_deinit
func retro_deinit() {
	if adapter != nil {
		adapter.Deinit()
	}
}

//export retro_api_version
func retro_api_version() C.uint {
	return C.RETRO_API_VERSION
}

//export retro_get_system_info
func retro_get_system_info(info *C.struct_retro_system_info) {
	ensureStrings()
	info.library_name = libNameStr
	info.library_version = libVerStr
	info.valid_extensions = validExtStr
	info.need_fullpath = C.bool(sysInfo.NeedFullpath)
	info.block_extract = C.bool(false)
}

//export retro_get_system_av_info
func retro_get_system_av_info(info *C.struct_retro_system_av_info) {
	if adapter == nil {
		return
	}
	av := adapter.AVInfo()
	fillGeometry(&info.geometry, av.Geometry)
	info.timing.fps = C.double(av.FPS)
	info.timing.sample_rate = C.double(av.SampleRate)
}

//export retro_set_controller_port_device
func retro_set_controller_port_device(port C.uint, device C.uint) {
	if adapter != nil {
		adapter.SetControllerPortDevice(uint(port), uint(device))
	}
}

//export retro_reset
func retro_reset() {
	if adapter != nil {
		adapter.Reset()
	}
}

//export retro_run
func retro_run() {
	if adapter != nil {
		adapter.Run()
	}
}

//export retro_serialize_size
func retro_serialize_size() C.size_t {
	if adapter == nil {
		return 0
	}
	return C.size_t(adapter.SerializeSize())
}

//export retro_serialize
func retro_serialize(data unsafe.Pointer, size C.size_t) C.bool {
	if adapter == nil || data == nil {
		return C.bool(false)
	}
	dst := unsafe.Slice((*byte)(data), size)
	return C.bool(adapter.Serialize(dst) == nil)
}

//export retro_unserialize
func retro_unserialize(data unsafe.Pointer, size C.size_t) C.bool {
	if adapter == nil || data == nil {
		return C.bool(false)
	}

	state := make([]byte, size)
	copy(state, unsafe.Slice((*byte)(data), size))
	return C.bool(adapter.Unserialize(state) == nil)
}

//export retro_cheat_reset
func retro_cheat_reset() {
}

//export retro_cheat_set
func retro_cheat_set(index C.uint, enabled C.bool, code *C.char) {
}

//export retro_load_game
func retro_load_game(game *C.struct_retro_game_info) C.bool {
	if adapter == nil {
		return C.bool(false)
	}

	// No game boots into BASIC.
	var contentPath string
	if game != nil && game.path != nil {
		contentPath = C.GoString(game.path)
	}
	return C.bool(adapter.Load(contentPath) == nil)
}

//export retro_load_game_special
func retro_load_game_special(gameType C.uint, info *C.struct_retro_game_info, numInfo C.size_t) C.bool {
	return C.bool(false)
}

//export retro_unload_game
func retro_unload_game() {
	if adapter != nil {
		adapter.Unload()
	}
}

//export retro_get_region
func retro_get_region() C.uint {
	if adapter != nil && adapter.Region() == core.RegionPAL {
		return C.RETRO_REGION_PAL
	}
	return C.RETRO_REGION_NTSC
}

//export retro_get_memory_data
func retro_get_memory_data(id C.uint) unsafe.Pointer {
	return nil
}

//export retro_get_memory_size
func retro_get_memory_size(id C.uint) C.size_t {
	return 0
}

// ensureStrings allocates C strings for system info once.
func ensureStrings() {
	if stringsReady {
		return
	}
	libNameStr = C.CString(sysInfo.Name)
	libVerStr = C.CString(sysInfo.Version)
	validExtStr = C.CString(extensionList(sysInfo.Extensions))
	stringsReady = true
}

func fillGeometry(dst *C.struct_retro_game_geometry, g core.Geometry) {
	dst.base_width = C.uint(g.BaseWidth)
	dst.base_height = C.uint(g.BaseHeight)
	dst.max_width = C.uint(g.MaxWidth)
	dst.max_height = C.uint(g.MaxHeight)
	dst.aspect_ratio = C.float(g.AspectRatio)
}
