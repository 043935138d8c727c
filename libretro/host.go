package libretro

/*
#include <stdlib.h>
#include "libretro.h"
#include "cfuncs.h"
*/
import "C"
import (
	"slices"
	"unsafe"

	zxcore "github.com/user-none/efuse/api"
	"github.com/user-none/efuse/core"
)

// cHost implements core.Host over the frontend callbacks. Tables handed to
// the frontend live in C memory and are kept for the life of the process.
type cHost struct {
	strs map[string]*C.char

	vars    *C.struct_retro_variable
	ports   *C.struct_retro_controller_info
	descs   *C.struct_retro_input_descriptor
	descsGo []core.InputDescriptor
}

func newCHost() *cHost {
	return &cHost{strs: make(map[string]*C.char)}
}

// cstr interns s as a C string.
func (h *cHost) cstr(s string) *C.char {
	if p, ok := h.strs[s]; ok {
		return p
	}
	p := C.CString(s)
	h.strs[s] = p
	return p
}

// cLogger forwards to the frontend log interface.
type cLogger struct{}

func (cLogger) Logf(level zxcore.LogLevel, format string, args ...any) {
	msg := C.CString(formatLog(format, args...))
	C.call_log_cb(C.int(retroLogLevel(level)), msg)
	C.free(unsafe.Pointer(msg))
}

func (h *cHost) Logger() zxcore.Logger {
	if !bool(C.fetch_log_interface()) {
		return nil
	}
	return cLogger{}
}

func (h *cHost) Clock() core.Clock {
	if !bool(C.fetch_perf_interface()) {
		return nil
	}
	return func() int64 {
		return int64(C.call_get_time_usec())
	}
}

func (h *cHost) SetPixelFormatRGB565() bool {
	var pixelFormat C.int = C.RETRO_PIXEL_FORMAT_RGB565
	return bool(C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_PIXEL_FORMAT, unsafe.Pointer(&pixelFormat)))
}

func (h *cHost) SetVariables(vars []core.Variable) {
	if h.vars == nil {
		h.vars = (*C.struct_retro_variable)(C.calloc(C.size_t(len(vars)+1), C.size_t(unsafe.Sizeof(C.struct_retro_variable{}))))
		table := unsafe.Slice(h.vars, len(vars)+1)
		for i, v := range vars {
			table[i].key = h.cstr(v.Key)
			table[i].value = h.cstr(v.Value)
		}
	}
	C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_VARIABLES, unsafe.Pointer(h.vars))
}

func (h *cHost) Variable(key string) (string, bool) {
	var v C.struct_retro_variable
	v.key = h.cstr(key)
	if !bool(C.call_environ_cb(C.RETRO_ENVIRONMENT_GET_VARIABLE, unsafe.Pointer(&v))) || v.value == nil {
		return "", false
	}
	return C.GoString(v.value), true
}

func (h *cHost) VariablesUpdated() bool {
	var updated C.bool
	if !bool(C.call_environ_cb(C.RETRO_ENVIRONMENT_GET_VARIABLE_UPDATE, unsafe.Pointer(&updated))) {
		return false
	}
	return bool(updated)
}

func (h *cHost) SetInputDescriptors(descs []core.InputDescriptor) {
	if h.descs == nil || !slices.Equal(h.descsGo, descs) {
		if h.descs != nil {
			C.free(unsafe.Pointer(h.descs))
		}
		h.descs = (*C.struct_retro_input_descriptor)(C.calloc(C.size_t(len(descs)+1), C.size_t(unsafe.Sizeof(C.struct_retro_input_descriptor{}))))
		table := unsafe.Slice(h.descs, len(descs)+1)
		for i, d := range descs {
			table[i].port = C.uint(d.Port)
			table[i].device = C.uint(d.Device)
			table[i].index = C.uint(d.Index)
			table[i].id = C.uint(d.ID)
			table[i].description = h.cstr(d.Description)
		}
		h.descsGo = slices.Clone(descs)
	}
	C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_INPUT_DESCRIPTORS, unsafe.Pointer(h.descs))
}

func (h *cHost) SetControllerInfo(ports []core.ControllerInfo) {
	if h.ports == nil {
		h.ports = (*C.struct_retro_controller_info)(C.calloc(C.size_t(len(ports)+1), C.size_t(unsafe.Sizeof(C.struct_retro_controller_info{}))))
		table := unsafe.Slice(h.ports, len(ports)+1)
		for i, p := range ports {
			types := (*C.struct_retro_controller_description)(C.calloc(C.size_t(len(p.Types)), C.size_t(unsafe.Sizeof(C.struct_retro_controller_description{}))))
			for j, t := range p.Types {
				d := (*C.struct_retro_controller_description)(unsafe.Add(unsafe.Pointer(types), j*int(unsafe.Sizeof(*types))))
				d.desc = h.cstr(t.Name)
				d.id = C.uint(t.ID)
			}
			table[i].types = types
			table[i].num_types = C.uint(len(p.Types))
		}
	}
	C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_CONTROLLER_INFO, unsafe.Pointer(h.ports))
}

func (h *cHost) SystemDirectory() (string, bool) {
	var dir *C.char
	if !bool(C.call_environ_cb(C.RETRO_ENVIRONMENT_GET_SYSTEM_DIRECTORY, unsafe.Pointer(&dir))) || dir == nil {
		return "", false
	}
	return C.GoString(dir), true
}

func (h *cHost) SetGeometry(g core.Geometry) {
	var geom C.struct_retro_game_geometry
	fillGeometry(&geom, g)
	C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_GEOMETRY, unsafe.Pointer(&geom))
}

// VideoRefresh passes a nil frame as a dupe.
func (h *cHost) VideoRefresh(frame []uint16, width, height, pitch int) {
	var data unsafe.Pointer
	if len(frame) > 0 {
		data = unsafe.Pointer(&frame[0])
	}
	C.call_video_cb(data, C.uint(width), C.uint(height), C.size_t(pitch))
}

func (h *cHost) AudioSampleBatch(samples []int16) {
	frames := len(samples) / 2
	if frames == 0 {
		return
	}
	C.call_audio_batch_cb((*C.int16_t)(unsafe.Pointer(&samples[0])), C.size_t(frames))
}

func (h *cHost) InputPoll() {
	C.call_input_poll_cb()
}

func (h *cHost) InputState(port, device, index, id uint) int16 {
	return int16(C.call_input_state_cb(C.uint(port), C.uint(device), C.uint(index), C.uint(id)))
}
