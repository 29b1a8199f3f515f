// Package libretro exposes a session-driven arcade engine as a libretro
// core. A main package registers the engine from init() and is built
// with -buildmode=c-shared.
package libretro

/*
#include "libretro.h"
#include "cfuncs.h"
*/
import "C"
import (
	"io"
	"strings"
	"unsafe"

	"github.com/rs/zerolog/log"

	emucore "github.com/bji/libretromame/api"
	"github.com/bji/libretromame/config"
	"github.com/bji/libretromame/logging"
)

var (
	engine emucore.Engine
	cr     *core

	runCfg      config.RunConfig
	configReady bool
	logCloser   io.Closer

	haveAudioBatch bool

	// Pre-allocated C strings (allocated once, live for the process)
	libNameStr   *C.char
	libVerStr    *C.char
	validExtStr  *C.char
	stringsReady bool

	coreOptKeys []*C.char
	coreOptVals []*C.char
)

// RegisterEngine sets the engine driven by the core. Must be called
// during init() before any retro_* function runs.
func RegisterEngine(e emucore.Engine) {
	engine = e
}

//export retro_set_environment
func retro_set_environment(cb C.retro_environment_t) {
	C._retro_set_environment(cb)
	ensureConfig()
	ensureOptionStrings()
	setVariables()
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
	haveAudioBatch = cb != nil
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
	ensureConfig()
	ensureStrings()

	var err error
	cr, err = startCore(engine, runCfg, logging.Component("libretro"))
	if err != nil {
		log.Error().Err(err).Msg("core initialization failed, no game can be loaded")
	}
}

//export retro_deinit
func retro_deinit() {
	if cr != nil {
		cr.deinit()
		cr = nil
	}
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
	configReady = false
}

//export retro_api_version
func retro_api_version() C.uint {
	return C.RETRO_API_VERSION
}

//export retro_get_system_info
func retro_get_system_info(info *C.struct_retro_system_info) {
	ensureStrings()
	si := systemInfo()
	info.library_name = libNameStr
	info.library_version = libVerStr
	info.valid_extensions = validExtStr
	info.need_fullpath = C.bool(si.NeedFullPath)
	info.block_extract = C.bool(si.BlockExtract)
}

//export retro_get_system_av_info
func retro_get_system_av_info(info *C.struct_retro_system_av_info) {
	var av emucore.AVInfo
	if cr != nil {
		av = cr.avInfo()
	}
	info.timing.fps = C.double(av.Timing.FPS)
	info.timing.sample_rate = C.double(av.Timing.SampleRate)
	info.geometry.base_width = C.uint(av.Geometry.BaseWidth)
	info.geometry.base_height = C.uint(av.Geometry.BaseHeight)
	info.geometry.max_width = C.uint(av.Geometry.MaxWidth)
	info.geometry.max_height = C.uint(av.Geometry.MaxHeight)
	info.geometry.aspect_ratio = C.float(av.Geometry.AspectRatio)
}

//export retro_set_controller_port_device
func retro_set_controller_port_device(port C.uint, device C.uint) {
}

//export retro_reset
func retro_reset() {
	if cr != nil {
		cr.reset()
	}
}

//export retro_run
func retro_run() {
	if cr == nil {
		return
	}

	var updated C.bool
	if C.call_environ_cb(C.RETRO_ENVIRONMENT_GET_VARIABLE_UPDATE, unsafe.Pointer(&updated)) && updated {
		updateCoreOptions()
	}

	if cr.run() {
		updateGeometry(cr.avInfo())
	}
}

//export retro_serialize_size
func retro_serialize_size() C.size_t {
	return 0
}

//export retro_serialize
func retro_serialize(data unsafe.Pointer, size C.size_t) C.bool {
	return C.bool(false)
}

//export retro_unserialize
func retro_unserialize(data unsafe.Pointer, size C.size_t) C.bool {
	return C.bool(false)
}

//export retro_cheat_reset
func retro_cheat_reset() {
}

//export retro_cheat_set
func retro_cheat_set(index C.uint, enabled C.bool, code *C.char) {
}

//export retro_load_game
func retro_load_game(game *C.struct_retro_game_info) C.bool {
	if cr == nil {
		log.Error().Msg("cannot load game: core is not initialized")
		return C.bool(false)
	}
	if game == nil || game.path == nil {
		return C.bool(false)
	}

	var pixelFormat C.int = C.RETRO_PIXEL_FORMAT_RGB565
	if !C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_PIXEL_FORMAT, unsafe.Pointer(&pixelFormat)) {
		cr.log.Error().Msg("frontend does not support RGB565")
		return C.bool(false)
	}

	updateCoreOptions()
	wireCallbacks()

	path := C.GoString(game.path)
	if err := cr.loadGame(path); err != nil {
		cr.log.Error().Err(err).Str("path", path).Msg("load game failed")
		return C.bool(false)
	}
	return C.bool(true)
}

//export retro_load_game_special
func retro_load_game_special(gameType C.uint, info *C.struct_retro_game_info, numInfo C.size_t) C.bool {
	return C.bool(false)
}

//export retro_unload_game
func retro_unload_game() {
	if cr != nil {
		cr.unloadGame()
	}
}

//export retro_get_region
func retro_get_region() C.uint {
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

// ensureConfig reads logging and run settings from the environment once
// per init cycle. Bad values fall back to defaults.
func ensureConfig() {
	if configReady {
		return
	}
	logCfg, err := config.LoadLog()
	if err == nil {
		if logCloser, err = logging.Init(logCfg); err != nil {
			log.Warn().Err(err).Msg("log file unavailable, logging to stderr")
		}
	}
	if runCfg, err = config.LoadRun(); err != nil {
		log.Warn().Err(err).Msg("invalid run configuration, using defaults")
		runCfg = config.RunConfig{Sound: true, SampleRate: 48000}
	}
	configReady = true
}

// wireCallbacks points the session at the frontend's callbacks.
func wireCallbacks() {
	s := cr.sess
	s.SetVideoRefresh(videoRefresh)
	s.SetAudioSample(audioSample)
	if haveAudioBatch {
		s.SetAudioSampleBatch(audioSampleBatch)
	} else {
		s.SetAudioSampleBatch(nil)
	}
	s.SetInputPoll(inputPoll)
	s.SetInputState(inputState)
}

func videoRefresh(pixels []uint16, width, height, pitch int) {
	if len(pixels) == 0 {
		return
	}
	C.call_video_cb(unsafe.Pointer(&pixels[0]), C.uint(width), C.uint(height), C.size_t(pitch))
}

func audioSample(left, right int16) {
	C.call_audio_cb(C.int16_t(left), C.int16_t(right))
}

func audioSampleBatch(samples []int16) int {
	if len(samples) < 2 {
		return 0
	}
	return int(C.call_audio_batch_cb((*C.int16_t)(unsafe.Pointer(&samples[0])), C.size_t(len(samples)/2)))
}

func inputPoll() {
	C.call_input_poll_cb()
}

func inputState(port, device, index, id uint) int16 {
	return int16(C.call_input_state_cb(C.uint(port), C.uint(device), C.uint(index), C.uint(id)))
}

// ensureStrings allocates C strings for system info once.
func ensureStrings() {
	if stringsReady {
		return
	}
	si := systemInfo()
	libNameStr = C.CString(si.LibraryName)
	libVerStr = C.CString(si.LibraryVersion)
	validExtStr = C.CString(strings.Join(si.Extensions, "|"))
	stringsReady = true
}

// ensureOptionStrings allocates C strings for core options once.
func ensureOptionStrings() {
	if coreOptKeys != nil {
		return
	}
	for _, opt := range coreOptions {
		coreOptKeys = append(coreOptKeys, C.CString(optionPrefix+opt.Key))
		coreOptVals = append(coreOptVals, C.CString(optionDefinition(opt, runCfg)))
	}
}

// setVariables registers all core options with the frontend.
func setVariables() {
	options := make([]C.struct_retro_variable, len(coreOptKeys)+1)
	for i := range coreOptKeys {
		options[i] = C.struct_retro_variable{key: coreOptKeys[i], value: coreOptVals[i]}
	}
	// Nil terminator
	options[len(coreOptKeys)] = C.struct_retro_variable{key: nil, value: nil}

	C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_VARIABLES, unsafe.Pointer(&options[0]))
}

// updateCoreOptions reads core options from the frontend.
func updateCoreOptions() {
	if cr == nil {
		return
	}
	for _, cKey := range coreOptKeys {
		var v C.struct_retro_variable
		v.key = cKey
		if C.call_environ_cb(C.RETRO_ENVIRONMENT_GET_VARIABLE, unsafe.Pointer(&v)) && v.value != nil {
			cr.setOption(C.GoString(cKey), C.GoString(v.value))
		}
	}
}

// updateGeometry notifies the frontend of geometry changes.
func updateGeometry(av emucore.AVInfo) {
	var geom C.struct_retro_game_geometry
	geom.base_width = C.uint(av.Geometry.BaseWidth)
	geom.base_height = C.uint(av.Geometry.BaseHeight)
	geom.max_width = C.uint(av.Geometry.MaxWidth)
	geom.max_height = C.uint(av.Geometry.MaxHeight)
	geom.aspect_ratio = C.float(av.Geometry.AspectRatio)
	C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_GEOMETRY, unsafe.Pointer(&geom))
}
