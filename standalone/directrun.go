//go:build !libretro

package standalone

import (
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"time"

	ebitenuiInput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sqweek/dialog"
	zxcore "github.com/user-none/efuse/api"
	"github.com/user-none/efuse/core"
	"github.com/user-none/efuse/standalone/storage"
	"github.com/user-none/efuse/standalone/style"
	"golang.design/x/clipboard"
)

// directRunner implements ebiten.Game for running one Spectrum session in
// a window. The core lives on the emulation goroutine; the Ebiten thread
// only touches it through emuControl.
type directRunner struct {
	core         *core.Core
	systemInfo   zxcore.SystemInfo
	config       *storage.Config
	options      *optionStore
	inputMapping InputMapping
	renderer     *FramebufferRenderer
	audioPlayer  *AudioPlayer
	emuControl   *EmuControl
	sharedInput  *SharedInput
	sharedFB     *SharedFramebuffer
	notification *Notification
	menu         *OptionsMenu
	saveStates   *SaveStateManager
	screenshots  *ScreenshotManager
	typist       Typist
	tapeDir      SharedPath
	clipboardOK  bool
	keyBuf       []core.RetroKey
	dpiScale     float64
	emuDone      chan struct{}
}

// RunDirect boots the engine with contentPath, a tape or snapshot that may
// sit inside an archive, and runs it until the window is closed. An empty
// contentPath boots into BASIC.
func RunDirect(factory zxcore.EngineFactory, contentPath string) error {
	if err := storage.EnsureDirectories(); err != nil {
		log.Printf("Warning: %v", err)
	}
	if err := storage.CreateConfigIfMissing(); err != nil {
		log.Printf("Warning: %v", err)
	}

	config, err := storage.LoadConfig()
	if err != nil {
		log.Printf("Warning: config unreadable, using defaults: %v", err)
		config = storage.DefaultConfig()
	}

	volume := config.Audio.Volume
	if config.Audio.Muted {
		volume = 0
	}
	audioPlayer, err := NewAudioPlayer(volume)
	if err != nil {
		log.Printf("Warning: audio initialization failed: %v", err)
		audioPlayer = nil
	}

	valid := variableValues(core.Variables)
	if errs := storage.ValidateConfig(config, valid); len(errs) > 0 {
		for _, e := range errs {
			log.Printf("Config: %s", e)
		}
		storage.CorrectConfig(config, valid)
	}

	// The core finds ROM overrides under <base>/fuse.
	systemDir, _ := storage.GetBaseDir()
	options := newOptionStore(config.CoreOptions)
	sharedInput := &SharedInput{}
	sharedFB := NewSharedFramebuffer(core.CanvasWidth, core.CanvasHeight)
	host := newHarnessHost(sharedInput, sharedFB, audioPlayer, options, systemDir)

	c := core.New(host, factory)
	c.SetEnvironment()
	c.Init()

	if err := c.Load(contentPath); err != nil {
		c.Deinit()
		if audioPlayer != nil {
			audioPlayer.Close()
		}
		return fmt.Errorf("failed to load %q: %w", contentPath, err)
	}

	systemInfo := c.SystemInfo()
	ebiten.SetWindowTitle(windowTitle(systemInfo.Name, contentPath))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(core.FPS))
	ebiten.SetWindowSize(config.Window.Width, config.Window.Height)
	ebiten.SetWindowSizeLimits(storage.MinWindowWidth, storage.MinWindowHeight, -1, -1)
	ebiten.SetFullscreen(config.Window.Fullscreen)

	notification := NewNotification()
	dr := &directRunner{
		core:         c,
		systemInfo:   systemInfo,
		config:       config,
		options:      options,
		inputMapping: BuildMappingFromConfig(config.Controller),
		renderer:     NewFramebufferRenderer(),
		audioPlayer:  audioPlayer,
		emuControl:   NewEmuControl(),
		sharedInput:  sharedInput,
		sharedFB:     sharedFB,
		notification: notification,
		menu:         NewOptionsMenu(options, core.Variables),
		saveStates:   NewSaveStateManager(notification),
		screenshots:  NewScreenshotManager(notification),
		clipboardOK:  clipboard.Init() == nil,
		emuDone:      make(chan struct{}),
	}
	dr.saveStates.SetGame(contentPath)
	dr.tapeDir.Set(config.TapeDir)

	go dr.emulationLoop()

	err = ebiten.RunGame(dr)

	dr.Close()

	return err
}

func windowTitle(name, contentPath string) string {
	if contentPath == "" {
		return name
	}
	return name + " - " + filepath.Base(contentPath)
}

// emulationLoop runs on a dedicated goroutine with audio-driven timing.
func (dr *directRunner) emulationLoop() {
	defer close(dr.emuDone)

	frameTime := time.Duration(float64(time.Second) / core.FPS)
	lastFrameTime := time.Now()

	for {
		if !dr.emuControl.Drain() {
			return
		}

		dr.core.Run()

		elapsed := time.Since(lastFrameTime)
		sleepTime := frameTime - elapsed

		if dr.audioPlayer != nil {
			bufferLevel := dr.audioPlayer.GetBufferLevel()
			if bufferLevel < adtMinBuffer {
				sleepTime = time.Duration(float64(sleepTime) * 0.9)
			} else if bufferLevel > adtMaxBuffer {
				sleepTime = time.Duration(float64(sleepTime) * 1.1)
			}
		}

		if sleepTime > time.Millisecond {
			time.Sleep(sleepTime)
		}

		lastFrameTime = time.Now()
	}
}

// Update implements ebiten.Game.
func (dr *directRunner) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		dr.menu.Toggle()
	}
	if dr.menu.IsVisible() {
		dr.menu.Update()
		dr.releaseInput()
		return nil
	}

	// Keep ebitenui's input state current while the menu is closed so
	// its first frame does not see stale clicks.
	ebitenuiInput.Update()
	ebitenuiInput.AfterUpdate()

	dr.handleHotkeys()
	dr.pollInputToShared()
	return nil
}

// releaseInput lets go of everything the Spectrum sees while the options
// menu has the keyboard.
func (dr *directRunner) releaseInput() {
	dr.sharedInput.Set(0, 0)
	dr.sharedInput.Set(1, 0)
	dr.keyBuf = dr.keyBuf[:0]
	dr.sharedInput.SetKeys(dr.keyBuf)
}

// handleHotkeys processes the function key shortcuts. F1 is read as the
// joypad Select button in pollInputToShared; F10 opens the options menu.
func (dr *directRunner) handleHotkeys() {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		dr.emuControl.Post(func() {
			if err := dr.saveStates.Save(dr.core); err != nil {
				log.Printf("Save state: %v", err)
			}
		})
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		dr.emuControl.Post(func() {
			if err := dr.saveStates.Load(dr.core); err != nil {
				log.Printf("Load state: %v", err)
				return
			}
			if dr.audioPlayer != nil {
				dr.audioPlayer.ClearQueue()
			}
		})
	case inpututil.IsKeyJustPressed(ebiten.KeyF4):
		dr.emuControl.Post(func() {
			if shift {
				dr.saveStates.PreviousSlot()
			} else {
				dr.saveStates.NextSlot()
			}
		})
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		dr.openTape()
	case inpututil.IsKeyJustPressed(ebiten.KeyF6):
		dr.cycleOption(core.OptionHideBorder)
	case inpututil.IsKeyJustPressed(ebiten.KeyF7):
		dr.cycleOption(core.OptionTransparent)
	case inpututil.IsKeyJustPressed(ebiten.KeyF8):
		dr.cycleOption(core.OptionHoldTime)
	case inpututil.IsKeyJustPressed(ebiten.KeyF9):
		dr.cycleOption(core.OptionFastLoad)
	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		pixels, width, height := dr.sharedFB.Read()
		if path, err := dr.screenshots.TakeScreenshot(pixels, width, height); err != nil {
			log.Printf("Screenshot: %v", err)
		} else {
			log.Printf("Screenshot saved to %s", path)
		}
	case dr.pastePressed():
		dr.paste()
	}
}

// pastePressed reports Ctrl+V, or Cmd+V on macOS.
func (dr *directRunner) pastePressed() bool {
	if !inpututil.IsKeyJustPressed(ebiten.KeyV) {
		return false
	}
	if runtime.GOOS == "darwin" {
		return ebiten.IsKeyPressed(ebiten.KeyMeta)
	}
	return ebiten.IsKeyPressed(ebiten.KeyControl)
}

func (dr *directRunner) paste() {
	if !dr.clipboardOK {
		dr.notification.ShowShort("Clipboard not available")
		return
	}
	text := string(clipboard.Read(clipboard.FmtText))
	if n := dr.typist.Type(text); n > 0 {
		dr.notification.ShowShort(fmt.Sprintf("Typing %d characters", n))
	}
}

func (dr *directRunner) cycleOption(key string) {
	label, value := dr.options.cycle(key)
	if value == "" {
		return
	}
	dr.notification.ShowShort(fmt.Sprintf("%s: %s", label, value))
}

// openTape asks for a tape or snapshot and restarts the session with it.
func (dr *directRunner) openTape() {
	exts := make([]string, 0, len(dr.systemInfo.Extensions)+4)
	exts = append(exts, dr.systemInfo.Extensions...)
	exts = append(exts, "zip", "7z", "rar", "gz")
	startDir := dr.tapeDir.Get()

	// The dialog blocks until the user answers.
	go func() {
		dlg := dialog.File().Title("Open Tape").Filter("Spectrum tapes and snapshots", exts...)
		if startDir != "" {
			dlg = dlg.SetStartDir(startDir)
		}
		path, err := dlg.Load()
		if err != nil {
			return
		}

		dr.emuControl.Post(func() {
			if err := dr.core.Load(path); err != nil {
				log.Printf("Open tape: %v", err)
				dr.notification.ShowDefault("Could not load " + filepath.Base(path))
				return
			}
			dr.tapeDir.Set(filepath.Dir(path))
			dr.saveStates.SetGame(path)
			if dr.audioPlayer != nil {
				dr.audioPlayer.ClearQueue()
			}
			dr.notification.ShowShort("Loaded " + filepath.Base(path))
			ebiten.SetWindowTitle(windowTitle(dr.systemInfo.Name, path))
		})
	}()
}

// Draw implements ebiten.Game.
func (dr *directRunner) Draw(screen *ebiten.Image) {
	pixels, width, height := dr.sharedFB.Read()
	dr.renderer.DrawFramebuffer(screen, pixels, width, height)
	dr.menu.Draw(screen)
	dr.notification.Draw(screen)
}

// Layout implements ebiten.Game.
func (dr *directRunner) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := 1.0
	if m := ebiten.Monitor(); m != nil {
		s = m.DeviceScaleFactor()
	}
	if s != dr.dpiScale {
		dr.dpiScale = s
		style.SetDPIScale(s)
		dr.menu.rebuild = true
	}
	return int(float64(outsideWidth) * s), int(float64(outsideHeight) * s)
}

// pollInputToShared reads keyboard and gamepad input and writes to shared state.
func (dr *directRunner) pollInputToShared() {
	gamepadIDs := ebiten.AppendGamepadIDs(nil)

	// Player 1: first gamepad plus F1 as Select
	var p1 uint16
	if len(gamepadIDs) > 0 {
		p1 = PollGamepadButtons(dr.inputMapping, gamepadIDs[0])
	}
	if ebiten.IsKeyPressed(ebiten.KeyF1) {
		p1 |= 1 << core.JoypadSelect
	}
	dr.sharedInput.Set(0, p1)

	// Player 2: second gamepad only
	var p2 uint16
	if len(gamepadIDs) > 1 {
		p2 = PollGamepadButtons(dr.inputMapping, gamepadIDs[1])
	}
	dr.sharedInput.Set(1, p2)

	dr.keyBuf = dr.keyBuf[:0]
	if dr.typist.Busy() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			dr.typist.Cancel()
		}
		dr.keyBuf = append(dr.keyBuf, dr.typist.Next()...)
	} else if !dr.pasteModifierHeld() {
		dr.keyBuf = PollKeyboard(dr.keyBuf)
	}
	dr.sharedInput.SetKeys(dr.keyBuf)
}

// pasteModifierHeld keeps the paste chord from reaching the Spectrum.
func (dr *directRunner) pasteModifierHeld() bool {
	return ebiten.IsKeyPressed(ebiten.KeyV) &&
		(ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta))
}

// Close stops emulation, ends the session and saves the config.
func (dr *directRunner) Close() {
	dr.emuControl.Stop()
	<-dr.emuDone

	dr.core.Deinit()

	if dr.audioPlayer != nil {
		dr.audioPlayer.Close()
	}

	if !ebiten.IsFullscreen() {
		dr.config.Window.Width, dr.config.Window.Height = ebiten.WindowSize()
	}
	dr.config.Window.Fullscreen = ebiten.IsFullscreen()
	dr.config.TapeDir = dr.tapeDir.Get()
	for k, v := range dr.options.snapshot() {
		dr.config.CoreOptions[k] = v
	}
	if err := storage.SaveConfig(dr.config); err != nil {
		log.Printf("Warning: config not saved: %v", err)
	}
}
