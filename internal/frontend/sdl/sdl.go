// Package sdl implements a frontend using SDL2 for video, audio and input.
package sdl

import (
	"fmt"
	"runtime"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/palette"
	"github.com/retroenv/retrochip8/internal/sound"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	bytesPerPixel   = 3
	audioBufferSize = 512
	// maxQueuedAudio limits the queued samples to avoid a growing latency
	// when the emulation runs faster than the audio device.
	maxQueuedAudio = sound.SampleRate / 10
)

// SDL is a frontend showing the display in a window.
type SDL struct {
	logger *log.Logger

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	audio    sdl.AudioDeviceID
	beeper   *sound.Beeper

	title       string
	pal         palette.Palette
	refreshRate int
	fullscreen  bool
}

// New returns a new SDL frontend.
func New(logger *log.Logger) *SDL {
	return &SDL{
		logger: logger,
	}
}

// Init opens the window and the audio device.
func (s *SDL) Init(title string, scale int, fullscreen bool, pal palette.Palette) error {
	runtime.LockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}

	var flags uint32 = sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE
	if fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	s.window, err = sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(chip8.Width*scale), int32(chip8.Height*scale), flags)
	if err != nil {
		s.destroy()
		return fmt.Errorf("creating window: %w", err)
	}

	s.renderer, err = sdl.CreateRenderer(s.window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		s.destroy()
		return fmt.Errorf("creating renderer: %w", err)
	}
	if err := s.renderer.SetLogicalSize(chip8.Width, chip8.Height); err != nil {
		s.destroy()
		return fmt.Errorf("setting logical size: %w", err)
	}

	s.texture, err = s.renderer.CreateTexture(sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING,
		chip8.Width, chip8.Height)
	if err != nil {
		s.destroy()
		return fmt.Errorf("creating texture: %w", err)
	}

	s.title = title
	s.pal = pal
	s.fullscreen = fullscreen
	s.refreshRate = s.displayRefreshRate()
	s.openAudio()
	return nil
}

func (s *SDL) displayRefreshRate() int {
	index, err := s.window.GetDisplayIndex()
	if err != nil {
		return frontend.DefaultRefreshRate
	}
	mode, err := sdl.GetCurrentDisplayMode(index)
	if err != nil || mode.RefreshRate <= 0 {
		return frontend.DefaultRefreshRate
	}
	return int(mode.RefreshRate)
}

// openAudio opens the audio device, the emulator keeps running without
// sound if no device is available.
func (s *SDL) openAudio() {
	spec := &sdl.AudioSpec{
		Freq:     sound.SampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  audioBufferSize,
	}

	device, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		s.logger.Warn("Opening audio device failed", log.Err(err))
		return
	}

	s.audio = device
	s.beeper = sound.NewBeeper(sound.SampleRate)
	sdl.PauseAudioDevice(device, false)
}

// RefreshRate returns the refresh rate of the display showing the window.
func (s *SDL) RefreshRate() int {
	return s.refreshRate
}

// Poll processes all pending window events.
func (s *SDL) Poll(input frontend.Input) bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return true

		case *sdl.WindowEvent:
			switch ev.Event {
			case sdl.WINDOWEVENT_FOCUS_LOST:
				input.TogglePause(true)
			case sdl.WINDOWEVENT_FOCUS_GAINED:
				input.TogglePause(false)
			}

		case *sdl.KeyboardEvent:
			if s.handleKey(ev, input) {
				return true
			}
		}
	}
	return false
}

func (s *SDL) handleKey(ev *sdl.KeyboardEvent, input frontend.Input) bool {
	pressed := ev.Type == sdl.KEYDOWN

	switch ev.Keysym.Sym {
	case sdl.K_ESCAPE:
		return pressed

	case sdl.K_RETURN, sdl.K_KP_ENTER:
		alt := ev.Keysym.Mod&sdl.KMOD_LALT == sdl.KMOD_LALT || ev.Keysym.Mod&sdl.KMOD_RALT == sdl.KMOD_RALT
		if pressed && alt && ev.Repeat == 0 {
			s.toggleFullscreen()
		}

	case sdl.K_PRINTSCREEN:
		if pressed && ev.Repeat == 0 {
			input.RequestScreenshot()
		}

	default:
		key, ok := keymap.Lookup(rune(ev.Keysym.Sym))
		if !ok || ev.Repeat != 0 {
			return false
		}
		if pressed {
			input.SetKey(key)
		} else {
			input.ClearKey(key)
		}
	}
	return false
}

func (s *SDL) toggleFullscreen() {
	var flags uint32
	if !s.fullscreen {
		flags = sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if err := s.window.SetFullscreen(flags); err != nil {
		s.logger.Error("Switching fullscreen mode failed", log.Err(err))
		return
	}
	s.fullscreen = !s.fullscreen
}

// ShowStatus shows the frame metrics in the window title.
func (s *SDL) ShowStatus(msPerFrame, fps float64) {
	s.window.SetTitle(fmt.Sprintf("%s | %.02fms/f, %.02f/s", s.title, msPerFrame, fps))
}

// Present copies the display into the streaming texture and shows it.
func (s *SDL) Present(display chip8.Display) error {
	pixels, pitch, err := s.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("locking texture: %w", err)
	}

	for y := range chip8.Height {
		row := pixels[y*pitch:]
		for x := range chip8.Width {
			c := s.pal.Color(display.Pixel(x, y))
			offset := x * bytesPerPixel
			row[offset] = c.R
			row[offset+1] = c.G
			row[offset+2] = c.B
		}
	}
	s.texture.Unlock()

	if err := s.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}
	if err := s.renderer.Copy(s.texture, nil, nil); err != nil {
		return fmt.Errorf("copying texture: %w", err)
	}
	s.renderer.Present()
	return nil
}

// Beep queues the samples of one frame.
func (s *SDL) Beep(on bool) {
	if s.beeper == nil {
		return
	}

	samples := s.beeper.Samples(on, 1/float64(s.refreshRate))
	if sdl.GetQueuedAudioSize(s.audio) > maxQueuedAudio {
		return
	}
	if err := sdl.QueueAudio(s.audio, samples); err != nil {
		s.logger.Error("Queueing audio failed", log.Err(err))
	}
}

// Close releases all SDL resources.
func (s *SDL) Close() error {
	s.destroy()
	return nil
}

func (s *SDL) destroy() {
	if s.audio != 0 {
		sdl.CloseAudioDevice(s.audio)
		s.audio = 0
	}
	if s.texture != nil {
		_ = s.texture.Destroy()
		s.texture = nil
	}
	if s.renderer != nil {
		_ = s.renderer.Destroy()
		s.renderer = nil
	}
	if s.window != nil {
		_ = s.window.Destroy()
		s.window = nil
	}
	sdl.Quit()
}
