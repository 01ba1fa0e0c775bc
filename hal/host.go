package hal

import "log/slog"

const (
	DefaultWidth  = 600
	DefaultHeight = 600
)

// HostConfig sizes the host frame buffer.
type HostConfig struct {
	Width  int
	Height int
	Logger *slog.Logger
}

type hostHAL struct {
	logger *slog.Logger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &hostHAL{
		logger: logger,
		fb:     newHostFramebuffer(cfg.Width, cfg.Height),
		kbd:    newHostKeyboard(),
	}
}

func (h *hostHAL) Logger() *slog.Logger { return h.logger }
func (h *hostHAL) Display() Display     { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input         { return hostInput{kbd: h.kbd} }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
