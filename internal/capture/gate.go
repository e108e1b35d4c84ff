package capture

import "time"

// Mode is the capture rate the gate currently asks for.
type Mode int

const (
	Idle Mode = iota
	Active
)

func (m Mode) String() string {
	if m == Active {
		return "active"
	}
	return "idle"
}

// GateConfig controls the idle/active switch.
type GateConfig struct {
	IdleFPS     int
	ActiveFPS   int
	IdleTimeout time.Duration
}

// DefaultGateConfig returns 5 FPS idle, 15 FPS active, 2s back to idle.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		IdleFPS:     5,
		ActiveFPS:   15,
		IdleTimeout: 2 * time.Second,
	}
}

// Gate tracks whether recent motion justifies running the tracker. Motion
// switches to Active immediately; Idle returns once no motion has been seen
// for longer than IdleTimeout. Not safe for concurrent use.
type Gate struct {
	config     GateConfig
	mode       Mode
	lastMotion time.Time
}

// NewGate returns a gate in Idle mode.
func NewGate(config GateConfig) *Gate {
	def := DefaultGateConfig()
	if config.IdleFPS <= 0 {
		config.IdleFPS = def.IdleFPS
	}
	if config.ActiveFPS <= 0 {
		config.ActiveFPS = def.ActiveFPS
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = def.IdleTimeout
	}
	return &Gate{config: config}
}

// Observe records whether the frame at now showed motion and reports the
// resulting mode and whether it changed.
func (g *Gate) Observe(motion bool, now time.Time) (Mode, bool) {
	prev := g.mode
	switch {
	case motion:
		g.lastMotion = now
		g.mode = Active
	case g.mode == Active && now.Sub(g.lastMotion) > g.config.IdleTimeout:
		g.mode = Idle
	}
	return g.mode, g.mode != prev
}

// Mode returns the current mode.
func (g *Gate) Mode() Mode {
	return g.mode
}

// FPS returns the frame rate for the current mode.
func (g *Gate) FPS() int {
	if g.mode == Active {
		return g.config.ActiveFPS
	}
	return g.config.IdleFPS
}

// Interval returns the frame period for the current mode.
func (g *Gate) Interval() time.Duration {
	return time.Second / time.Duration(g.FPS())
}
