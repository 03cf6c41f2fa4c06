// Package ebitencap binds frame capture into an Ebitengine game.
//
// RunGame is a drop-in replacement for ebiten.RunGame that loads the
// capture library before the window and graphics context exist, then
// watches the capture hotkey once per update step. When the tool is
// not installed the game runs exactly as it would without this
// package.
package ebitencap

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/shaban/renderdoc"
)

// Config adjusts the capture binding. Start from DefaultConfig; a nil
// *Config means DefaultConfig().
type Config struct {
	// Key triggers a capture on its press edge. DefaultConfig sets
	// F12, matching the tool's own convention.
	Key ebiten.Key

	// Options configure the capture resource itself; nil means
	// renderdoc defaults.
	Options *renderdoc.Options
}

// DefaultConfig returns the default binding: F12 and default resource
// options.
func DefaultConfig() *Config {
	return &Config{Key: ebiten.KeyF12}
}

func (c *Config) withDefaults() *Config {
	if c == nil {
		return DefaultConfig()
	}
	out := *c
	return &out
}

// Game wraps an ebiten.Game and fires the capture trigger on the
// configured hotkey before delegating each Update.
type Game struct {
	inner   ebiten.Game
	res     *renderdoc.Resource
	trigger *renderdoc.Trigger
	key     ebiten.Key

	// keyPressed polls the host input state. Swapped out in tests.
	keyPressed func(ebiten.Key) bool
	wasPressed bool
}

// Wrap decorates game with the capture hotkey binding over an already
// initialized resource. Applications that manage initialization
// themselves use this; everyone else goes through RunGame.
func Wrap(game ebiten.Game, res *renderdoc.Resource, cfg *Config) *Game {
	c := cfg.withDefaults()
	return &Game{
		inner:      game,
		res:        res,
		trigger:    renderdoc.NewTrigger(res, c.Options),
		key:        c.Key,
		keyPressed: ebiten.IsKeyPressed,
	}
}

// Resource returns the capture resource so application systems can
// trigger captures or inspect availability directly.
func (g *Game) Resource() *renderdoc.Resource {
	return g.res
}

// Trigger returns the hotkey's trigger, letting application code fire
// programmatic captures with the same replay-UI behavior as the key.
func (g *Game) Trigger() *renderdoc.Trigger {
	return g.trigger
}

// Update fires the trigger on the hotkey's press edge, then runs the
// wrapped game's Update.
func (g *Game) Update() error {
	pressed := g.keyPressed(g.key)
	if pressed && !g.wasPressed {
		g.trigger.Fire()
	}
	g.wasPressed = pressed
	return g.inner.Update()
}

// Draw renders the wrapped game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.inner.Draw(screen)
}

// Layout reports the wrapped game's layout.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.inner.Layout(outsideWidth, outsideHeight)
}

// RunGame initializes the capture resource and runs game with the
// default hotkey binding. Initialization happens before ebiten creates
// the window and graphics context, which is the ordering the capture
// tool needs to instrument them. A failed load degrades to running the
// game without capture.
func RunGame(game ebiten.Game) error {
	return RunGameWithConfig(game, nil)
}

// RunGameWithConfig is RunGame with an explicit binding configuration.
func RunGameWithConfig(game ebiten.Game, cfg *Config) error {
	c := cfg.withDefaults()
	res := renderdoc.Initialize(c.Options)
	return ebiten.RunGame(Wrap(game, res, c))
}
