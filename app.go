package burrow

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Plugin configures an App. Build is called once, from AddPlugin.
type Plugin interface {
	Build(app *App)
}

// Runner takes over the App's main loop. The default runner performs a
// single update.
type Runner func(app *App) error

// App owns a donburi world and the systems that run against it.
type App struct {
	World donburi.World

	startup []System
	started bool
	systems []*SystemSet
	events  []eventQueue
	runner  Runner
}

// NewApp creates an App with a fresh world and the AppExit event registered.
func NewApp() *App {
	a := &App{
		World:  donburi.NewWorld(),
		runner: runOnce,
	}
	a.AddEvent(ExitEvents)
	return a
}

func runOnce(app *App) error {
	app.Update()
	return nil
}

// AddPlugin builds p against the App.
func (a *App) AddPlugin(p Plugin) *App {
	p.Build(a)
	return a
}

// AddStartupSystem registers a system that runs once, before the first
// update pass.
func (a *App) AddStartupSystem(sys System) *App {
	a.startup = append(a.startup, sys)
	return a
}

// AddSystem registers a system that runs on every update pass.
func (a *App) AddSystem(sys System) *App {
	return a.AddSystemSet(NewSystemSet().WithSystem(sys))
}

// AddSystemSet registers a set that runs on every update pass.
func (a *App) AddSystemSet(set *SystemSet) *App {
	a.systems = append(a.systems, set)
	return a
}

// prependSystemSet registers a set ahead of every other update system.
func (a *App) prependSystemSet(set *SystemSet) {
	a.systems = append([]*SystemSet{set}, a.systems...)
}

// AddEvent inserts the queue into the world and swaps its buffers at the
// start of every update pass. Adding the same queue twice is harmless.
func (a *App) AddEvent(q eventQueue) *App {
	q.init(a.World)
	for _, e := range a.events {
		if e == q {
			return a
		}
	}
	a.events = append(a.events, q)
	return a
}

// SetRunner replaces the runner used by Run.
func (a *App) SetRunner(r Runner) *App {
	a.runner = r
	return a
}

// Update runs one pass: startup systems on the first call, then event buffer
// swaps, pending donburi events, and every update system in order.
func (a *App) Update() {
	if !a.started {
		a.started = true
		for _, sys := range a.startup {
			sys(a.World)
		}
	}
	for _, q := range a.events {
		q.update(a.World)
	}
	events.ProcessAllEvents(a.World)
	for _, set := range a.systems {
		set.Run(a.World)
	}
}

// Run hands the App to its runner.
func (a *App) Run() error {
	return a.runner(a)
}
