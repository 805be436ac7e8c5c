// Package burrow runs a [donburi] ECS application inside a roguelike console
// loop.
//
// The console loop owns the window, the root console and the input devices,
// and calls back three times per frame: update, render and resize. burrow
// turns those callbacks into passes over an [App]: the update pass runs the
// App's systems, the render pass runs a separate [RenderSchedule]. During
// each pass the loop's root console is lent to systems through the
// [RootConsole] resource and handed back afterwards.
//
// # Quick start
//
//	app := burrow.NewApp()
//	burrow.SettingsResource.Insert(app.World, burrow.Settings{
//		AppOptions: console.DefaultAppOptions(),
//		Backend:    window.Run,
//	})
//	app.AddPlugin(burrow.ConsolePlugin{}).
//		AddSystem(input).
//		AddRenderSystem(render)
//	if err := app.Run(); err != nil {
//		log.Fatal(err)
//	}
//
//	func render(w donburi.World) {
//		con := burrow.RootConsoleResource.MustGet(w).Console()
//		con.Print(1, 1, "hello", console.AlignLeft, console.ColorWhite)
//	}
//
// # Resources and events
//
// A [Resource] is a typed world singleton. The plugin inserts [Input],
// [FPSInfo], [RootConsole] and [RenderState]. Events are sent through an
// [EventQueue] and read with an [EventReader]; they stay readable for one
// update pass after the one they were sent in. Send [AppExit] to stop the
// loop and [SetFontPath] to change fonts. [Resized] is sent on every screen
// resize and mirrored to donburi's event bus as [ResizedEvent].
//
// # Render schedule
//
// Render systems are grouped into stages that run in the order First,
// PreRender, Render, PostRender, Last. The schedule is taken out of the
// world while it runs, so a render system cannot start another render pass.
//
// # States
//
// [StateType] declares a stack-based state machine whose run criteria
// ([StateType.OnEnter], [StateType.OnUpdate], ...) gate [SystemSet]s. To use
// those criteria in render systems, register the state with
// [App.AddRenderState] and call [RenderState.StateUpdated] after every
// transition; otherwise render systems miss the transition criteria. The
// render driver runs at the start of the Render stage, so state-gated sets
// belong in Render or later stages.
//
// # Backends
//
// [Settings.Backend] selects the console loop: console/terminal (tcell, the
// default), console/window (Ebitengine) or console/headless for tests.
//
// [donburi]: https://github.com/yohamta/donburi
package burrow
