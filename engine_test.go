package burrow

import (
	"slices"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/burrow/console"
	"github.com/phanxgames/burrow/console/headless"
	"github.com/phanxgames/burrow/console/terminal"
)

func testSettings(consoleW, consoleH, screenW, screenH int) Settings {
	s := DefaultSettings()
	s.AppOptions.ConsoleWidth, s.AppOptions.ConsoleHeight = consoleW, consoleH
	s.AppOptions.ScreenWidth, s.AppOptions.ScreenHeight = screenW, screenH
	return s
}

func newTestEngine(app *App, s Settings) (*engine, *headless.Loop) {
	return newEngine(app, s), headless.New(s.AppOptions)
}

func TestEngineUpdatePass(t *testing.T) {
	app := newPluginApp()
	ran := false
	app.AddSystem(func(w donburi.World) {
		ran = true
		if fps := *FPSInfoResource.MustGet(w); fps != (FPSInfo{FPS: 30, AverageFPS: 28}) {
			t.Errorf("FPSInfo = %+v, want {30 28}", fps)
		}
		if !InputResource.MustGet(w).Key("KeyA") {
			t.Error("input should be translated before systems run")
		}
		root := RootConsoleResource.MustGet(w)
		if cw, ch := root.Console().Size(); cw != 80 || ch != 45 {
			t.Errorf("lent console is %dx%d, want the loop's 80x45", cw, ch)
		}
		root.Console().Print(0, 0, "update", console.AlignLeft, console.ColorWhite)
	})

	e, loop := newTestEngine(app, testSettings(80, 45, 640, 400))
	loop.SetFPS(30, 28)
	loop.Press("KeyA")

	if ev := e.Update(loop); ev != console.UpdateContinue {
		t.Fatalf("Update = %v, want UpdateContinue", ev)
	}
	if !ran {
		t.Fatal("update system did not run")
	}
	if RootConsoleResource.MustGet(app.World).Held() {
		t.Error("console should be restored after Update")
	}
	if got := loop.Con().String(); got != "update" {
		t.Errorf("loop console = %q, want %q", got, "update")
	}
}

func TestEngineRoundTripLeavesConsole(t *testing.T) {
	app := newPluginApp()
	app.AddSystem(func(w donburi.World) { RootConsoleResource.MustGet(w).Console() })
	app.AddRenderSystem(func(w donburi.World) { RootConsoleResource.MustGet(w).Console() })
	e, loop := newTestEngine(app, testSettings(20, 5, 160, 40))

	loop.Con().Print(2, 1, "keep me", console.AlignLeft, console.ColorWhite)
	want := newPrintedConsole(20, 5, "")
	want.Print(2, 1, "keep me", console.AlignLeft, console.ColorWhite)

	for range 3 {
		e.Update(loop)
		e.Render(loop)
	}
	if !loop.Con().Equal(&want) {
		t.Errorf("console changed across passes:\n%s", loop.Con().String())
	}
}

func TestEngineRenderRunsSearchesOnce(t *testing.T) {
	app := newPluginApp()
	calls := [2]int{}
	rs := RenderStateResource.MustGet(app.World)
	rs.searches = append(rs.searches,
		func(donburi.World) { calls[0]++ },
		func(donburi.World) { calls[1]++ })
	rendered := 0
	app.AddRenderSystem(func(w donburi.World) {
		rendered++
		if !RootConsoleResource.MustGet(w).Held() {
			t.Error("console should be lent out during render")
		}
	})
	e, loop := newTestEngine(app, testSettings(80, 45, 640, 400))

	e.Render(loop)
	if calls != [2]int{1, 1} || rs.Dirty() {
		t.Fatalf("dirty render: calls %v, dirty %v", calls, rs.Dirty())
	}
	e.Render(loop)
	if calls != [2]int{1, 1} {
		t.Errorf("clean render: calls %v, want [1 1]", calls)
	}
	if rendered != 2 {
		t.Errorf("render schedule ran %d times, want 2", rendered)
	}
}

func TestEngineRenderStateTransitions(t *testing.T) {
	for _, tt := range []struct {
		name  string
		dirty bool
		want  []int // OnEnter(modePlay) count after each render
	}{
		{"state updated", true, []int{1, 1}},
		{"stale until updated", false, []int{0, 1}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			app := newPluginApp()
			AddState(app, modeState, modeMenu)
			app.AddRenderState(modeState)
			entered := 0
			app.AddRenderSystemSet(NewSystemSet().
				WithRunCriteria(modeState.OnEnter(modePlay)).
				WithSystem(func(donburi.World) { entered++ }))
			e, loop := newTestEngine(app, testSettings(80, 45, 640, 400))

			e.Update(loop)
			e.Render(loop)

			if err := modeState.Get(app.World).Set(modePlay); err != nil {
				t.Fatal(err)
			}
			rs := RenderStateResource.MustGet(app.World)
			if tt.dirty {
				rs.StateUpdated()
			}
			e.Update(loop)

			var got []int
			e.Render(loop)
			got = append(got, entered)
			rs.StateUpdated()
			e.Render(loop)
			got = append(got, entered)

			if !slices.Equal(got, tt.want) {
				t.Errorf("entered after renders = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngineRenderStateStackCriteria(t *testing.T) {
	app := newPluginApp()
	AddState(app, modeState, modePlay)
	app.AddRenderState(modeState)
	var ran []string
	on := func(name string, c Criteria) {
		app.AddRenderSystemSet(NewSystemSet().
			WithRunCriteria(c).
			WithSystem(func(donburi.World) { ran = append(ran, name) }))
	}
	on("pause play", modeState.OnPause(modePlay))
	on("inactive play", modeState.OnInactiveUpdate(modePlay))
	on("stack play", modeState.OnInStackUpdate(modePlay))
	on("update play", modeState.OnUpdate(modePlay))
	e, loop := newTestEngine(app, testSettings(80, 45, 640, 400))

	render := func() []string {
		ran = nil
		e.Render(loop)
		return ran
	}

	e.Update(loop)
	render()
	if err := modeState.Get(app.World).Push(modePause); err != nil {
		t.Fatal(err)
	}
	RenderStateResource.MustGet(app.World).StateUpdated()
	e.Update(loop)

	if got, want := render(), []string{"pause play"}; !slices.Equal(got, want) {
		t.Errorf("render after push ran %v, want %v", got, want)
	}
	if got, want := render(), []string{"inactive play", "stack play"}; !slices.Equal(got, want) {
		t.Errorf("next render ran %v, want %v", got, want)
	}
}

func TestEngineRenderDriverStage(t *testing.T) {
	app := newPluginApp()
	AddState(app, modeState, modeMenu)
	app.AddRenderState(modeState)
	var ran []RenderStage
	for _, stage := range []RenderStage{RenderFirst, RenderRender, RenderLast} {
		app.AddRenderSystemSetToStage(stage, NewSystemSet().
			WithRunCriteria(modeState.OnEnter(modePlay)).
			WithSystem(func(donburi.World) { ran = append(ran, stage) }))
	}
	e, loop := newTestEngine(app, testSettings(80, 45, 640, 400))
	e.Update(loop)
	e.Render(loop)

	if err := modeState.Get(app.World).Set(modePlay); err != nil {
		t.Fatal(err)
	}
	RenderStateResource.MustGet(app.World).StateUpdated()
	e.Update(loop)
	e.Update(loop)
	ran = nil
	e.Render(loop)

	// First runs before the driver and sees the quiet second update pass.
	if want := []RenderStage{RenderRender, RenderLast}; !slices.Equal(ran, want) {
		t.Errorf("OnEnter(play) passed in %v, want %v", ran, want)
	}
}

func TestEngineStartUsesLoopSizes(t *testing.T) {
	s := testSettings(80, 60, 800, 600)
	s.ResizeMode = ResizeAutomatic
	app := newPluginApp()
	e := newEngine(app, s)
	opts := s.AppOptions
	opts.ScreenWidth, opts.ScreenHeight = 400, 300
	loop := headless.New(opts)

	loop.Resize(e, 800, 600)
	if w, h := loop.Con().Size(); w != 160 || h != 120 {
		t.Errorf("console = %dx%d, want 160x120 from the loop's 400x300 baseline", w, h)
	}
}

func TestEngineTerminalAutomaticResize(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 45)

	s := DefaultSettings()
	s.ResizeMode = ResizeAutomatic
	app := newPluginApp()
	e := newEngine(app, s)
	loop, err := terminal.New(s.AppOptions, screen)
	if err != nil {
		t.Fatalf("terminal.New: %v", err)
	}
	loop.Start(e)

	loop.HandleEvent(e, tcell.NewEventResize(100, 45))
	if w, h := loop.Con().Size(); w != 100 || h != 45 {
		t.Errorf("console = %dx%d, want 100x45", w, h)
	}
	var r EventReader[Resized]
	want := []Resized{{PreviousWidth: 80, PreviousHeight: 45, NewWidth: 100, NewHeight: 45}}
	if got := r.Read(ResizedEvents.Events(app.World)); !slices.Equal(got, want) {
		t.Errorf("Resized events = %+v, want %+v", got, want)
	}
}

func TestEngineAutomaticResize(t *testing.T) {
	tests := []struct {
		name               string
		consoleW, consoleH int
		screenW, screenH   int
		newW, newH         int
		wantConW, wantConH int
	}{
		{"double width", 80, 60, 800, 600, 1600, 600, 160, 60},
		{"truncating ratio", 80, 60, 810, 600, 1605, 600, 160, 60},
		{"shrink", 80, 60, 800, 600, 400, 300, 40, 30},
		{"screen smaller than console", 80, 60, 40, 30, 80, 60, 80, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSettings(tt.consoleW, tt.consoleH, tt.screenW, tt.screenH)
			s.ResizeMode = ResizeAutomatic
			e, loop := newTestEngine(newPluginApp(), s)

			loop.Resize(e, tt.newW, tt.newH)
			if w, h := loop.Con().Size(); w != tt.wantConW || h != tt.wantConH {
				t.Errorf("console = %dx%d, want %dx%d", w, h, tt.wantConW, tt.wantConH)
			}
		})
	}
}

func TestEngineAutomaticResizeTracksPrevious(t *testing.T) {
	s := testSettings(80, 60, 800, 600)
	s.ResizeMode = ResizeAutomatic
	app := newPluginApp()
	e, loop := newTestEngine(app, s)

	loop.Resize(e, 1600, 600)
	loop.Resize(e, 800, 1200)
	if w, h := loop.Con().Size(); w != 80 || h != 120 {
		t.Errorf("console = %dx%d, want 80x120", w, h)
	}

	var r EventReader[Resized]
	got := r.Read(ResizedEvents.Events(app.World))
	want := []Resized{
		{PreviousWidth: 800, PreviousHeight: 600, NewWidth: 1600, NewHeight: 600},
		{PreviousWidth: 1600, PreviousHeight: 600, NewWidth: 800, NewHeight: 1200},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Resized events = %+v, want %+v", got, want)
	}
}

func TestEngineResizeNothing(t *testing.T) {
	app := newPluginApp()
	e, loop := newTestEngine(app, testSettings(80, 60, 800, 600))
	loop.Resize(e, 1600, 600)
	if w, h := loop.Con().Size(); w != 80 || h != 60 {
		t.Errorf("console = %dx%d, want unchanged 80x60", w, h)
	}
	if n := ResizedEvents.Events(app.World).Len(); n != 1 {
		t.Errorf("Resized events = %d, want 1", n)
	}
}

func TestEngineResizeCallback(t *testing.T) {
	var got []Resized
	s := testSettings(80, 60, 800, 600)
	s.ResizeMode = ResizeCallback
	s.ResizeCallback = func(root *RootConsole, ev Resized) {
		got = append(got, ev)
		root.Console().Resize(ev.NewWidth/20, ev.NewHeight/20)
	}
	app := newPluginApp()
	e, loop := newTestEngine(app, s)

	loop.Resize(e, 1600, 600)
	if len(got) != 1 || got[0].NewWidth != 1600 {
		t.Fatalf("callback events = %+v", got)
	}
	if w, h := loop.Con().Size(); w != 80 || h != 30 {
		t.Errorf("console = %dx%d, want 80x30", w, h)
	}
	if RootConsoleResource.MustGet(app.World).Held() {
		t.Error("console should be restored after the callback")
	}
	if e.consoleWidth != 80 || e.consoleHeight != 30 {
		t.Errorf("recorded console size %dx%d, want 80x30", e.consoleWidth, e.consoleHeight)
	}
}

func TestEngineResizedReachesSubscribers(t *testing.T) {
	app := newPluginApp()
	var got []Resized
	ResizedEvent.Subscribe(app.World, func(_ donburi.World, ev Resized) { got = append(got, ev) })
	e, loop := newTestEngine(app, testSettings(80, 60, 800, 600))

	loop.Resize(e, 1024, 768)
	e.Update(loop)
	if len(got) != 1 || got[0].NewWidth != 1024 || got[0].NewHeight != 768 {
		t.Errorf("subscriber got %+v", got)
	}
}

func TestEngineFontPathLastWins(t *testing.T) {
	app := newPluginApp()
	pass := 0
	app.AddSystem(func(w donburi.World) {
		pass++
		if pass == 1 {
			FontPathEvents.Send(w, SetFontPath{Path: "first.png"})
			FontPathEvents.Send(w, SetFontPath{Path: "second.png"})
		}
	})
	e, loop := newTestEngine(app, testSettings(80, 45, 640, 400))

	e.Update(loop)
	e.Update(loop)
	if got := loop.FontHistory(); !slices.Equal(got, []string{"second.png"}) {
		t.Errorf("font paths applied = %v, want [second.png]", got)
	}
}

func TestEngineExitOnce(t *testing.T) {
	app := newPluginApp()
	pass := 0
	app.AddSystem(func(w donburi.World) {
		pass++
		if pass == 1 {
			ExitEvents.Send(w, AppExit{})
			ExitEvents.Send(w, AppExit{})
		}
	})
	app.AddSystem(func(w donburi.World) {
		if pass == 1 {
			ExitEvents.Send(w, AppExit{})
		}
	})
	e, loop := newTestEngine(app, testSettings(80, 45, 640, 400))

	var got []console.UpdateEvent
	for range 3 {
		got = append(got, e.Update(loop))
	}
	want := []console.UpdateEvent{console.UpdateExit, console.UpdateContinue, console.UpdateContinue}
	if !slices.Equal(got, want) {
		t.Errorf("Update results = %v, want %v", got, want)
	}
}
