package burrow

import (
	"slices"
	"testing"

	"github.com/yohamta/donburi"
)

func newPluginApp() *App {
	return NewApp().AddPlugin(ConsolePlugin{})
}

func TestRenderStageOrder(t *testing.T) {
	app := newPluginApp()
	var calls []string
	record := func(name string) System {
		return func(donburi.World) { calls = append(calls, name) }
	}

	app.AddRenderSystemToStage(RenderLast, record("last"))
	app.AddRenderSystem(record("render 1"))
	app.AddRenderSystemToStage(RenderPostRender, record("post"))
	app.AddRenderSystemSetToStage(RenderFirst, NewSystemSet().WithSystem(record("first")))
	app.AddRenderSystemSet(NewSystemSet().WithSystem(record("render 2")).WithSystem(record("render 3")))
	app.AddRenderSystemToStage(RenderPreRender, record("pre"))

	runRenderSchedule(app.World)

	want := []string{"first", "pre", "render 1", "render 2", "render 3", "post", "last"}
	if !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestRenderStageString(t *testing.T) {
	var names []string
	for _, s := range RenderStages() {
		names = append(names, s.String())
	}
	want := []string{"First", "PreRender", "Render", "PostRender", "Last"}
	if !slices.Equal(names, want) {
		t.Errorf("stages = %v, want %v", names, want)
	}
	if got := RenderStage(9).String(); got != "RenderStage(9)" {
		t.Errorf("unknown stage = %q", got)
	}
}

func TestRenderScheduleNoReentry(t *testing.T) {
	app := newPluginApp()
	app.AddRenderSystem(func(w donburi.World) { runRenderSchedule(w) })
	expectProtocolPanic(t, "already running", func() { runRenderSchedule(app.World) })
}

func TestRenderScheduleCheckedBackIn(t *testing.T) {
	app := newPluginApp()
	runs := 0
	app.AddRenderSystem(func(w donburi.World) {
		runs++
		if renderSystems.MustGet(w).schedule != nil {
			t.Error("slot should be empty while the schedule runs")
		}
	})
	runRenderSchedule(app.World)
	runRenderSchedule(app.World)
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestRenderRegistrationWithoutPlugin(t *testing.T) {
	app := NewApp()
	expectProtocolPanic(t, "RenderSchedule", func() {
		app.AddRenderSystem(func(donburi.World) {})
	})
}

func TestRenderStateRun(t *testing.T) {
	rs := newRenderState()
	calls := [2]int{}
	rs.searches = append(rs.searches,
		func(donburi.World) { calls[0]++ },
		func(donburi.World) { calls[1]++ })

	w := donburi.NewWorld()
	rs.run(w)
	if calls != [2]int{1, 1} || rs.Dirty() {
		t.Fatalf("first run: calls %v, dirty %v", calls, rs.Dirty())
	}
	rs.run(w)
	if calls != [2]int{1, 1} {
		t.Fatalf("clean run should call nothing, calls %v", calls)
	}
	rs.StateUpdated()
	rs.run(w)
	if calls != [2]int{2, 2} {
		t.Errorf("after StateUpdated calls = %v, want [2 2]", calls)
	}
}

func TestAddRenderState(t *testing.T) {
	app := newPluginApp()
	user := NewSystemSet().WithSystem(func(donburi.World) {})
	app.AddRenderSystemSet(user)
	AddState(app, modeState, modeMenu)
	app.AddRenderState(modeState)

	if n := RenderStateResource.MustGet(app.World).Searches(); n != 1 {
		t.Errorf("searches = %d, want 1", n)
	}
	s := renderSystems.MustGet(app.World).schedule
	if s.Len(RenderRender) != 2 {
		t.Fatalf("Render stage has %d sets, want 2", s.Len(RenderRender))
	}
	if s.stages[RenderRender][1] != user {
		t.Error("render driver should run ahead of earlier Render systems")
	}
}
