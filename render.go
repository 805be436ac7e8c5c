package burrow

import (
	"fmt"

	"github.com/yohamta/donburi"
)

// RenderStage names a stage of the render schedule.
type RenderStage uint8

// Stages run in declaration order.
const (
	RenderFirst RenderStage = iota
	RenderPreRender
	RenderRender
	RenderPostRender
	RenderLast

	renderStageCount
)

var renderStageNames = [renderStageCount]string{"First", "PreRender", "Render", "PostRender", "Last"}

func (s RenderStage) String() string {
	if s < renderStageCount {
		return renderStageNames[s]
	}
	return fmt.Sprintf("RenderStage(%d)", uint8(s))
}

// RenderStages returns every stage in execution order.
func RenderStages() []RenderStage {
	return []RenderStage{RenderFirst, RenderPreRender, RenderRender, RenderPostRender, RenderLast}
}

// RenderSchedule is the pipeline run once per rendered frame, after the
// update pass. Stages run in order; sets within a stage run in insertion
// order on the calling goroutine.
type RenderSchedule struct {
	stages [renderStageCount][]*SystemSet
}

// NewRenderSchedule returns an empty schedule.
func NewRenderSchedule() *RenderSchedule {
	return &RenderSchedule{}
}

// AddSystemSet appends set to stage.
func (s *RenderSchedule) AddSystemSet(stage RenderStage, set *SystemSet) {
	if stage >= renderStageCount {
		panic(fmt.Sprintf("burrow: unknown render stage %v", stage))
	}
	s.stages[stage] = append(s.stages[stage], set)
}

// AddSystem appends a single-system set to stage.
func (s *RenderSchedule) AddSystem(stage RenderStage, sys System) {
	s.AddSystemSet(stage, NewSystemSet().WithSystem(sys))
}

func (s *RenderSchedule) prependSystemSet(stage RenderStage, set *SystemSet) {
	s.stages[stage] = append([]*SystemSet{set}, s.stages[stage]...)
}

// Len returns the number of sets registered in stage.
func (s *RenderSchedule) Len(stage RenderStage) int {
	return len(s.stages[stage])
}

// Run executes every stage once.
func (s *RenderSchedule) Run(w donburi.World) {
	for _, stage := range s.stages {
		for _, set := range stage {
			set.Run(w)
		}
	}
}

// renderSlot holds the schedule between render passes. The schedule is
// checked out while it runs, leaving the slot empty, so a render system
// cannot re-enter it.
type renderSlot struct {
	schedule *RenderSchedule
}

var renderSystems = NewResource[renderSlot]("RenderSchedule")

func checkoutRenderSchedule(w donburi.World) *RenderSchedule {
	slot := renderSystems.MustGet(w)
	if slot.schedule == nil {
		protocolPanic("render", "render schedule is already running")
	}
	s := slot.schedule
	slot.schedule = nil
	return s
}

func checkinRenderSchedule(w donburi.World, s *RenderSchedule) {
	renderSystems.MustGet(w).schedule = s
}

// runRenderSchedule checks the schedule out, runs it, and checks it back in.
func runRenderSchedule(w donburi.World) {
	s := checkoutRenderSchedule(w)
	s.Run(w)
	checkinRenderSchedule(w, s)
}

// RenderState tells the frame driver that a state transition happened since
// the last render pass. While dirty, the next render pass re-runs every
// registered state search before the render schedule, so state run criteria
// in render systems see the transition.
type RenderState struct {
	dirty    bool
	searches []func(donburi.World)
}

// RenderStateResource holds the RenderState. It starts dirty so the initial
// states are visible to the first render pass.
var RenderStateResource = NewResource[RenderState]("RenderState")

func newRenderState() RenderState {
	return RenderState{dirty: true}
}

// StateUpdated marks the render state dirty. Call it after every state
// transition that render systems depend on.
func (rs *RenderState) StateUpdated() { rs.dirty = true }

// Dirty reports whether a search is pending.
func (rs *RenderState) Dirty() bool { return rs.dirty }

// Searches returns the number of registered state searches.
func (rs *RenderState) Searches() int { return len(rs.searches) }

// run invokes every search once if dirty, then clears the flag.
func (rs *RenderState) run(w donburi.World) {
	if !rs.dirty {
		return
	}
	for _, search := range rs.searches {
		search(w)
	}
	rs.dirty = false
}

func (a *App) renderSchedule() *RenderSchedule {
	s := renderSystems.MustGet(a.World).schedule
	if s == nil {
		protocolPanic("render", "render schedule is checked out")
	}
	return s
}

// AddRenderSystem registers a system in the Render stage.
func (a *App) AddRenderSystem(sys System) *App {
	return a.AddRenderSystemToStage(RenderRender, sys)
}

// AddRenderSystemToStage registers a system in stage.
func (a *App) AddRenderSystemToStage(stage RenderStage, sys System) *App {
	a.renderSchedule().AddSystem(stage, sys)
	return a
}

// AddRenderSystemSet registers a set in the Render stage.
func (a *App) AddRenderSystemSet(set *SystemSet) *App {
	return a.AddRenderSystemSetToStage(RenderRender, set)
}

// AddRenderSystemSetToStage registers a set in stage.
func (a *App) AddRenderSystemSetToStage(stage RenderStage, set *SystemSet) *App {
	a.renderSchedule().AddSystemSet(stage, set)
	return a
}

// AddRenderState makes the run criteria of a state machine usable from
// render systems. It registers the machine's full search with RenderState
// and puts its render driver at the front of the Render stage.
//
// Only the Render, PostRender and Last stages see the render pass's
// transitions. Sets in First and PreRender run before the driver and
// evaluate state criteria against whatever the previous pass left visible,
// so keep state-gated render sets out of those stages.
func (a *App) AddRenderState(driver StateDriver) *App {
	rs := RenderStateResource.MustGet(a.World)
	rs.searches = append(rs.searches, driver.RunFullSearch)
	driver.trackRender()
	a.renderSchedule().prependSystemSet(RenderRender, driver.RenderDriver())
	return a
}
