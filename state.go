package burrow

import (
	"errors"
	"slices"

	"github.com/yohamta/donburi"
)

var (
	// ErrStateAlreadyQueued is returned when a transition is requested while
	// another one is still waiting to be applied.
	ErrStateAlreadyQueued = errors.New("burrow: state transition already queued")
	// ErrAlreadyInState is returned when the requested state is already the
	// current one.
	ErrAlreadyInState = errors.New("burrow: already in requested state")
	// ErrStackEmpty is returned by Pop when only one state is on the stack.
	ErrStackEmpty = errors.New("burrow: cannot pop the last state")
)

// TransitionKind says how a state took part in a transition.
type TransitionKind uint8

const (
	TransitionEnter  TransitionKind = iota // became current
	TransitionExit                         // left the stack
	TransitionPause                        // covered by a pushed state
	TransitionResume                       // uncovered by a pop
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionEnter:
		return "enter"
	case TransitionExit:
		return "exit"
	case TransitionPause:
		return "pause"
	case TransitionResume:
		return "resume"
	}
	return "unknown"
}

// Transition records one state change step.
type Transition[T comparable] struct {
	Kind  TransitionKind
	State T
}

type stateOp uint8

const (
	opSet stateOp = iota
	opReplace
	opPush
	opPop
)

type scheduledOp[T comparable] struct {
	op    stateOp
	value T
}

// State is a stack-based state machine stored as a resource. Requested
// transitions are queued and applied by a driver at the start of the next
// pass, so every system in a pass sees the same state.
//
// The update pass and the render pass each consume transitions through their
// own queue. The render queue only becomes visible after RunFullSearch, which
// the frame driver calls when RenderState is dirty.
type State[T comparable] struct {
	stack     []T
	scheduled *scheduledOp[T]
	active    []Transition[T]

	primary     []Transition[T]
	render      []Transition[T]
	renderReady bool
}

func newState[T comparable](initial T) State[T] {
	enter := []Transition[T]{{Kind: TransitionEnter, State: initial}}
	return State[T]{
		stack:   []T{initial},
		primary: enter,
		render:  slices.Clone(enter),
	}
}

// Current returns the state on top of the stack.
func (s *State[T]) Current() T { return s.stack[len(s.stack)-1] }

// Stack returns the states from bottom to top.
func (s *State[T]) Stack() []T { return slices.Clone(s.stack) }

// Inactives returns the paused states below the current one.
func (s *State[T]) Inactives() []T { return slices.Clone(s.stack[:len(s.stack)-1]) }

// Transitions returns the transitions visible to the running pass.
func (s *State[T]) Transitions() []Transition[T] { return slices.Clone(s.active) }

// Set queues a transition that exits every stacked state and enters v.
func (s *State[T]) Set(v T) error { return s.schedule(opSet, v) }

// Replace queues a transition that exits the current state and enters v in
// its place.
func (s *State[T]) Replace(v T) error { return s.schedule(opReplace, v) }

// Push queues a transition that pauses the current state and enters v on top
// of it.
func (s *State[T]) Push(v T) error { return s.schedule(opPush, v) }

// Pop queues a transition that exits the current state and resumes the one
// below it.
func (s *State[T]) Pop() error {
	if len(s.stack) < 2 {
		return ErrStackEmpty
	}
	var zero T
	return s.schedule(opPop, zero)
}

func (s *State[T]) schedule(op stateOp, v T) error {
	if s.scheduled != nil {
		return ErrStateAlreadyQueued
	}
	if op != opPop && s.Current() == v {
		return ErrAlreadyInState
	}
	s.scheduled = &scheduledOp[T]{op: op, value: v}
	return nil
}

// apply performs the scheduled operation and records its transitions for
// both passes.
func (s *State[T]) apply(trackRender bool) {
	op := s.scheduled
	if op == nil {
		return
	}
	s.scheduled = nil

	var ts []Transition[T]
	top := s.Current()
	switch op.op {
	case opSet:
		for i := len(s.stack) - 1; i >= 0; i-- {
			ts = append(ts, Transition[T]{TransitionExit, s.stack[i]})
		}
		ts = append(ts, Transition[T]{TransitionEnter, op.value})
		s.stack = append(s.stack[:0], op.value)
	case opReplace:
		ts = append(ts, Transition[T]{TransitionExit, top}, Transition[T]{TransitionEnter, op.value})
		s.stack[len(s.stack)-1] = op.value
	case opPush:
		ts = append(ts, Transition[T]{TransitionPause, top}, Transition[T]{TransitionEnter, op.value})
		s.stack = append(s.stack, op.value)
	case opPop:
		s.stack = s.stack[:len(s.stack)-1]
		ts = append(ts, Transition[T]{TransitionExit, top}, Transition[T]{TransitionResume, s.Current()})
	}
	s.primary = append(s.primary, ts...)
	if trackRender {
		s.render = append(s.render, ts...)
	}
}

func (s *State[T]) inTransition(kind TransitionKind, v T) bool {
	for _, t := range s.active {
		if t.Kind == kind && t.State == v {
			return true
		}
	}
	return false
}

// StateType declares a state machine and gives access to its resource,
// drivers and run criteria. Declare it as a package variable:
//
//	var GameState = burrow.NewStateType[Mode]("GameState")
type StateType[T comparable] struct {
	res *Resource[State[T]]
	// set by App.AddRenderState; render transitions are only queued when a
	// render driver will consume them
	renderTracked bool
}

// NewStateType creates a state machine handle. name is used in diagnostics.
func NewStateType[T comparable](name string) *StateType[T] {
	return &StateType[T]{res: NewResource[State[T]](name)}
}

// Get returns the state machine stored in w. It panics with a
// *ProtocolError if AddState was never called for this type.
func (st *StateType[T]) Get(w donburi.World) *State[T] {
	return st.res.MustGet(w)
}

// AddState inserts the state machine starting in initial and registers its
// update driver ahead of every other update system.
func AddState[T comparable](app *App, st *StateType[T], initial T) *App {
	st.res.Insert(app.World, newState(initial))
	app.prependSystemSet(NewSystemSet().WithSystem(st.primaryDriver))
	return app
}

func (st *StateType[T]) primaryDriver(w donburi.World) {
	s := st.Get(w)
	s.apply(st.renderTracked)
	s.active, s.primary = s.primary, nil
}

func (st *StateType[T]) renderDriver(w donburi.World) {
	s := st.Get(w)
	if !s.renderReady {
		s.active = nil
		return
	}
	s.active, s.render = s.render, nil
	s.renderReady = false
}

// RunFullSearch applies any queued transition and publishes every
// transition since the previous search to the render driver.
func (st *StateType[T]) RunFullSearch(w donburi.World) {
	s := st.Get(w)
	s.apply(st.renderTracked)
	s.renderReady = true
}

// RenderDriver returns the set that exposes transitions to render systems.
func (st *StateType[T]) RenderDriver() *SystemSet {
	return NewSystemSet().WithSystem(st.renderDriver)
}

func (st *StateType[T]) trackRender() { st.renderTracked = true }

// OnEnter passes during the pass in which v became current.
func (st *StateType[T]) OnEnter(v T) Criteria {
	return func(w donburi.World) bool { return st.Get(w).inTransition(TransitionEnter, v) }
}

// OnExit passes during the pass in which v left the stack.
func (st *StateType[T]) OnExit(v T) Criteria {
	return func(w donburi.World) bool { return st.Get(w).inTransition(TransitionExit, v) }
}

// OnPause passes during the pass in which v was covered by a pushed state.
func (st *StateType[T]) OnPause(v T) Criteria {
	return func(w donburi.World) bool { return st.Get(w).inTransition(TransitionPause, v) }
}

// OnResume passes during the pass in which v became current again after a
// pop.
func (st *StateType[T]) OnResume(v T) Criteria {
	return func(w donburi.World) bool { return st.Get(w).inTransition(TransitionResume, v) }
}

// OnUpdate passes while v is current and no transition is visible.
func (st *StateType[T]) OnUpdate(v T) Criteria {
	return func(w donburi.World) bool {
		s := st.Get(w)
		return len(s.active) == 0 && s.Current() == v
	}
}

// OnInactiveUpdate passes while v is paused below the current state and no
// transition is visible.
func (st *StateType[T]) OnInactiveUpdate(v T) Criteria {
	return func(w donburi.World) bool {
		s := st.Get(w)
		return len(s.active) == 0 && slices.Contains(s.stack[:len(s.stack)-1], v)
	}
}

// OnInStackUpdate passes while v is anywhere on the stack and no transition
// is visible.
func (st *StateType[T]) OnInStackUpdate(v T) Criteria {
	return func(w donburi.World) bool {
		s := st.Get(w)
		return len(s.active) == 0 && slices.Contains(s.stack, v)
	}
}

// StateDriver is implemented by *StateType. App.AddRenderState uses it to
// make a state machine's run criteria work inside the render schedule.
type StateDriver interface {
	RunFullSearch(w donburi.World)
	RenderDriver() *SystemSet
	trackRender()
}
