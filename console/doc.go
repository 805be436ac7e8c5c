// Package console defines the roguelike console that burrow drives: a grid of
// character cells, and the contract between an event loop that owns that
// console and the engine it calls back into.
//
// A loop calls [Engine.Update] once per tick, [Engine.Render] once per frame
// and [Engine.Resize] whenever the screen size changes, passing an [API]
// handle that is only valid for the duration of the call. Three loops are
// provided:
//
//   - console/terminal runs in a terminal through tcell.
//   - console/window opens an OS window through Ebitengine.
//   - console/headless runs in-process without any display, for tests and
//     scripted runs.
package console
