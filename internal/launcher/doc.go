// Package launcher is the UI-facing facade of the launcher core.
//
// A Launcher wires the app index, filter engine, slot model and funnel to
// one injected preference store and one Device. Every operation returns a
// value for the caller to act on: a Listing to render, an Effect (launch
// performed, drawer to open, notice to show), or a funnel Dialog. Domain
// failures are *apps.Error values whose Notice is the user-visible text.
package launcher
