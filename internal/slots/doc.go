// Package slots persists and resolves slot bindings.
//
// Every slot holds at most one of an app binding or a category binding.
// Writing one always clears the other. Category bindings exist only on the
// eight home slots. Resolve re-validates the bound package against the
// platform and reports a missing package as NOT_FOUND without touching the
// stored binding, so a reinstalled app reappears by itself.
package slots
