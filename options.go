// options.go
//
// Component I (config), per SPEC_FULL §2: pass-level options threaded by
// value into the scope creator and inference engine. No env vars, no
// files, no global state — the core takes no I/O (spec.md §6).
package tscore

// Options configures one run of scope construction and inference.
type Options struct {
	// FlagExternProperties, when true (the default), marks every property
	// declared while walking the externs AST as FromExtern. Turning it off
	// is useful for tests that want to exercise the merge rules without an
	// externs/source split.
	FlagExternProperties bool

	// StrictTemplateArity, when true, makes evalCall refuse to substitute a
	// template parameter left unbound by a call site's arguments, returning
	// No instead of silently falling back to Unknown. Off by default to
	// match spec.md §4.G's defensive "operations on Unknown produce
	// Unknown" policy.
	StrictTemplateArity bool

	// WindowDetectionName overrides the constructor name ("Window" by
	// default) that triggers the GlobalThis-subtype-of-Window rule in
	// spec.md §4.D.
	WindowDetectionName string
}

// DefaultOptions returns the options a plain analysis run should use when
// the caller has no specific overrides.
func DefaultOptions() Options {
	return Options{
		FlagExternProperties: true,
		StrictTemplateArity:  false,
		WindowDetectionName:  "Window",
	}
}
