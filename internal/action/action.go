// Package action maps triggered finger counts onto external capabilities:
// browser, program launcher, speech and plugins.
package action

// Kind identifies the type of action bound to a finger count.
type Kind string

const (
	// KindNoOp performs nothing and never counts as acted.
	KindNoOp Kind = "noop"
	// KindOpenURL opens a URL in the default browser.
	KindOpenURL Kind = "open_url"
	// KindOpenProgram resolves and launches an executable.
	KindOpenProgram Kind = "open_program"
	// KindSayText speaks the parameter through the speech capability.
	KindSayText Kind = "say_text"
	// KindPlugin executes a discovered plugin, parameter "name/action".
	KindPlugin Kind = "plugin"
)

// Valid reports whether k is a recognized action kind.
func (k Kind) Valid() bool {
	switch k {
	case KindNoOp, KindOpenURL, KindOpenProgram, KindSayText, KindPlugin:
		return true
	}
	return false
}

// Descriptor describes one configured action. Descriptors are immutable
// configuration values keyed by finger count.
type Descriptor struct {
	Kind      Kind   `json:"kind" yaml:"kind"`
	Parameter string `json:"parameter,omitempty" yaml:"parameter,omitempty"`
}

// NoOp is the descriptor used for unmapped finger counts.
var NoOp = Descriptor{Kind: KindNoOp}
