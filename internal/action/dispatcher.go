package action

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/ayusman/mudra/internal/plugin"
)

// Dispatcher invokes the external capability configured for a triggered
// gesture and reports whether the action was actually performed. Every
// capability fault is contained here: nothing a capability does may
// propagate into the tick loop.
type Dispatcher struct {
	browser    Browser
	launcher   Launcher
	speaker    Speaker // nil when no speech command is available
	resolver   *Resolver
	plugins    *plugin.Manager // nil when plugins are not configured
	pluginExec *plugin.Executor
}

// Options configures a Dispatcher. Nil Browser, Launcher and Resolver
// fields fall back to the platform defaults; a nil Speaker disables
// speech; nil Plugins disables the plugin action kind.
type Options struct {
	Browser    Browser
	Launcher   Launcher
	Speaker    Speaker
	Resolver   *Resolver
	Plugins    *plugin.Manager
	PluginExec *plugin.Executor
}

// NewDispatcher creates a Dispatcher from the given options.
func NewDispatcher(opts Options) *Dispatcher {
	d := &Dispatcher{
		browser:    opts.Browser,
		launcher:   opts.Launcher,
		speaker:    opts.Speaker,
		resolver:   opts.Resolver,
		plugins:    opts.Plugins,
		pluginExec: opts.PluginExec,
	}
	if d.browser == nil {
		d.browser = NewBrowser()
	}
	if d.launcher == nil {
		d.launcher = NewLauncher()
	}
	if d.resolver == nil {
		d.resolver = NewResolver(DefaultLookupTable())
	}
	return d
}

// Dispatch performs the configured action and returns true only when it
// was actually performed. NoOp and unmapped actions return false so that
// they never consume the cooldown window.
func (d *Dispatcher) Dispatch(desc Descriptor) (acted bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("action %s panicked: %v", desc.Kind, r)
			acted = false
		}
	}()

	switch desc.Kind {
	case KindNoOp, "":
		return false

	case KindOpenURL:
		return d.openURL(desc.Parameter)

	case KindOpenProgram:
		return d.openProgram(desc.Parameter)

	case KindSayText:
		return d.sayText(desc.Parameter)

	case KindPlugin:
		return d.runPlugin(desc.Parameter)

	default:
		log.Printf("unknown action kind %q", desc.Kind)
		return false
	}
}

func (d *Dispatcher) openURL(url string) bool {
	if url == "" {
		log.Print("open_url mapping has no URL configured")
		return false
	}
	if err := d.browser.OpenURL(url); err != nil {
		log.Printf("could not open %s: %v", url, err)
		return false
	}
	d.confirm("Opening website.")
	return true
}

func (d *Dispatcher) openProgram(name string) bool {
	if name == "" {
		log.Print("open_program mapping has no program configured")
		return false
	}

	path, ok := d.resolver.Resolve(name)
	if !ok {
		log.Printf("no executable found for %q", name)
		return false
	}
	if err := d.launcher.Start(path); err != nil {
		log.Printf("could not launch %s: %v", path, err)
		return false
	}
	d.confirm("Opening program.")
	return true
}

// sayText speaks the parameter. An absent speaker means the action has no
// observable effect, so it must not count as acted; a present speaker that
// errors still does, as feedback is best-effort.
func (d *Dispatcher) sayText(text string) bool {
	if d.speaker == nil {
		log.Print("say_text configured but speech is unavailable")
		return false
	}
	if text == "" {
		log.Print("say_text mapping has no text configured")
		return false
	}
	if err := d.speaker.Say(text); err != nil {
		log.Printf("speech failed: %v", err)
	}
	return true
}

// runPlugin executes a discovered plugin. The parameter has the form
// "name/action".
func (d *Dispatcher) runPlugin(param string) bool {
	if d.plugins == nil || d.pluginExec == nil {
		log.Print("plugin action configured but plugins are not enabled")
		return false
	}

	name, actionName, ok := strings.Cut(param, "/")
	if !ok || name == "" || actionName == "" {
		log.Printf("invalid plugin parameter %q, expected name/action", param)
		return false
	}

	p, err := d.plugins.Get(name)
	if err != nil {
		log.Printf("plugin %q: %v", name, err)
		return false
	}

	resp, err := d.pluginExec.Execute(p, &plugin.Request{
		Action: actionName,
		Config: json.RawMessage("{}"),
		Params: json.RawMessage("{}"),
	})
	if err != nil {
		log.Printf("plugin %q: %v", name, err)
		return false
	}
	if !resp.Success {
		log.Printf("plugin %q reported failure: %s", name, resp.Error)
		return false
	}

	d.confirm("Action performed.")
	return true
}

// confirm speaks a short acknowledgement after a performed action.
// Advisory only: errors are logged and ignored.
func (d *Dispatcher) confirm(text string) {
	if d.speaker == nil {
		return
	}
	if err := d.speaker.Say(text); err != nil {
		log.Printf("confirmation speech failed: %v", err)
	}
}
