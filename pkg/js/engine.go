// Package js executes page scripts against a parsed document and exposes
// the lazy-loading controller to them as a LazyLoad constructor, so pages
// can configure deferred image loading the same way they would in a
// browser.
package js

import (
	"fmt"
	"os"
	"strings"

	"unveil/pkg/html"
	"unveil/pkg/lazy"

	"github.com/dop251/goja"
)

// Engine runs document scripts on a goja runtime. Host options are
// prepended to every controller a script constructs; this is how the
// embedder supplies the collaborators scripts cannot (viewport, element
// bounds, the loader, the scroll/resize event source).
type Engine struct {
	vm    *goja.Runtime
	host  []lazy.Option
	ctrls []*lazy.Controller
}

// New creates an engine. The host options are applied to every
// script-created controller before the script's own option object.
func New(host ...lazy.Option) *Engine {
	vm := goja.New()
	e := &Engine{vm: vm, host: host}
	registerConsole(vm)
	return e
}

// Execute binds the document and runs its scripts in document order. The
// first script error stops execution.
func (e *Engine) Execute(doc *html.Document) error {
	ctx := newBindingContext(e.vm, doc)
	registerDocument(ctx)
	registerLazyLoad(e, ctx)

	for i, script := range doc.Scripts {
		if _, err := e.vm.RunString(script); err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
	}
	return nil
}

// Controllers returns every controller the executed scripts constructed,
// in creation order. The embedder owns their shutdown.
func (e *Engine) Controllers() []*lazy.Controller {
	return e.ctrls
}

// Close destroys every script-created controller.
func (e *Engine) Close() {
	for _, c := range e.ctrls {
		c.Destroy()
	}
	e.ctrls = nil
}

// registerConsole installs console.log/warn/error. Log goes to stdout,
// warn and error to stderr.
func registerConsole(vm *goja.Runtime) {
	join := func(args []goja.Value) string {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		return strings.Join(parts, " ")
	}

	console := vm.NewObject()
	console.Set("log", func(call goja.FunctionCall) goja.Value {
		fmt.Println(join(call.Arguments))
		return goja.Undefined()
	})
	console.Set("warn", func(call goja.FunctionCall) goja.Value {
		fmt.Fprintln(os.Stderr, "WARN:", join(call.Arguments))
		return goja.Undefined()
	})
	console.Set("error", func(call goja.FunctionCall) goja.Value {
		fmt.Fprintln(os.Stderr, "ERROR:", join(call.Arguments))
		return goja.Undefined()
	})
	vm.Set("console", console)
}
