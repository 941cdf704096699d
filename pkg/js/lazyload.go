package js

import (
	"strconv"
	"time"

	"unveil/pkg/html"
	"unveil/pkg/lazy"

	"github.com/dop251/goja"
)

// registerLazyLoad installs the global LazyLoad constructor:
//
//	var ll = new LazyLoad('img[data-src]', {threshold: 100, onStateChange: fn});
//	ll.addOrUpdate('.late');
//	ll.destroy();
//
// The host options configured on the engine come first, so scripts cannot
// replace the loader or the geometry collaborators, only tune behavior on
// top of them.
func registerLazyLoad(e *Engine, ctx *bindingContext) {
	vm := ctx.vm

	vm.Set("LazyLoad", func(call goja.ConstructorCall) *goja.Object {
		var descriptor any
		if len(call.Arguments) > 0 {
			descriptor = ctx.descriptor(call.Arguments[0])
		}

		opts := e.host
		if len(call.Arguments) > 1 {
			opts = append(append([]lazy.Option{}, e.host...), parseOptions(ctx, call.Arguments[1])...)
		}

		ctrl := lazy.New(ctx.doc, descriptor, opts...)
		e.ctrls = append(e.ctrls, ctrl)

		this := call.This
		this.Set("addOrUpdate", func(call goja.FunctionCall) goja.Value {
			var d any
			if len(call.Arguments) > 0 {
				d = ctx.descriptor(call.Arguments[0])
			}
			ctrl.AddOrUpdate(d)
			return goja.Undefined()
		})
		this.Set("remove", func(call goja.FunctionCall) goja.Value {
			var d any
			if len(call.Arguments) > 0 {
				d = ctx.descriptor(call.Arguments[0])
			}
			ctrl.Remove(d)
			return goja.Undefined()
		})
		this.Set("clean", func(goja.FunctionCall) goja.Value {
			ctrl.Clean()
			return goja.Undefined()
		})
		this.Set("updateState", func(goja.FunctionCall) goja.Value {
			ctrl.UpdateState()
			return goja.Undefined()
		})
		this.Set("setOptions", func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) > 0 {
				ctrl.SetOptions(parseOptions(ctx, call.Arguments[0])...)
			}
			return goja.Undefined()
		})
		this.Set("destroy", func(goja.FunctionCall) goja.Value {
			ctrl.Destroy()
			return goja.Undefined()
		})
		return nil
	})
}

// descriptor converts a JS argument into a controller descriptor: a
// selector string, an element proxy, or an array of proxies.
func (ctx *bindingContext) descriptor(val goja.Value) any {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	if s, ok := val.Export().(string); ok {
		return s
	}
	if node := ctx.unwrapNode(val); node != nil {
		return node
	}

	obj := val.ToObject(ctx.vm)
	lengthVal := obj.Get("length")
	if lengthVal == nil || goja.IsUndefined(lengthVal) {
		return nil
	}
	n := int(lengthVal.ToInteger())
	nodes := make([]*html.Node, 0, n)
	for i := 0; i < n; i++ {
		if node := ctx.unwrapNode(obj.Get(strconv.Itoa(i))); node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// parseOptions maps a JS option object onto controller options. Unknown
// keys are ignored; milliseconds become durations.
func parseOptions(ctx *bindingContext, val goja.Value) []lazy.Option {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	obj := val.ToObject(ctx.vm)

	var opts []lazy.Option
	for _, key := range obj.Keys() {
		v := obj.Get(key)
		switch key {
		case "threshold":
			opts = append(opts, lazy.WithThreshold(v.ToFloat()))
		case "interval":
			opts = append(opts, lazy.WithInterval(time.Duration(v.ToInteger())*time.Millisecond))
		case "debounce":
			opts = append(opts, lazy.WithDebounce(v.ToBoolean()))
		case "reactive":
			opts = append(opts, lazy.WithReactive(v.ToBoolean()))
		case "eagerShowing":
			opts = append(opts, lazy.WithEagerShowing(v.ToBoolean()))
		case "onStateChange":
			fn, ok := goja.AssertFunction(v)
			if !ok {
				continue
			}
			opts = append(opts, lazy.WithOnStateChange(func(state lazy.LifecycleState, url string, el *html.Node, _ *lazy.Controller) {
				_, err := fn(goja.Undefined(),
					ctx.vm.ToValue(state.String()),
					ctx.vm.ToValue(url),
					ctx.elementProxy(el))
				if err != nil {
					panic(err)
				}
			}))
		}
	}
	return opts
}
