package js

import (
	"strconv"
	"strings"

	"unveil/pkg/css"
	"unveil/pkg/html"

	"github.com/dop251/goja"
)

// bindingContext holds shared state for one execution. The node-to-proxy
// cache keeps JS object identity stable: the same *html.Node always maps
// to the same proxy, so === comparisons behave.
type bindingContext struct {
	vm    *goja.Runtime
	doc   *html.Document
	cache map[*html.Node]goja.Value
}

func newBindingContext(vm *goja.Runtime, doc *html.Document) *bindingContext {
	return &bindingContext{
		vm:    vm,
		doc:   doc,
		cache: make(map[*html.Node]goja.Value),
	}
}

// registerDocument installs a minimal `document` global: the selector
// entry points scripts use to pick lazy-load targets.
func registerDocument(ctx *bindingContext) {
	vm := ctx.vm

	docObj := vm.NewObject()
	docObj.Set("querySelector", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		nodes := css.QueryAll(ctx.doc.Root, call.Arguments[0].String())
		if len(nodes) == 0 {
			return goja.Null()
		}
		return ctx.elementProxy(nodes[0])
	})
	docObj.Set("querySelectorAll", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return ctx.elementArray(nil)
		}
		return ctx.elementArray(css.QueryAll(ctx.doc.Root, call.Arguments[0].String()))
	})
	vm.Set("document", docObj)
}

func (ctx *bindingContext) elementArray(nodes []*html.Node) goja.Value {
	arr := ctx.vm.NewArray()
	for i, n := range nodes {
		arr.Set(strconv.Itoa(i), ctx.elementProxy(n))
	}
	arr.Set("length", len(nodes))
	return arr
}

// elementProxy creates (or retrieves from cache) the JS object wrapping a
// node.
func (ctx *bindingContext) elementProxy(node *html.Node) goja.Value {
	if v, ok := ctx.cache[node]; ok {
		return v
	}
	v := ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, node: node})
	ctx.cache[node] = v
	return v
}

// unwrapNode maps a JS value back to the node its proxy wraps, or nil for
// anything that is not a cached element proxy.
func (ctx *bindingContext) unwrapNode(val goja.Value) *html.Node {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	obj := val.ToObject(ctx.vm)
	for node, cached := range ctx.cache {
		if cached.SameAs(obj) {
			return node
		}
	}
	return nil
}

// elementAccessor implements goja.DynamicObject for element proxies. The
// surface is what lazy-load scripts and their state-change handlers
// actually touch: the tag, classes, and attributes.
type elementAccessor struct {
	ctx  *bindingContext
	node *html.Node
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.ctx.vm

	switch key {
	case "tagName":
		return vm.ToValue(strings.ToUpper(e.node.TagName))
	case "className":
		cls, _ := e.node.GetAttribute("class")
		return vm.ToValue(cls)
	case "src":
		src, _ := e.node.GetAttribute("src")
		return vm.ToValue(src)
	case "getAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Null()
			}
			val, ok := e.node.GetAttribute(call.Arguments[0].String())
			if !ok {
				return goja.Null()
			}
			return vm.ToValue(val)
		})
	case "setAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 2 {
				return goja.Undefined()
			}
			e.node.SetAttribute(call.Arguments[0].String(), call.Arguments[1].String())
			return goja.Undefined()
		})
	case "hasAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			_, ok := e.node.GetAttribute(call.Arguments[0].String())
			return vm.ToValue(ok)
		})
	}
	return goja.Undefined()
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	switch key {
	case "className":
		e.node.SetAttribute("class", val.String())
		return true
	case "src":
		e.node.SetAttribute("src", val.String())
		return true
	}
	return false
}

func (e *elementAccessor) Has(key string) bool {
	return !goja.IsUndefined(e.Get(key))
}

func (e *elementAccessor) Delete(key string) bool { return false }

func (e *elementAccessor) Keys() []string {
	return []string{"tagName", "className", "src"}
}
