package engine

import (
	"sync"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
	"go.uber.org/zap"

	"github.com/riftbound/script-runtime/errors"
)

// Config holds engine construction parameters.
type Config struct {
	// SearchPaths is the ordered list of directories module names are
	// resolved against. A name like "enemy_ai" loads "<path>/enemy_ai.js"
	// from the first path that has it.
	SearchPaths []string
}

// Engine owns one goja VM and its module registry.
type Engine struct {
	mu       sync.Mutex
	vm       *goja.Runtime
	registry *require.Registry
	req      *require.RequireModule
	log      *zap.Logger
	closed   bool
}

// New creates a VM with the require registry configured for the given
// search paths. Native modules must be registered before the first Import.
func New(cfg Config) (*Engine, error) {
	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("js", true))

	registry := require.NewRegistry(require.WithGlobalFolders(cfg.SearchPaths...))
	req := registry.Enable(vm)
	console.Enable(vm)

	return &Engine{
		vm:       vm,
		registry: registry,
		req:      req,
		log:      Logger(),
	}, nil
}

// RegisterModule registers a native module resolvable by name from scripts.
// Must be called before any script imports the module.
func (e *Engine) RegisterModule(name string, loader require.ModuleLoader) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errors.StaleReference("register module " + name)
	}
	e.registry.RegisterNativeModule(name, loader)
	return nil
}

// Import resolves and executes the named module, returning its exports.
// Importing the same module twice is idempotent; the registry caches the
// executed module per VM.
func (e *Engine) Import(module string) (*goja.Object, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.importLocked(module)
}

func (e *Engine) importLocked(module string) (*goja.Object, error) {
	if e.closed {
		return nil, errors.StaleReference("import " + module)
	}
	exports, err := e.req.Require(module)
	if err != nil {
		e.clearPending()
		return nil, errors.ImportFailure(module, err)
	}
	obj, ok := exports.(*goja.Object)
	if !ok {
		return nil, errors.ImportFailure(module, errors.InvalidInput(errors.PhaseImport, "module exports is not an object"))
	}
	return obj, nil
}

// Instantiate imports the module, resolves the exported class and constructs
// an instance with the given arguments. No state is retained on failure.
func (e *Engine) Instantiate(module, class string, args ...goja.Value) (*goja.Object, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	exports, err := e.importLocked(module)
	if err != nil {
		return nil, err
	}

	ctor := exports.Get(class)
	if ctor == nil || goja.IsUndefined(ctor) || goja.IsNull(ctor) {
		return nil, errors.ClassNotFound(module, class)
	}

	obj, err := e.vm.New(ctor, args...)
	if err != nil {
		e.clearPending()
		e.log.Debug("constructor raised",
			zap.String("module", module),
			zap.String("class", class),
			zap.Error(err))
		return nil, errors.Construction(module, class, err)
	}
	return obj, nil
}

// Attr reads a named attribute off a script object. Absence is reported as
// false, never as an error.
func (e *Engine) Attr(obj *goja.Object, name string) (goja.Value, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || obj == nil {
		return nil, false
	}
	v := obj.Get(name)
	if v == nil || goja.IsUndefined(v) {
		return nil, false
	}
	return v, true
}

// Truthy reports whether the value is truthy under JavaScript semantics.
func (e *Engine) Truthy(v goja.Value) bool {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return false
	}
	return v.ToBoolean()
}

// Call invokes a named method on the object with positional arguments.
// Callers check attribute presence first; a present but non-callable name
// is an invocation failure, not absence.
func (e *Engine) Call(obj *goja.Object, name string, args ...goja.Value) (goja.Value, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, errors.StaleReference("invoke " + name)
	}

	fn, ok := goja.AssertFunction(obj.Get(name))
	if !ok {
		return nil, errors.New(errors.PhaseInvoke, errors.KindInvocationFailure).
			Hook(name).
			Detail("attribute %q is not callable", name).
			Build()
	}

	res, err := fn(obj, args...)
	if err != nil {
		e.clearPending()
		e.log.Debug("hook raised", zap.String("hook", name), zap.Error(err))
		return nil, errors.Invocation(name, err)
	}
	return res, nil
}

// ToValue converts a Go value into a VM value. Returns undefined on a
// closed engine.
func (e *Engine) ToValue(v any) goja.Value {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return goja.Undefined()
	}
	return e.vm.ToValue(v)
}

// VM exposes the underlying runtime for native module loaders. Loaders run
// inside script execution, while the engine lock is already held by the
// outer call.
func (e *Engine) VM() *goja.Runtime {
	return e.vm
}

// Closed reports whether Close has been called.
func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Close tears down the VM. Further calls on the engine fail with a
// stale-reference error. Close is idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.vm.ClearInterrupt()
	e.vm = nil
	e.req = nil
}

// clearPending resets interpreter interrupt state after a captured
// exception so subsequent calls start clean.
func (e *Engine) clearPending() {
	e.vm.ClearInterrupt()
}
