package runtime

import (
	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/require"

	"github.com/riftbound/script-runtime/ecs"
)

// moduleLoader builds the native "ecs" module exposed to scripts:
//
//	Position                 constructible shared component, fields x/y
//	position.assign_to(e)    bind the instance into the entity's native slot
//	Position.get_component(e) existing instance or null, never creates
//	Collision                pairwise event value, fields a/b
//
// Wrappers close over the shared *ecs.Position; no copy is made when a
// handle crosses the boundary in either direction.
func (r *Runtime) moduleLoader() require.ModuleLoader {
	return func(vm *goja.Runtime, module *goja.Object) {
		exports := module.Get("exports").(*goja.Object)

		posCtor := vm.ToValue(func(call goja.ConstructorCall) *goja.Object {
			pos := &ecs.Position{}
			// each coordinate defaults independently
			if len(call.Arguments) > 0 && !goja.IsUndefined(call.Arguments[0]) {
				pos.X = call.Arguments[0].ToFloat()
			}
			if len(call.Arguments) > 1 && !goja.IsUndefined(call.Arguments[1]) {
				pos.Y = call.Arguments[1].ToFloat()
			}
			return r.wrapPosition(vm, pos)
		}).(*goja.Object)

		_ = posCtor.Set("get_component", func(call goja.FunctionCall) goja.Value {
			e := entityArg(vm, call.Argument(0), "Position.get_component")
			pos, ok := ecs.Get[*ecs.Position](r.world, e)
			if !ok {
				return goja.Null()
			}
			return r.wrapPosition(vm, pos)
		})

		_ = exports.Set("Position", posCtor)

		_ = exports.Set("Collision", vm.ToValue(func(call goja.ConstructorCall) *goja.Object {
			a := entityArg(vm, call.Argument(0), "Collision")
			b := entityArg(vm, call.Argument(1), "Collision")
			return vm.ToValue(ecs.Collision{A: a, B: b}).ToObject(vm)
		}))
	}
}

// wrapPosition builds the script-visible view over a shared component.
// The accessor properties read and write the one instance the native store
// holds, so a mutation through either side is immediately visible through
// the other.
func (r *Runtime) wrapPosition(vm *goja.Runtime, pos *ecs.Position) *goja.Object {
	obj := vm.NewObject()

	_ = obj.DefineAccessorProperty("x",
		vm.ToValue(func(goja.FunctionCall) goja.Value { return vm.ToValue(pos.X) }),
		vm.ToValue(func(call goja.FunctionCall) goja.Value {
			pos.X = call.Argument(0).ToFloat()
			return goja.Undefined()
		}),
		goja.FLAG_FALSE, goja.FLAG_TRUE)

	_ = obj.DefineAccessorProperty("y",
		vm.ToValue(func(goja.FunctionCall) goja.Value { return vm.ToValue(pos.Y) }),
		vm.ToValue(func(call goja.FunctionCall) goja.Value {
			pos.Y = call.Argument(0).ToFloat()
			return goja.Undefined()
		}),
		goja.FLAG_FALSE, goja.FLAG_TRUE)

	// assignment is idempotent-creating: a missing native slot is created,
	// an existing one is replaced with this instance
	_ = obj.Set("assign_to", func(call goja.FunctionCall) goja.Value {
		e := entityArg(vm, call.Argument(0), "assign_to")
		ecs.Set(r.world, e, pos)
		return goja.Undefined()
	})

	return obj
}

// entityArg extracts an entity handle argument or throws a TypeError into
// the calling script.
func entityArg(vm *goja.Runtime, v goja.Value, op string) ecs.Entity {
	if v != nil {
		if e, ok := v.Export().(ecs.Entity); ok {
			return e
		}
	}
	panic(vm.NewTypeError("%s: argument is not an entity handle", op))
}
