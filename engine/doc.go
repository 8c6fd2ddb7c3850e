// Package engine wraps the embedded JavaScript runtime (goja) behind the
// small surface the scripting layer needs: import a module by name against
// configured search paths, instantiate an exported class, read attributes,
// check truthiness, and call methods.
//
// Every boundary crossing converts JavaScript exceptions into structured
// errors and clears the interpreter's pending interrupt state, so one
// failing script cannot poison later calls on the same VM.
//
// The VM is a single shared interpreter state. All Engine entry points
// serialize on one mutex; native callbacks running inside script execution
// must not call back into the Engine API (they operate on the world and bus
// directly), so the lock is never taken recursively.
//
// After Close, every operation fails with a stale-reference error rather
// than touching the torn-down VM.
package engine
