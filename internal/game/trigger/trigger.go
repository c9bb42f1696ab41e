// Package trigger evaluates enemy logic conditions that happen to be
// machine-readable expressions, e.g. "hp < 3 and round >= 2". Conditions
// are hand-authored prose first and expressions second: evaluation failure
// is an expected outcome, and the caller keeps the condition display-only.
// Execution runs in a sandboxed GopherLua state with no game callbacks.
package trigger

import (
	"context"
	"fmt"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the maximum number of Lua opcodes allowed per
// condition evaluation. Conditions are one-liners; anything approaching
// this limit is runaway input.
const DefaultInstructionLimit = 10_000

// Env is the encounter state visible to a condition expression.
type Env struct {
	HP     int
	MaxHP  int
	Round  int
	Sanity *int
}

// countingContext cancels itself after Done() has been called limit times.
// GopherLua calls Done() once per opcode, making this an exact
// instruction-count limit.
type countingContext struct {
	context.Context
	cancel    context.CancelFunc
	remaining *atomic.Int64
}

func (c *countingContext) Done() <-chan struct{} {
	if c.remaining.Add(-1) <= 0 {
		c.cancel()
	}
	return c.Context.Done()
}

func newCountingContext(limit int) context.Context {
	base, cancel := context.WithCancel(context.Background())
	rem := &atomic.Int64{}
	rem.Store(int64(limit))
	return &countingContext{Context: base, cancel: cancel, remaining: rem}
}

// newSandboxedState creates a GopherLua state with only the safe stdlib
// loaded, dangerous globals stripped, and a deterministic opcode limit.
func newSandboxedState(instLimit int) *lua.LState {
	limit := instLimit
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require", "print"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetContext(newCountingContext(limit))
	return L
}

// Eval evaluates a condition expression against the encounter environment.
// The expression sees the globals hp, max_hp, round, and sanity (nil when
// the entity has no sanity track) and must produce a boolean.
//
// Postcondition: Returns (result, nil) for a boolean-valued expression, or
// (false, err) when the condition does not compile, errors, exceeds the
// instruction limit, or yields a non-boolean. Prose conditions land here
// and stay display-only.
func Eval(condition string, env Env) (bool, error) {
	if condition == "" {
		return false, fmt.Errorf("trigger: condition must not be empty")
	}

	L := newSandboxedState(DefaultInstructionLimit)
	defer L.Close()

	L.SetGlobal("hp", lua.LNumber(env.HP))
	L.SetGlobal("max_hp", lua.LNumber(env.MaxHP))
	L.SetGlobal("round", lua.LNumber(env.Round))
	if env.Sanity != nil {
		L.SetGlobal("sanity", lua.LNumber(*env.Sanity))
	}

	if err := L.DoString("return (" + condition + ")"); err != nil {
		return false, fmt.Errorf("trigger: evaluating %q: %w", condition, err)
	}

	result := L.Get(-1)
	L.Pop(1)
	b, ok := result.(lua.LBool)
	if !ok {
		return false, fmt.Errorf("trigger: condition %q yielded %s, want boolean", condition, result.Type())
	}
	return bool(b), nil
}

// Evaluable reports whether a condition compiles as an expression, without
// running it. The tracker uses this to decide whether to offer automatic
// trigger checks or show the condition as prose only.
func Evaluable(condition string) bool {
	if condition == "" {
		return false
	}
	L := newSandboxedState(DefaultInstructionLimit)
	defer L.Close()
	_, err := L.LoadString("return (" + condition + ")")
	return err == nil
}
