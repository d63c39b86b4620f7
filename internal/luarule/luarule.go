// Package luarule compiles Lua-scripted normalization rules.
//
// Hosts extend descriptor tables without recompiling by supplying a Lua
// chunk that evaluates to function(ev) -> value. The function receives
// the native event as an object whose fields resolve through the same
// tolerant lookup the built-in rules use: an absent field is nil, never
// an error. Evaluation failures inside a rule likewise normalize to
// nil, matching the construction guarantee that descriptor-table
// application never fails.
package luarule

import (
	"errors"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/termflux/internal/native"
	"github.com/dshills/termflux/internal/synth"
)

// ErrNotAFunction is returned when a rule chunk does not evaluate to a
// Lua function.
var ErrNotAFunction = errors.New("rule chunk must evaluate to a function")

const eventTypeName = "termflux.native"

// Engine owns the Lua state rule scripts run in. Rules compiled from
// one engine share that state and must only run on the dispatch thread,
// like every other normalization rule.
type Engine struct {
	state *lua.LState
}

// NewEngine creates an engine with a fresh Lua state.
func NewEngine() *Engine {
	L := lua.NewState()
	e := &Engine{state: L}

	mt := L.NewTypeMetatable(eventTypeName)
	L.SetField(mt, "__index", L.NewFunction(e.indexNative))
	return e
}

// Close releases the Lua state. Rules compiled from the engine must not
// run after Close.
func (e *Engine) Close() {
	e.state.Close()
}

// Compile evaluates a chunk that must yield function(ev) -> value and
// wraps it as a normalization rule. name labels the chunk in Lua error
// messages.
func (e *Engine) Compile(name, script string) (synth.Rule, error) {
	fn, err := e.state.Load(strings.NewReader(script), name)
	if err != nil {
		return nil, fmt.Errorf("compile rule %s: %w", name, err)
	}

	e.state.Push(fn)
	if err := e.state.PCall(0, 1, nil); err != nil {
		return nil, fmt.Errorf("evaluate rule chunk %s: %w", name, err)
	}
	ruleFn, ok := e.state.Get(-1).(*lua.LFunction)
	e.state.Pop(1)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAFunction, name)
	}

	return func(nev native.Event) any {
		e.state.Push(ruleFn)
		e.state.Push(e.wrapNative(nev))
		if err := e.state.PCall(1, 1, nil); err != nil {
			return nil
		}
		lv := e.state.Get(-1)
		e.state.Pop(1)
		return toGoValue(lv)
	}, nil
}

// wrapNative exposes a native event to Lua as userdata whose field
// reads go through Event.Field.
func (e *Engine) wrapNative(nev native.Event) lua.LValue {
	if nev == nil {
		return lua.LNil
	}
	ud := e.state.NewUserData()
	ud.Value = nev
	e.state.SetMetatable(ud, e.state.GetTypeMetatable(eventTypeName))
	return ud
}

// indexNative is the __index metamethod for wrapped native events.
func (e *Engine) indexNative(L *lua.LState) int {
	ud := L.CheckUserData(1)
	name := L.CheckString(2)

	nev, ok := ud.Value.(native.Event)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	v, ok := nev.Field(name)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(toLuaValue(L, v))
	return 1
}

// toLuaValue converts a native field value to Lua. Unconvertible values
// surface as nil so rules degrade instead of failing.
func toLuaValue(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int32:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case uint64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	default:
		ud := L.NewUserData()
		ud.Value = val
		return ud
	}
}

// toGoValue converts a rule's Lua result back to Go.
func toGoValue(lv lua.LValue) any {
	switch v := lv.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}
