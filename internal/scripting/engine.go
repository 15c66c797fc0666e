// Package scripting runs before-combat skill effects written in Lua.
//
// A skill whose before_combat effect is "lua:<fn>" calls the global Lua
// function fn with a context table describing the combat:
//
//	ctx.side      "attacker" or "defender", the side owning the skill
//	ctx.range     distance between the combatants
//	ctx.attacker  {atk, hit, avo, crit, ddg, prt, rsl, as, hp}
//	ctx.defender  same fields for the defender
//
// The function returns a table (or nil). Keys of the form <stat>_<side>,
// such as atk_attacker or crit_defender, overwrite that battle value. An
// "activate" key adds an activate_skill record named by its value, with
// the optional "data" key as payload.
package scripting

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/game/combat"
)

// APIVersion is exposed to scripts as the API_VERSION global.
const APIVersion = 1

// Engine wraps a single Lua VM. Calls are serialized because arenas are
// processed from many goroutines.
type Engine struct {
	mu sync.Mutex
	vm *lua.LState
}

// NewEngine creates an empty engine with the standard Lua libraries open.
func NewEngine() *Engine {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))
	return &Engine{vm: vm}
}

// LoadDir creates an engine and runs every .lua file in dir in name order.
// An empty dir yields an engine without functions.
func LoadDir(dir string) (*Engine, error) {
	e := NewEngine()
	if dir == "" {
		return e, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("read scripts dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := e.vm.DoFile(path); err != nil {
			e.Close()
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		slog.Debug("loaded lua script", "file", path)
	}
	return e, nil
}

// LoadString runs src in the engine, typically to define functions.
func (e *Engine) LoadString(src string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load lua source: %w", err)
	}
	return nil
}

// Has reports whether fn is a global Lua function.
func (e *Engine) Has(fn string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.vm.GetGlobal(fn).(*lua.LFunction)
	return ok
}

// Close releases the VM.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vm.Close()
}

// BeforeCombat calls fn for the skill owner on side and applies what it
// returns to s.
func (e *Engine) BeforeCombat(fn string, s *combat.Session, side combat.Side) (actionlog.Log, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	f, ok := e.vm.GetGlobal(fn).(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("lua function %q not found", fn)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      f,
		NRet:    1,
		Protect: true,
	}, e.context(s, side)); err != nil {
		return nil, fmt.Errorf("lua %s: %w", fn, err)
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)

	switch rt := ret.(type) {
	case *lua.LNilType:
		return nil, nil
	case *lua.LTable:
		return apply(fn, rt, s)
	default:
		return nil, fmt.Errorf("lua %s returned %s, want table", fn, ret.Type())
	}
}

func (e *Engine) context(s *combat.Session, side combat.Side) *lua.LTable {
	t := e.vm.NewTable()
	t.RawSetString("side", lua.LString(side.String()))
	t.RawSetString("range", lua.LNumber(s.Range))
	for _, sd := range []combat.Side{combat.SideAttacker, combat.SideDefender} {
		n := s.Numbers(sd)
		nt := e.vm.NewTable()
		nt.RawSetString("atk", lua.LNumber(n.Atk))
		nt.RawSetString("hit", lua.LNumber(n.Hit))
		nt.RawSetString("avo", lua.LNumber(n.Avo))
		nt.RawSetString("crit", lua.LNumber(n.Crit))
		nt.RawSetString("ddg", lua.LNumber(n.Ddg))
		nt.RawSetString("prt", lua.LNumber(n.Prt))
		nt.RawSetString("rsl", lua.LNumber(n.Rsl))
		nt.RawSetString("as", lua.LNumber(n.AS))
		nt.RawSetString("hp", lua.LNumber(s.Unit(sd).CurrentHP))
		t.RawSetString(sd.String(), nt)
	}
	return t
}

type setter func(s *combat.Session, side combat.Side, v int)

var setters = map[string]setter{
	"atk":  (*combat.Session).SetAtk,
	"hit":  (*combat.Session).SetHit,
	"avo":  (*combat.Session).SetAvo,
	"crit": (*combat.Session).SetCrit,
	"ddg":  (*combat.Session).SetDdg,
	"prt":  (*combat.Session).SetPrt,
	"rsl":  (*combat.Session).SetRsl,
}

// apply writes the returned values in a fixed order so scripts behave the
// same regardless of Lua table iteration.
func apply(fn string, rt *lua.LTable, s *combat.Session) (actionlog.Log, error) {
	for _, stat := range []string{"atk", "hit", "avo", "crit", "ddg", "prt", "rsl"} {
		for _, side := range []combat.Side{combat.SideAttacker, combat.SideDefender} {
			key := stat + "_" + side.String()
			v := rt.RawGetString(key)
			if v == lua.LNil {
				continue
			}
			num, ok := v.(lua.LNumber)
			if !ok {
				return nil, fmt.Errorf("lua %s: %s is %s, want number", fn, key, v.Type())
			}
			setters[stat](s, side, int(num))
		}
	}

	act := rt.RawGetString("activate")
	if act == lua.LNil {
		return nil, nil
	}
	rec := actionlog.ActivateSkill{Skill: lua.LVAsString(act), Show: true}
	switch d := rt.RawGetString("data").(type) {
	case lua.LNumber:
		rec.Data = int(d)
	case lua.LString:
		rec.Data = string(d)
	case lua.LBool:
		rec.Data = bool(d)
	}
	return actionlog.Log{rec}, nil
}
