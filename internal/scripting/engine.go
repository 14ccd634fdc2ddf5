package scripting

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

//go:embed scripts/combat.lua
var defaultCombat string

// Engine wraps a single gopher-lua VM holding the combat damage formulas.
// Single-goroutine access only (simulation loop). The embedded defaults load
// first; scripts from an optional directory load after and may redefine any
// formula, so operators can retune combat without rebuilding.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates the VM, loads the embedded defaults, then applies
// overrides from scriptsDir ("" = defaults only).
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	if err := vm.DoString(defaultCombat); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load embedded combat script: %w", err)
	}
	if scriptsDir != "" {
		if err := e.loadDir(scriptsDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load combat scripts: %w", err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// ContactDamage calls Lua calc_contact_damage(ctx).
func (e *Engine) ContactDamage(base, mult float64) float64 {
	return e.callDamage("calc_contact_damage", base, mult)
}

// ProjectileDamage calls Lua calc_projectile_damage(ctx).
func (e *Engine) ProjectileDamage(base, mult float64) float64 {
	return e.callDamage("calc_projectile_damage", base, mult)
}

// callDamage invokes a formula with a {base, mult} context table. Any
// failure (missing function, runtime error, non-number result) falls back
// to base*mult so combat never stalls on a bad script.
func (e *Engine) callDamage(name string, base, mult float64) float64 {
	fallback := base * mult

	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return fallback
	}

	t := e.vm.NewTable()
	t.RawSetString("base", lua.LNumber(base))
	t.RawSetString("mult", lua.LNumber(mult))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua formula returned non-number", zap.String("func", name))
		return fallback
	}
	dmg := float64(n)
	if dmg < 0 {
		return 0
	}
	return dmg
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
