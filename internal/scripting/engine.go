package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/agentgrid/gridindex/internal/geom"
	"github.com/agentgrid/gridindex/internal/world"
)

// Engine wraps a single gopher-lua VM holding accept predicates for
// nearest-neighbour queries. Single-goroutine access only.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir,
// in name order. A missing directory loads nothing.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if scriptsDir == "" {
		return e, nil
	}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
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
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
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

// LoadString runs a chunk of Lua source in the engine.
func (e *Engine) LoadString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load lua chunk: %w", err)
	}
	return nil
}

// Filter returns an accept predicate backed by the Lua global function
// name. The function is called as name(candidate, ref) with a table for
// each entity and must return a boolean; candidate.distance holds the
// boundary distance between the two. A Lua error rejects the candidate.
func (e *Engine) Filter(name string) (world.AcceptFunc, error) {
	fn, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("lua filter %q is not a function", name)
	}
	return func(candidate, ref world.Entity) bool {
		c := e.entityTable(candidate)
		c.RawSetString("distance", lua.LNumber(world.Distance(candidate, ref)))
		if err := e.vm.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, c, e.entityTable(ref)); err != nil {
			e.log.Error("lua filter error", zap.String("func", name), zap.Error(err))
			return false
		}
		result := e.vm.Get(-1)
		e.vm.Pop(1)
		return lua.LVAsBool(result)
	}, nil
}

// entityTable packs an entity's kind and geometry for Lua.
func (e *Engine) entityTable(ent world.Entity) *lua.LTable {
	t := e.vm.NewTable()
	t.RawSetString("kind", lua.LString(ent.Kind().String()))
	switch s := ent.Shape().(type) {
	case geom.Circle:
		t.RawSetString("x", lua.LNumber(s.X))
		t.RawSetString("y", lua.LNumber(s.Y))
		t.RawSetString("radius", lua.LNumber(s.Radius))
	case geom.Rect:
		p := s.Centroid()
		t.RawSetString("x", lua.LNumber(p.X))
		t.RawSetString("y", lua.LNumber(p.Y))
		t.RawSetString("x_min", lua.LNumber(s.XMin))
		t.RawSetString("x_max", lua.LNumber(s.XMax))
		t.RawSetString("y_min", lua.LNumber(s.YMin))
		t.RawSetString("y_max", lua.LNumber(s.YMax))
	}
	switch v := ent.(type) {
	case *world.Actor:
		t.RawSetString("id", lua.LNumber(v.ID().Index()))
	case *world.Zone:
		t.RawSetString("id", lua.LNumber(v.ID().Index()))
	case *world.Cell:
		t.RawSetString("index", lua.LNumber(v.Index()))
		t.RawSetString("checker", lua.LNumber(v.Checker()))
	}
	return t
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
