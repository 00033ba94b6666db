// Package lua runs user pattern scripts: small Lua files that append
// chord patterns after the built-in decision list. Scripts run in a
// restricted state with no file, network, or process access, and a
// timeout so a runaway script cannot wedge startup.
package lua

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/tabstorm/internal/tab/chord"
)

// scriptTimeout bounds each pattern script's execution.
const scriptTimeout = 2 * time.Second

// LoadPatterns executes every .lua file in dir (sorted by name, so
// registration order is stable) and returns the patterns they declare,
// keyed by note count in declaration order. A missing directory yields
// no patterns and no error.
func LoadPatterns(dir string) (map[int][]chord.Pattern, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := map[int][]chord.Pattern{}
	for _, name := range names {
		if err := runScript(filepath.Join(dir, name), out); err != nil {
			return nil, fmt.Errorf("pattern script %s: %w", name, err)
		}
	}
	return out, nil
}

// runScript executes one script, collecting tabstorm.pattern calls.
func runScript(path string, out map[int][]chord.Pattern) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	// Base and table libraries only; no io, os, or debug.
	for _, open := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(open.fn))
		L.Push(lua.LString(open.name))
		L.Call(1, 0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	L.SetContext(ctx)

	mod := L.NewTable()
	L.SetField(mod, "pattern", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		p, count, err := patternFromTable(tbl)
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		out[count] = append(out[count], p)
		return 0
	}))
	L.SetGlobal("tabstorm", mod)

	return L.DoString(string(src))
}

// patternFromTable decodes one pattern declaration:
//
//	tabstorm.pattern{
//	    count = 4,
//	    intervals = {4, 7, 10},
//	    name = "7",
//	    disclaimer = "",
//	    degrees = {[2] = "9"},
//	}
func patternFromTable(tbl *lua.LTable) (chord.Pattern, int, error) {
	var p chord.Pattern

	count := int(lua.LVAsNumber(tbl.RawGetString("count")))
	if count < 1 || count > 6 {
		return p, 0, fmt.Errorf("count must be 1..6, got %d", count)
	}

	if ivs, ok := tbl.RawGetString("intervals").(*lua.LTable); ok {
		ivs.ForEach(func(_, v lua.LValue) {
			p.Intervals = append(p.Intervals, int(lua.LVAsNumber(v)))
		})
	}
	for i := 1; i < len(p.Intervals); i++ {
		if p.Intervals[i] <= p.Intervals[i-1] {
			return p, 0, fmt.Errorf("intervals must be distinct and ascending")
		}
	}
	for _, iv := range p.Intervals {
		if iv < 1 || iv > 11 {
			return p, 0, fmt.Errorf("interval %d out of range 1..11", iv)
		}
	}
	if len(p.Intervals)+1 != count && len(p.Intervals) > 0 {
		return p, 0, fmt.Errorf("%d intervals do not fit a %d-note pattern", len(p.Intervals), count)
	}

	p.Name = lua.LVAsString(tbl.RawGetString("name"))
	p.Disclaimer = lua.LVAsString(tbl.RawGetString("disclaimer"))

	if degrees, ok := tbl.RawGetString("degrees").(*lua.LTable); ok {
		p.Degrees = map[int]string{}
		degrees.ForEach(func(k, v lua.LValue) {
			p.Degrees[int(lua.LVAsNumber(k))] = lua.LVAsString(v)
		})
	}
	return p, count, nil
}
