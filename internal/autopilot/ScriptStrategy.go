package autopilot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Mshel/snakepilot/internal/game"
	lua "github.com/yuin/gopher-lua"
)

const (
	scriptEntryPoint = "next_heading"

	// MaxScriptTime bounds a single call into a strategy script.
	MaxScriptTime = 50 * time.Millisecond
)

var ErrScriptStrategy = errors.New("script strategy")

// ScriptStrategy asks a Lua script for the next heading. The script must
// define next_heading(state) and return "left", "up", "right" or "down".
// It may call flood() to get the built-in planner's answer for the same
// state.
type ScriptStrategy struct {
	name    string
	mu      sync.Mutex
	state   *lua.LState
	current game.Snapshot
	timeout time.Duration
	closed  bool
}

// LoadScriptStrategy reads a strategy script from disk.
func LoadScriptStrategy(path string) (*ScriptStrategy, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrScriptStrategy, path, err)
	}
	return NewScriptStrategy(filepath.Base(path), string(source))
}

// NewScriptStrategy compiles source in a sandbox that only offers the base,
// table, string and math libraries.
func NewScriptStrategy(name, source string) (*ScriptStrategy, error) {
	s := &ScriptStrategy{
		name:    name,
		state:   lua.NewState(lua.Options{SkipOpenLibs: true}),
		timeout: MaxScriptTime,
	}

	if err := s.openLibs(); err != nil {
		s.state.Close()
		return nil, err
	}
	s.state.SetGlobal("flood", s.state.NewFunction(s.flood))

	if err := s.state.DoString(source); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("%w: could not parse %s: %w", ErrScriptStrategy, name, err)
	}
	if fn := s.state.GetGlobal(scriptEntryPoint); fn.Type() != lua.LTFunction {
		s.state.Close()
		return nil, fmt.Errorf("%w: %s does not define %s", ErrScriptStrategy, name, scriptEntryPoint)
	}

	return s, nil
}

func (s *ScriptStrategy) openLibs() error {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		err := s.state.CallByParam(lua.P{
			Fn:      s.state.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			return fmt.Errorf("%w: opening %q library: %w", ErrScriptStrategy, lib.name, err)
		}
	}
	for _, global := range []string{"dofile", "loadfile"} {
		s.state.SetGlobal(global, lua.LNil)
	}
	return nil
}

func (s *ScriptStrategy) Name() string { return s.name }

func (s *ScriptStrategy) NextHeading(snap game.Snapshot) (game.Heading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, fmt.Errorf("%w: %s is closed", ErrScriptStrategy, s.name)
	}

	s.current = snap
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.state.SetContext(ctx)
	defer s.state.RemoveContext()

	err := s.state.CallByParam(lua.P{
		Fn:      s.state.GetGlobal(scriptEntryPoint),
		NRet:    1,
		Protect: true,
	}, s.snapshotTable(snap))
	if err != nil {
		return 0, fmt.Errorf("%w: %s failed: %w", ErrScriptStrategy, s.name, err)
	}

	ret := s.state.Get(-1)
	s.state.Pop(1)
	if ret.Type() != lua.LTString {
		return 0, fmt.Errorf("%w: %s returned %s, expected a heading name", ErrScriptStrategy, s.name, ret.Type())
	}

	heading, err := game.ParseHeading(lua.LVAsString(ret))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrScriptStrategy, s.name, err)
	}
	return heading, nil
}

// Close releases the Lua state. Later NextHeading calls fail.
func (s *ScriptStrategy) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.state.Close()
}

// flood exposes PlanHeading to scripts. It returns the heading name, or nil
// and the failure message.
func (s *ScriptStrategy) flood(L *lua.LState) int {
	heading, err := FloodStrategy{}.NextHeading(s.current)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(heading.String()))
	return 1
}

func (s *ScriptStrategy) snapshotTable(snap game.Snapshot) *lua.LTable {
	L := s.state
	tbl := L.NewTable()
	tbl.RawSetString("width", lua.LNumber(snap.Size.Width))
	tbl.RawSetString("height", lua.LNumber(snap.Size.Height))
	tbl.RawSetString("food", cellTable(L, snap.Food))
	tbl.RawSetString("heading", lua.LString(snap.Heading.String()))
	tbl.RawSetString("score", lua.LNumber(snap.Score))

	snake := L.NewTable()
	for i, c := range snap.Snake {
		snake.RawSetInt(i+1, cellTable(L, c))
	}
	tbl.RawSetString("snake", snake)
	if head, ok := snap.Head(); ok {
		tbl.RawSetString("head", cellTable(L, head))
	}
	return tbl
}

func cellTable(L *lua.LState, c game.Cell) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("x", lua.LNumber(c.X))
	tbl.RawSetString("y", lua.LNumber(c.Y))
	return tbl
}
