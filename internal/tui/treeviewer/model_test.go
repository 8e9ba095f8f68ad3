package treeviewer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/cminus/foundation/cminus"
	"github.com/msto63/cminus/foundation/cminus/ast"
	mdwerror "github.com/msto63/cminus/foundation/core/error"
	mdwlog "github.com/msto63/cminus/foundation/core/log"
	"github.com/msto63/cminus/pkg/core/cache"
)

const testSource = "int x;\nvoid main(void) { x = 1; }\n"

func compile(t *testing.T, src string) *cminus.Result {
	t.Helper()
	res, err := cminus.CompileString("test.c-", src, cminus.Options{Logger: mdwlog.Discard()})
	if err != nil {
		t.Fatalf("CompileString() error = %v", err)
	}
	return res
}

func loaded(t *testing.T, src string) Model {
	t.Helper()
	res := compile(t, src)
	m := New(Config{Source: "test.c-", Load: func() (*cminus.Result, error) { return res, nil }})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	updated, _ = updated.Update(m.loadResult())
	return updated.(Model)
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestFlatten(t *testing.T) {
	res := compile(t, "int x;")

	rows := flatten(res.Program, nil)
	want := []struct {
		label string
		depth int
	}{
		{"Program", 0},
		{"Var declaration", 1},
		{"Type: int", 2},
		{"Id: x", 2},
	}
	if len(rows) != len(want) {
		t.Fatalf("flatten() = %d rows, want %d", len(rows), len(want))
	}
	for i, r := range rows {
		if r.depth != want[i].depth {
			t.Errorf("row %d depth = %d, want %d", i, r.depth, want[i].depth)
		}
		if !strings.Contains(r.plain(), want[i].label) {
			t.Errorf("row %d = %q, want %q", i, r.plain(), want[i].label)
		}
	}
	if rows[0].marker() != MarkerExpanded || rows[3].marker() != MarkerLeaf {
		t.Errorf("markers = %q, %q", rows[0].marker(), rows[3].marker())
	}

	decl := rows[1].node
	folded := flatten(res.Program, map[ast.Node]bool{decl: true})
	if len(folded) != 2 {
		t.Fatalf("flatten(collapsed) = %d rows, want 2", len(folded))
	}
	if !folded[1].collapsed || folded[1].marker() != MarkerCollapsed {
		t.Errorf("collapsed row = %+v", folded[1])
	}
}

func TestFlatten_NilRoot(t *testing.T) {
	if rows := flatten(nil, nil); rows != nil {
		t.Errorf("flatten(nil) = %v, want nil", rows)
	}
}

func TestCollapseAll(t *testing.T) {
	res := compile(t, testSource)

	collapsed := collapseAll(res.Program)
	if collapsed[res.Program] {
		t.Error("collapseAll() should leave the root expanded")
	}

	rows := flatten(res.Program, collapsed)
	if len(rows) != 1+len(res.Program.Decls) {
		t.Errorf("flatten() = %d rows, want root plus %d declarations", len(rows), len(res.Program.Decls))
	}
}

func TestModel_LoadAndNavigate(t *testing.T) {
	m := loaded(t, testSource)

	if m.loading {
		t.Error("loading should be false after the result arrived")
	}
	if len(m.rows) != m.result.Nodes {
		t.Errorf("rows = %d, want %d", len(m.rows), m.result.Nodes)
	}

	m = press(m, "j")
	m = press(m, "down")
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}

	m = press(m, "k")
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	m = press(m, "G")
	if m.cursor != len(m.rows)-1 {
		t.Errorf("cursor = %d, want last row %d", m.cursor, len(m.rows)-1)
	}

	m = press(m, "g")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestModel_FoldKeys(t *testing.T) {
	m := loaded(t, testSource)
	total := len(m.rows)

	// Fold the variable declaration under the cursor
	m = press(m, "j")
	m = press(m, "enter")
	if len(m.rows) != total-2 {
		t.Errorf("rows after fold = %d, want %d", len(m.rows), total-2)
	}

	m = press(m, "enter")
	if len(m.rows) != total {
		t.Errorf("rows after unfold = %d, want %d", len(m.rows), total)
	}

	m = press(m, "c")
	if len(m.rows) != 3 || m.cursor != 0 {
		t.Errorf("collapse all = %d rows, cursor %d", len(m.rows), m.cursor)
	}

	m = press(m, "e")
	if len(m.rows) != total {
		t.Errorf("expand all = %d rows, want %d", len(m.rows), total)
	}
}

func TestModel_LeafToggleIsNoop(t *testing.T) {
	m := loaded(t, "int x;")
	m = press(m, "G")
	m = press(m, "enter")
	if len(m.rows) != 4 {
		t.Errorf("rows = %d, want 4", len(m.rows))
	}
}

func TestModel_YAMLToggle(t *testing.T) {
	m := loaded(t, "int x;")

	m = press(m, "y")
	if !m.showYAML {
		t.Fatal("showYAML = false after y")
	}
	if !strings.Contains(m.yamlText, "kind: Program") {
		t.Errorf("yamlText = %q", m.yamlText)
	}

	m = press(m, "y")
	if m.showYAML {
		t.Error("showYAML = true after second y")
	}
}

func TestModel_Reload(t *testing.T) {
	m := loaded(t, testSource)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = updated.(Model)
	if !m.loading || cmd == nil {
		t.Fatal("r should start a reload")
	}

	updated, _ = m.Update(m.loadResult())
	m = updated.(Model)
	if m.reloads != 1 {
		t.Errorf("reloads = %d, want 1", m.reloads)
	}

	updated, cmd = m.Update(sourceChangedMsg{})
	if !updated.(Model).loading || cmd == nil {
		t.Error("sourceChangedMsg should start a reload")
	}
}

func TestModel_SyntaxErrorsShown(t *testing.T) {
	m := loaded(t, "int ;")

	view := m.View()
	if !strings.Contains(view, "unexpected token") {
		t.Errorf("View() should list the syntax error, got %q", view)
	}
	if !strings.Contains(view, "1 syntax errors") {
		t.Errorf("View() should show the error count")
	}
}

func TestModel_LoadError(t *testing.T) {
	m := New(Config{Source: "x.c-", Load: func() (*cminus.Result, error) {
		return nil, errors.New("boom")
	}})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	updated, _ = updated.Update(m.loadResult())
	m = updated.(Model)

	if m.err == nil || len(m.rows) != 0 {
		t.Errorf("err = %v, rows = %d", m.err, len(m.rows))
	}
	if !strings.Contains(m.View(), "boom") {
		t.Error("View() should show the load error")
	}
}

func TestModel_NoLoader(t *testing.T) {
	msg := New(Config{}).loadResult().(resultLoadedMsg)
	if !mdwerror.HasCode(msg.err, mdwerror.CodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", msg.err)
	}
}

func TestModel_Quit(t *testing.T) {
	m := loaded(t, "int x;")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestFileLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.c-")
	if err := os.WriteFile(path, []byte("int x;"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	load := FileLoader(path, cminus.Options{Logger: mdwlog.Discard()}, nil)
	res, err := load()
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if !res.OK() || res.Name != path {
		t.Errorf("result = %+v", res)
	}

	again, _ := load()
	if again == res {
		t.Error("load() without cache should compile again")
	}

	_, err = FileLoader(filepath.Join(t.TempDir(), "missing.c-"), cminus.Options{}, nil)()
	if !mdwerror.HasCode(err, mdwerror.CodeSourceNotFound) {
		t.Errorf("missing file error = %v, want SOURCE_NOT_FOUND", err)
	}
}

func TestFileLoader_Cache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.c-")
	if err := os.WriteFile(path, []byte("int x;"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	results := cache.New[*cminus.Result](cache.DefaultConfig())
	load := FileLoader(path, cminus.Options{Logger: mdwlog.Discard()}, results)

	first, err := load()
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	second, _ := load()
	if first != second {
		t.Error("unchanged source should come from the cache")
	}

	if err := os.WriteFile(path, []byte("int y;"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	third, _ := load()
	if third == first {
		t.Error("changed source should be compiled again")
	}
	if hits, misses, _ := results.Stats(); hits != 1 || misses != 2 {
		t.Errorf("Stats() = %d hits, %d misses, want 1, 2", hits, misses)
	}
}
