package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLogAppendUnderCapacity(t *testing.T) {
	scr := NewFakeScreen()
	l := NewLog(4, scr)

	for _, s := range []string{"a", "b", "c"} {
		if err := l.Append(s); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if got := l.Lines(); !equalLines(got, []string{"a", "b", "c"}) {
		t.Errorf("Lines: got %v", got)
	}
	if len(scr.Renders) != 3 {
		t.Errorf("expected a render per append, got %d", len(scr.Renders))
	}
}

func TestLogEvictsOldest(t *testing.T) {
	scr := NewFakeScreen()
	l := NewLog(4, scr)

	for _, s := range []string{"1", "2", "3", "4", "5"} {
		l.Append(s)
	}
	want := []string{"2", "3", "4", "5"}
	if got := l.Lines(); !equalLines(got, want) {
		t.Errorf("Lines: got %v, want %v", got, want)
	}
	if got := scr.Last(); !equalLines(got, want) {
		t.Errorf("last render: got %v, want %v", got, want)
	}
}

func TestLogNeverExceedsCapacity(t *testing.T) {
	l := NewLog(4, nil)
	for i := 0; i < 50; i++ {
		l.Append(strings.Repeat("x", i))
		if l.Len() > 4 {
			t.Fatalf("after %d appends: %d lines", i+1, l.Len())
		}
	}
}

func TestLogDefaultCapacity(t *testing.T) {
	l := NewLog(0, nil)
	for i := 0; i < 10; i++ {
		l.Append("x")
	}
	if l.Len() != DefaultLines {
		t.Errorf("Len: got %d, want %d", l.Len(), DefaultLines)
	}
}

func TestLogRenderIdempotent(t *testing.T) {
	scr := NewFakeScreen()
	l := NewLog(4, scr)
	l.Append("a")
	l.Append("b")

	l.Render()
	l.Render()
	if len(scr.Renders) != 4 {
		t.Fatalf("renders: got %d, want 4", len(scr.Renders))
	}
	for i := 1; i < 4; i++ {
		if !equalLines(scr.Renders[i], []string{"a", "b"}) {
			t.Errorf("render %d: got %v, want [a b]", i, scr.Renders[i])
		}
	}
	if l.Len() != 2 {
		t.Errorf("Render changed the log: %d lines", l.Len())
	}
}

func TestLogLinesIsCopy(t *testing.T) {
	l := NewLog(4, nil)
	l.Append("a")
	lines := l.Lines()
	lines[0] = "mutated"
	if l.Lines()[0] != "a" {
		t.Error("Lines must return a copy")
	}
}

func TestLogScreenError(t *testing.T) {
	scr := NewFakeScreen()
	scr.RenderError = errors.New("i2c nack")
	l := NewLog(4, scr)

	if err := l.Append("a"); err == nil {
		t.Fatal("expected error")
	}
	if l.Len() != 1 {
		t.Errorf("line must be kept despite render failure, got %d", l.Len())
	}
}

func TestTermScreenClipsAndPads(t *testing.T) {
	var buf bytes.Buffer
	s := NewTermScreen(&buf, 4, 5)
	if err := s.Render([]string{"abcdefgh", "xy"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "abcdef") {
		t.Errorf("line not clipped: %q", out)
	}
	if !strings.Contains(out, "abcde") || !strings.Contains(out, "xy") {
		t.Errorf("missing content: %q", out)
	}
	// border top + 4 rows + border bottom
	if n := strings.Count(strings.TrimRight(out, "\n"), "\n") + 1; n != 6 {
		t.Errorf("expected 6 rows, got %d: %q", n, out)
	}
}
