package source

import (
	"testing"
)

func TestLineCol(t *testing.T) {
	src := New("test", "ab\nЯд\n\nx")
	// byte offsets: a=0 b=1 \n=2 Я=3,4 д=5,6 \n=7 \n=8 x=9
	samples := []struct {
		pos       int
		line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 2},
		{7, 2, 3},
		{8, 3, 1},
		{9, 4, 1},
		{10, 4, 2},
		{-5, 1, 1},
		{100, 4, 2},
	}

	for i, s := range samples {
		line, col := src.LineCol(s.pos)
		if line != s.line || col != s.col {
			t.Fatalf("sample #%d (pos %d): expecting (%d, %d), got (%d, %d)", i, s.pos, s.line, s.col, line, col)
		}
	}
}

func TestPos(t *testing.T) {
	src := New("", "foo\nbar baz\nqux")
	p := NewPos(src, 8)
	if p.Line() != 2 || p.Col() != 5 {
		t.Fatalf("expecting (2, 5), got (%d, %d)", p.Line(), p.Col())
	}
	if p.Excerpt() != "baz" {
		t.Fatalf("expecting excerpt %q, got %q", "baz", p.Excerpt())
	}
	if p.Source() != src || p.Pos() != 8 {
		t.Fatalf("source or offset lost")
	}
}

func TestEmptySource(t *testing.T) {
	src := New("", "")
	line, col := src.LineCol(0)
	if line != 1 || col != 1 {
		t.Fatalf("expecting (1, 1), got (%d, %d)", line, col)
	}
	if NewPos(src, 0).Excerpt() != "" {
		t.Fatalf("expecting empty excerpt")
	}
}
