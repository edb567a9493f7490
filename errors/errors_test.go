package errors

import (
	goerr "errors"
	"testing"
)

type fakePos struct {
	line, col int
	excerpt   string
}

func (p fakePos) Line() int       { return p.line }
func (p fakePos) Col() int        { return p.col }
func (p fakePos) Excerpt() string { return p.excerpt }

func TestHeader(t *testing.T) {
	samples := []struct {
		e    *Error
		text string
	}{
		{New(1, "boom", 2, 3, "x + y"), `At (2, 3) : "x + y" : boom`},
		{New(1, "", 2, 3, "x + y"), `At (2, 3) : "x + y" :`},
		{New(1, "boom", 0, 0, ""), "boom"},
		{New(1, "boom", 1, 1, "a\nb"), `At (1, 1) : "a" : boom`},
	}

	for i, s := range samples {
		if s.e.Error() != s.text {
			t.Fatalf("sample #%d: expecting %q, got %q", i, s.text, s.e.Error())
		}
	}
}

func TestFormat(t *testing.T) {
	e := Format(42, "got %d of %q", 2, "x")
	if e.Code != 42 || e.Message != `got 2 of "x"` {
		t.Fatalf("unexpected error: %#v", e)
	}

	e = FormatPos(fakePos{3, 7, "tail"}, 42, "boom")
	if e.Line != 3 || e.Col != 7 || e.Excerpt != "tail" {
		t.Fatalf("position lost: %#v", e)
	}
}

func TestWrapTrace(t *testing.T) {
	inner := New(42, "boom", 2, 5, "1+2")
	outer := Wrap(fakePos{1, 1, "-(1+2)"}, 0, inner)

	if outer.Code != 42 {
		t.Fatalf("expecting inherited code 42, got %d", outer.Code)
	}

	expected := "At (1, 1) : \"-(1+2)\" :\nAt (2, 5) : \"1+2\" : boom"
	if outer.Error() != expected {
		t.Fatalf("expecting trace %q, got %q", expected, outer.Error())
	}

	if !goerr.Is(outer, inner) {
		t.Fatalf("cause lost in wrapping")
	}
}

func TestWrapForeign(t *testing.T) {
	cause := goerr.New("file not found")
	e := Wrap(fakePos{4, 2, "load(x)"}, 77, cause)

	if e.Code != 77 {
		t.Fatalf("expecting code 77, got %d", e.Code)
	}

	expected := `At (4, 2) : "load(x)" : file not found`
	if e.Error() != expected {
		t.Fatalf("expecting %q, got %q", expected, e.Error())
	}
	if goerr.Unwrap(e) != cause {
		t.Fatalf("cause lost in wrapping")
	}
}
