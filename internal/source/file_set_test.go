package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualBuildsLineIndex(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.storm", []byte("a\nbb\nccc"))
	f := fs.Get(id)

	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
	if len(f.LineIdx) != 2 {
		t.Fatalf("expected 2 newline entries, got %d", len(f.LineIdx))
	}
	if f.LineIdx[0] != 1 || f.LineIdx[1] != 4 {
		t.Errorf("unexpected line index: %v", f.LineIdx)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.storm", []byte("ab\ncde\nf"))

	tests := []struct {
		name     string
		off      uint32
		wantLine uint32
		wantCol  uint32
	}{
		{"start of file", 0, 1, 0},
		{"mid first line", 1, 1, 1},
		{"newline itself", 2, 1, 2},
		{"start of second line", 3, 2, 0},
		{"mid second line", 5, 2, 2},
		{"start of third line", 7, 3, 0},
		{"end of file", 8, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if start.Line != tt.wantLine || start.Col != tt.wantCol {
				t.Errorf("off %d: got %d:%d, want %d:%d",
					tt.off, start.Line, start.Col, tt.wantLine, tt.wantCol)
			}
		})
	}
}

func TestResolveSingleLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.storm", []byte("hello"))
	start, end := fs.Resolve(Span{File: id, Start: 1, End: 4})
	if start.Line != 1 || start.Col != 1 {
		t.Errorf("start: got %d:%d", start.Line, start.Col)
	}
	if end.Line != 1 || end.Col != 4 {
		t.Errorf("end: got %d:%d", end.Line, end.Col)
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.storm")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFint x;\r\nint y;\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)

	if string(f.Content) != "int x;\nint y;\n" {
		t.Errorf("unexpected content: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.storm")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetByPath(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("a.storm", []byte("a"))
	id2 := fs.AddVirtual("a.storm", []byte("aa"))

	f, ok := fs.GetByPath("a.storm")
	if !ok {
		t.Fatal("expected file")
	}
	if f.ID != id2 {
		t.Errorf("expected latest version %d, got %d", id2, f.ID)
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\rb\r\nc"))
	if !changed {
		t.Error("expected change")
	}
	if string(out) != "a\rb\nc" {
		t.Errorf("got %q", out)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 0, Start: 5, End: 10}
	b := Span{File: 0, Start: 2, End: 7}
	c := a.Cover(b)
	if c.Start != 2 || c.End != 10 {
		t.Errorf("got %v", c)
	}
	other := Span{File: 1, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("cross-file cover changed span: %v", got)
	}
}
