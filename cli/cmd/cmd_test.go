package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writeFiles creates each name under dir with the given content and returns
// their paths in order.
func writeFiles(t *testing.T, dir string, files ...[2]string) []string {
	t.Helper()

	paths := make([]string, len(files))

	for i, f := range files {
		paths[i] = filepath.Join(dir, f[0])
		if err := os.WriteFile(paths[i], []byte(f[1]), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return paths
}

// pipeStdin replaces os.Stdin with a pipe carrying content until the test
// ends.
func pipeStdin(t *testing.T, content string) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	old := os.Stdin
	os.Stdin = r

	t.Cleanup(func() {
		os.Stdin = old
		r.Close()
	})

	go func() {
		defer w.Close()
		io.WriteString(w, content)
	}()
}

func readSources(t *testing.T, sources []string) (string, SourceFiles) {
	t.Helper()

	src := sourceFilesFrom(WithSourceFiles(t.Context(), sources))
	if src == nil {
		t.Fatalf("WithSourceFiles(%q) stored no reader", sources)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("reading from source files: %v", err)
	}

	return string(data), src
}

func TestWithSourceFilesEmpty(t *testing.T) {
	for _, sources := range [][]string{nil, {}} {
		if r := sourceFilesFrom(WithSourceFiles(t.Context(), sources)); r != nil {
			t.Errorf("WithSourceFiles(%#v) should store nil reader", sources)
		}
	}
}

func TestWithSourceFilesOrder(t *testing.T) {
	dir := t.TempDir()
	paths := writeFiles(t, dir,
		[2]string{"a.ll", "a = 1;\n"},
		[2]string{"b.ll", "b = a + 1;\n"},
	)

	got, src := readSources(t, paths)
	if got != "a = 1;\nb = a + 1;\n" {
		t.Errorf("got %q", got)
	}

	if src.IsZero() {
		t.Error("IsZero() = true, want false")
	}

	if src.Stdin() != nil {
		t.Error("Stdin() should be nil without '-'")
	}
}

func TestWithSourceFilesDuplicates(t *testing.T) {
	dir := t.TempDir()
	paths := writeFiles(t, dir, [2]string{"once.ll", "x;"})

	link := filepath.Join(dir, "link.ll")
	if err := os.Symlink(paths[0], link); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}

	rel, err := filepath.Rel(mustGetwd(t), paths[0])
	if err != nil {
		t.Fatal(err)
	}

	got, src := readSources(t, []string{paths[0], rel, link, paths[0]})
	if got != "x;" {
		t.Errorf("got %q, want a single copy", got)
	}

	if len(src.Names()) != 1 {
		t.Errorf("Names() = %q, want one entry", src.Names())
	}
}

func TestWithSourceFilesStdinLast(t *testing.T) {
	pipeStdin(t, "stdin;")

	paths := writeFiles(t, t.TempDir(), [2]string{"f.ll", "file;"})

	got, src := readSources(t, []string{"-", paths[0], "-"})
	if got != "file;stdin;" {
		t.Errorf("got %q, want file before stdin", got)
	}

	resolved, err := filepath.EvalSymlinks(paths[0])
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{resolved, "-"}, src.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestWithSourceFilesNonexistent(t *testing.T) {
	paths := writeFiles(t, t.TempDir(), [2]string{"real.ll", "ok;"})

	got, _ := readSources(t, []string{"/nonexistent/file.ll", paths[0]})
	if got != "ok;" {
		t.Errorf("got %q, want only the existing file", got)
	}

	if r := sourceFilesFrom(WithSourceFiles(t.Context(), []string{"/nonexistent/a", "/nonexistent/b"})); r != nil {
		t.Error("all-missing sources should store nil reader")
	}
}

func TestWithContext(t *testing.T) {
	if kongContextFrom(t.Context()) != nil {
		t.Error("kongContextFrom should be nil without WithContext")
	}

	ktx := newKongContext(t, nil)
	if got := kongContextFrom(WithContext(t.Context(), ktx)); got != ktx {
		t.Errorf("kongContextFrom() = %p, want %p", got, ktx)
	}
}

func mustGetwd(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	return wd
}
