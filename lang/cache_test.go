package lang

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ardnew/lleval/lang/fault"
	"github.com/ardnew/lleval/lang/token"
)

func TestTokenize_Cached(t *testing.T) {
	ClearCache()

	src := "cached = 1 + 2;"

	first, err := Tokenize(t.Context(), src)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	second, err := Tokenize(t.Context(), src)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	if len(first) != 6 || &first[0] != &second[0] {
		t.Error("second Tokenize() should return the cached slice")
	}

	ClearCache()

	third, err := Tokenize(t.Context(), src)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	if &first[0] == &third[0] {
		t.Error("Tokenize() after ClearCache() should rescan")
	}
}

func TestTokenize_CachedError(t *testing.T) {
	for range 2 {
		if _, err := Tokenize(t.Context(), "bad $"); !errors.Is(err, fault.ErrSyntax) {
			t.Errorf("Tokenize() error = %v, want syntax error", err)
		}
	}
}

func TestTokenize_Concurrent(t *testing.T) {
	ClearCache()

	var wg sync.WaitGroup

	results := make([][]*token.Terminal, 8)

	for i := range results {
		wg.Add(1)

		go func() {
			defer wg.Done()

			toks, err := Tokenize(t.Context(), "x = 1; y = x;")
			if err != nil {
				t.Errorf("Tokenize() error = %v", err)
			}

			results[i] = toks
		}()
	}

	wg.Wait()

	for i := 1; i < len(results); i++ {
		if len(results[i]) == 0 || &results[i][0] != &results[0][0] {
			t.Errorf("goroutine %d got a different token slice", i)
		}
	}
}

func TestReadSource(t *testing.T) {
	src := strings.Repeat("a = a + 1;\n", 1000)

	got, err := ReadSource(t.Context(), strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadSource() error = %v", err)
	}

	if got != src {
		t.Errorf("ReadSource() returned %d bytes, want %d", len(got), len(src))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestReadSource_Error(t *testing.T) {
	_, err := ReadSource(t.Context(), failingReader{})
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("ReadSource() error = %v, want read input error", err)
	}
}

func TestWriteTokens(t *testing.T) {
	toks, err := Tokenize(t.Context(), `n = "s";`)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteTokens(t.Context(), &buf, toks, FormatJSON, 0); err != nil {
		t.Fatalf("WriteTokens() error = %v", err)
	}

	var views []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &views); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if len(views) != 4 {
		t.Fatalf("got %d tokens, want 4", len(views))
	}

	if views[2]["kind"] != "const" || views[2]["type"] != "STRING" || views[2]["value"] != "s" {
		t.Errorf("const token = %v", views[2])
	}

	buf.Reset()

	if err := WriteTokens(t.Context(), &buf, toks, FormatNative, 0); err != nil {
		t.Fatalf("WriteTokens() error = %v", err)
	}

	if lines := strings.Count(buf.String(), "\n"); lines != 4 {
		t.Errorf("native output has %d lines, want 4:\n%s", lines, buf.String())
	}
}
