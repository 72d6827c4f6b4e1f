package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/lleval/lang/lexer"
	"github.com/ardnew/lleval/lang/token"
)

// tokenCache stores lexer output keyed by the xxh3 hash of the source text.
// Cached slices are shared and must not be modified; the analyzer never
// writes to input tokens.
var tokenCache sync.Map

// lexed is a cache entry. The once guards concurrent first use of a source.
type lexed struct {
	once   sync.Once
	source string
	tokens []*token.Terminal
	err    error
}

// Tokenize scans source into terminal tokens, reusing the result of an
// earlier call with identical text.
func Tokenize(ctx context.Context, source string, opts ...Option) ([]*token.Terminal, error) {
	var o options

	applyOptions(&o, opts...)

	hash := xxh3.HashString(source)
	key := strconv.FormatUint(hash, 36)

	value, cacheHit := tokenCache.LoadOrStore(key, &lexed{source: source})
	entry := value.(*lexed)

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(hash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	// On a hash collision, scan without touching the cache.
	if entry.source != source {
		o.logger.TraceContext(ctx, "cache collision",
			slog.String("source_hash", strconv.FormatUint(hash, 16)),
		)

		return lexer.Scan(source)
	}

	entry.once.Do(func() {
		entry.tokens, entry.err = lexer.Scan(source)
	})

	if entry.err != nil {
		return nil, entry.err
	}

	o.logger.TraceContext(ctx, "tokenized",
		slog.Int("source_bytes", len(source)),
		slog.Int("tokens", len(entry.tokens)),
	)

	return entry.tokens, nil
}

// ClearCache discards every cached token stream.
func ClearCache() {
	tokenCache.Clear()
}

// ReadSource reads all of r.
func ReadSource(_ context.Context, r io.Reader) (string, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	// This allows data to be pre-fetched while we process previous chunks.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return string(data), nil
}
