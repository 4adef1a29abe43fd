package lexer

import (
	"jsslice/internal/diag"
)

// DefaultMaxTokenLength bounds a single token (1 MiB).
const DefaultMaxTokenLength = 1 << 20

type Options struct {
	Reporter diag.Reporter // может быть nil: ошибки только через Err(), лексинг продолжается
	// MaxTokenLength overrides DefaultMaxTokenLength when positive.
	MaxTokenLength int
}

func (o Options) maxTokenLength() uint32 {
	if o.MaxTokenLength > 0 && o.MaxTokenLength <= DefaultMaxTokenLength<<4 {
		return uint32(o.MaxTokenLength) // #nosec G115 -- bounded above
	}
	return DefaultMaxTokenLength
}
