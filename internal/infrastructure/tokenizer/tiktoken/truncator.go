package tiktoken

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktokenloader "github.com/pkoukk/tiktoken-go-loader"
)

const DefaultEncoding = "cl100k_base"

var installLoader sync.Once

// Truncator cuts text to a token budget using a BPE encoding bundled in the
// binary, so no network access is needed at runtime.
type Truncator struct {
	name     string
	encoding *tiktoken.Tiktoken
}

func New(encoding string) (*Truncator, error) {
	if strings.TrimSpace(encoding) == "" {
		encoding = DefaultEncoding
	}
	installLoader.Do(func() {
		tiktoken.SetBpeLoader(tiktokenloader.NewOfflineLoader())
	})
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding %s: %w", encoding, err)
	}
	return &Truncator{name: encoding, encoding: enc}, nil
}

func (t *Truncator) Name() string { return t.name }

func (t *Truncator) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 || text == "" {
		return text
	}
	tokens := t.encoding.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	// A token boundary can split a multi-byte rune.
	return strings.ToValidUTF8(t.encoding.Decode(tokens[:maxTokens]), "")
}
