package tokens

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const encodingName = "cl100k_base"

var (
	once     sync.Once
	encoding *tiktoken.Tiktoken
)

// Count returns the number of tokens in text using the cl100k_base BPE.
// When the encoding cannot be loaded (offline environments without the
// cached vocabulary) it degrades to a whitespace word count.
func Count(text string) int {
	if text == "" {
		return 0
	}
	once.Do(func() {
		enc, err := tiktoken.GetEncoding(encodingName)
		if err == nil {
			encoding = enc
		}
	})
	if encoding == nil {
		return len(strings.Fields(text))
	}
	return len(encoding.Encode(text, nil, nil))
}
