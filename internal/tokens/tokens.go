// Package tokens estimates LLM token counts for file contents.
package tokens

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkoukk/tiktoken-go"
)

const encodingName = "cl100k_base"

const cacheSize = 512

// Counter counts cl100k_base tokens, memoizing results by content hash so
// tree and cat passes over the same content only pay once. When the encoding
// cannot be initialized it falls back to the common length/4 heuristic.
type Counter struct {
	once  sync.Once
	enc   *tiktoken.Tiktoken
	cache *lru.Cache[string, int]
}

// NewCounter returns a ready Counter. The encoding itself is initialized
// lazily on first use.
func NewCounter() *Counter {
	cache, _ := lru.New[string, int](cacheSize)
	return &Counter{cache: cache}
}

// Count returns the token count for text. hash may be empty to bypass the
// memo.
func (c *Counter) Count(hash, text string) int {
	if hash != "" {
		if n, ok := c.cache.Get(hash); ok {
			return n
		}
	}

	c.once.Do(func() {
		enc, err := tiktoken.GetEncoding(encodingName)
		if err == nil {
			c.enc = enc
		}
	})

	var n int
	if c.enc != nil {
		n = len(c.enc.Encode(text, nil, nil))
	} else {
		n = Estimate(text)
	}

	if hash != "" {
		c.cache.Add(hash, n)
	}
	return n
}

// Estimate approximates a token count as ceil(len/4), the widely used
// one-token-per-four-characters heuristic.
func Estimate(text string) int {
	return (len(text) + 3) / 4
}
