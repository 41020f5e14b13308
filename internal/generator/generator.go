// Package generator samples target words for typing sessions.
package generator

import (
	"math/rand"
	"time"
	"unicode"
)

// Options control how sampled words are decorated.
type Options struct {
	CapsPct  float64
	PunctPct float64
	PunctSet []rune
}

// Generator draws random words from a fixed pool.
type Generator struct {
	rnd  *rand.Rand
	pool []string
	opts Options
}

// New returns a Generator over pool seeded with the current time.
func New(pool []string, opts Options) *Generator {
	return NewWithSource(pool, opts, rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator using the given random source.
func NewWithSource(pool []string, opts Options, src rand.Source) *Generator {
	return &Generator{
		rnd:  rand.New(src),
		pool: append([]string(nil), pool...),
		opts: opts,
	}
}

// PoolSize returns the number of words available for sampling.
func (g *Generator) PoolSize() int {
	return len(g.pool)
}

// Sample returns count words without repeats. When count exceeds the pool
// the pool is refilled once exhausted, so repeats appear but entries are
// never empty. An empty pool yields nil.
func (g *Generator) Sample(count int) []string {
	if count <= 0 || len(g.pool) == 0 {
		return nil
	}
	remaining := append([]string(nil), g.pool...)
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if len(remaining) == 0 {
			remaining = append(remaining, g.pool...)
		}
		idx := g.rnd.Intn(len(remaining))
		word := remaining[idx]
		remaining[idx] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]

		word = applyCaps(g.rnd, word, g.opts.CapsPct)
		word = applyPunct(g.rnd, word, g.opts.PunctPct, g.opts.PunctSet)
		result = append(result, word)
	}
	return result
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
