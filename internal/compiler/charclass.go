// Package compiler builds the fixed LL table and the lexical character
// classes this language's lexer needs, and serializes the table to the
// JSON format internal/table loads. The language's grammar is not
// user-extensible, so unlike vartan's grammar compiler this package
// has no textual grammar DSL to parse; it assembles the table directly in
// Go and reuses vartan's Unicode/compression machinery only where
// this language's lexical spec actually needs it (identifier characters).
package compiler

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Relz/LL-Parser-Library/compressor"
	"github.com/Relz/LL-Parser-Library/ucd"
	"github.com/Relz/LL-Parser-Library/utf8"
)

// IdentifierBlocks returns the UTF-8 byte-range blocks that make up the
// Unicode "Letter" (L) general category, the continuation-character class
// for identifiers beyond plain ASCII. It is computed once and cached.
func IdentifierBlocks() ([]*utf8.CharBlock, error) {
	identBlocksOnce.Do(func() {
		identBlocksCache, identBlocksErr = computeIdentifierBlocks()
	})
	return identBlocksCache, identBlocksErr
}

var (
	identBlocksOnce  sync.Once
	identBlocksCache []*utf8.CharBlock
	identBlocksErr   error
)

func computeIdentifierBlocks() ([]*utf8.CharBlock, error) {
	ranges, negated, err := ucd.FindCodePointRanges("gc", "L")
	if err != nil {
		return nil, fmt.Errorf("resolve identifier letter class: %w", err)
	}
	if negated {
		return nil, fmt.Errorf("unexpected negated range for general category L")
	}

	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].From < ranges[j].From
	})

	var blocks []*utf8.CharBlock
	for _, r := range ranges {
		bs, err := utf8.GenCharBlocks(r.From, r.To)
		if err != nil {
			return nil, fmt.Errorf("split code point range %v-%v: %w", r.From, r.To, err)
		}
		blocks = append(blocks, bs...)
	}
	return blocks, nil
}

// CompressTransitionTable compresses a flattened DFA transition table using
// vartan's unique-entries compressor, the same way vartan
// compresses its own generated lexer tables.
func CompressTransitionTable(entries []int, colCount int) (compressor.Compressor, *compressor.OriginalTable, error) {
	orig, err := compressor.NewOriginalTable(entries, colCount)
	if err != nil {
		return nil, nil, fmt.Errorf("build original table: %w", err)
	}

	c := &compressor.UniqueEntriesTable{}
	if err := c.Compress(orig); err != nil {
		return nil, nil, fmt.Errorf("compress transition table: %w", err)
	}
	return c, orig, nil
}
