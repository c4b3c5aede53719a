// Package assets compresses the web UI files a board embeds into its firmware image.
//
// A board declares its embedded files as a list of entries. An entry ending in ".gzip" names the compressed form
// of a sibling file: before the firmware is linked, the sibling is read, gzip-compressed and written to the
// entry's path. Every other entry is embedded as-is and never touched here.
package assets

import (
	"strings"

	"github.com/willf/bitset"
)

// GzipSuffix marks an embed entry as the compressed form of the file without the suffix.
const GzipSuffix = ".gzip"

// Select returns the set of indices of the entries that end in GzipSuffix.
func Select(entries []string) *bitset.BitSet {
	selected := bitset.New(uint(len(entries)))
	for i, entry := range entries {
		if strings.HasSuffix(entry, GzipSuffix) {
			selected.Set(uint(i))
		}
	}
	return selected
}

// Selected returns the entries that end in GzipSuffix, in their original order.
func Selected(entries []string) []string {
	selected, result := Select(entries), []string(nil)
	for i, ok := selected.NextSet(0); ok; i, ok = selected.NextSet(i + 1) {
		result = append(result, entries[i])
	}
	return result
}

// SourcePath returns the path of the uncompressed file for a compressed target. The result is target itself if
// target does not end in GzipSuffix.
func SourcePath(target string) string {
	return strings.TrimSuffix(target, GzipSuffix)
}
