package assets

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pgavlin/fwhooks/hookenv"
	"github.com/pgavlin/fwhooks/hookerr"
)

// Run compresses every entry that ends in GzipSuffix, in order. Entries are resolved against env before use.
//
// The first failure aborts the batch: Run returns the results for the entries already written along with the
// error, and leaves the remaining entries untouched.
func Run(env *hookenv.Environment, entries []string, c *Compressor) ([]Result, error) {
	selected := Select(entries)
	results := make([]Result, 0, selected.Count())
	for i, entry := range entries {
		if !selected.Test(uint(i)) {
			log.Debug().Str("entry", entry).Msg("embedding as-is")
			continue
		}

		target := env.ResolveEmbedPath(entry)
		source := SourcePath(target)
		if source == target {
			return results, hookerr.Malformed("resolve", entry, fmt.Errorf("resolved path %q does not end in %s", target, GzipSuffix))
		}

		r, err := c.CompressFile(source, target)
		if err != nil {
			return results, fmt.Errorf("compressing %s: %w", entry, err)
		}
		r.Entry = entry
		results = append(results, r)

		log.Info().
			Str("entry", entry).
			Int64("source_bytes", r.SourceSize).
			Int64("compressed_bytes", r.CompressedSize).
			Msg("compressed")
	}
	return results, nil
}
