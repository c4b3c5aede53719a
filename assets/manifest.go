package assets

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"
)

// WriteManifest writes a CSV report of results, one row per compressed entry.
func WriteManifest(w io.Writer, results []Result) error {
	type row struct {
		Entry           string `csv:"entry"`
		Source          string `csv:"source"`
		Target          string `csv:"target"`
		SourceBytes     int64  `csv:"source bytes"`
		CompressedBytes int64  `csv:"compressed bytes"`
		Ratio           string `csv:"ratio"`
		Digest          string `csv:"blake3"`
		Symbol          string `csv:"symbol"`
	}

	csvWriter := csv.NewWriter(w)
	encoder := csvutil.NewEncoder(csvWriter)
	if len(results) == 0 {
		if err := encoder.EncodeHeader(row{}); err != nil {
			return err
		}
	}

	for _, r := range results {
		err := encoder.Encode(row{
			Entry:           r.Entry,
			Source:          r.Source,
			Target:          r.Target,
			SourceBytes:     r.SourceSize,
			CompressedBytes: r.CompressedSize,
			Ratio:           fmt.Sprintf("%.3f", r.Ratio()),
			Digest:          r.Digest,
			Symbol:          Symbol(r.Entry),
		})
		if err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
