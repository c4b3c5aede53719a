package assets

import (
	"path"
	"strings"
)

// Symbol returns the linker symbol that marks the start of an embedded file's data. The toolchain derives it
// from the file's base name: every byte that is not an ASCII letter or digit becomes '_', so
// "webui/index.htm.gzip" is reachable as "_binary_index_htm_gzip_start".
func Symbol(entry string) string {
	return "_binary_" + symbolName(entry) + "_start"
}

// EndSymbol returns the linker symbol that marks the end of an embedded file's data.
func EndSymbol(entry string) string {
	return "_binary_" + symbolName(entry) + "_end"
}

func symbolName(entry string) string {
	base := path.Base(strings.ReplaceAll(entry, `\`, "/"))

	var b strings.Builder
	b.Grow(len(base))
	for i := 0; i < len(base); i++ {
		c := base[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
