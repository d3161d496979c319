package extract

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodePlain decodes bytes as UTF-8 when valid, otherwise falls back to a
// permissive single-byte decode (Windows-1252) so extraction never fails on
// a text file with a legacy encoding.
func decodePlain(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		// The single-byte decoder maps every byte; this is unreachable in
		// practice, but degrade to the raw bytes rather than fail.
		return string(data)
	}
	return string(decoded)
}
