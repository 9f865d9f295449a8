package wsl

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// DecodeOutput converts raw wsl.exe output to a UTF-8 string.
//
// wsl.exe writes UTF-16LE for its own messages (--list, --status). Guest
// output is passed through untouched and must not be decoded. UTF-16 is
// detected by a byte order mark or by NUL high bytes in the leading characters.
func DecodeOutput(b []byte) string {
	if looksUTF16LE(b) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if out, err := dec.Bytes(b); err == nil {
			b = out
		}
	}
	s := strings.ReplaceAll(string(b), "\x00", "")
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func looksUTF16LE(b []byte) bool {
	if len(b) >= 2 && b[0] == 0xFF && b[1] == 0xFE {
		return true
	}
	if len(b) < 4 || len(b)%2 != 0 {
		return false
	}
	n := len(b)
	if n > 16 {
		n = 16
	}
	for i := 1; i < n; i += 2 {
		if b[i] != 0 {
			return false
		}
	}
	return true
}
