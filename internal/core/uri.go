package core

import (
	"strings"
	"unicode/utf8"
)

const upperHex = "0123456789ABCDEF"

// uriReserved lists the characters whose escapes survive decoding.
const uriReserved = ";/?:@&=+$,#"

// needsEscape reports whether c is one of the bytes the host application
// escapes inside link destinations: backslash, NUL, BS, VT, FF, 0x0E-0x1F
// and space. Everything else, '#' and '%' included, stays literal.
func needsEscape(c byte) bool {
	switch {
	case c == '\\', c == ' ', c == 0x00, c == 0x08, c == 0x0B, c == 0x0C:
		return true
	case c >= 0x0E && c <= 0x1F:
		return true
	}
	return false
}

// encodeLink percent-encodes s for use as a markdown link destination.
func encodeLink(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if needsEscape(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if needsEscape(c) {
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&15])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// encodeBlockRef encodes a transclusion fragment. A leading '^' block
// sigil is kept as is.
func encodeBlockRef(ref string) string {
	if strings.HasPrefix(ref, "^") {
		return "^" + encodeLink(ref[1:])
	}
	return encodeLink(ref)
}

// decodeLink decodes percent escapes once. Escapes of reserved characters
// are kept, and malformed input (bad hex, invalid UTF-8) is returned
// unchanged.
func decodeLink(s string) string {
	if strings.IndexByte(s, '%') == -1 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '%' {
			b.WriteByte(s[i])
			i++
			continue
		}
		c, ok := unhexAt(s, i)
		if !ok {
			return s
		}
		if c < utf8.RuneSelf {
			if strings.IndexByte(uriReserved, c) != -1 {
				b.WriteString(s[i : i+3])
			} else {
				b.WriteByte(c)
			}
			i += 3
			continue
		}

		n := utf8SeqLen(c)
		if n == 0 {
			return s
		}
		seq := []byte{c}
		j := i + 3
		for k := 1; k < n; k++ {
			cc, ok := unhexAt(s, j)
			if !ok || cc&0xC0 != 0x80 {
				return s
			}
			seq = append(seq, cc)
			j += 3
		}
		if !utf8.Valid(seq) {
			return s
		}
		b.Write(seq)
		i = j
	}
	return b.String()
}

// unhexAt decodes the escape "%XX" starting at s[i].
func unhexAt(s string, i int) (byte, bool) {
	if i+2 >= len(s) || s[i] != '%' {
		return 0, false
	}
	hi, ok1 := fromHex(s[i+1])
	lo, ok2 := fromHex(s[i+2])
	if !ok1 || !ok2 {
		return 0, false
	}
	return hi<<4 | lo, true
}

func fromHex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func utf8SeqLen(lead byte) int {
	switch {
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	}
	return 0
}
