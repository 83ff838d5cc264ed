package record

import (
	"bytes"
	"fmt"
	"strconv"
)

// parseOctal reads an octal number the way scanf("%o") does: leading
// whitespace is skipped and digits are consumed up to the first non-octal
// byte. A field without digits parses as zero.
func parseOctal(b []byte) uint64 {
	i := 0
	for i < len(b) && isSpace(b[i]) {
		i++
	}
	var x uint64
	for ; i < len(b); i++ {
		c := b[i]
		if c < '0' || c > '7' {
			break
		}
		x = x<<3 | uint64(c-'0')
	}
	return x
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// formatOctal writes x into b as minimal octal text, leaving room for a NUL.
func formatOctal(b []byte, field string, x uint64) error {
	s := strconv.FormatUint(x, 8)
	if len(s) >= len(b) {
		return fmt.Errorf("%w: %s %o needs %d octal digits, field holds %d", ErrFieldTooLong, field, x, len(s), len(b)-1)
	}
	copy(b, s)
	return nil
}

// formatName copies s into b, which must keep room for a terminating NUL.
func formatName(b []byte, field, s string) error {
	if len(s) > len(b)-1 {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFieldTooLong, field, len(s), len(b)-1)
	}
	if i := bytes.IndexByte([]byte(s), 0); i >= 0 {
		return fmt.Errorf("%w: %s contains NUL at byte %d", ErrInvalidField, field, i)
	}
	copy(b, s)
	return nil
}

// parseName returns the bytes of b up to the first NUL, or all of b.
func parseName(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
