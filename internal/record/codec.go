package record

import (
	"fmt"
	"strconv"
)

// Decode validates raw and returns the header it holds.
//
// A sentinel record returns ErrNullRecord. A record whose stored checksum
// differs from Checksum(raw) returns ErrBadChecksum.
func Decode(raw *Raw) (Header, error) {
	if IsNull(raw) {
		return Header{}, ErrNullRecord
	}

	stored := parseOctal(raw[offChecksum : offChecksum+lenChecksum])
	if sum := Checksum(raw); sum != stored {
		return Header{}, fmt.Errorf("%w: stored %o, computed %o", ErrBadChecksum, stored, sum)
	}

	h := Header{
		Mode:     parseOctal(raw[offMode:offOwner]),
		Owner:    parseOctal(raw[offOwner:offGroup]),
		Size:     parseOctal(raw[offSize:offMtime]),
		Mtime:    parseOctal(raw[offMtime:offChecksum]),
		Typeflag: TypeFlag(raw[offTypeflag]),
		Name:     parseName(raw[offName : offName+lenName]),
		Linkname: parseName(raw[offLinkname : offLinkname+lenLinkname]),
	}
	if h.Size > MaxSize {
		return Header{}, fmt.Errorf("%w: record declares %d bytes", ErrSizeLimit, h.Size)
	}
	return h, nil
}

// Encode builds the record for h.
//
// Values that do not fit their fields are rejected; nothing is truncated.
// The group field is always zero.
func Encode(h *Header) (*Raw, error) {
	if h.Size > MaxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrSizeLimit, h.Size)
	}

	raw := new(Raw)
	if err := formatName(raw[offName:offName+lenName], "name", h.Name); err != nil {
		return nil, err
	}
	if err := formatOctal(raw[offMode:offOwner], "mode", h.Mode); err != nil {
		return nil, err
	}
	if err := formatOctal(raw[offOwner:offGroup], "owner", h.Owner); err != nil {
		return nil, err
	}
	if err := formatOctal(raw[offSize:offMtime], "size", h.Size); err != nil {
		return nil, err
	}
	if err := formatOctal(raw[offMtime:offChecksum], "mtime", h.Mtime); err != nil {
		return nil, err
	}
	typeflag := h.Typeflag
	if typeflag == 0 {
		typeflag = TypeReg
	}
	raw[offTypeflag] = byte(typeflag)
	if err := formatName(raw[offLinkname:offLinkname+lenLinkname], "linkname", h.Linkname); err != nil {
		return nil, err
	}

	// Six digits, NUL, space. The largest possible sum is 0o373410.
	sum := strconv.FormatUint(Checksum(raw), 8)
	for i := range 6 - len(sum) {
		raw[offChecksum+i] = '0'
	}
	copy(raw[offChecksum+6-len(sum):], sum)
	raw[offChecksum+6] = 0
	raw[offChecksum+7] = ' '
	return raw, nil
}
