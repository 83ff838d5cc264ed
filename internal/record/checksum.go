package record

// Field offsets within a record.
const (
	offName     = 0
	offMode     = 100
	offOwner    = 108
	offGroup    = 116
	offSize     = 124
	offMtime    = 136
	offChecksum = 148
	offTypeflag = 156
	offLinkname = 157
	offPadding  = 257

	lenName     = offMode - offName
	lenChecksum = offTypeflag - offChecksum
	lenLinkname = offPadding - offLinkname
)

// Raw is one undecoded record.
type Raw [BlockSize]byte

// Checksum sums every byte of raw, counting the checksum field as ASCII spaces.
func Checksum(raw *Raw) uint64 {
	sum := uint64(lenChecksum * ' ')
	for _, c := range raw[:offChecksum] {
		sum += uint64(c)
	}
	for _, c := range raw[offTypeflag:] {
		sum += uint64(c)
	}
	return sum
}

// IsNull reports whether raw is a sentinel record.
func IsNull(raw *Raw) bool {
	return raw[offChecksum] == 0
}
