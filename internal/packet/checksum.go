package packet

// Checksum computes the IPv4 header checksum: the one's-complement of the
// one's-complement sum of all 16-bit big-endian words. The checksum field of
// header must be zero when computing a value to store.
func Checksum(header []byte) uint16 {
	return ^onesSum(header)
}

// Verify reports whether a header, checksum field included, sums to 0xFFFF.
func Verify(header []byte) bool {
	return onesSum(header) == 0xffff
}

func onesSum(b []byte) uint16 {
	var sum uint32
	for i := 0; i+1 < len(b); i += 2 {
		sum += uint32(b[i])<<8 | uint32(b[i+1])
	}
	if len(b)%2 == 1 {
		sum += uint32(b[len(b)-1]) << 8
	}
	for sum>>16 != 0 {
		sum = sum&0xffff + sum>>16
	}
	return uint16(sum)
}
