// Package cobs implements Consistent Overhead Byte Stuffing with 0x00 as
// the reserved delimiter, matching the classic algorithm used by the
// original mudlink firmware (itself ported from the Wikipedia reference
// implementation).
package cobs

// Encode byte-stuffs src into dst, which must be at least
// len(src) + MaxOverhead(len(src)) bytes long. It returns the number of
// bytes written. The caller is responsible for appending the trailing
// 0x00 delimiter; Encode never writes one.
func Encode(src []byte, dst []byte) int {
	write := 0
	codeIdx := 0
	write++ // reserve the code byte slot
	code := byte(1)

	for i, b := range src {
		remaining := len(src) - i - 1 // bytes still to come after this one
		if b != 0 {
			dst[write] = b
			write++
			code++
		}
		if b == 0 || code == 0xFF {
			dst[codeIdx] = code
			code = 1
			codeIdx = write
			if b == 0 || remaining > 0 {
				write++
			}
		}
	}
	dst[codeIdx] = code
	return write
}

// MaxOverhead returns the maximum number of extra bytes Encode can add to
// an input of the given length (not counting the trailing delimiter).
func MaxOverhead(length int) int {
	return (length+253)/254 + 1
}

// Decode decodes buf, stopping at the first 0x00 byte, writing into data
// (which may alias buf for in-place decoding). Following the original
// implementation, the returned count includes one extra byte of
// bookkeeping written at the position where the delimiter was found, so
// it is one greater than the number of decoded payload bytes; callers
// that want the payload length must subtract one from the result. The
// exception is input whose last block is a full run of 254 non-zero
// bytes (only possible for payloads of 254 bytes or more): no extra byte
// is written then, and the count equals the payload length.
func Decode(buf []byte, data []byte) int {
	write := 0
	read := 0
	code := byte(0xFF)
	block := byte(0)

	for read < len(buf) {
		if block != 0 {
			data[write] = buf[read]
			write++
			read++
			block--
			continue
		}

		if code != 0xFF {
			data[write] = 0
			write++
		}
		block = buf[read]
		code = block
		read++
		if code == 0x00 {
			break
		}
		block--
	}

	return write
}
