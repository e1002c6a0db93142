package vxl

import "math"

// InferSize scans a VXL byte stream without decoding it, returning the
// (width==height, depth) it implies: depth from the highest color_end seen
// rounded up to a power of two, and width/height from the column count
// (every Length==0 span terminates one column). Ports libvxl_size.
func InferSize(data []byte) (size, depth int, ok bool) {
	if len(data) == 0 {
		return 0, 0, false
	}

	offset := 0
	columns := 0
	maxDepth := 0
	for offset+4 <= len(data) {
		desc := Span{
			Length:     data[offset],
			ColorStart: data[offset+1],
			ColorEnd:   data[offset+2],
			AirStart:   data[offset+3],
		}
		if int(desc.ColorEnd)+1 > maxDepth {
			maxDepth = int(desc.ColorEnd) + 1
		}
		if desc.Length == 0 {
			columns++
		}
		slen := desc.byteLength()
		if slen <= 0 || offset+slen > len(data) {
			break
		}
		offset += slen
	}
	if columns == 0 {
		return 0, 0, false
	}

	depth = nextPow2(maxDepth)
	size = int(math.Sqrt(float64(columns)))
	return size, depth, true
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
