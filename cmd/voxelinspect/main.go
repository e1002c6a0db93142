// Command voxelinspect decodes a VXL map file and prints summary
// statistics about it: dimensions, byte size, solid voxel count, (with
// -top-x and -top-y) the surface height and color at a single column, and
// the re-encoded size. It is a diagnostic tool, not a library entry point.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/voxelcore/voxelcore/vxl"
)

func main() {
	width := flag.Int("width", 512, "map width in voxels")
	height := flag.Int("height", 512, "map height in voxels")
	depth := flag.Int("depth", 64, "map depth in voxels")
	infer := flag.Bool("infer-size", false, "infer width/height/depth from the file instead of using -width/-height/-depth")
	topX := flag.Int("top-x", -1, "print the surface Z at this column (requires -top-y)")
	topY := flag.Int("top-y", -1, "print the surface Z at this column (requires -top-x)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: voxelinspect [flags] <file.vxl>\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	w, h, d := *width, *height, *depth
	if *infer {
		size, inferredDepth, ok := vxl.InferSize(data)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: could not infer size from file\n")
			os.Exit(1)
		}
		w, h, d = size, size, inferredDepth
		fmt.Printf("Inferred size: %dx%dx%d\n", w, h, d)
	}

	m, err := vxl.Decode(w, h, d, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("File: %s\n", flag.Arg(0))
	fmt.Printf("Dimensions: %dx%dx%d\n", m.Width, m.Height, m.Depth)
	fmt.Printf("Bytes: %d\n", len(data))

	solid := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			for z := 0; z < m.Depth; z++ {
				if m.IsSolid(x, y, z) {
					solid++
				}
			}
		}
	}
	total := m.Width * m.Height * m.Depth
	fmt.Printf("Solid voxels: %d / %d (%.2f%%)\n", solid, total, 100*float64(solid)/float64(total))

	if *topX >= 0 && *topY >= 0 {
		if z, ok := m.GetTop(*topX, *topY); ok {
			color, _ := m.ColorAt(*topX, *topY, z)
			fmt.Printf("Top at (%d,%d): z=%d color=%06x\n", *topX, *topY, z, color&0xFFFFFF)
		} else {
			fmt.Printf("Top at (%d,%d): column is empty\n", *topX, *topY)
		}
	}

	reencoded := vxl.Encode(m)
	fmt.Printf("Re-encoded size: %d bytes\n", len(reencoded))
}
