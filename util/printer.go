// Package util holds small formatting helpers shared across the engine.
package util

import "fmt"

// DumpBlock renders a block's raw bytes as a hex/ASCII listing, xxd-style.
// It backs the verbose superblock dump that fs_debug emits when debug
// logging is enabled.
func DumpBlock(b []byte, bytesPerRow int) string {
	var out, ascii string
	numRows := (len(b) + bytesPerRow - 1) / bytesPerRow
	for i := 0; i < numRows; i++ {
		first := i * bytesPerRow
		last := first + bytesPerRow
		row := fmt.Sprintf("%08x  ", first)
		ascii = ""
		for j := first; j < last; j++ {
			if j < len(b) {
				row += fmt.Sprintf("%02x ", b[j])
				if b[j] >= 32 && b[j] <= 126 {
					ascii += string(b[j])
				} else {
					ascii += "."
				}
			} else {
				row += "   "
				ascii += " "
			}
		}
		out += row + " " + ascii + "\n"
	}
	return out
}
