// mkicon writes a single SideClip icon PNG at an arbitrary size.
// Usage: go run ./cmd/mkicon [--transparent] <size> <output.png>
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Mavwarf/sideclip-icons/internal/batch"
	"github.com/Mavwarf/sideclip-icons/internal/icon"
	"github.com/Mavwarf/sideclip-icons/internal/paths"
)

func main() {
	var opts icon.Options
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "--transparent" {
		opts.Transparent = true
		args = args[1:]
	}
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: mkicon [--transparent] <size> <output.png>")
		os.Exit(1)
	}
	size, err := strconv.Atoi(args[0])
	if err != nil || size <= 0 {
		fmt.Fprintf(os.Stderr, "Error: size must be a positive integer\n")
		os.Exit(1)
	}
	data, err := batch.RenderPNG(size, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := paths.AtomicWrite(args[1], data); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
