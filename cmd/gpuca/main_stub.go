//go:build !gpu

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The GPU build of gpu-ca requires the gpu build tag and the wgpu-native library.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags gpu ./cmd/gpuca` or build with `-tags gpu`.")
	os.Exit(2)
}
