package lane

import (
	"fmt"
	"os"
	"runtime"
	"testing"
)

// TestMain prints the detected host SIMD level so CI logs show which
// machine produced a given run.
func TestMain(m *testing.M) {
	fmt.Printf("=== Lane Diagnostics ===\n")
	fmt.Printf("GOOS=%s GOARCH=%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("LANEBENCH_NO_SIMD=%q\n", os.Getenv("LANEBENCH_NO_SIMD"))
	fmt.Printf("Level: %s (%d-byte registers, %d float32 per register)\n", CurrentName(), CurrentWidth(), NativeLanes())
	fmt.Printf("Lane width: %d\n", Width)
	fmt.Printf("========================\n\n")

	os.Exit(m.Run())
}
