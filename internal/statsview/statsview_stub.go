//go:build !statsview
// +build !statsview

package statsview

import (
	"fmt"
	"io"
)

// Launch reports that the binary was built without the statsview tag
func Launch(output io.Writer) {
	fmt.Fprintln(output, "statsview not available: rebuild with -tags statsview")
}

// Available returns true if a statsview is available to launch
func Available() bool {
	return false
}
