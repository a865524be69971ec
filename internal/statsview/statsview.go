//go:build statsview
// +build statsview

// Package statsview serves live runtime statistics (heap, goroutines, GC)
// over HTTP while the emulator runs.
package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/golang/glog"
)

// Address is the listen address of the statistics server
const Address = "localhost:18066"

const url = "/debug/statsview"

// Launch starts the statistics server in a new goroutine
func Launch(output io.Writer) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		mgr.Start()
	}()

	glog.Infof("[STATSVIEW] listening on %s", Address)
	fmt.Fprintf(output, "stats server available at http://%s%s\n", Address, url)
}

// Available returns true if a statsview is available to launch
func Available() bool {
	return true
}
