// Package statsview serves Go runtime statistics for a running emulator
// over HTTP. Graphs are under /debug/statsview and the pprof pages under
// /debug/pprof/.
package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// DefaultAddress is used when no address is given.
const DefaultAddress = "localhost:12600"

const graphs = "/debug/statsview"

// URL returns where the graphs for addr are served.
func URL(addr string) string {
	if addr == "" {
		addr = DefaultAddress
	}
	return "http://" + addr + graphs
}

// Launch configures the viewer for addr and serves it from its own
// goroutine. The returned string is the graphs URL.
func Launch(addr string) string {
	if addr == "" {
		addr = DefaultAddress
	}
	viewer.SetConfiguration(viewer.WithAddr(addr))
	go statsview.New().Start()
	return URL(addr)
}
