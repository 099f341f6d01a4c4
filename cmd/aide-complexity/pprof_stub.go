//go:build !pprof

package main

func initPprof() {
	// pprof support requires building with -tags pprof.
}

func stopPprof() {
	// No-op when pprof is not compiled in.
}
