package main

import (
	"fmt"
	"os"

	"github.com/jmylchreest/aide-complexity/pkg/server"
)

// cmdServe implements "aide-complexity serve [--addr=:8080]".
func cmdServe(args []string) error {
	addr := parseFlag(args, "--addr=")
	if addr == "" {
		addr = os.Getenv("AIDE_COMPLEXITY_ADDR")
	}
	if addr == "" {
		addr = DefaultServeAddr
	}

	if os.Getenv("AIDE_PPROF_ENABLE") == "1" {
		initPprof()
		defer stopPprof()
	}

	srv := server.NewServer(addr)
	fmt.Fprintf(os.Stderr, "aide-complexity: serving analyzer on %s\n", addr)
	return srv.Start()
}
