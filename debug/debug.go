// Package debug provides env-gated trace logging for the compiler.
//
// Flags are read once at startup:
//
//	DOCSHAPE_DEBUG_COMPILE  trace compile calls and document assembly
//	DOCSHAPE_DEBUG_RESOLVE  trace reference resolution and definitions
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Compile bool
	Resolve bool
}

var d *debug

func init() {
	d = &debug{}
	d.Compile = boolEnv("DOCSHAPE_DEBUG_COMPILE")
	d.Resolve = boolEnv("DOCSHAPE_DEBUG_RESOLVE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Compile() bool {
	return d.Compile
}
func Resolve() bool {
	return d.Resolve
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
