//go:build !(js && wasm)

// Package main runs the webterm demo in the browser.
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "webterm runs in the browser. Build it with GOOS=js GOARCH=wasm.")
	os.Exit(1)
}
