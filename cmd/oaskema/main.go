// Command oaskema describes request schemas as OpenAPI and serves a
// validating HTTP endpoint for configured routes.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
