// Package main implements the tasks-api binary: the HTTP server for per-user
// task lists plus operator commands for migrations, users and access tokens.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
