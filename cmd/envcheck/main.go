// Package main is the entry point for envcheck.
package main

import "env-inspector/cmd/envcheck/cmd"

func main() {
	cmd.Execute()
}
