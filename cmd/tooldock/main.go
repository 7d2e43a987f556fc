// main is the entry point for the tooldock CLI.
package main

import (
	"github.com/tooldock/tooldock/cmd"
	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/internal/toolcache"
)

func main() {
	err := cmd.Execute()

	// Close the remote cache tier before deciding the exit path; LogFatal
	// terminates the process.
	toolcache.CloseRemote()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
