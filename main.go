// main holds the entry logic for the podpulse CLI.
package main

import (
	"podpulse/cmd"
	"podpulse/internal/contract"
	"podpulse/internal/iocache"
)

func main() {
	// The manager is populated lazily once sharedSetup initializes the stores.
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	// Close database connections before exiting
	iocache.CloseStores()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
