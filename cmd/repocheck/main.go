// Repocheck runs bounded-time health checks against a repository tree.
package main

import (
	"os"

	"github.com/huangsam/repocheck/cmd"
	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/internal/iocache"
)

func main() {
	cmd.SetStoreManager(iocache.Manager)

	err := cmd.Execute()

	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	iocache.CloseStores()

	if err != nil {
		os.Exit(1)
	}
}
