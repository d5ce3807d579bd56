// Package iocache persists scan runs and check results across invocations.
package iocache

import (
	"sync"

	"github.com/huangsam/repocheck/internal/contract"
)

// AnalysisStoreManager manages the analysis store instance.
type AnalysisStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	analysis     contract.AnalysisStore
}

var _ contract.StoreManager = &AnalysisStoreManager{} // Compile-time check

// GetAnalysisStore returns the analysis AnalysisStore.
func (mgr *AnalysisStoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
