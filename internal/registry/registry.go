// Package registry records compile runs and their models in a SQL database.
package registry

import (
	"sync"

	"github.com/huangsam/scorecard/internal/contract"
)

// StoreManager holds the RegistryStore used by the compile commands.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.RegistryStore
}

var _ contract.RegistryManager = &StoreManager{} // Compile-time check

// GetRegistryStore returns the RegistryStore, or nil before initialization.
func (mgr *StoreManager) GetRegistryStore() contract.RegistryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}
