package core

import (
	"fmt"
	"sync"
)

var identifierMu sync.Mutex
var owners []interface{}

// IdentifierAcquireNewID hands out the lowest free id and remembers owner.
func IdentifierAcquireNewID(owner interface{}) uint32 {
	identifierMu.Lock()
	defer identifierMu.Unlock()

	for i := range owners {
		// Existing free spot. Take it.
		if owners[i] == nil {
			owners[i] = owner
			return uint32(i)
		}
	}
	owners = append(owners, owner)
	return uint32(len(owners) - 1)
}

func IdentifierReleaseID(id uint32) error {
	identifierMu.Lock()
	defer identifierMu.Unlock()

	if int(id) >= len(owners) {
		return fmt.Errorf("identifier release: id '%d' out of range (max=%d). Nothing was done", id, len(owners))
	}
	owners[id] = nil
	return nil
}

func IdentifierOwner(id uint32) (interface{}, bool) {
	identifierMu.Lock()
	defer identifierMu.Unlock()

	if int(id) >= len(owners) || owners[id] == nil {
		return nil, false
	}
	return owners[id], true
}
