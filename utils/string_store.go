package utils

import (
	"sync"
)

var stringStoreInstance *stringStoreImpl
var stringStoreInitializer sync.Once

// StringStore interns strings so repeated values share one pointer. Interning
// is case-preserving; callers that need normalized keys normalize before
// calling.
type StringStore interface {
	GetPointer(s string) *string

	// Lock avoids memory leaks. When all models are loaded the service locks
	// the store; a locked store doesn't save new pointers.
	Lock()
}

type stringStoreImpl struct {
	store    sync.Map //map[string] *string
	isLocked bool
}

func (stringStore *stringStoreImpl) GetPointer(s string) *string {
	if !stringStore.isLocked {
		ptr, _ := stringStore.store.LoadOrStore(s, &s)
		return ptr.(*string)
	}

	ptr, ok := stringStore.store.Load(s)
	if !ok {
		return &s
	}

	return ptr.(*string)
}

func (stringStore *stringStoreImpl) Lock() {
	stringStore.isLocked = true
}

func GlobalStringStore() StringStore {
	stringStoreInitializer.Do(func() {
		stringStoreInstance = new(stringStoreImpl)
		stringStoreInstance.isLocked = false
	})

	return stringStoreInstance
}
