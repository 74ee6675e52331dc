package tieredvec

import (
	"fmt"

	"github.com/hupe1980/tieredvec/internal/block"
)

// ErrMemoryLimit is the panic value when a block allocation is rejected by
// the configured resource controller. Allocation failure is fatal: there is
// no degraded mode without backing storage.
var ErrMemoryLimit = block.ErrMemoryLimit

// Op names the operation that detected a contract violation.
type Op string

const (
	// OpInsert is an Insert or Push call.
	OpInsert Op = "insert"
	// OpRemove is a Remove or Pop call.
	OpRemove Op = "remove"
)

// OutOfRangeError is the panic value for an Insert or Remove position outside
// the vector's bounds. Contract violations are fatal and never partially
// applied: the vector is unchanged when the panic is raised.
type OutOfRangeError struct {
	Op    Op
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	if e.Op == OpInsert {
		return fmt.Sprintf("tieredvec: insertion index (is %d) should be <= len (is %d)", e.Index, e.Len)
	}
	return fmt.Sprintf("tieredvec: removal index (is %d) should be < len (is %d)", e.Index, e.Len)
}
