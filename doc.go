// Package tieredvec provides a dynamically-resizable, randomly-indexable
// sequence container with O(1) random access and O(√N) insert and remove at
// arbitrary positions.
//
// The implementation follows the tiered vector described in "Tiered Vectors:
// Efficient Dynamic Arrays for Rank-Based Sequences" by Goodrich and Kloss II
// (1999, DOI:10.1007/3-540-48447-7_21), using the algorithms of the 1998
// version of the paper. The structure is a dope vector referencing
// one or more fixed-capacity circular buffers in which every buffer is full
// except possibly the last.
//
// # Quick Start
//
//	v := tieredvec.New[int]()
//	for i := 0; i < 1000; i++ {
//	    v.Push(i)
//	}
//	v.Insert(500, -1)          // O(√N)
//	x, ok := v.Get(500)        // O(1)
//	for val := range v.Values() {
//	    _ = val
//	}
//
// # Performance
//
// As described in the paper: O(√N) space overhead, O(1) Get and Set, O(√N)
// Insert and Remove. Blocks are allocated as the vector grows and released
// as soon as they empty, and the whole index is rebuilt with doubled or
// halved block capacity when the total count crosses the upper or lower
// threshold.
//
// # Observability
//
// Resize activity can be logged through a structured slog-backed Logger and
// counted through a MetricsCollector. Block buffer memory can be accounted
// against a resource.Controller, which also gives tests an exact leak check:
//
//	rc := resource.NewController(resource.Config{})
//	v := tieredvec.New[string](tieredvec.WithResourceController(rc))
//	// ... use v ...
//	v.Clear()
//	fmt.Println(rc.MemoryUsage()) // 0
//
// # Concurrency
//
// A Vector is strictly single-owner and not safe for concurrent use. Wrap it
// in external mutual exclusion if it must be shared.
package tieredvec
