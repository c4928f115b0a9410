package pixel

import (
	"runtime"
	"sync"
)

// Parallel executes fn across multiple goroutines, partitioning [0, dataSize)
// into contiguous ranges. Each partition is disjoint, so callers that write
// one output row (or column) per index never race, and the result is
// bit-identical to running fn(0, dataSize) serially.
//
// Arguments:
// - dataSize: The size of the data to process.
// - fn: Function invoked once per partition with [partStart, partEnd).
//
// Example:
//
//	Parallel(height, func(start, end int) {
//	    for y := start; y < end; y++ {
//	        // process row y
//	    }
//	})
func Parallel(dataSize int, fn func(partStart, partEnd int)) {
	numGoroutines := runtime.NumCPU()

	// Goroutine overhead dwarfs the work on tiny inputs.
	if dataSize < numGoroutines*2 {
		fn(0, dataSize)
		return
	}

	partSize := dataSize / numGoroutines

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		partStart := i * partSize
		partEnd := partStart + partSize

		// Last partition absorbs the remainder.
		if i == numGoroutines-1 {
			partEnd = dataSize
		}

		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(partStart, partEnd)
	}

	wg.Wait()
}
