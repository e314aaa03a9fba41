package various

import (
	"runtime"
	"sync"
)

// KickOffChunkWorkers splits totalItems into contiguous chunks and runs
// fn on each chunk in its own goroutine, waiting for all of them.
// Callers must make sure fn touches disjoint state per chunk; the world
// queries themselves are read-only and safe to fan out.
func KickOffChunkWorkers(totalItems int, fn func(start, end int)) {
	numWorkers := runtime.NumCPU()
	if numWorkers > totalItems {
		numWorkers = totalItems
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	var wg sync.WaitGroup
	var chunkStart int
	chunkSize := (totalItems / numWorkers) + 1
	for i := 0; i < numWorkers; i++ {
		curChunk := chunkSize
		if rem := totalItems - chunkStart; rem < curChunk {
			curChunk = rem
		}
		if curChunk <= 0 {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			fn(start, end)
			wg.Done()
		}(chunkStart, chunkStart+curChunk)
		chunkStart += curChunk
	}
	wg.Wait()
}
