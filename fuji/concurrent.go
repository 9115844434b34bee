package fuji

import (
	"runtime"
	"sync"
)

// parallelFor 并发执行 work(0..n-1)，调用方保证各任务写入互不重叠
func parallelFor(n int, work func(i int)) {
	numWorkers := runtime.NumCPU()
	if numWorkers > n {
		numWorkers = n
	}
	if numWorkers <= 1 {
		for i := 0; i < n; i++ {
			work(i)
		}
		return
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for workerID := 0; workerID < numWorkers; workerID++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				work(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}
