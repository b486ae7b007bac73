package concurrent_test

import (
	"sort"
	"testing"

	"lintang/gcjwgs/pkg/concurrent"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	t.Run("every job produces one result", func(t *testing.T) {
		const n = 100
		wp := concurrent.NewWorkerPool[concurrent.ConvertJobItem, int](4, n)
		for i := 0; i < n; i++ {
			wp.AddJob(concurrent.ConvertJobItem{Idx: i, Lat: float64(i)})
		}
		wp.Close()
		wp.Start(func(job concurrent.ConvertJobItem) int {
			return job.Idx
		})
		wp.Wait()

		got := []int{}
		for r := range wp.CollectResults() {
			got = append(got, r)
		}
		sort.Ints(got)
		assert.Len(t, got, n)
		for i := range got {
			assert.Equal(t, i, got[i])
		}
	})

	t.Run("non positive worker count falls back to one", func(t *testing.T) {
		wp := concurrent.NewWorkerPool[concurrent.ConvertJobItem, string](0, 1)
		wp.AddJob(concurrent.ConvertJobItem{Region: "CN"})
		wp.Close()
		wp.Start(func(job concurrent.ConvertJobItem) string { return job.Region })
		wp.Wait()
		assert.Equal(t, "CN", <-wp.CollectResults())
	})
}
