package concurrent

// ConvertJobItem is one point of a batch conversion. Idx is its position in the input.
type ConvertJobItem struct {
	Idx    int
	Lat    float64
	Lon    float64
	Region string
}

type JobI interface {
	ConvertJobItem
}

type JobFunc[T JobI, G any] func(job T) G
