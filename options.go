package gridcast

// Option configures a Renderer during creation.
type Option func(*Renderer)

// WithWorkers sets the number of worker goroutines used for the column and
// row passes. 1 renders on the calling goroutine; 0 or negative selects
// GOMAXPROCS. The output is identical for any worker count.
func WithWorkers(n int) Option {
	return func(r *Renderer) {
		r.workers = n
	}
}
