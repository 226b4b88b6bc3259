package repository

// Option applies a configuration option to the TreapStore.
type Option func(*TreapStore)

// WithMaxLimit caps how many entries a single TopN call returns.
// Non-positive values leave TopN uncapped.
func WithMaxLimit(n int) Option {
	return func(s *TreapStore) {
		s.maxLimit = n
	}
}
