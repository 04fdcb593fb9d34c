// Package repository defines the assessment history store and errors.
package repository

// Option applies a configuration option to the HistoryStore.
type Option func(*HistoryStore)

// WithShardCount sets the number of shards in the history store.
func WithShardCount(count int) Option {
	return func(s *HistoryStore) {
		if count > 0 {
			s.shardCount = count
		}
	}
}
