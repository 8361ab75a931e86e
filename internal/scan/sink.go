//go:generate mockgen -source=sink.go -destination=mocks/mock_sink.go -package=mocks

package scan

// Sink receives flushed batches of records. The engine hands over each batch
// exactly once, in discovery order, and reuses the slice afterwards, so
// implementations must not retain it.
type Sink interface {
	// WriteBatch appends records and hands them to the OS before returning,
	// so a later failure of the process cannot lose or truncate them. Syncing
	// to stable storage is left to Close.
	WriteBatch(records []Record) error
	// Close releases the sink.
	Close() error
}
