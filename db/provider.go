package db

// DatabaseProvider abstracts the low-level key-value operations so stores can
// work with different embedded backends without knowing the implementation.
type DatabaseProvider interface {
	// Get retrieves a value by key; nil if the key does not exist
	Get(key []byte) ([]byte, error)

	// Put stores a key-value pair
	Put(key, value []byte) error

	// Delete removes a key-value pair
	Delete(key []byte) error

	// Has checks if a key exists
	Has(key []byte) (bool, error)

	// Close closes the database
	Close() error

	// Batch returns a new batch for atomic writes
	Batch() DatabaseBatch
}

// DatabaseBatch provides atomic batch writes
type DatabaseBatch interface {
	// Put adds a key-value pair to the batch
	Put(key, value []byte)

	// Delete adds a deletion to the batch
	Delete(key []byte)

	// Write commits all operations in the batch
	Write() error

	// Close releases batch resources
	Close()
}
