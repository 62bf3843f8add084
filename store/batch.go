package store

// op describes a pending batch operation.
type op struct {
	delete bool
	key    []byte
	value  []byte
}

func (o op) apply(out SetDeleter) error {
	if o.delete {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch collects ops and replays them on Write. It does not
// provide atomicity guarantees and is meant for in memory stores where a
// partial write cannot be observed.
type NonAtomicBatch struct {
	out SetDeleter
	ops []op
}

var _ Batch = (*NonAtomicBatch)(nil)

// Set adds a set operation to the batch.
func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, op{key: key, value: value})
	return nil
}

// Delete adds a delete operation to the batch.
func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, op{delete: true, key: key})
	return nil
}

// Write flushes all ops to the underlying store in order.
func (b *NonAtomicBatch) Write() error {
	for _, o := range b.ops {
		if err := o.apply(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}

// Discard drops all pending ops.
func (b *NonAtomicBatch) Discard() Batch {
	b.ops = nil
	return b
}
