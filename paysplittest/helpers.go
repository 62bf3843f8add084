// Package paysplittest provides mocks and helpers for testing handlers
// and extensions without a full application setup.
package paysplittest

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/iov-one/paysplit"
)

var condCnt uint64

// NewCondition returns a mocked condition. Each call returns a different
// value, unique within the process.
func NewCondition() paysplit.Condition {
	n := atomic.AddUint64(&condCnt, 1)
	data := []byte(fmt.Sprintf("mock-condition-%08d", n))
	return paysplit.NewCondition("test", "mock", data)
}

// SequenceID returns an ID as if it was generated by a bucket sequence.
func SequenceID(n int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(n))
	return b
}
