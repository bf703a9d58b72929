// Package store holds the transaction store abstraction used by the
// history/ledger processor (C4): append-only, insertion-ordered, linear
// scan. Every realisation also hash-chains its records the way the
// teacher's audit package does, strengthening "ledger is append-only"
// into something recovery can actually verify.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/wizardbeardstudio/centralbank/internal/domain"
)

// ErrCorruptChain is returned when a stored record's hash does not match
// what recomputing the chain from genesis produces: by Scan for the memory
// and Postgres stores, by OpenFileStore for the file store, and by
// MemoryStore.Append when the previous record no longer matches its hash.
var ErrCorruptChain = errors.New("ledger: hash chain corruption detected")

// genesisHash seeds the chain before any record has been appended.
const genesisHash = "GENESIS"

// Store is the append-only transaction log C4 persists applied
// transactions to and scans to answer QueryHistory.
type Store interface {
	Append(ctx context.Context, tx domain.Transaction) error
	Scan(ctx context.Context) ([]domain.Transaction, error)
	Close() error
}

// computeHash chains a record onto prev the same way the teacher's
// audit.ComputeHash does: sha256 over prev concatenated with the record's
// canonical bytes.
func computeHash(prev string, txBytes []byte) string {
	h := sha256.New()
	_, _ = h.Write([]byte(prev))
	_, _ = h.Write(txBytes)
	return hex.EncodeToString(h.Sum(nil))
}
