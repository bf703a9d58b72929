package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/wizardbeardstudio/centralbank/internal/domain"
)

// fileLine is one newline-delimited JSON record: the transaction plus the
// hash-chain link to the record before it.
type fileLine struct {
	Transaction json.RawMessage `json:"transaction"`
	HashPrev    string          `json:"hash_prev"`
	HashCurr    string          `json:"hash_curr"`
}

// FileStore is the JSON-lines append-only file realisation of Store. A
// missing file at open time is treated as an empty ledger; any other read
// error is fatal to the caller, per spec.md §6.
type FileStore struct {
	mu      sync.Mutex
	file    *os.File
	records []domain.Transaction
	last    string
}

// OpenFileStore opens (creating if absent) the ledger file at path,
// replaying and verifying whatever is already in it.
func OpenFileStore(path string) (*FileStore, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open ledger file: %w", err)
	}

	s := &FileStore{file: f, last: genesisHash}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var fl fileLine
		if err := json.Unmarshal(line, &fl); err != nil {
			f.Close()
			return nil, fmt.Errorf("decode ledger line: %w", err)
		}
		if fl.HashPrev != s.last || computeHash(s.last, fl.Transaction) != fl.HashCurr {
			f.Close()
			return nil, ErrCorruptChain
		}
		tx, err := domain.UnmarshalTransaction(fl.Transaction)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("decode ledger transaction: %w", err)
		}
		s.records = append(s.records, tx)
		s.last = fl.HashCurr
	}
	if err := scanner.Err(); err != nil {
		f.Close()
		return nil, fmt.Errorf("read ledger file: %w", err)
	}
	if _, err := f.Seek(0, 2); err != nil {
		f.Close()
		return nil, fmt.Errorf("seek ledger file: %w", err)
	}
	return s, nil
}

func (s *FileStore) Append(_ context.Context, tx domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := domain.MarshalTransaction(tx)
	if err != nil {
		return err
	}
	line := fileLine{Transaction: raw, HashPrev: s.last, HashCurr: computeHash(s.last, raw)}
	encoded, err := json.Marshal(line)
	if err != nil {
		return err
	}
	if _, err := s.file.Write(append(encoded, '\n')); err != nil {
		return fmt.Errorf("append ledger file: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("sync ledger file: %w", err)
	}

	s.records = append(s.records, tx)
	s.last = line.HashCurr
	return nil
}

func (s *FileStore) Scan(_ context.Context) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Transaction, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *FileStore) Close() error {
	return s.file.Close()
}
