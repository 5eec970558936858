// Package pending implements the store of the transactions that are waiting
// for the proofs of other parties.
//
// A multisig transaction is passed from co-signer to co-signer, each one
// adding its proof at its own slot. The store keeps the transactions by
// identifier and merges the proofs when a transaction is saved again.
package pending

import (
	"errors"
	"sync"

	"github.com/ltonetwork/lto/core/store/kv"
	"github.com/ltonetwork/lto/core/txn"
	"github.com/ltonetwork/lto/serde"
	"github.com/ltonetwork/lto/serde/json"
	"golang.org/x/xerrors"
)

var bucketName = []byte("pending")

// Store is the store of pending transactions.
type Store struct {
	sync.Mutex

	db      kv.DB
	context serde.Context
	factory txn.TransactionFactory
	watcher *watcher
}

// NewStore returns a store that persists the transactions in the database.
func NewStore(db kv.DB) *Store {
	return &Store{
		db:      db,
		context: json.NewContext(),
		factory: txn.NewTransactionFactory(),
		watcher: newWatcher(),
	}
}

// Watch adds the observer to the list of observers notified after each
// change.
func (s *Store) Watch(obs Observer) {
	s.watcher.add(obs)
}

// Unwatch removes the observer.
func (s *Store) Unwatch(obs Observer) {
	s.watcher.remove(obs)
}

// Save stores the transaction. When a transaction with the same identifier
// is already stored, the proofs are merged: the slots signed in the new
// transaction replace the stored ones, the others are kept.
func (s *Store) Save(tx *txn.Transaction) (*txn.Transaction, error) {
	if tx.ID == "" {
		return nil, xerrors.New("transaction has no identifier")
	}

	s.Lock()
	defer s.Unlock()

	var merged *txn.Transaction

	err := s.db.Update(bucketName, func(b kv.Bucket) error {
		merged = tx.Clone()

		data := b.Get([]byte(tx.ID))
		if data != nil {
			stored, err := s.factory.TransactionOf(s.context, data)
			if err != nil {
				return xerrors.Errorf("failed to decode stored tx: %v", err)
			}

			merged.Proofs = mergeProofs(stored.Proofs, tx.Proofs)
		}

		data, err := merged.Serialize(s.context)
		if err != nil {
			return xerrors.Errorf("failed to serialize tx: %v", err)
		}

		return b.Set([]byte(tx.ID), data)
	})
	if err != nil {
		return nil, xerrors.Errorf("couldn't save tx %s: %v", tx.ID, err)
	}

	s.watcher.notify(Event{ID: merged.ID, Signed: countSigned(merged.Proofs)})

	return merged, nil
}

// Load returns the transaction with the identifier.
func (s *Store) Load(id string) (*txn.Transaction, error) {
	var tx *txn.Transaction

	err := s.db.View(bucketName, func(b kv.Bucket) error {
		data := b.Get([]byte(id))
		if data == nil {
			return xerrors.New("not found")
		}

		var err error
		tx, err = s.factory.TransactionOf(s.context, data)
		if err != nil {
			return xerrors.Errorf("failed to decode: %v", err)
		}

		return nil
	})
	if errors.Is(err, kv.ErrBucketNotFound) {
		return nil, xerrors.Errorf("couldn't load tx %s: not found", id)
	}
	if err != nil {
		return nil, xerrors.Errorf("couldn't load tx %s: %v", id, err)
	}

	return tx, nil
}

// List returns the identifiers of the stored transactions that start with the
// prefix, in key order. An empty prefix lists every transaction.
func (s *Store) List(prefix string) ([]string, error) {
	ids := []string{}

	err := s.db.View(bucketName, func(b kv.Bucket) error {
		return b.Scan([]byte(prefix), func(k, v []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})
	if errors.Is(err, kv.ErrBucketNotFound) {
		return ids, nil
	}
	if err != nil {
		return nil, xerrors.Errorf("couldn't list txs: %v", err)
	}

	return ids, nil
}

// Delete removes the transaction with the identifier. It does nothing when
// the transaction does not exist.
func (s *Store) Delete(id string) error {
	s.Lock()
	defer s.Unlock()

	err := s.db.Update(bucketName, func(b kv.Bucket) error {
		return b.Delete([]byte(id))
	})
	if err != nil {
		return xerrors.Errorf("couldn't delete tx %s: %v", id, err)
	}

	s.watcher.notify(Event{ID: id, Deleted: true})

	return nil
}

func mergeProofs(stored, proofs txn.Proofs) txn.Proofs {
	merged := stored.Clone()

	for i, proof := range proofs {
		if !proof.IsEmpty() {
			merged = merged.Set(i, append(txn.Proof{}, proof...))
		}
	}

	if merged == nil {
		merged = txn.Proofs{}
	}

	return merged
}

func countSigned(proofs txn.Proofs) int {
	count := 0
	for _, proof := range proofs {
		if !proof.IsEmpty() {
			count++
		}
	}

	return count
}
