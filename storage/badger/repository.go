// Copyright 2025 Docuseek Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/docuseek/nlq/storage"
)

// repository implements storage.Repository on a BadgerDB backend.
type repository struct {
	backend *Backend
}

var _ storage.Repository = (*repository)(nil)

// NewRepository opens a repository at the given path.
func NewRepository(path string) (storage.Repository, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &repository{backend: backend}, nil
}

// NewMemoryRepository creates an in-memory repository for testing.
func NewMemoryRepository() (storage.Repository, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return &repository{backend: backend}, nil
}

func (r *repository) Close() error {
	return r.backend.Close()
}

func (r *repository) put(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		return tx.Set(key, value)
	}, true)
}

func (r *repository) scan(ctx context.Context, prefix string, visit func(val []byte) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := iter.Item().Value(visit); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

func (r *repository) PutSynonyms(ctx context.Context, entry storage.LexiconEntry) error {
	if entry.Term == "" {
		return fmt.Errorf("%w: empty term", storage.ErrSerializationFailed)
	}
	key := makeSynonymKey(string(entry.Language), strings.ToLower(entry.Term))
	return r.put(ctx, key, storage.MarshalLexiconEntry(entry))
}

func (r *repository) Synonyms(ctx context.Context) ([]storage.LexiconEntry, error) {
	var entries []storage.LexiconEntry
	err := r.scan(ctx, synonymPrefix, func(val []byte) error {
		entry, err := storage.UnmarshalLexiconEntry(val)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) PutAcronym(ctx context.Context, entry storage.AcronymEntry) error {
	if entry.Acronym == "" {
		return fmt.Errorf("%w: empty acronym", storage.ErrSerializationFailed)
	}
	key := makeAcronymKey(strings.ToUpper(entry.Acronym))
	return r.put(ctx, key, storage.MarshalAcronymEntry(entry))
}

func (r *repository) Acronyms(ctx context.Context) ([]storage.AcronymEntry, error) {
	var entries []storage.AcronymEntry
	err := r.scan(ctx, acronymPrefix, func(val []byte) error {
		entry, err := storage.UnmarshalAcronymEntry(val)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) PutTranslation(ctx context.Context, entry storage.TranslationEntry) error {
	if entry.English == "" || entry.Arabic == "" {
		return fmt.Errorf("%w: both sides of a pair are required", storage.ErrSerializationFailed)
	}
	key := makeTranslationKey(strings.ToLower(entry.English))
	return r.put(ctx, key, storage.MarshalTranslationEntry(entry))
}

func (r *repository) Translations(ctx context.Context) ([]storage.TranslationEntry, error) {
	var entries []storage.TranslationEntry
	err := r.scan(ctx, translationPrefix, func(val []byte) error {
		entry, err := storage.UnmarshalTranslationEntry(val)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) PutTemplateUsage(ctx context.Context, usage storage.TemplateUsage) error {
	if usage.TemplateID == "" {
		return fmt.Errorf("%w: empty template id", storage.ErrSerializationFailed)
	}
	return r.put(ctx, makeUsageKey(usage.TemplateID), storage.MarshalTemplateUsage(usage))
}

func (r *repository) TemplateUsage(ctx context.Context, templateID string) (storage.TemplateUsage, error) {
	var usage storage.TemplateUsage
	if err := ctx.Err(); err != nil {
		return usage, err
	}
	if r.backend.IsClosed() {
		return usage, storage.ErrStorageClosed
	}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeUsageKey(templateID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: template usage %q", storage.ErrNotFound, templateID)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			usage, err = storage.UnmarshalTemplateUsage(val)
			return err
		})
	}, false)
	return usage, err
}

func (r *repository) AllTemplateUsage(ctx context.Context) ([]storage.TemplateUsage, error) {
	var usages []storage.TemplateUsage
	err := r.scan(ctx, usagePrefix, func(val []byte) error {
		usage, err := storage.UnmarshalTemplateUsage(val)
		if err != nil {
			return err
		}
		usages = append(usages, usage)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return usages, nil
}
