// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// plainFile is the on-disk structure of an unprotected store.
type plainFile struct {
	V       int               `json:"v"`
	Entries map[string][]byte `json:"entries"`
}

// probeFile is decoded first to tell plain and sealed files apart.
type probeFile struct {
	V   int    `json:"v"`
	KDF string `json:"kdf"`
}

type fileOptions struct {
	passphrase string
	kdf        kdfParams
}

// FileOption configures a FileStore.
type FileOption func(*fileOptions)

// WithPassphrase seals the store file with a key derived from passphrase
// (Argon2id + XChaCha20-Poly1305). A plain file opened with a passphrase is
// re-written sealed on the next change.
func WithPassphrase(passphrase string) FileOption {
	return func(o *fileOptions) {
		o.passphrase = passphrase
	}
}

// withKDFParams lowers Argon2 cost in tests.
func withKDFParams(p kdfParams) FileOption {
	return func(o *fileOptions) {
		o.kdf = p
	}
}

// FileStore keeps all entries in memory and writes the whole file through a
// temp file and rename on every change, so a crash never leaves a truncated
// store behind.
type FileStore struct {
	path string

	mu     sync.Mutex
	data   map[string][]byte
	sealer *sealer
}

// NewFileStore opens (or prepares to create) the store file at path.
// The parent directory is created with mode 0700.
//
// Returns ErrWrongPassphrase if the file is sealed and the passphrase is
// missing or wrong.
func NewFileStore(path string, opts ...FileOption) (*FileStore, error) {
	o := fileOptions{kdf: defaultKDFParams()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("error creating store directory: %w", err)
	}

	fs := &FileStore{path: path, data: make(map[string][]byte)}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if o.passphrase != "" {
			if fs.sealer, err = newSealer(o.passphrase, o.kdf); err != nil {
				return nil, err
			}
		}
		return fs, nil
	case err != nil:
		return nil, fmt.Errorf("error reading store file: %w", err)
	}

	if err = fs.decode(raw, o); err != nil {
		return nil, err
	}
	return fs, nil
}

func (f *FileStore) decode(raw []byte, o fileOptions) error {
	var probe probeFile
	if err := json.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("error decoding store file: %w", err)
	}
	if probe.V > fileFormatVersion {
		return fmt.Errorf("%w: version %d", ErrUnsupportedFormat, probe.V)
	}

	if probe.KDF != "" {
		if o.passphrase == "" {
			return ErrWrongPassphrase
		}
		var sealed sealedFile
		if err := json.Unmarshal(raw, &sealed); err != nil {
			return fmt.Errorf("error decoding sealed store file: %w", err)
		}
		plain, s, err := openSealed(o.passphrase, sealed)
		if err != nil {
			return err
		}
		f.sealer = s
		raw = plain
	} else if o.passphrase != "" {
		s, err := newSealer(o.passphrase, o.kdf)
		if err != nil {
			return err
		}
		f.sealer = s
	}

	var pf plainFile
	if err := json.Unmarshal(raw, &pf); err != nil {
		return fmt.Errorf("error decoding store entries: %w", err)
	}
	if pf.Entries != nil {
		f.data = pf.Entries
	}
	return nil
}

// Get implements [Store].
func (f *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.data[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

// Set implements [Store]. The in-memory entry is only kept when the file
// write succeeds.
func (f *FileStore) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.data[key]
	f.data[key] = slices.Clone(value)
	if err := f.flush(); err != nil {
		if had {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

// Remove implements [Store].
func (f *FileStore) Remove(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.data[key]
	if !had {
		return nil
	}
	delete(f.data, key)
	if err := f.flush(); err != nil {
		f.data[key] = prev
		return err
	}
	return nil
}

// Path returns the file backing the store.
func (f *FileStore) Path() string {
	return f.path
}

// flush must be called with f.mu held.
func (f *FileStore) flush() error {
	raw, err := json.Marshal(plainFile{V: fileFormatVersion, Entries: f.data})
	if err != nil {
		return fmt.Errorf("error encoding store entries: %w", err)
	}

	if f.sealer != nil {
		if raw, err = f.sealer.seal(raw); err != nil {
			return fmt.Errorf("error sealing store file: %w", err)
		}
	}

	if err = writeFileAtomic(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("error writing store file: %w", err)
	}
	return nil
}

// writeFileAtomic writes bytes via a temp file, then atomically replaces
// the target.
func writeFileAtomic(path string, b []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	f, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err = f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp, mode); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
