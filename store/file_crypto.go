package store

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const fileFormatVersion = 1

// sealedFile is the on-disk structure of a passphrase protected store.
type sealedFile struct {
	V       int    `json:"v"`
	KDF     string `json:"kdf"`
	Salt    []byte `json:"salt"`
	Time    uint32 `json:"argon_time"`
	Memory  uint32 `json:"argon_memory"`
	Threads uint8  `json:"argon_threads"`
	Nonce   []byte `json:"nonce"`
	Cipher  []byte `json:"cipher"`
}

// kdfParams are Argon2id tuning parameters. The defaults follow the OWASP
// recommendation: 1 pass, 64 MiB, 4 lanes.
type kdfParams struct {
	time    uint32
	memory  uint32
	threads uint8
}

func defaultKDFParams() kdfParams {
	return kdfParams{time: 1, memory: 64 * 1024, threads: 4}
}

// sealer holds the derived key so it is computed once per FileStore.
type sealer struct {
	key    []byte
	salt   []byte
	params kdfParams
}

func newSealer(passphrase string, params kdfParams) (*sealer, error) {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return deriveSealer(passphrase, salt, params), nil
}

func deriveSealer(passphrase string, salt []byte, params kdfParams) *sealer {
	key := argon2.IDKey([]byte(passphrase), salt, params.time, params.memory, params.threads, chacha20poly1305.KeySize)
	return &sealer{key: key, salt: salt, params: params}
}

// seal encrypts raw with XChaCha20-Poly1305 under a fresh random nonce; the
// salt is bound as associated data.
func (s *sealer) seal(raw []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return json.Marshal(sealedFile{
		V:       fileFormatVersion,
		KDF:     "argon2id",
		Salt:    s.salt,
		Time:    s.params.time,
		Memory:  s.params.memory,
		Threads: s.params.threads,
		Nonce:   nonce,
		Cipher:  aead.Seal(nil, nonce, raw, s.salt),
	})
}

// openSealed derives the key from passphrase and the parameters stored in
// the file, then decrypts it. The returned sealer is reused for later writes.
func openSealed(passphrase string, f sealedFile) ([]byte, *sealer, error) {
	if f.V > fileFormatVersion {
		return nil, nil, fmt.Errorf("%w: version %d", ErrUnsupportedFormat, f.V)
	}

	s := deriveSealer(passphrase, f.Salt, kdfParams{time: f.Time, memory: f.Memory, threads: f.Threads})
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, nil, fmt.Errorf("create aead: %w", err)
	}
	if len(f.Nonce) != aead.NonceSize() {
		return nil, nil, ErrWrongPassphrase
	}

	raw, err := aead.Open(nil, f.Nonce, f.Cipher, f.Salt)
	if err != nil {
		return nil, nil, ErrWrongPassphrase
	}
	return raw, s, nil
}
