package keystore

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	sealedVersion = 1
	sealedPrefix  = "SCKS1\n"
	saltSize      = 16

	argonTime    = uint32(2)
	argonMemKB   = uint32(64 * 1024)
	argonThreads = uint8(1)
)

// sealedRecord is the on-disk envelope around one private-key record.
type sealedRecord struct {
	Version     uint32 `json:"version"`
	KDF         string `json:"kdf"`
	KDFTime     uint32 `json:"kdf_time"`
	KDFMemoryKB uint32 `json:"kdf_memory_kb"`
	KDFThreads  uint8  `json:"kdf_threads"`
	Salt        []byte `json:"salt"`
	Nonce       []byte `json:"nonce"`
	Ciphertext  []byte `json:"ciphertext"`
}

// storeRecord is the sealed payload: the record carries its own user id so
// a file moved or copied under the wrong name is detected as corrupt.
type storeRecord struct {
	UserID             string `json:"userId"`
	PrivateKeyMaterial string `json:"privateKeyMaterial"`
}

// FileStore keeps one sealed file per user id under a directory.
//
// Files are named by the SHA-256 of the user id, so arbitrary ids never
// influence the path. Writes go through a temp file and rename, so a
// concurrent reader observes either the previous record or the new one,
// never a torn write.
type FileStore struct {
	dir        string
	passphrase []byte

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewFileStore opens (creating if needed) a sealed file keystore rooted at
// dir. The passphrase seals every record at rest and must be non-empty.
//
// Returns [ErrUnavailable] if the directory cannot be created.
func NewFileStore(dir string, passphrase []byte) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: directory is required", ErrUnavailable)
	}
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("%w: passphrase is required", ErrUnavailable)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrUnavailable, dir, err)
	}

	pass := make([]byte, len(passphrase))
	copy(pass, passphrase)

	return &FileStore{
		dir:        dir,
		passphrase: pass,
		locks:      make(map[string]*sync.Mutex),
	}, nil
}

// lockFor returns the mutex serializing access to one user id's record.
// Distinct ids get distinct locks and proceed fully in parallel.
func (f *FileStore) lockFor(userID string) *sync.Mutex {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		f.locks[userID] = l
	}
	return l
}

func (f *FileStore) path(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return filepath.Join(f.dir, hex.EncodeToString(sum[:])+".sealed")
}

// Store seals material under userID and atomically replaces any prior file.
func (f *FileStore) Store(userID, material string) error {
	l := f.lockFor(userID)
	l.Lock()
	defer l.Unlock()

	payload, err := json.Marshal(storeRecord{
		UserID:             userID,
		PrivateKeyMaterial: material,
	})
	if err != nil {
		return fmt.Errorf("%w: encode record: %v", ErrUnavailable, err)
	}

	sealed, err := f.seal(payload)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, ".sealed-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrUnavailable, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: chmod: %v", ErrUnavailable, err)
	}
	if _, err := tmp.Write(sealed); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write: %v", ErrUnavailable, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync: %v", ErrUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrUnavailable, err)
	}

	if err := os.Rename(tmpName, f.path(userID)); err != nil {
		return fmt.Errorf("%w: rename: %v", ErrUnavailable, err)
	}
	return nil
}

// Retrieve unseals and returns the record for userID. A missing file is the
// normal not-provisioned state (ok == false, nil error).
func (f *FileStore) Retrieve(userID string) (string, bool, error) {
	l := f.lockFor(userID)
	l.Lock()
	defer l.Unlock()

	raw, err := os.ReadFile(f.path(userID))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: read: %v", ErrUnavailable, err)
	}

	payload, err := f.unseal(raw)
	if err != nil {
		return "", false, err
	}

	var rec storeRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return "", false, fmt.Errorf("%w: decode record", ErrCorruptRecord)
	}
	if rec.UserID != userID {
		return "", false, fmt.Errorf("%w: record user id mismatch", ErrCorruptRecord)
	}

	return rec.PrivateKeyMaterial, true, nil
}

func (f *FileStore) seal(payload []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("%w: generate salt: %v", ErrUnavailable, err)
	}

	key := argon2.IDKey(f.passphrase, salt, argonTime, argonMemKB, argonThreads, chacha20poly1305.KeySize)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: generate nonce: %v", ErrUnavailable, err)
	}

	env := sealedRecord{
		Version:     sealedVersion,
		KDF:         "argon2id",
		KDFTime:     argonTime,
		KDFMemoryKB: argonMemKB,
		KDFThreads:  argonThreads,
		Salt:        salt,
		Nonce:       nonce,
		Ciphertext:  aead.Seal(nil, nonce, payload, nil),
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("%w: encode envelope: %v", ErrUnavailable, err)
	}
	return append([]byte(sealedPrefix), raw...), nil
}

func (f *FileStore) unseal(data []byte) ([]byte, error) {
	if !strings.HasPrefix(string(data), sealedPrefix) {
		return nil, fmt.Errorf("%w: missing envelope prefix", ErrCorruptRecord)
	}
	data = data[len(sealedPrefix):]

	var env sealedRecord
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: decode envelope", ErrCorruptRecord)
	}
	if env.Version != sealedVersion || env.KDF != "argon2id" {
		return nil, fmt.Errorf("%w: unsupported envelope", ErrCorruptRecord)
	}
	if len(env.Salt) != saltSize {
		return nil, fmt.Errorf("%w: salt size %d, expected %d", ErrCorruptRecord, len(env.Salt), saltSize)
	}
	// Open panics on a wrong-length nonce, so reject it here.
	if len(env.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("%w: nonce size %d, expected %d", ErrCorruptRecord, len(env.Nonce), chacha20poly1305.NonceSizeX)
	}

	key := argon2.IDKey(f.passphrase, env.Salt, env.KDFTime, env.KDFMemoryKB, env.KDFThreads, chacha20poly1305.KeySize)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	payload, err := aead.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		// Covers both a damaged file and a wrong passphrase; the two are
		// indistinguishable by construction.
		return nil, fmt.Errorf("%w: envelope authentication failed", ErrCorruptRecord)
	}
	return payload, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
