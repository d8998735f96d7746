package sealedchat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/sealedchat/client-go/internal/keystore"
)

func TestNew_RequiresKeyStore(t *testing.T) {
	_, err := New()
	if !errors.Is(err, ErrMissingKeyStore) {
		t.Errorf("expected ErrMissingKeyStore, got %v", err)
	}
}

func TestNew_FileKeyStoreUnavailable(t *testing.T) {
	_, err := New(WithFileKeyStore(t.TempDir(), nil))
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestOpen_NotProvisioned(t *testing.T) {
	client, err := New(WithMemoryKeyStore())
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	_, err = client.Open("nobody")
	if !errors.Is(err, ErrNotProvisioned) {
		t.Errorf("expected ErrNotProvisioned, got %v", err)
	}
}

func TestProvision_OpenRoundTrip(t *testing.T) {
	store := keystore.NewMemoryStore()
	client, err := New(WithKeyStore(store))
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	session, err := client.Provision("carol")
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}

	record := session.PublicKeyRecord()
	if !strings.HasPrefix(record, "-----BEGIN PUBLIC KEY-----") {
		t.Errorf("public record missing PEM framing: %q", record[:40])
	}

	// The private half landed in the store.
	material, ok, err := store.Retrieve("carol")
	if err != nil || !ok {
		t.Fatalf("Retrieve() = %v, %v", ok, err)
	}
	if material == "" {
		t.Fatal("stored material is empty")
	}
	if strings.Contains(material, "-----") {
		t.Error("stored private material must not carry PEM framing")
	}

	// A second client on the same store opens the same identity and can
	// read messages encrypted to the published record.
	client2, err := New(WithKeyStore(store))
	if err != nil {
		t.Fatal(err)
	}
	defer client2.Close()

	reopened, err := client2.Open("carol")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	env, err := reopened.Encrypt(record, "note to self")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	plaintext, err := reopened.Decrypt(env)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if plaintext != "note to self" {
		t.Errorf("plaintext = %q, want %q", plaintext, "note to self")
	}
}

func TestOpen_ReturnsCachedSession(t *testing.T) {
	client, aliceSession, _ := newTestClient(t)

	again, err := client.Open("alice")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if again != aliceSession {
		t.Error("second Open returned a different session")
	}
}

func TestOpen_CorruptStoredMaterial(t *testing.T) {
	store := keystore.NewMemoryStore()
	if err := store.Store("mallory", "not a private key"); err != nil {
		t.Fatal(err)
	}

	client, err := New(WithKeyStore(store))
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	_, err = client.Open("mallory")
	if !errors.Is(err, ErrKeyFormat) {
		t.Errorf("expected ErrKeyFormat, got %v", err)
	}
}

func TestClient_MessageExchange(t *testing.T) {
	_, aliceSession, bobSession := newTestClient(t)

	envelope, err := aliceSession.Encrypt(bobSession.PublicKeyRecord(), "hello bob")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	plaintext, err := bobSession.Decrypt(envelope)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if plaintext != "hello bob" {
		t.Errorf("plaintext = %q, want %q", plaintext, "hello bob")
	}

	// The sender cannot read their own envelope: it was wrapped for bob.
	_, err = aliceSession.Decrypt(envelope)
	if !errors.Is(err, ErrDecryption) {
		t.Errorf("expected ErrDecryption for wrong recipient, got %v", err)
	}
}

func TestSession_EncryptTo(t *testing.T) {
	_, aliceSession, bobSession := newTestClient(t)

	directory := StaticDirectory{
		"bob": bobSession.PublicKeyRecord(),
	}

	envelope, err := aliceSession.EncryptTo(context.Background(), directory, "bob", "via the directory")
	if err != nil {
		t.Fatalf("EncryptTo() error = %v", err)
	}

	plaintext, err := bobSession.Decrypt(envelope)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if plaintext != "via the directory" {
		t.Errorf("plaintext = %q", plaintext)
	}

	// Unknown recipients surface as a DirectoryError.
	_, err = aliceSession.EncryptTo(context.Background(), directory, "nobody", "hi")
	var dirErr *DirectoryError
	if !errors.As(err, &dirErr) {
		t.Fatalf("expected DirectoryError, got %v", err)
	}
	if !errors.Is(err, ErrRecipientKeyNotFound) {
		t.Errorf("expected ErrRecipientKeyNotFound, got %v", err)
	}
}

func TestSession_EncryptMalformedRecord(t *testing.T) {
	_, aliceSession, _ := newTestClient(t)

	_, err := aliceSession.Encrypt("not a key record", "hi")
	if !errors.Is(err, ErrKeyFormat) {
		t.Errorf("expected ErrKeyFormat, got %v", err)
	}
}

func TestSession_DecryptNilEnvelope(t *testing.T) {
	_, aliceSession, _ := newTestClient(t)

	_, err := aliceSession.Decrypt(nil)
	if !errors.Is(err, ErrDecryption) {
		t.Errorf("expected ErrDecryption, got %v", err)
	}
}

// barrierStore blocks each Store call until both expected writers have
// arrived, so the test fails by deadlock if the client serializes
// distinct-user writes behind a shared lock.
type barrierStore struct {
	inner *keystore.MemoryStore
	gate  *sync.WaitGroup
}

func (b *barrierStore) Store(userID, material string) error {
	b.gate.Done()
	b.gate.Wait()
	return b.inner.Store(userID, material)
}

func (b *barrierStore) Retrieve(userID string) (string, bool, error) {
	return b.inner.Retrieve(userID)
}

func TestClient_DistinctUsersProceedInParallel(t *testing.T) {
	alice, bob := testIdentities(t)

	var gate sync.WaitGroup
	gate.Add(2)
	store := &barrierStore{inner: keystore.NewMemoryStore(), gate: &gate}

	client, err := New(WithKeyStore(store))
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, identity := range []*ExportedIdentity{alice, bob} {
		wg.Add(1)
		go func(e *ExportedIdentity) {
			defer wg.Done()
			_, err := client.ImportIdentity(e)
			errs <- err
		}(identity)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("ImportIdentity() error = %v", err)
		}
	}

	if _, err := client.Open("alice"); err != nil {
		t.Errorf("Open(alice) error = %v", err)
	}
	if _, err := client.Open("bob"); err != nil {
		t.Errorf("Open(bob) error = %v", err)
	}
}

func TestClient_Closed(t *testing.T) {
	alice, _ := testIdentities(t)

	client, err := New(WithMemoryKeyStore())
	if err != nil {
		t.Fatal(err)
	}
	if err := client.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := client.Provision("x"); !errors.Is(err, ErrClientClosed) {
		t.Errorf("Provision after Close: expected ErrClientClosed, got %v", err)
	}
	if _, err := client.Open("x"); !errors.Is(err, ErrClientClosed) {
		t.Errorf("Open after Close: expected ErrClientClosed, got %v", err)
	}
	if _, err := client.ImportIdentity(alice); !errors.Is(err, ErrClientClosed) {
		t.Errorf("ImportIdentity after Close: expected ErrClientClosed, got %v", err)
	}
}
