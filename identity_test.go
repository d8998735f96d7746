package sealedchat

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExportedIdentity_RoundTrip(t *testing.T) {
	_, aliceSession, bobSession := newTestClient(t)

	// A message addressed to alice before the backup.
	envelope, err := bobSession.Encrypt(aliceSession.PublicKeyRecord(), "before the reinstall")
	if err != nil {
		t.Fatal(err)
	}

	exported, err := aliceSession.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if exported.Version != IdentityExportVersion {
		t.Errorf("Version = %d, want %d", exported.Version, IdentityExportVersion)
	}
	if exported.UserID != "alice" {
		t.Errorf("UserID = %q, want %q", exported.UserID, "alice")
	}
	if exported.ExportedAt.IsZero() {
		t.Error("ExportedAt is zero")
	}

	// The export survives serialization, which is how applications store it.
	serialized, err := json.Marshal(exported)
	if err != nil {
		t.Fatal(err)
	}
	var restored ExportedIdentity
	if err := json.Unmarshal(serialized, &restored); err != nil {
		t.Fatal(err)
	}

	// A fresh client on an empty store stands in for the new install.
	fresh, err := New(WithMemoryKeyStore())
	if err != nil {
		t.Fatal(err)
	}
	defer fresh.Close()

	session, err := fresh.ImportIdentity(&restored)
	if err != nil {
		t.Fatalf("ImportIdentity() error = %v", err)
	}
	if session.PublicKeyRecord() != aliceSession.PublicKeyRecord() {
		t.Error("imported session publishes a different key record")
	}

	plaintext, err := session.Decrypt(envelope)
	if err != nil {
		t.Fatalf("Decrypt() after import error = %v", err)
	}
	if plaintext != "before the reinstall" {
		t.Errorf("plaintext = %q", plaintext)
	}

	// The import persisted the key, so a plain Open works from here on.
	if _, err := fresh.Open("alice"); err != nil {
		t.Errorf("Open() after import error = %v", err)
	}
}

func TestExportedIdentity_Validate(t *testing.T) {
	alice, bob := testIdentities(t)

	valid := *alice

	tests := []struct {
		name   string
		mutate func(e *ExportedIdentity)
	}{
		{"unsupported version", func(e *ExportedIdentity) { e.Version = 2 }},
		{"missing user id", func(e *ExportedIdentity) { e.UserID = "" }},
		{"missing private key", func(e *ExportedIdentity) { e.PrivateKey = "" }},
		{"garbage private key", func(e *ExportedIdentity) { e.PrivateKey = "bm90IGEga2V5" }},
		{"mismatched public key", func(e *ExportedIdentity) { e.PublicKey = bob.PublicKey }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exported := valid
			tt.mutate(&exported)
			if err := exported.Validate(); !errors.Is(err, ErrInvalidImportData) {
				t.Errorf("Validate() = %v, want ErrInvalidImportData", err)
			}
		})
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on intact export = %v", err)
	}

	// The public record is derivable, so an export without one validates.
	noPublic := valid
	noPublic.PublicKey = ""
	if err := noPublic.Validate(); err != nil {
		t.Errorf("Validate() without public key = %v", err)
	}
}

func TestImportIdentity_Invalid(t *testing.T) {
	client, err := New(WithMemoryKeyStore())
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	if _, err := client.ImportIdentity(nil); !errors.Is(err, ErrInvalidImportData) {
		t.Errorf("ImportIdentity(nil) = %v, want ErrInvalidImportData", err)
	}

	alice, _ := testIdentities(t)
	broken := *alice
	broken.PrivateKey = "AAAA"
	if _, err := client.ImportIdentity(&broken); !errors.Is(err, ErrInvalidImportData) {
		t.Errorf("ImportIdentity(broken) = %v, want ErrInvalidImportData", err)
	}
}

func TestImportIdentity_ReplacesStoredKey(t *testing.T) {
	alice, bob := testIdentities(t)

	client, err := New(WithMemoryKeyStore())
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	if _, err := client.ImportIdentity(alice); err != nil {
		t.Fatal(err)
	}

	// Importing different material under the same user id wins.
	replacement := *bob
	replacement.UserID = "alice"
	session, err := client.ImportIdentity(&replacement)
	if err != nil {
		t.Fatalf("ImportIdentity(replacement) error = %v", err)
	}
	if session.PublicKeyRecord() != bob.PublicKey {
		t.Error("replacement import did not take effect")
	}
}
