// Command keytool manages sealedchat identities in a file key store and
// exercises the encrypt/decrypt paths from the shell. It is a development
// and support tool, not part of the application.
//
// Configuration comes from the environment (a .env file is honored):
//
//	SEALEDCHAT_KEYSTORE_DIR         directory for sealed key records
//	SEALEDCHAT_KEYSTORE_PASSPHRASE  passphrase sealing the records at rest
//
// Usage:
//
//	keytool generate <userId>
//	keytool export-public <userId>
//	keytool export-identity <userId>
//	keytool import-identity                  (export JSON on stdin)
//	keytool encrypt <userId> <message>       (recipient record on stdin)
//	keytool decrypt <userId>                 (envelope JSON on stdin)
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	sealedchat "github.com/sealedchat/client-go"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: keytool <command> [args]")
	}

	_ = godotenv.Load()

	dir := os.Getenv("SEALEDCHAT_KEYSTORE_DIR")
	passphrase := os.Getenv("SEALEDCHAT_KEYSTORE_PASSPHRASE")
	if dir == "" || passphrase == "" {
		fatal("SEALEDCHAT_KEYSTORE_DIR and SEALEDCHAT_KEYSTORE_PASSPHRASE must be set")
	}

	client, err := sealedchat.New(sealedchat.WithFileKeyStore(dir, []byte(passphrase)))
	if err != nil {
		fatal("create client: %v", err)
	}
	defer client.Close()

	switch os.Args[1] {
	case "generate":
		generate(client, arg(2, "keytool generate <userId>"))
	case "export-public":
		exportPublic(client, arg(2, "keytool export-public <userId>"))
	case "export-identity":
		exportIdentity(client, arg(2, "keytool export-identity <userId>"))
	case "import-identity":
		importIdentity(client)
	case "encrypt":
		encrypt(client, arg(2, "keytool encrypt <userId> <message>"), arg(3, "keytool encrypt <userId> <message>"))
	case "decrypt":
		decrypt(client, arg(2, "keytool decrypt <userId>"))
	default:
		fatal("unknown command: %s", os.Args[1])
	}
}

func arg(i int, usage string) string {
	if len(os.Args) <= i {
		fatal("usage: %s", usage)
	}
	return os.Args[i]
}

func generate(client *sealedchat.Client, userID string) {
	session, err := client.Provision(userID)
	if err != nil {
		fatal("provision: %v", err)
	}

	output := struct {
		UserID      string `json:"userId"`
		Ciphersuite string `json:"ciphersuite"`
		PublicKey   string `json:"publicKey"`
	}{
		UserID:      session.UserID(),
		Ciphersuite: sealedchat.Ciphersuite,
		PublicKey:   session.PublicKeyRecord(),
	}
	if err := json.NewEncoder(os.Stdout).Encode(output); err != nil {
		fatal("encode output: %v", err)
	}
}

func exportPublic(client *sealedchat.Client, userID string) {
	session, err := client.Open(userID)
	if err != nil {
		fatal("open session: %v", err)
	}
	// The record is PEM text, printable as is.
	fmt.Print(session.PublicKeyRecord())
}

func exportIdentity(client *sealedchat.Client, userID string) {
	session, err := client.Open(userID)
	if err != nil {
		fatal("open session: %v", err)
	}

	exported, err := session.Export()
	if err != nil {
		fatal("export identity: %v", err)
	}
	if err := json.NewEncoder(os.Stdout).Encode(exported); err != nil {
		fatal("encode export: %v", err)
	}
}

func importIdentity(client *sealedchat.Client) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fatal("read stdin: %v", err)
	}

	var exported sealedchat.ExportedIdentity
	if err := json.Unmarshal(data, &exported); err != nil {
		fatal("parse export: %v", err)
	}

	if _, err := client.ImportIdentity(&exported); err != nil {
		fatal("import identity: %v", err)
	}
	if err := json.NewEncoder(os.Stdout).Encode(map[string]bool{"success": true}); err != nil {
		fatal("encode output: %v", err)
	}
}

func encrypt(client *sealedchat.Client, userID, message string) {
	session, err := client.Open(userID)
	if err != nil {
		fatal("open session: %v", err)
	}

	record, err := io.ReadAll(os.Stdin)
	if err != nil {
		fatal("read recipient record: %v", err)
	}

	envelope, err := session.Encrypt(string(record), message)
	if err != nil {
		fatal("encrypt: %v", err)
	}
	if err := json.NewEncoder(os.Stdout).Encode(envelope); err != nil {
		fatal("encode envelope: %v", err)
	}
}

func decrypt(client *sealedchat.Client, userID string) {
	session, err := client.Open(userID)
	if err != nil {
		fatal("open session: %v", err)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fatal("read stdin: %v", err)
	}

	var envelope sealedchat.Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		fatal("parse envelope: %v", err)
	}

	plaintext, err := session.Decrypt(&envelope)
	if err != nil {
		fatal("decrypt: %v", err)
	}
	fmt.Println(plaintext)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
