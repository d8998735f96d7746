// Package sealedchat provides the client-side cryptographic core for
// SealedChat, an end-to-end encrypted direct messaging service.
//
// Each user holds an RSA-4096 key pair. Message payloads are protected by a
// per-message AES-256-GCM key wrapped under the recipient's public key, so
// neither the transport nor the message store ever sees plaintext. The
// private key lives only on the local device, sealed inside a [KeyStore].
//
// Basic usage:
//
//	client, err := sealedchat.New(
//	    sealedchat.WithFileKeyStore(dir, passphrase),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// On signup: generate keys, persist the private half locally,
//	// publish the returned record through your profile store.
//	session, err := client.Provision("alice")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	publish(session.PublicKeyRecord())
//
//	// On send: encrypt for a recipient's published key record.
//	envelope, err := session.Encrypt(bobRecord, "hello bob")
//
//	// On login: load the locally stored keys, then decrypt.
//	session, err = client.Open("alice")
//	plaintext, err := session.Decrypt(envelope)
//
// The package deliberately excludes authentication, message storage and
// transport, and all presentation logic. Those collaborators appear only as
// the interfaces the core consumes ([KeyDirectory], [KeyStore]) and the
// opaque data it emits (public-key records and [Envelope] values, which the
// outer layers must preserve byte-for-byte).
package sealedchat
