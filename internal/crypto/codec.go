package crypto

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// ExportPublicKey serializes a public key to its published textual form:
// SPKI DER, base64-encoded and framed with PEM header/footer lines
// ("-----BEGIN PUBLIC KEY-----" / "-----END PUBLIC KEY-----").
//
// The output is deterministic for a given key and is stored and transmitted
// verbatim by the profile directory.
func ExportPublicKey(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("%w: marshal SPKI: %v", ErrKeyFormat, err)
	}

	block := &pem.Block{
		Type:  publicKeyPEMType,
		Bytes: der,
	}
	return string(pem.EncodeToMemory(block)), nil
}

// ImportPublicKey parses a published public-key record back into a key
// handle usable only for encryption.
//
// It returns [ErrKeyFormat] on malformed PEM framing, invalid base64 or DER
// structure, or a key that is not an RSA public key.
func ImportPublicKey(record string) (*rsa.PublicKey, error) {
	block, rest := pem.Decode([]byte(record))
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrKeyFormat)
	}
	if block.Type != publicKeyPEMType {
		return nil, fmt.Errorf("%w: unexpected PEM type %q", ErrKeyFormat, block.Type)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: trailing data after PEM block", ErrKeyFormat)
	}

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: parse SPKI: %v", ErrKeyFormat, err)
	}

	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: key is not RSA", ErrKeyFormat)
	}
	return pub, nil
}

// ExportPrivateKey serializes a private key for local storage: PKCS#8 DER,
// base64-encoded with no PEM framing. The result is never displayed or
// transmitted, only handed to the local keystore.
func ExportPrivateKey(priv *rsa.PrivateKey) (string, error) {
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return "", fmt.Errorf("%w: marshal PKCS#8: %v", ErrKeyFormat, err)
	}
	return ToBase64(der), nil
}

// ImportPrivateKey parses stored private-key material back into a key
// handle usable for decryption.
//
// It returns [ErrKeyFormat] on invalid base64, invalid DER structure, or a
// key that is not an RSA private key.
func ImportPrivateKey(material string) (*rsa.PrivateKey, error) {
	der, err := FromBase64(material)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %v", ErrKeyFormat, err)
	}

	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: parse PKCS#8: %v", ErrKeyFormat, err)
	}

	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: key is not RSA", ErrKeyFormat)
	}
	return priv, nil
}
