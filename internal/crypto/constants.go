package crypto

const (
	// RSAKeyBits is the modulus size in bits for generated key pairs.
	RSAKeyBits = 4096

	// WrappedKeySize is the size of an RSA-OAEP-wrapped AES key in bytes,
	// equal to the RSA modulus size.
	WrappedKeySize = RSAKeyBits / 8

	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESNonceSize is the size of an AES-GCM nonce in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16

	// publicKeyPEMType is the PEM block type for serialized public keys.
	publicKeyPEMType = "PUBLIC KEY"

	// Ciphersuite is the canonical string representation of the algorithm suite.
	Ciphersuite = "RSA-4096-OAEP-SHA-256:AES-256-GCM"
)
