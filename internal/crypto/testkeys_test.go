package crypto

import (
	"sync"
	"testing"
)

// RSA-4096 generation is expensive, so tests in this package share two
// lazily generated pairs instead of generating fresh keys per test.
var (
	testPairOnce sync.Once
	testPairA    *KeyPair
	testPairB    *KeyPair
	testPairErr  error
)

func testKeyPairs(t testing.TB) (*KeyPair, *KeyPair) {
	t.Helper()
	testPairOnce.Do(func() {
		testPairA, testPairErr = GenerateKeyPair()
		if testPairErr == nil {
			testPairB, testPairErr = GenerateKeyPair()
		}
	})
	if testPairErr != nil {
		t.Fatalf("GenerateKeyPair() error = %v", testPairErr)
	}
	return testPairA, testPairB
}
