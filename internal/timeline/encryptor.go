package timeline

import "io"

// Encryptor handles encryption of exported snapshot content and unlocking
// for decryption. Encryption uses the public key only, so exports need no
// user interaction. Decryption requires a passphrase to unlock the private
// key, producing a DecryptionContext for the session.
type Encryptor interface {
	// Setup performs one-time key generation. Called during `maulwurf
	// config init`. Generates a key pair, stores the public key in
	// plaintext, and encrypts the private key with the provided passphrase.
	Setup(passphrase string) error

	// Encrypt encrypts data read from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock decrypts the private key using the passphrase and returns a
	// DecryptionContext valid for the duration of the session.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured returns true if both key files exist at configured paths.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked private key in memory for the duration
// of an import session. Created by Encryptor.Unlock; never written to disk.
type DecryptionContext interface {
	Decrypt(r io.Reader, w io.Writer) error
}
