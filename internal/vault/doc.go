// Package vault implements the encrypted .vault file format and the ordered
// credential entry store persisted inside it.
//
// A vault is a single binary file: a fixed-width envelope header followed by
// the ciphertext of a JSON document. Two envelope layouts exist:
//
//	current: magic "VLT2" | salt(16) | nonce(12) | tag(16) | ciphertext
//	legacy:  salt(16) | checksum(32) | ciphertext
//
// The current layout uses AES-256-GCM and fails closed on any tampering or
// wrong passphrase. The legacy layout (AES-128-ECB plus a plaintext checksum)
// is read-compatible only; saving always writes the current layout.
//
// The decrypted document holds an ordered list of credential entries plus any
// unrecognized fields, which round-trip unchanged.
package vault
