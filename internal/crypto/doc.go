// Package crypto provides the cryptographic primitives behind .vault files.
//
// The current scheme is AES-256-GCM with:
//   - 32-byte key derived from the passphrase via PBKDF2-HMAC-SHA256
//   - 16-byte random salt per encryption
//   - 12-byte random nonce per encryption
//   - 16-byte authentication tag, fail-closed on any mismatch
//
// A legacy AES-128-ECB scheme with a plaintext SHA-256 checksum is kept for
// reading vaults written by older tooling. It is never used for writing.
package crypto
