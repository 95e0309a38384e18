// Package password hashes and verifies user passwords for Chirpy.
//
// Hashes use Argon2id in a PHC-style encoded string that embeds the salt and
// cost parameters, so every Hash call produces a distinct value even for the
// same input. Verification recomputes the digest with the parameters found in
// the hash and compares in constant time.
//
// The work factor is configurable but bounded: environment overrides are
// range-checked and can never lower it to a no-op setting. A legacy
// deployment once ran its hash at zero cost; that is treated here as a
// configuration bug rather than a contract.
package password
