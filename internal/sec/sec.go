// Package sec provides authentication and security primitives for the cookbook
// API.
//
// # Authentication
//
// Every /api route requires the admin API key in the API-KEY header. Keys are
// never stored in plaintext: the credential store holds a bcrypt digest, and
// the supplied key is compared against it with bcrypt's constant-time check.
//
// IMPORTANT: the key travels in a request header in the clear. TLS must be
// used in production to protect it in transit.
//
// # Components
//
//   - [Authenticate]: Validates a supplied key against the admin key
//   - [NewAdminKeyMiddleware]: Echo middleware enforcing the admin key
//   - [HashKey], [CompareKey], [GenerateKey]: bcrypt key hashing utilities
package sec
