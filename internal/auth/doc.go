// Package auth implements admin authentication: password hashing, signed bearer tokens and the
// request guard that turns an Authorization header into a verified identity.
//
// Tokens are HS256 JWTs carrying the admin email as subject. They are never stored; validity depends on
// the signature and expiry alone. Whether the subject still exists is checked by the caller of [Guard].
package auth
