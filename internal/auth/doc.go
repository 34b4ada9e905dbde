// Package auth provides session authentication and authorization for calibra-api.
//
// # Session Model
//
// Sessions are stateless: the only server-side session truth is the durable
// account record. At login the server issues an HS256 JWT carrying the
// account ID, role, and username, valid for a fixed window (24 hours by
// default), and stores it in an httpOnly cookie. No session table exists.
//
// # Authentication Gate
//
// RequireAuth authenticates every protected request in strict order:
//
//  1. Extract the session cookie (absent: 401, nothing to clear)
//  2. Verify the token signature and expiry (invalid: 401, cookie cleared)
//  3. Check the subject claim is present (missing: 401, cookie cleared)
//  4. Re-resolve the account from the store without its password hash
//     (deleted: 401, cookie cleared; store fault: 500, cookie kept)
//  5. Attach the account to the request context as the principal
//
// The token's embedded role claim is advisory only. Authorization always uses
// the role on the freshly resolved account, so a role change or account
// deletion takes effect on the very next request instead of waiting out the
// token's validity window.
//
// # Role Gate
//
// RequireRole authorizes an attached principal against one required role.
// Roles match exactly; there is no hierarchy between "user" and "admin".
//
// # Endpoints
//
//   - POST /auth/signup: create an account (bcrypt-hashed password)
//   - POST /auth/login: verify credentials, set the session cookie
//   - POST /auth/logout: clear the cookie, idempotent
//   - GET  /auth/me: best-effort principal lookup, never an error status
//
// Login responds identically for unknown emails and wrong passwords,
// including a dummy bcrypt comparison for the unknown-email path to keep
// response timing constant.
//
// # Cookie Policy
//
// The session cookie is httpOnly with root path. In production it is Secure
// with SameSite=None (HTTPS, possibly cross-site frontend); in development
// it is plain with SameSite=Lax.
package auth
