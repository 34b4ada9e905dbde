// Package store provides persistent storage for calibra-api using SQLite.
//
// # Architecture
//
// The store package uses an interface-driven architecture with specialized
// interfaces:
//
//   - AccountStore: User accounts with email/password credentials and roles
//   - CompanyStore: Companies that own calibration records
//   - CalibrationStore: Company-scoped calibration records
//   - ProductStore: Product records with optional file attachments
//
// SQLiteStore implements all interfaces in a single struct, allowing easy
// composition while maintaining clear interface boundaries.
//
// # Credential Handling
//
// Account lookups are split by sensitivity: GetAccountByEmail returns the
// bcrypt password hash and exists only for login-time credential checks;
// GetAccountByID never selects the hash and is what the authentication gate
// uses to resolve the principal on each request.
//
// # Error Handling
//
// Sentinel errors (ErrAccountNotFound, ErrEmailExists, ...) are returned for
// expected conditions. Duplicate email detection maps SQLite unique
// constraint violations to ErrEmailExists.
//
// # Timestamps
//
// All timestamps are stored as RFC3339 strings in UTC.
package store
