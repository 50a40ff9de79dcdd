// Package repositories implements SQLite persistence for all domain entities.
//
// Every failure coming from the driver is wrapped in [shared.ErrStoreUnavailable] and lookups that match
// no row return [shared.ErrNotFound], so callers can branch with errors.Is without knowing about database/sql.
//
// Key Implementations:
//   - [JobRepository] : listings with id and slug lookups, partial updates applied by the caller
//   - [ApplicationRepository] : immutable submissions listed newest first
//   - [AdminRepository] : the admin account with email-based lookups
//   - [NotificationLogRepository] : append-only notification audit trail
//
// Timestamps are stored in UTC and tags are stored as a JSON array in a TEXT column.
package repositories
