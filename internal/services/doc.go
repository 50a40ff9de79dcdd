// Package services orchestrates the job board's operations on top of the repositories and the
// auth, limiter, uploads and notify components.
//
// # Jobs
//
// [JobService] lists, resolves (by id, then by slug), creates, patches and deletes listings.
// Slugs and timestamps are derived here, never taken from the caller.
//
// # Applications
//
// [ApplicationService.Submit] runs the submission pipeline in a fixed order: rate limit, form
// validation, resume storage, job title lookup, record write, notification. The record is written only
// after the resume is on disk, and a failed write removes the file and returns the error.
// Notification failures are logged and never fail a submission.
//
// # Authentication
//
// [AuthService] exchanges credentials for a bearer token and resolves a bearer header back into the
// admin it was issued to. Unknown emails and wrong passwords produce the same error.
//
// # Seeding
//
// [Seeder] creates the admin account and the sample job catalogue embedded in seed.toml.
package services
