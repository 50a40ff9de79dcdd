// Package models defines domain entities and persistence interfaces for the job board.
//
// The package contains two categories of types:
//
// 1. Inputs: request payloads validated before they reach a repository
//   - [JobInput] : fields required to post a listing
//   - [JobPatch] : partial listing update where every field is optional
//   - [Credentials] : admin login payload
//   - [ApplicationForm] : applicant profile fields submitted with a resume
//
// 2. Persistent Entities: database-backed records
//   - [Job] : a published listing, addressed by id or slug
//   - [Application] : an immutable applicant submission pointing at a stored resume
//   - [Admin] : the single administrative account, identified by email
//   - [NotificationLog] : one audit entry per notification attempt
//
// All persistent entities implement the [Model] interface. [Store] covers append-only collections and
// [Repository] adds update and delete for mutable ones.
package models
