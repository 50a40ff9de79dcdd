// Package notify delivers notifications and keeps their audit trail.
//
// A [Dispatcher] hands every message to a [Sender] and records exactly one
// [models.NotificationLog] per attempt, whatever the outcome. Sender failures are
// reported through [Result] and never returned as errors, so a failed email cannot
// abort the operation that triggered it.
//
// Two senders exist: [ResendSender] posts to the Resend HTTP API and [LogSender]
// only writes the message to the logger. The server picks one at startup.
package notify
