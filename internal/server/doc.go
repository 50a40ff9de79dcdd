// Package server provides HTTP routing, middleware, and the handlers of the job board API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support. [BasicRouter] registers
// "METHOD /path" patterns on an [http.ServeMux], so path values such as {id} are read with
// [http.Request.PathValue] and unsupported methods answer 405.
//
// Router-wide [Middleware] wraps every request, the first added being the outermost. Route-level
// middleware only wraps its own route, which is how [RequireAdmin] guards the admin endpoints.
//
// # Handlers
//
// A [Handler] groups [Route] values. The public handler serves health, jobs, applications, the test email
// and login. The admin handler serves applications, resumes, email logs and job management behind the
// bearer token guard.
//
// # Errors
//
// Handlers return errors from the service layer unchanged. [StatusFor] maps the error kinds in package
// shared to status codes and [Detail] produces the {"detail": "..."} body. Errors that map to 500 are
// logged but never echoed to the client.
package server
