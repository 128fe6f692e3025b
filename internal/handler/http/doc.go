// Package http serves the task manager REST API.
//
// Routes under /tasks and /users require a bearer token; the auth middleware
// resolves it to the calling user and stores the user in the request
// context. Every service error is turned into a status code and a
// {"error": "..."} body by [writeError].
package http
