// Package client is the HTTP transport between the journal CLI and the
// journal server.
//
// # Overview
//
// HTTPClient talks JSON to the /api/v1 routes of the server and attaches the
// session's bearer token to every request. It moves journal fields exactly
// as it is given them: encryption happens in the services layer, never here.
//
// # Error Handling
//
// Transport failures and 5xx responses are reported as ErrUnavailable, 401 and
// 403 as ErrUnauthorized, anything else outside 2xx as ErrUnexpectedStatus.
// All three can be matched with errors.Is.
//
// # Concurrency
//
// An HTTPClient is safe for concurrent use once constructed; SetToken is not
// synchronised with in-flight requests.
package client
