// Package common contains shared constants, sentinel errors and small helpers
// used by both the journal client and the journal server.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer credential.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in AuthorizationHeaderName.
const BearerPrefix = "Bearer "

// APIPrefix is the path prefix of every journal API route.
const APIPrefix = "/api/v1"
