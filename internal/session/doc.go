// Package session holds the console's view of the signed-in operator.
//
// The token codec reads the payload segment of a session token without verifying its
// signature. Everything derived from it (identity, role, expiry) is advisory and only
// drives navigation and presentation; the API server re-checks every request.
package session
