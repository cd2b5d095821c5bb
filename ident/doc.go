// Package ident generates random identifier strings and integers.
//
// It is a small collaborator utility alongside the socket core: callers
// use it to label connections, sessions, and log records. Hex identifiers
// accept an optional caller-supplied seed string so that an identifier can
// be reproduced deterministically across runs; the other generators are
// seeded from the current time.
package ident
