// Package domain contains shared domain types used across entity sub-packages.
// The comment aggregate lives in domain/comment. This root package holds the
// sentinel errors and validation types every layer can test against with
// errors.Is and errors.As.
package domain
