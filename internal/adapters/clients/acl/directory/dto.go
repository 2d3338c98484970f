// Package directory implements the Anti-Corruption Layer translators for the
// user directory that stores authors' contact email addresses.
package directory

// ContactEmailDTO matches the directory's contact email resource.
type ContactEmailDTO struct {
	Value string `json:"value"`
	// Type is "verified" or "unverified".
	Type string `json:"type"`
}
