package comment

import (
	"regexp"
	"strings"
)

// Persona is the name a comment is published under.
type Persona string

const (
	PersonaPublic    Persona = "public"
	PersonaPseudonym Persona = "pseudonym"
)

// IsValid returns true if the persona is one of the defined constants.
func (p Persona) IsValid() bool {
	switch p {
	case PersonaPublic, PersonaPseudonym:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (p Persona) String() string {
	return string(p)
}

// CompetingInterests records the author's declaration. An empty Details means
// the author declared that they have none.
type CompetingInterests struct {
	Details string `json:"details,omitempty"`
}

// None reports whether the author declared no competing interests.
func (c CompetingInterests) None() bool {
	return strings.TrimSpace(c.Details) == ""
}

var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)

// Identifier is the persistent identifier (a DOI) a comment is published with.
type Identifier string

// IsValid reports whether the identifier has the shape of a DOI.
func (i Identifier) IsValid() bool {
	return doiPattern.MatchString(string(i))
}

// String implements fmt.Stringer.
func (i Identifier) String() string {
	return string(i)
}

// Assignment pairs a persistent identifier with the record id the
// identifier service uses for the same comment. Both are always set together.
type Assignment struct {
	Identifier Identifier `json:"identifier"`
	ExternalID int64      `json:"external_id"`
}

// Content holds the fields every complete comment carries.
type Content struct {
	AuthorID           string
	PrereviewID        int64
	Body               string
	Persona            Persona
	CompetingInterests CompetingInterests
}

// PublishableContent returns the content the identifier service is asked to
// deposit. Only states past composition have complete content.
func PublishableContent(state State) (Content, bool) {
	switch s := state.(type) {
	case ReadyForPublishing:
		return s.Content, true
	case BeingPublished:
		return s.Content, true
	case Published:
		return s.Content, true
	default:
		return Content{}, false
	}
}
