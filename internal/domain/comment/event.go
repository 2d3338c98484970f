package comment

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event type names as stored in the journal.
const (
	TypeStarted                    = "comment.started"
	TypeBodyEntered                = "comment.body_entered"
	TypePersonaChosen              = "comment.persona_chosen"
	TypeCompetingInterestsDeclared = "comment.competing_interests_declared"
	TypeCodeOfConductAgreed        = "comment.code_of_conduct_agreed"
	TypeVerifiedEmailConfirmed     = "comment.verified_email_confirmed"
	TypePublicationRequested       = "comment.publication_requested"
	TypeIdentifierAssigned         = "comment.identifier_assigned"
	TypePublished                  = "comment.published"
)

// Event is an immutable fact about a comment. The set is closed.
type Event interface {
	// Type returns the journal name of the event.
	Type() string
	isEvent()
}

type Started struct {
	AuthorID    string `json:"author_id"`
	PrereviewID int64  `json:"prereview_id"`
}

type BodyEntered struct {
	Body string `json:"body"`
}

type PersonaChosen struct {
	Persona Persona `json:"persona"`
}

type CompetingInterestsDeclared struct {
	CompetingInterests CompetingInterests `json:"competing_interests"`
}

type CodeOfConductAgreed struct{}

type VerifiedEmailConfirmed struct{}

type PublicationRequested struct{}

type IdentifierAssigned struct {
	Identifier Identifier `json:"identifier"`
	ExternalID int64      `json:"external_id"`
}

// CommentPublished records that the comment is publicly available under its
// identifier.
type CommentPublished struct{}

func (Started) Type() string                    { return TypeStarted }
func (BodyEntered) Type() string                { return TypeBodyEntered }
func (PersonaChosen) Type() string              { return TypePersonaChosen }
func (CompetingInterestsDeclared) Type() string { return TypeCompetingInterestsDeclared }
func (CodeOfConductAgreed) Type() string        { return TypeCodeOfConductAgreed }
func (VerifiedEmailConfirmed) Type() string     { return TypeVerifiedEmailConfirmed }
func (PublicationRequested) Type() string       { return TypePublicationRequested }
func (IdentifierAssigned) Type() string         { return TypeIdentifierAssigned }
func (CommentPublished) Type() string           { return TypePublished }

func (Started) isEvent()                    {}
func (BodyEntered) isEvent()                {}
func (PersonaChosen) isEvent()              {}
func (CompetingInterestsDeclared) isEvent() {}
func (CodeOfConductAgreed) isEvent()        {}
func (VerifiedEmailConfirmed) isEvent()     {}
func (PublicationRequested) isEvent()       {}
func (IdentifierAssigned) isEvent()         {}
func (CommentPublished) isEvent()           {}

// RecordedEvent is an event as it sits in the journal.
type RecordedEvent struct {
	ID            uuid.UUID
	CommentID     uuid.UUID
	Version       int64
	Event         Event
	RecordedAt    time.Time
	CorrelationID string
}

// EncodeEvent returns the JSON payload stored for an event.
func EncodeEvent(e Event) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", e.Type(), err)
	}
	return data, nil
}

// DecodeEvent rebuilds an event from its journal type name and payload.
func DecodeEvent(eventType string, data []byte) (Event, error) {
	switch eventType {
	case TypeStarted:
		return decodeAs[Started](eventType, data)
	case TypeBodyEntered:
		return decodeAs[BodyEntered](eventType, data)
	case TypePersonaChosen:
		return decodeAs[PersonaChosen](eventType, data)
	case TypeCompetingInterestsDeclared:
		return decodeAs[CompetingInterestsDeclared](eventType, data)
	case TypeCodeOfConductAgreed:
		return CodeOfConductAgreed{}, nil
	case TypeVerifiedEmailConfirmed:
		return VerifiedEmailConfirmed{}, nil
	case TypePublicationRequested:
		return PublicationRequested{}, nil
	case TypeIdentifierAssigned:
		return decodeAs[IdentifierAssigned](eventType, data)
	case TypePublished:
		return CommentPublished{}, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", eventType)
	}
}

func decodeAs[E Event](eventType string, data []byte) (Event, error) {
	var e E
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", eventType, err)
	}
	return e, nil
}
