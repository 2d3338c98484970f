package comment

// Status names a State variant.
type Status string

const (
	StatusNotStarted         Status = "not_started"
	StatusInProgress         Status = "in_progress"
	StatusReadyForPublishing Status = "ready_for_publishing"
	StatusBeingPublished     Status = "being_published"
	StatusPublished          Status = "published"
)

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// State is the projection of a comment's history. The variant set is closed:
// NotStarted, InProgress, ReadyForPublishing, BeingPublished and Published.
type State interface {
	Status() Status
	isState()
}

// NotStarted is the state of an id with no recorded events.
type NotStarted struct{}

// InProgress is a comment the author is still composing. Nil pointers mark
// fields the author has not provided yet.
type InProgress struct {
	AuthorID                   string
	PrereviewID                int64
	Body                       *string
	Persona                    *Persona
	CompetingInterests         *CompetingInterests
	CodeOfConductAgreed        bool
	VerifiedEmailAddressExists bool
}

// ReadyForPublishing is a complete comment whose publication has not been
// requested.
type ReadyForPublishing struct {
	Content
}

// BeingPublished is a comment whose publication was requested. Assignment is
// nil until the identifier service has assigned a DOI.
type BeingPublished struct {
	Content
	Assignment *Assignment
}

// Published is the terminal state.
type Published struct {
	Content
	Identifier Identifier
	ExternalID int64
}

func (NotStarted) Status() Status         { return StatusNotStarted }
func (InProgress) Status() Status         { return StatusInProgress }
func (ReadyForPublishing) Status() Status { return StatusReadyForPublishing }
func (BeingPublished) Status() Status     { return StatusBeingPublished }
func (Published) Status() Status          { return StatusPublished }

func (NotStarted) isState()         {}
func (InProgress) isState()         {}
func (ReadyForPublishing) isState() {}
func (BeingPublished) isState()     {}
func (Published) isState()          {}

// complete returns the ReadyForPublishing state once every required field is
// present, the code of conduct is agreed and a verified email address exists.
func (s InProgress) complete() (ReadyForPublishing, bool) {
	if s.Body == nil || s.Persona == nil || s.CompetingInterests == nil {
		return ReadyForPublishing{}, false
	}
	if !s.CodeOfConductAgreed || !s.VerifiedEmailAddressExists {
		return ReadyForPublishing{}, false
	}
	return ReadyForPublishing{Content: Content{
		AuthorID:           s.AuthorID,
		PrereviewID:        s.PrereviewID,
		Body:               *s.Body,
		Persona:            *s.Persona,
		CompetingInterests: *s.CompetingInterests,
	}}, true
}
