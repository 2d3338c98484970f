package comment

// Command is an intent submitted against a comment. The set is closed.
type Command interface {
	// Name returns a stable identifier used in logs and metrics.
	Name() string
	isCommand()
}

// Start begins a comment on a review.
type Start struct {
	AuthorID    string
	PrereviewID int64
}

// EnterBody sets or replaces the comment text.
type EnterBody struct {
	Body string
}

// ChoosePersona sets the persona the comment is published under.
type ChoosePersona struct {
	Persona Persona
}

// DeclareCompetingInterests records the author's competing interests.
type DeclareCompetingInterests struct {
	CompetingInterests CompetingInterests
}

// AgreeToCode records that the author agreed to the code of conduct.
type AgreeToCode struct{}

// ConfirmVerifiedEmail records that the author has a verified email address.
type ConfirmVerifiedEmail struct{}

// RequestPublication asks for a complete comment to be published.
type RequestPublication struct{}

// MarkIdentifierAssigned records the DOI the identifier service assigned.
type MarkIdentifierAssigned struct {
	Identifier Identifier
	ExternalID int64
}

// MarkPublished records that the identifier service published the comment.
type MarkPublished struct{}

func (Start) Name() string                     { return "start" }
func (EnterBody) Name() string                 { return "enter_body" }
func (ChoosePersona) Name() string             { return "choose_persona" }
func (DeclareCompetingInterests) Name() string { return "declare_competing_interests" }
func (AgreeToCode) Name() string               { return "agree_to_code_of_conduct" }
func (ConfirmVerifiedEmail) Name() string      { return "confirm_verified_email" }
func (RequestPublication) Name() string        { return "request_publication" }
func (MarkIdentifierAssigned) Name() string    { return "mark_identifier_assigned" }
func (MarkPublished) Name() string             { return "mark_published" }

func (Start) isCommand()                     {}
func (EnterBody) isCommand()                 {}
func (ChoosePersona) isCommand()             {}
func (DeclareCompetingInterests) isCommand() {}
func (AgreeToCode) isCommand()               {}
func (ConfirmVerifiedEmail) isCommand()      {}
func (RequestPublication) isCommand()        {}
func (MarkIdentifierAssigned) isCommand()    {}
func (MarkPublished) isCommand()             {}
