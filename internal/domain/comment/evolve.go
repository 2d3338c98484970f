package comment

// Evolve returns the state that results from applying evt to state. It never
// fails: an event that does not apply to the current variant leaves the state
// unchanged, and optional fields take the last value recorded.
func Evolve(state State, evt Event) State {
	if state == nil {
		state = NotStarted{}
	}

	switch e := evt.(type) {
	case Started:
		if _, ok := state.(NotStarted); ok {
			return InProgress{AuthorID: e.AuthorID, PrereviewID: e.PrereviewID}
		}
	case BodyEntered:
		switch s := state.(type) {
		case InProgress:
			s.Body = &e.Body
			return promote(s)
		case ReadyForPublishing:
			s.Body = e.Body
			return s
		}
	case PersonaChosen:
		switch s := state.(type) {
		case InProgress:
			s.Persona = &e.Persona
			return promote(s)
		case ReadyForPublishing:
			s.Persona = e.Persona
			return s
		}
	case CompetingInterestsDeclared:
		switch s := state.(type) {
		case InProgress:
			s.CompetingInterests = &e.CompetingInterests
			return promote(s)
		case ReadyForPublishing:
			s.CompetingInterests = e.CompetingInterests
			return s
		}
	case CodeOfConductAgreed:
		if s, ok := state.(InProgress); ok {
			s.CodeOfConductAgreed = true
			return promote(s)
		}
	case VerifiedEmailConfirmed:
		if s, ok := state.(InProgress); ok {
			s.VerifiedEmailAddressExists = true
			return promote(s)
		}
	case PublicationRequested:
		if s, ok := state.(ReadyForPublishing); ok {
			return BeingPublished{Content: s.Content}
		}
	case IdentifierAssigned:
		assignment := &Assignment{Identifier: e.Identifier, ExternalID: e.ExternalID}
		switch s := state.(type) {
		case ReadyForPublishing:
			return BeingPublished{Content: s.Content, Assignment: assignment}
		case BeingPublished:
			s.Assignment = assignment
			return s
		}
	case CommentPublished:
		if s, ok := state.(BeingPublished); ok && s.Assignment != nil {
			return Published{
				Content:    s.Content,
				Identifier: s.Assignment.Identifier,
				ExternalID: s.Assignment.ExternalID,
			}
		}
	}

	return state
}

// Replay folds a history into the state it produces, starting from NotStarted.
func Replay(events []Event) State {
	var state State = NotStarted{}
	for _, evt := range events {
		state = Evolve(state, evt)
	}
	return state
}

func promote(s InProgress) State {
	if ready, ok := s.complete(); ok {
		return ready
	}
	return s
}
