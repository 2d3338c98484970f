package comment

const (
	testAuthor      = "0000-0002-1825-0097"
	testPrereview   = int64(42)
	testIdentifier  = Identifier("10.5281/zenodo.107286")
	testExternalID  = int64(107286)
	otherIdentifier = Identifier("10.5281/zenodo.999999")
)

func strPtr(s string) *string { return &s }

func personaPtr(p Persona) *Persona { return &p }

func testContent() Content {
	return Content{
		AuthorID:           testAuthor,
		PrereviewID:        testPrereview,
		Body:               "<p>The methods section needs a power analysis.</p>",
		Persona:            PersonaPublic,
		CompetingInterests: CompetingInterests{},
	}
}

func inProgressState() InProgress {
	return InProgress{AuthorID: testAuthor, PrereviewID: testPrereview}
}

func readyState() ReadyForPublishing {
	return ReadyForPublishing{Content: testContent()}
}

func beingPublishedState() BeingPublished {
	return BeingPublished{Content: testContent()}
}

func assignedState() BeingPublished {
	return BeingPublished{
		Content:    testContent(),
		Assignment: &Assignment{Identifier: testIdentifier, ExternalID: testExternalID},
	}
}

func publishedState() Published {
	return Published{Content: testContent(), Identifier: testIdentifier, ExternalID: testExternalID}
}

// allStates returns one value of every variant, including both shapes of
// BeingPublished.
func allStates() []State {
	return []State{
		NotStarted{},
		inProgressState(),
		readyState(),
		beingPublishedState(),
		assignedState(),
		publishedState(),
	}
}

func allCommands() []Command {
	return []Command{
		Start{AuthorID: testAuthor, PrereviewID: testPrereview},
		EnterBody{Body: "text"},
		ChoosePersona{Persona: PersonaPseudonym},
		DeclareCompetingInterests{CompetingInterests: CompetingInterests{Details: "I am a co-author"}},
		AgreeToCode{},
		ConfirmVerifiedEmail{},
		RequestPublication{},
		MarkIdentifierAssigned{Identifier: otherIdentifier, ExternalID: 999999},
		MarkPublished{},
	}
}
