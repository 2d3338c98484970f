package comment

import (
	"fmt"

	"github.com/jsamuelsen11/review-comments/internal/domain"
)

// Decide returns the event that records cmd against state. A nil event with a
// nil error means the command's effect already holds and nothing needs to be
// recorded. Rejections are returned as *Rejection sentinels.
func Decide(state State, cmd Command) (Event, error) {
	if state == nil {
		state = NotStarted{}
	}

	switch c := cmd.(type) {
	case Start:
		return decideStart(state, c)
	case EnterBody:
		return whileComposing(state, BodyEntered(c))
	case ChoosePersona:
		return whileComposing(state, PersonaChosen(c))
	case DeclareCompetingInterests:
		return whileComposing(state, CompetingInterestsDeclared(c))
	case AgreeToCode:
		return onceWhileComposing(state, CodeOfConductAgreed{}, func(s InProgress) bool {
			return s.CodeOfConductAgreed
		})
	case ConfirmVerifiedEmail:
		return onceWhileComposing(state, VerifiedEmailConfirmed{}, func(s InProgress) bool {
			return s.VerifiedEmailAddressExists
		})
	case RequestPublication:
		return decideRequestPublication(state)
	case MarkIdentifierAssigned:
		return decideMarkIdentifierAssigned(state, c)
	case MarkPublished:
		return decideMarkPublished(state)
	default:
		return nil, fmt.Errorf("%w: unsupported command %T", domain.ErrValidation, cmd)
	}
}

func decideStart(state State, c Start) (Event, error) {
	switch state.(type) {
	case NotStarted:
		return Started(c), nil
	case InProgress, ReadyForPublishing:
		return nil, ErrAlreadyStarted
	case BeingPublished:
		return nil, ErrIsBeingPublished
	default:
		return nil, ErrAlreadyPublished
	}
}

// whileComposing accepts evt while the comment is in progress or ready for
// publishing. Those fields can be changed any number of times.
func whileComposing(state State, evt Event) (Event, error) {
	switch state.(type) {
	case InProgress, ReadyForPublishing:
		return evt, nil
	default:
		return nil, rejectOutsideComposition(state)
	}
}

// onceWhileComposing records a boolean fact at most once. ReadyForPublishing
// already implies the fact.
func onceWhileComposing(state State, evt Event, holds func(InProgress) bool) (Event, error) {
	switch s := state.(type) {
	case InProgress:
		if holds(s) {
			return nil, nil
		}
		return evt, nil
	case ReadyForPublishing:
		return nil, nil
	default:
		return nil, rejectOutsideComposition(state)
	}
}

func decideRequestPublication(state State) (Event, error) {
	switch state.(type) {
	case ReadyForPublishing:
		return PublicationRequested{}, nil
	case InProgress:
		return nil, ErrIsIncomplete
	case BeingPublished:
		return nil, nil
	default:
		return nil, rejectOutsideComposition(state)
	}
}

func decideMarkIdentifierAssigned(state State, c MarkIdentifierAssigned) (Event, error) {
	switch s := state.(type) {
	case ReadyForPublishing:
		return IdentifierAssigned(c), nil
	case BeingPublished:
		if s.Assignment != nil {
			return nil, ErrIdentifierAlreadyAssigned
		}
		return IdentifierAssigned(c), nil
	case InProgress:
		return nil, ErrIsIncomplete
	default:
		return nil, rejectOutsideComposition(state)
	}
}

func decideMarkPublished(state State) (Event, error) {
	switch s := state.(type) {
	case BeingPublished:
		if s.Assignment == nil {
			return nil, ErrIdentifierNotAssigned
		}
		return CommentPublished{}, nil
	case ReadyForPublishing:
		return nil, ErrIdentifierNotAssigned
	case InProgress:
		return nil, ErrIsIncomplete
	default:
		return nil, rejectOutsideComposition(state)
	}
}

// rejectOutsideComposition maps the states where composition commands never
// apply to their rejection.
func rejectOutsideComposition(state State) error {
	switch state.(type) {
	case NotStarted:
		return ErrHasNotBeenStarted
	case BeingPublished:
		return ErrIsBeingPublished
	default:
		return ErrAlreadyPublished
	}
}
