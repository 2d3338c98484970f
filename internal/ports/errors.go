package ports

import (
	"errors"
	"fmt"

	"github.com/jsamuelsen11/review-comments/internal/domain"
)

// Infrastructure errors. Each wraps domain.ErrUnavailable so callers can tell
// them apart from comment.Rejection values, which wrap domain.ErrConflict.
// Adapters join them with the underlying cause:
//
//	fmt.Errorf("%w: %w", ports.ErrUnableToPublish, err)
var (
	ErrQueryUnavailable         = fmt.Errorf("%w: comment state query failed", domain.ErrUnavailable)
	ErrHandlingUnavailable      = fmt.Errorf("%w: comment command could not be recorded", domain.ErrUnavailable)
	ErrUnableToAssignIdentifier = fmt.Errorf("%w: unable to assign identifier", domain.ErrUnavailable)
	ErrUnableToPublish          = fmt.Errorf("%w: unable to publish comment", domain.ErrUnavailable)
	ErrUnableToNotify           = fmt.Errorf("%w: unable to notify about published comment", domain.ErrUnavailable)
	ErrUnableToCheckEmail       = fmt.Errorf("%w: unable to check verified email", domain.ErrUnavailable)
)

// ErrVersionConflict is returned by EventStore.Append when another writer has
// already recorded an event at the same version.
var ErrVersionConflict = errors.New("event version already recorded")
