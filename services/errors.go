// services/errors.go
package services

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors returned by the draw and clan services. Handlers map these to
// HTTP statuses; none of them aborts the process.
var (
	// Validation
	ErrNameEmpty   = errors.New("clan name is empty")
	ErrNameTooLong = errors.New("clan name is longer than 10 characters")

	// Conflicts
	ErrCreatorConflict    = errors.New("user already created another clan")
	ErrMembershipConflict = errors.New("user is already in a clan")
	ErrNameTaken          = errors.New("clan name is already taken")
	ErrAlreadyMember      = errors.New("user is already in this clan")

	// Not found
	ErrClanNotFound = errors.New("clan not found")
	ErrUserNotFound = errors.New("user not found")

	// Capacity
	ErrClanFull = errors.New("clan has reached the maximum of 20 members")

	// State
	ErrCreatorCannotLeave = errors.New("creator cannot leave: delete the clan or transfer leadership first")
	ErrNotInClan          = errors.New("user is not in a clan")
	ErrNotClanMember      = errors.New("user is not a member of this clan")
	ErrNotCreator         = errors.New("user is not the creator of a clan")

	// Races
	ErrRaceLost = errors.New("candidate joined another clan before acceptance")
)

// CooldownError reports an attempted draw while the cooldown is still
// running. No state is mutated when it is returned.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("draw cooldown active, %s remaining", e.Remaining.Round(time.Second))
}

// NoCardsForTierError reports a draw that rolled a tier with no catalog
// cards. The draw does not consume the cooldown and the user may retry
// immediately.
type NoCardsForTierError struct {
	Rarity string
}

func (e *NoCardsForTierError) Error() string {
	return fmt.Sprintf("no cards in catalog for rarity %s", e.Rarity)
}
