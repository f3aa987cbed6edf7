package order

// Kind distinguishes the two product order flavours. Campaign orders
// carry an extra matching step between invitation acceptance and content
// submission; survey orders go straight to the answering phase.
type Kind string

const (
	KindCampaign Kind = "CAMPAIGN"
	KindSurvey   Kind = "SURVEY"
)

// IsValid checks if the kind is a known order kind
func (k Kind) IsValid() bool {
	return k == KindCampaign || k == KindSurvey
}

// HasMatchingStep reports whether accepted influencers pass through the
// matching phase before they may submit work
func (k Kind) HasMatchingStep() bool {
	return k == KindCampaign
}

// Status represents the coarse lifecycle of a product order
type Status int

const (
	StatusInPreparation Status = iota
	StatusOnGoing
	StatusFinished
	StatusArchived
)

// String returns the string representation of the order status
func (s Status) String() string {
	switch s {
	case StatusInPreparation:
		return "IN_PREPARATION"
	case StatusOnGoing:
		return "ON_GOING"
	case StatusFinished:
		return "FINISHED"
	case StatusArchived:
		return "ARCHIVED"
	default:
		return "UNKNOWN"
	}
}

// IsValid checks if the status is a known order status
func (s Status) IsValid() bool {
	return s >= StatusInPreparation && s <= StatusArchived
}

// AtLeast reports whether the order has reached the given lifecycle stage
func (s Status) AtLeast(other Status) bool {
	return s >= other
}

// ParticipantStatus tracks an influencer's progress on a product order.
// Values below participantLadderEnd form an ordered ladder the happy
// path climbs one rung at a time; values from participantBranchBase up
// are terminal branch states reached by leaving the ladder.
type ParticipantStatus int

const (
	// Ladder states, in progression order.
	ParticipantAdded ParticipantStatus = iota
	ParticipantInvited
	ParticipantMatching
	ParticipantToBeSubmitted
	ParticipantToBeApproved
	ParticipantApproved
	ParticipantToBePaid
	ParticipantPaid

	participantLadderEnd
)

const (
	participantBranchBase ParticipantStatus = iota + 100

	// Branch states. Terminal except where CanTransitionTo allows
	// re-entering the ladder (e.g. a rejected submission reworked).
	ParticipantDeclined
	ParticipantNotSelected
	ParticipantRemoved
	ParticipantWithdrawn
	ParticipantNotApproved
)

// String returns the canonical name of the participant status
func (s ParticipantStatus) String() string {
	switch s {
	case ParticipantAdded:
		return "ADDED"
	case ParticipantInvited:
		return "INVITED"
	case ParticipantMatching:
		return "MATCHING"
	case ParticipantToBeSubmitted:
		return "TO_BE_SUBMITTED"
	case ParticipantToBeApproved:
		return "TO_BE_APPROVED"
	case ParticipantApproved:
		return "APPROVED"
	case ParticipantToBePaid:
		return "TO_BE_PAID"
	case ParticipantPaid:
		return "PAID"
	case ParticipantDeclined:
		return "DECLINED"
	case ParticipantNotSelected:
		return "NOT_SELECTED"
	case ParticipantRemoved:
		return "REMOVED"
	case ParticipantWithdrawn:
		return "WITHDRAWN"
	case ParticipantNotApproved:
		return "NOT_APPROVED"
	default:
		return "UNKNOWN"
	}
}

// Label returns the kind-specific display name. Surveys answer questions
// rather than submit content, so the working states read differently.
func (s ParticipantStatus) Label(kind Kind) string {
	if kind == KindSurvey && s == ParticipantToBeSubmitted {
		return "TO_BE_ANSWERED"
	}
	return s.String()
}

// IsValid checks if the status is a known participant status
func (s ParticipantStatus) IsValid() bool {
	if s >= ParticipantAdded && s < participantLadderEnd {
		return true
	}
	return s > participantBranchBase && s <= ParticipantNotApproved
}

// OnLadder reports whether the status is a progression state rather than
// a branch state
func (s ParticipantStatus) OnLadder() bool {
	return s >= ParticipantAdded && s < participantLadderEnd
}

// Before reports whether the status sits strictly below the given ladder
// rung. Branch states always compare above the ladder.
func (s ParticipantStatus) Before(rung ParticipantStatus) bool {
	return s < rung
}

// AtLeast reports whether the status has reached the given ladder rung.
// Branch states always compare above the ladder.
func (s ParticipantStatus) AtLeast(rung ParticipantStatus) bool {
	return s >= rung
}

// HasApplied reports whether the influencer made it into the working
// part of the flow. Matching still counts as pre-application: the
// collaboration only starts once the match is confirmed.
func (s ParticipantStatus) HasApplied() bool {
	return s.OnLadder() && s.AtLeast(ParticipantToBeSubmitted)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ParticipantStatus) CanTransitionTo(target ParticipantStatus, kind Kind) bool {
	switch s {
	case ParticipantAdded:
		return target == ParticipantInvited || target == ParticipantNotSelected
	case ParticipantInvited:
		switch target {
		case ParticipantInvited, ParticipantDeclined, ParticipantNotSelected:
			return true
		case ParticipantMatching:
			return kind.HasMatchingStep()
		case ParticipantToBeSubmitted:
			return !kind.HasMatchingStep()
		}
		return false
	case ParticipantMatching:
		return target == ParticipantToBeSubmitted ||
			target == ParticipantNotSelected || target == ParticipantWithdrawn
	case ParticipantToBeSubmitted:
		return target == ParticipantToBeApproved ||
			target == ParticipantRemoved || target == ParticipantWithdrawn
	case ParticipantToBeApproved:
		return target == ParticipantApproved || target == ParticipantNotApproved ||
			target == ParticipantRemoved || target == ParticipantWithdrawn
	case ParticipantApproved:
		return target == ParticipantToBePaid ||
			target == ParticipantRemoved || target == ParticipantWithdrawn
	case ParticipantToBePaid:
		return target == ParticipantPaid ||
			target == ParticipantRemoved || target == ParticipantWithdrawn
	case ParticipantPaid:
		return target == ParticipantRemoved || target == ParticipantWithdrawn
	case ParticipantNotApproved:
		return target == ParticipantToBeApproved || target == ParticipantApproved ||
			target == ParticipantRemoved || target == ParticipantWithdrawn
	}
	return false
}
