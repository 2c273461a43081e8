package domain

import (
	"errors"
	"slices"
)

type Action string

const (
	ActionLike    Action = "like"
	ActionDislike Action = "dislike"
)

// MsgInvalidAction is the client-facing message for an unknown action.
const MsgInvalidAction = "Invalid action. Must be 'like' or 'dislike'"

var ErrInvalidAction = errors.New("invalid interaction action")

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionLike, ActionDislike:
		return Action(s), nil
	}
	return "", ErrInvalidAction
}

// VoteState is one visitor's standing on one candidate.
type VoteState int

const (
	StateNone VoteState = iota
	StateLiked
	StateDisliked
)

func (s VoteState) String() string {
	switch s {
	case StateLiked:
		return "liked"
	case StateDisliked:
		return "disliked"
	default:
		return "none"
	}
}

// Transition is the vote state machine: repeating the current vote clears it,
// the other vote replaces it. The toggle queries in the postgres repository
// implement this table in SQL.
func Transition(current VoteState, action Action) VoteState {
	target := StateLiked
	if action == ActionDislike {
		target = StateDisliked
	}
	if current == target {
		return StateNone
	}
	return target
}

// StateOf reads a visitor's vote from the candidate's sets.
func StateOf(c *Candidate, visitor string) VoteState {
	switch {
	case slices.Contains(c.LikedBy, visitor):
		return StateLiked
	case slices.Contains(c.DislikedBy, visitor):
		return StateDisliked
	default:
		return StateNone
	}
}

// InteractionResult is returned after a like or dislike.
type InteractionResult struct {
	LikesCount      int  `json:"likesCount"`
	DislikesCount   int  `json:"dislikesCount"`
	UserHasLiked    bool `json:"userHasLiked"`
	UserHasDisliked bool `json:"userHasDisliked"`
}
