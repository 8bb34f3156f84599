package entity

import "time"

type ReactionKind string

const (
	ReactLike    ReactionKind = "like"
	ReactLove    ReactionKind = "love"
	ReactSupport ReactionKind = "support"
	ReactSad     ReactionKind = "sad"
	ReactAngry   ReactionKind = "angry"
)

func (k ReactionKind) Valid() bool {
	switch k {
	case ReactLike, ReactLove, ReactSupport, ReactSad, ReactAngry:
		return true
	}
	return false
}

const (
	PostContentMax    = 500
	CommentContentMax = 150
)

type Reaction struct {
	ID        string       `json:"id"`
	User      UserRef      `json:"user"`
	Kind      ReactionKind `json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
}

type Comment struct {
	ID        string     `json:"id"`
	Commenter UserRef    `json:"commenter"`
	Content   string     `json:"content"`
	Reacts    []Reaction `json:"reacts"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Post struct {
	ID        string     `json:"id"`
	Publisher UserRef    `json:"publisher"`
	Content   string     `json:"content"`
	Reacts    []Reaction `json:"reacts"`
	Comments  []Comment  `json:"comments"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToggleAction is the decision for one reactor's toggle call against a
// reaction sequence that holds at most one reaction per reactor.
type ToggleAction int

const (
	// ToggleAdd appends a first-time reaction.
	ToggleAdd ToggleAction = iota
	// ToggleRemove drops an existing reaction of the same kind.
	ToggleRemove
	// ToggleSwitch replaces an existing reaction of a different kind;
	// the replacement goes to the end of the sequence.
	ToggleSwitch
)

// DecideToggle maps the reactor's existing reaction kind (nil when none)
// and the incoming kind to the action to apply.
func DecideToggle(existing *ReactionKind, incoming ReactionKind) ToggleAction {
	if existing == nil {
		return ToggleAdd
	}
	if *existing == incoming {
		return ToggleRemove
	}
	return ToggleSwitch
}

// ToggleReaction applies add/switch/remove semantics for one reactor to
// a reaction sequence and returns the resulting sequence. newID stamps
// the appended reaction when one is added.
func ToggleReaction(reacts []Reaction, reactor UserRef, kind ReactionKind, newID string, now time.Time) []Reaction {
	var existing *ReactionKind
	for i := range reacts {
		if reacts[i].User.ID == reactor.ID {
			existing = &reacts[i].Kind
			break
		}
	}

	action := DecideToggle(existing, kind)
	if action == ToggleAdd {
		return append(reacts, Reaction{ID: newID, User: reactor, Kind: kind, CreatedAt: now})
	}

	kept := make([]Reaction, 0, len(reacts))
	for _, r := range reacts {
		if r.User.ID != reactor.ID {
			kept = append(kept, r)
		}
	}
	if action == ToggleSwitch {
		kept = append(kept, Reaction{ID: newID, User: reactor, Kind: kind, CreatedAt: now})
	}
	return kept
}
