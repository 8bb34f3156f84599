package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func reactorCount(reacts []Reaction, userID string) int {
	n := 0
	for _, r := range reacts {
		if r.User.ID == userID {
			n++
		}
	}
	return n
}

func TestToggleReaction_FirstTimeAppends(t *testing.T) {
	now := time.Now()
	alice := UserRef{ID: "alice"}

	reacts := ToggleReaction(nil, alice, ReactLike, "r1", now)

	assert.Len(t, reacts, 1)
	assert.Equal(t, ReactLike, reacts[0].Kind)
	assert.Equal(t, "alice", reacts[0].User.ID)
}

func TestToggleReaction_SameKindRemoves(t *testing.T) {
	now := time.Now()
	alice := UserRef{ID: "alice"}

	reacts := ToggleReaction(nil, alice, ReactLove, "r1", now)
	reacts = ToggleReaction(reacts, alice, ReactLove, "r2", now)

	assert.Empty(t, reacts)
}

func TestToggleReaction_DifferentKindSwitches(t *testing.T) {
	now := time.Now()
	alice := UserRef{ID: "alice"}

	reacts := ToggleReaction(nil, alice, ReactLike, "r1", now)
	reacts = ToggleReaction(reacts, alice, ReactAngry, "r2", now)

	assert.Len(t, reacts, 1)
	assert.Equal(t, ReactAngry, reacts[0].Kind)
	assert.Equal(t, 1, reactorCount(reacts, "alice"))
}

func TestToggleReaction_SwitchMovesToEnd(t *testing.T) {
	now := time.Now()
	alice := UserRef{ID: "alice"}
	bob := UserRef{ID: "bob"}

	reacts := ToggleReaction(nil, alice, ReactLike, "r1", now)
	reacts = ToggleReaction(reacts, bob, ReactSad, "r2", now)
	reacts = ToggleReaction(reacts, alice, ReactSupport, "r3", now)

	assert.Len(t, reacts, 2)
	assert.Equal(t, "bob", reacts[0].User.ID)
	assert.Equal(t, "alice", reacts[1].User.ID)
	assert.Equal(t, ReactSupport, reacts[1].Kind)
}

func TestToggleReaction_AtMostOnePerReactor(t *testing.T) {
	now := time.Now()
	alice := UserRef{ID: "alice"}
	kinds := []ReactionKind{ReactLike, ReactLove, ReactSupport, ReactSad, ReactAngry, ReactLike, ReactLike}

	var reacts []Reaction
	for i, k := range kinds {
		reacts = ToggleReaction(reacts, alice, k, string(rune('a'+i)), now)
		assert.LessOrEqual(t, reactorCount(reacts, "alice"), 1)
	}
}

func TestToggleReaction_PairIsIdempotent(t *testing.T) {
	now := time.Now()
	alice := UserRef{ID: "alice"}
	bob := UserRef{ID: "bob"}

	original := ToggleReaction(nil, bob, ReactLove, "r0", now)

	reacts := ToggleReaction(original, alice, ReactSad, "r1", now)
	reacts = ToggleReaction(reacts, alice, ReactSad, "r2", now)

	assert.Equal(t, original, reacts)
}

func TestToggleReaction_DoesNotTouchOtherReactors(t *testing.T) {
	now := time.Now()
	alice := UserRef{ID: "alice"}
	bob := UserRef{ID: "bob"}

	reacts := ToggleReaction(nil, bob, ReactLike, "r1", now)
	reacts = ToggleReaction(reacts, alice, ReactLike, "r2", now)
	reacts = ToggleReaction(reacts, alice, ReactLike, "r3", now)

	assert.Equal(t, 1, reactorCount(reacts, "bob"))
	assert.Equal(t, 0, reactorCount(reacts, "alice"))
}

func TestDecideToggle(t *testing.T) {
	like := ReactLike

	assert.Equal(t, ToggleAdd, DecideToggle(nil, ReactLike))
	assert.Equal(t, ToggleRemove, DecideToggle(&like, ReactLike))
	assert.Equal(t, ToggleSwitch, DecideToggle(&like, ReactAngry))
}

func TestReactionKind_Valid(t *testing.T) {
	assert.True(t, ReactLike.Valid())
	assert.True(t, ReactAngry.Valid())
	assert.False(t, ReactionKind("dislike").Valid())
	assert.False(t, ReactionKind("").Valid())
}
