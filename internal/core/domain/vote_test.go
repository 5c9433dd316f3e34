package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestVoteSets_ToggleUp(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	t.Run("no vote becomes upvote", func(t *testing.T) {
		sets := VoteSets{}.ToggleUp(alice)
		assert.Equal(t, VoteUp, sets.StateFor(alice))
		assert.Len(t, sets.Upvotes, 1)
		assert.Empty(t, sets.Downvotes)
	})

	t.Run("second upvote withdraws", func(t *testing.T) {
		sets := VoteSets{}.ToggleUp(alice).ToggleUp(alice)
		assert.Equal(t, VoteNone, sets.StateFor(alice))
		assert.Empty(t, sets.Upvotes)
	})

	t.Run("upvote after downvote switches sides", func(t *testing.T) {
		sets := VoteSets{}.ToggleDown(alice).ToggleUp(alice)
		assert.Equal(t, VoteUp, sets.StateFor(alice))
		assert.Empty(t, sets.Downvotes)
	})

	t.Run("other voters are untouched", func(t *testing.T) {
		sets := VoteSets{}.ToggleUp(bob).ToggleUp(alice).ToggleUp(alice)
		assert.Equal(t, VoteNone, sets.StateFor(alice))
		assert.Equal(t, VoteUp, sets.StateFor(bob))
	})
}

func TestVoteSets_ToggleDown(t *testing.T) {
	alice := uuid.New()

	t.Run("no vote becomes downvote", func(t *testing.T) {
		sets := VoteSets{}.ToggleDown(alice)
		assert.Equal(t, VoteDown, sets.StateFor(alice))
	})

	t.Run("second downvote withdraws", func(t *testing.T) {
		sets := VoteSets{}.ToggleDown(alice).ToggleDown(alice)
		assert.Equal(t, VoteNone, sets.StateFor(alice))
	})

	t.Run("downvote after upvote switches sides", func(t *testing.T) {
		sets := VoteSets{}.ToggleUp(alice).ToggleDown(alice)
		assert.Equal(t, VoteDown, sets.StateFor(alice))
		assert.Empty(t, sets.Upvotes)
	})
}

func TestVoteSets_NeverInBothSets(t *testing.T) {
	alice := uuid.New()

	sets := VoteSets{}
	transitions := []func(VoteSets) VoteSets{
		func(v VoteSets) VoteSets { return v.ToggleUp(alice) },
		func(v VoteSets) VoteSets { return v.ToggleDown(alice) },
		func(v VoteSets) VoteSets { return v.ToggleDown(alice) },
		func(v VoteSets) VoteSets { return v.ToggleUp(alice) },
		func(v VoteSets) VoteSets { return v.ToggleUp(alice) },
	}

	for _, apply := range transitions {
		sets = apply(sets)
		up := containsUser(sets.Upvotes, alice)
		down := containsUser(sets.Downvotes, alice)
		assert.False(t, up && down, "user must not appear in both vote sets")
	}
}

func TestVoteSets_TogglesDoNotMutateReceiver(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	original := VoteSets{Upvotes: []uuid.UUID{alice}}
	_ = original.ToggleUp(bob)
	_ = original.ToggleDown(alice)

	assert.Equal(t, []uuid.UUID{alice}, original.Upvotes)
	assert.Empty(t, original.Downvotes)
}

func TestVoteSubjectType_IsValid(t *testing.T) {
	assert.True(t, VoteSubjectTicket.IsValid())
	assert.True(t, VoteSubjectComment.IsValid())
	assert.False(t, VoteSubjectType("article").IsValid())
	assert.False(t, VoteSubjectType("").IsValid())
}
