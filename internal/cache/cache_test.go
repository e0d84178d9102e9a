package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"libradesk/internal/models"
)

func TestStore_EmptyBeforeFirstReplace(t *testing.T) {
	s := New()

	assert.NotNil(t, s.Users())
	assert.Empty(t, s.Users())
	assert.NotNil(t, s.Books())
	assert.Empty(t, s.Books())
	assert.NotNil(t, s.Transactions())
	assert.Empty(t, s.Transactions())
}

func TestStore_ReplaceIsFullReplacement(t *testing.T) {
	s := New()

	first := []models.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", AvailableCopies: 3},
		{ID: 2, Title: "Solaris", Author: "Stanislaw Lem", AvailableCopies: 1},
	}
	s.ReplaceBooks(first)
	assert.Equal(t, first, s.Books())

	// the second snapshot does not merge with the first
	second := []models.Book{{ID: 9, Title: "Neuromancer", Author: "William Gibson", AvailableCopies: 2}}
	s.ReplaceBooks(second)
	assert.Equal(t, second, s.Books())
}

func TestStore_SnapshotSurvivesCallerMutation(t *testing.T) {
	s := New()

	in := []models.User{{ID: 1, Username: "alice"}}
	s.ReplaceUsers(in)

	in[0].Username = "mallory"
	assert.Equal(t, "alice", s.Users()[0].Username)

	out := s.Users()
	out[0].Username = "mallory"
	assert.Equal(t, "alice", s.Users()[0].Username)
}

func TestStore_CollectionsAreIndependent(t *testing.T) {
	s := New()

	s.ReplaceUsers([]models.User{{ID: 1, Username: "alice"}})
	s.ReplaceBooks([]models.Book{{ID: 2, Title: "Dune"}})

	require.Len(t, s.Users(), 1)
	require.Len(t, s.Books(), 1)

	s.ReplaceBooks(nil)
	assert.Empty(t, s.Books())
	assert.Len(t, s.Users(), 1, "replacing books must not touch users")
}

// Property: after any sequence of replacements, the current snapshot equals
// exactly the argument of the last replacement.
func TestStore_LastWriteWins_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New()
		var last []models.Book

		n := rapid.IntRange(1, 20).Draw(t, "replacements")
		for i := 0; i < n; i++ {
			size := rapid.IntRange(0, 10).Draw(t, "size")
			snapshot := make([]models.Book, size)
			for j := range snapshot {
				snapshot[j] = models.Book{
					ID:              rapid.IntRange(1, 1000).Draw(t, "id"),
					Title:           rapid.StringMatching(`[a-z]{1,12}`).Draw(t, "title"),
					AvailableCopies: rapid.IntRange(0, 5).Draw(t, "copies"),
				}
			}
			s.ReplaceBooks(snapshot)
			last = snapshot
		}

		got := s.Books()
		if len(got) != len(last) {
			t.Fatalf("snapshot length %d, want %d", len(got), len(last))
		}
		for i := range got {
			if got[i] != last[i] {
				t.Fatalf("snapshot[%d] = %+v, want %+v", i, got[i], last[i])
			}
		}
	})
}
