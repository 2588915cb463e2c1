package collection_test

import (
	"math/rand/v2"
	"testing"

	"github.com/aretw0/twotruths/pkg/collection"
	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsert_RejectsDuplicateText(t *testing.T) {
	c := collection.New()
	require.NoError(t, c.Insert(domain.Statement{Text: "a", Truth: true}))

	// Same text, different truth flag: still a duplicate.
	err := c.Insert(domain.Statement{Text: "a", Truth: false})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	var exists *domain.AlreadyExistsError
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "a", exists.Text)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Count(domain.Statement{Text: "a"}))
	assert.Equal(t, 0, c.Count(domain.Statement{Text: "b"}))
}

func TestPartitions(t *testing.T) {
	c := collection.New()
	require.NoError(t, c.Insert(domain.Statement{Text: "t1", Truth: true}))
	require.NoError(t, c.Insert(domain.Statement{Text: "l1"}))
	require.NoError(t, c.Insert(domain.Statement{Text: "t2", Truth: true}))

	assert.Equal(t, []domain.Statement{{Text: "t1", Truth: true}, {Text: "t2", Truth: true}}, c.Truths())
	assert.Equal(t, []domain.Statement{{Text: "l1"}}, c.Lies())
}

func TestGet(t *testing.T) {
	c := collection.New()
	require.NoError(t, c.Insert(domain.Statement{Text: "x"}))

	s, ok := c.Get(0)
	assert.True(t, ok)
	assert.Equal(t, "x", s.Text)

	_, ok = c.Get(1)
	assert.False(t, ok)
	_, ok = c.Get(-1)
	assert.False(t, ok)
}

func TestSort(t *testing.T) {
	c := collection.New()
	require.NoError(t, c.Insert(domain.Statement{Text: "b text", Truth: true}))
	require.NoError(t, c.Insert(domain.Statement{Text: "a text"}))

	c.Sort()
	want := []domain.Statement{{Text: "a text"}, {Text: "b text", Truth: true}}
	if diff := cmp.Diff(want, c.Statements()); diff != "" {
		t.Errorf("sorted statements mismatch (-want +got):\n%s", diff)
	}

	c.Sort()
	if diff := cmp.Diff(want, c.Statements()); diff != "" {
		t.Errorf("re-sort changed order (-want +got):\n%s", diff)
	}

	// Views keep insertion order.
	assert.Equal(t, []domain.Statement{{Text: "b text", Truth: true}}, c.Truths())
	assert.True(t, c.Contains("a text"))
}

func TestShuffle_KeepsMembers(t *testing.T) {
	c := collection.New()
	for _, text := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, c.Insert(domain.Statement{Text: text}))
	}
	c.Shuffle(rand.New(rand.NewPCG(7, 7)))

	assert.Equal(t, 5, c.Len())
	got := make(map[string]bool)
	for _, s := range c.All() {
		got[s.Text] = true
	}
	assert.Len(t, got, 5)
}

func TestAll_StopsEarly(t *testing.T) {
	c := collection.New()
	require.NoError(t, c.Insert(domain.Statement{Text: "a"}))
	require.NoError(t, c.Insert(domain.Statement{Text: "b"}))

	var seen []string
	for i, s := range c.All() {
		seen = append(seen, s.Text)
		if i == 0 {
			break
		}
	}
	assert.Equal(t, []string{"a"}, seen)
}

func TestStatements_ReturnsCopy(t *testing.T) {
	c := collection.New()
	require.NoError(t, c.Insert(domain.Statement{Text: "a"}))
	out := c.Statements()
	out[0].Text = "mutated"

	s, _ := c.Get(0)
	assert.Equal(t, "a", s.Text)
}
