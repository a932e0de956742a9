package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordListCandidates(t *testing.T) {
	t.Parallel()

	words := WordList{"help", "hello", "exit", "he"}
	assert.Equal(t, []string{"help", "hello", "he"}, words.Candidates("he"))
	assert.Equal(t, []string{"help", "hello", "exit", "he"}, words.Candidates(""))
	assert.Empty(t, words.Candidates("zzz"))
}

func TestCompleterFunc(t *testing.T) {
	t.Parallel()

	var got string
	c := CompleterFunc(func(prefix string) []string {
		got = prefix
		return []string{prefix + "!"}
	})
	assert.Equal(t, []string{"x!"}, c.Candidates("x"))
	assert.Equal(t, "x", got)
}

func TestCompletionStateCyclesBackToLiteral(t *testing.T) {
	t.Parallel()

	s := newCompletionState("he", []string{"help", "hello"})
	require.Equal(t, 3, s.count())

	var seen []string
	for i := 0; i < 4; i++ {
		seen = append(seen, s.suggest())
	}
	assert.Equal(t, []string{"help", "hello", "he", "help"}, seen)
}

func TestCompletionStateDeduplicates(t *testing.T) {
	t.Parallel()

	s := newCompletionState("he", []string{"he", "help", "help"})
	assert.Equal(t, []string{"he", "help"}, s.suggestions)
}

func TestCompletionStateEmptyBuffer(t *testing.T) {
	t.Parallel()

	s := newCompletionState("", nil)
	require.Equal(t, 1, s.count())
	assert.Equal(t, "", s.suggest())
}

func TestHistoryCandidates(t *testing.T) {
	t.Parallel()

	h := NewCommandHistory(10)
	for _, line := range []string{"go build", "", "git status", "go test"} {
		h.Push(line)
	}

	assert.Equal(t, []string{"go test", "go build"}, historyCandidates(h, "go"))
	assert.Equal(t, []string{"go test", "git status", "go build"}, historyCandidates(h, ""))
	assert.Nil(t, historyCandidates(nil, "go"))
}
