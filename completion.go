package console

import "strings"

// Completer lists the strings Tab may offer for the given buffer content.
type Completer interface {
	Candidates(prefix string) []string
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(prefix string) []string

func (f CompleterFunc) Candidates(prefix string) []string {
	return f(prefix)
}

// WordList completes from a fixed set of names, in registration order.
type WordList []string

func (w WordList) Candidates(prefix string) []string {
	var out []string
	for _, word := range w {
		if strings.HasPrefix(word, prefix) {
			out = append(out, word)
		}
	}
	return out
}

type completionState struct {
	suggestions []string
	next        int
}

// newCompletionState de-duplicates the candidates and appends the literal
// buffer content when it is not already one of them, so cycling always comes
// back to what was typed.
func newCompletionState(current string, candidates []string) *completionState {
	seen := make(map[string]struct{}, len(candidates)+1)
	s := &completionState{}
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		s.suggestions = append(s.suggestions, c)
	}
	if _, ok := seen[current]; !ok {
		s.suggestions = append(s.suggestions, current)
	}
	return s
}

func (s *completionState) count() int {
	return len(s.suggestions)
}

// suggest returns the suggestion under the rotation pointer and advances it.
func (s *completionState) suggest() string {
	suggestion := s.suggestions[s.next]
	s.next = (s.next + 1) % len(s.suggestions)
	return suggestion
}

func historyCandidates(history *CommandHistory, prefix string) []string {
	if history == nil {
		return nil
	}
	var out []string
	entries := history.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i] != "" && strings.HasPrefix(entries[i], prefix) {
			out = append(out, entries[i])
		}
	}
	return out
}
