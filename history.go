package console

const DefaultHistoryCapacity = 100

// CommandHistory is a bounded FIFO of submitted lines with a navigation
// cursor in [0, Len()]. Len() is the "not browsing" position.
type CommandHistory struct {
	entries  []string
	capacity int
	cursor   int
}

func NewCommandHistory(capacity int) *CommandHistory {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &CommandHistory{
		entries:  make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Push appends line, evicting the oldest entry when full. The navigation
// cursor is left alone; call Reset after a submit.
func (h *CommandHistory) Push(line string) {
	h.entries = append(h.entries, line)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[len(h.entries)-h.capacity:]
	}
	if h.cursor > len(h.entries) {
		h.cursor = len(h.entries)
	}
}

// Prev steps towards older entries. It reports false, without moving, when
// already at the oldest entry.
func (h *CommandHistory) Prev() (string, bool) {
	if h.cursor <= 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Next steps towards newer entries and returns "" once past the newest.
func (h *CommandHistory) Next() string {
	if h.cursor < len(h.entries) {
		h.cursor++
	}
	if h.cursor == len(h.entries) {
		return ""
	}
	return h.entries[h.cursor]
}

func (h *CommandHistory) Reset() {
	h.cursor = len(h.entries)
}

func (h *CommandHistory) Len() int {
	return len(h.entries)
}

func (h *CommandHistory) Capacity() int {
	return h.capacity
}

func (h *CommandHistory) Index() int {
	return h.cursor
}

// Entries returns a copy, oldest first.
func (h *CommandHistory) Entries() []string {
	return append([]string(nil), h.entries...)
}
