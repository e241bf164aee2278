package reflection

import (
	"fmt"

	"github.com/rustyeddy/ledger/journal"
)

// State is the rotation position: which group is up next and, for each
// group, which of its prompts. The zero value is the initial state.
type State struct {
	CurrentGroupIndex int             `json:"currentGroupIndex"`
	PromptIndexes     [GroupCount]int `json:"promptIndexes"`
}

// Prompt is the question currently shown to the user.
type Prompt struct {
	GroupIndex  int    `json:"groupIndex"`
	PromptIndex int    `json:"promptIndex"`
	Group       string `json:"group"`
	Text        string `json:"prompt"`
}

// Initial returns group 0 with every prompt pointer at 0.
func Initial() State { return State{} }

// Validate reports an index outside the prompt table as a
// *journal.ValidationError.
func (s State) Validate() error {
	if s.CurrentGroupIndex < 0 || s.CurrentGroupIndex >= GroupCount {
		return &journal.ValidationError{
			Field:  "currentGroupIndex",
			Value:  s.CurrentGroupIndex,
			Reason: fmt.Sprintf("out of range [0,%d)", GroupCount),
		}
	}
	for i, p := range s.PromptIndexes {
		if p < 0 || p >= PromptsPerGroup {
			return &journal.ValidationError{
				Field:  fmt.Sprintf("promptIndexes[%d]", i),
				Value:  p,
				Reason: fmt.Sprintf("out of range [0,%d)", PromptsPerGroup),
			}
		}
	}
	return nil
}

// CurrentPrompt returns the group and prompt selected by s. Out of range
// indexes wrap, so a prompt from the table is always returned.
func (s State) CurrentPrompt() Prompt {
	g := mod(s.CurrentGroupIndex, GroupCount)
	p := mod(s.PromptIndexes[g], PromptsPerGroup)
	return Prompt{
		GroupIndex:  g,
		PromptIndex: p,
		Group:       Groups[g],
		Text:        Prompts[g][p],
	}
}

// AdvanceGroup moves to the next group without touching any prompt
// pointer. Used when the user skips a prompt.
func (s State) AdvanceGroup() State {
	s.CurrentGroupIndex = mod(s.CurrentGroupIndex+1, GroupCount)
	return s
}

// RecordAnswer moves the current group's prompt pointer forward and then
// advances the group. Call it only after a reflection was stored.
func (s State) RecordAnswer() State {
	g := mod(s.CurrentGroupIndex, GroupCount)
	s.PromptIndexes[g] = mod(s.PromptIndexes[g]+1, PromptsPerGroup)
	s.CurrentGroupIndex = g
	return s.AdvanceGroup()
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
