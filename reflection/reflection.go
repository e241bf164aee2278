// Package reflection rotates journaling prompts and models the answers
// users write to them.
package reflection

import (
	"strings"
	"time"
)

// Reflection is a stored answer to one prompt.
type Reflection struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Group  string    `json:"group"`
	Prompt string    `json:"prompt"`
	Answer string    `json:"answer"`
}

// New builds a reflection for p. The answer is trimmed and must not be
// blank.
func New(id string, at time.Time, p Prompt, answer string) (Reflection, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return Reflection{}, ErrEmptyAnswer
	}
	return Reflection{ID: id, Date: at, Group: p.Group, Prompt: p.Text, Answer: answer}, nil
}
