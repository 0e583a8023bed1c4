// Package prompt merges gathered context with a user instruction.
package prompt

import "strings"

const contextHeader = "Based on the following context:\n\n"

// Compose prefixes instruction with context when context holds anything but
// whitespace; otherwise it returns instruction unchanged. Nothing is truncated.
func Compose(context, instruction string) string {
	if strings.TrimSpace(context) == "" {
		return instruction
	}
	var b strings.Builder
	b.Grow(len(contextHeader) + len(context) + len(instruction) + 7)
	b.WriteString(contextHeader)
	b.WriteString(context)
	b.WriteString("\n\n---\n\n")
	b.WriteString(instruction)
	return b.String()
}
