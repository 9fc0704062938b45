package emitter

import (
	"fmt"
	"strings"
)

// AutoDoc renders the generated documentation lines for a binding: a blank
// separator, the inclusion sentence, and the document text in a fenced toml
// code block. Lines come back without the comment prefix.
func AutoDoc(path, content string) []string {
	lines := []string{
		"",
		fmt.Sprintf("Static inclusion of `%s`.", path),
		"",
		"```toml",
	}
	content = strings.TrimRight(content, "\n")
	if content != "" {
		lines = append(lines, strings.Split(content, "\n")...)
	}
	return append(lines, "```")
}
