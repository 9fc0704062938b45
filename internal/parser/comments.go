package parser

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/vovanwin/statictoml/internal/model"
)

// commentMap stores comments per dotted key path (section.key -> comment).
type commentMap map[string]string

var (
	sectionRe = regexp.MustCompile(`^\s*\[\[?([^\]]+)\]\]?\s*$`)
	keyRe     = regexp.MustCompile(`^\s*("[^"]+"|'[^']+'|[A-Za-z0-9_-]+)\s*=`)
	commentRe = regexp.MustCompile(`^\s*#\s?(.*)$`)
)

// extractComments scans the raw document for comments preceding each key or
// section header. The TOML decoder drops comments, so this is a line-level
// recovery pass: comment lines accumulate until a key or header claims them,
// and a blank line discards them.
func extractComments(data []byte) commentMap {
	comments := make(commentMap)
	scanner := bufio.NewScanner(bytes.NewReader(data))

	var section string
	var pending []string

	for scanner.Scan() {
		line := scanner.Text()

		if m := sectionRe.FindStringSubmatch(line); m != nil {
			section = strings.TrimSpace(m[1])
			if len(pending) > 0 {
				comments[section] = strings.Join(pending, "\n")
				pending = nil
			}
			continue
		}

		if m := commentRe.FindStringSubmatch(line); m != nil {
			if c := strings.TrimRight(m[1], " \t"); c != "" {
				pending = append(pending, c)
			}
			continue
		}

		if m := keyRe.FindStringSubmatch(line); m != nil {
			key := strings.Trim(m[1], `"'`)
			if section != "" {
				key = section + "." + key
			}
			if len(pending) > 0 {
				comments[key] = strings.Join(pending, "\n")
				pending = nil
			}
			continue
		}

		if strings.TrimSpace(line) == "" {
			pending = nil
		}
	}

	return comments
}

// attachComments walks the tree and attaches recovered comments to their
// tables. Elements of an array of tables share the section path, so a
// comment on `list.value` reaches every element.
func attachComments(v *model.Value, comments commentMap, path []string) {
	switch v.Kind {
	case model.KindTable:
		for _, k := range v.Table.Keys() {
			full := strings.Join(append(append([]string{}, path...), k), ".")
			if c, ok := comments[full]; ok {
				v.Table.SetComment(k, c)
			}
			child, _ := v.Table.Get(k)
			attachComments(child, comments, append(path, k))
		}
	case model.KindArray:
		for _, elem := range v.Array {
			attachComments(elem, comments, path)
		}
	}
}
