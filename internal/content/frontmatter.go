package content

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoFrontMatter marks a document without a leading --- block.
	ErrNoFrontMatter = errors.New("document has no front matter block")
	// ErrNestedValue marks YAML constructs beyond scalars and flat string
	// arrays, which the content format deliberately does not support.
	ErrNestedValue = errors.New("front matter value is nested or multi-line")
)

// FrontMatter 是一篇文档头部元数据的扁平映射：值要么是字符串，要么是字符串数组。
type FrontMatter map[string]any

// Get returns the scalar value for key, or "" when absent or non-scalar.
func (fm FrontMatter) Get(key string) string {
	if value, ok := fm[key].(string); ok {
		return value
	}
	return ""
}

// GetList returns the array value for key. A scalar value is promoted to a
// one-element list so callers can treat tags-like fields uniformly.
func (fm FrontMatter) GetList(key string) []string {
	switch value := fm[key].(type) {
	case []string:
		return value
	case string:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		return []string{value}
	default:
		return nil
	}
}

type parserState int

const (
	stateScalar parserState = iota
	stateInArray
)

// ParseFrontMatter splits raw document text into its front matter block and
// markdown body. The block is parsed line by line with a two-state machine:
// a `key:` line with an empty value switches to array mode, where `- item`
// lines accumulate until the next key. A stray `- item` outside array mode is
// ignored. Indented keys and block scalars are rejected as unsupported.
func ParseFrontMatter(raw string) (FrontMatter, string, error) {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")

	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return nil, "", ErrNoFrontMatter
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			closing = i
			break
		}
	}
	if closing == -1 {
		return nil, "", ErrNoFrontMatter
	}

	fm := FrontMatter{}
	state := stateScalar
	currentKey := ""

	for _, line := range lines[1:closing] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if isArrayItem(line) {
			if state != stateInArray {
				// 容忍格式错误：数组上下文之外的 - item 直接忽略
				continue
			}
			item := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
			list, _ := fm[currentKey].([]string)
			fm[currentKey] = append(list, stripQuotes(item))
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			return nil, "", fmt.Errorf("%w: %q", ErrNestedValue, strings.TrimSpace(line))
		}
		if line[0] == ' ' || line[0] == '\t' {
			return nil, "", fmt.Errorf("%w: indented key %q", ErrNestedValue, key)
		}
		if value == "|" || value == ">" {
			return nil, "", fmt.Errorf("%w: block scalar for key %q", ErrNestedValue, key)
		}

		if value == "" {
			state = stateInArray
			currentKey = key
			fm[key] = []string(nil)
			continue
		}

		state = stateScalar
		currentKey = key
		fm[key] = stripQuotes(value)
	}

	// 空数组键（key: 后无任何 - item）视为缺省，不保留
	for key, value := range fm {
		if list, ok := value.([]string); ok && list == nil {
			delete(fm, key)
		}
	}

	body := strings.TrimSpace(strings.Join(lines[closing+1:], "\n"))
	return fm, body, nil
}

func isArrayItem(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "- ") || trimmed == "-"
}

func splitKeyValue(line string) (string, string, bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	key := strings.TrimSpace(line[:idx])
	value := strings.TrimSpace(line[idx+1:])
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

// stripQuotes removes one layer of matching single or double quotes.
func stripQuotes(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
