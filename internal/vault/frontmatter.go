package vault

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatter returns the YAML block at the very top of text, without the
// "---" delimiters.
func frontmatter(text string) (string, bool) {
	text = strings.TrimPrefix(text, "\ufeff")
	if !strings.HasPrefix(text, "---\n") && !strings.HasPrefix(text, "---\r\n") {
		return "", false
	}
	body := text[strings.IndexByte(text, '\n')+1:]
	for pos := 0; pos <= len(body); {
		end := strings.IndexByte(body[pos:], '\n')
		line := body[pos:]
		if end != -1 {
			line = body[pos : pos+end]
		}
		if strings.TrimRight(line, " \t\r") == "---" {
			return body[:pos], true
		}
		if end == -1 {
			break
		}
		pos += end + 1
	}
	return "", false
}

// HasTag reports which of keys, if any, is set to a truthy value in the
// frontmatter of text. Malformed frontmatter has no keys.
func HasTag(text string, keys []string) (string, bool) {
	if len(keys) == 0 {
		return "", false
	}
	fm, ok := frontmatter(text)
	if !ok {
		return "", false
	}
	var meta map[string]interface{}
	if err := yaml.Unmarshal([]byte(fm), &meta); err != nil {
		return "", false
	}
	for _, k := range keys {
		if truthy(meta[k]) {
			return k, true
		}
	}
	return "", false
}

func truthy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case float64:
		return x != 0
	}
	return true
}
