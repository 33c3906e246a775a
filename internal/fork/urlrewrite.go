package fork

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// urlKeys are the property fields treated as url-shaped during fork rewrite.
var urlKeys = map[string]bool{
	"url":             true,
	"href":            true,
	"src":             true,
	"link":            true,
	"buttonUrl":       true,
	"backgroundImage": true,
	"canonical":       true,
	"action":          true,
}

// rewriteProperties rewrites references to the source site's slug inside
// url-shaped fields of the serialized property payload. Best-effort: a
// payload that is not valid JSON is returned verbatim, unmodified.
func rewriteProperties(raw, oldSlug, newSlug string) string {
	if oldSlug == "" || oldSlug == newSlug {
		return raw
	}
	if !gjson.Valid(raw) {
		return raw
	}

	result := raw
	var walk func(prefix string, value gjson.Result)
	walk = func(prefix string, value gjson.Result) {
		value.ForEach(func(key, child gjson.Result) bool {
			path := key.String()
			if prefix != "" {
				path = prefix + "." + path
			}
			switch {
			case child.IsObject() || child.IsArray():
				walk(path, child)
			case child.Type == gjson.String && urlKeys[key.String()]:
				rewritten := rewriteSlug(child.String(), oldSlug, newSlug)
				if rewritten != child.String() {
					if updated, err := sjson.Set(result, path, rewritten); err == nil {
						result = updated
					}
				}
			}
			return true
		})
	}
	walk("", gjson.Parse(raw))
	return result
}

// rewriteSlug replaces path segments equal to the old slug with the new one.
// Only whole segments match; a slug that happens to be a substring of a
// longer segment is left alone.
func rewriteSlug(value, oldSlug, newSlug string) string {
	value = strings.ReplaceAll(value, "/"+oldSlug+"/", "/"+newSlug+"/")
	if strings.HasSuffix(value, "/"+oldSlug) {
		value = strings.TrimSuffix(value, "/"+oldSlug) + "/" + newSlug
	}
	return value
}
