package formatting

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// PrettyJSON formats any value as indented JSON for human-readable display.
// It falls back to fmt.Sprintf when the value cannot be marshaled.
//
// Example:
//
//	fmt.Println(formatting.PrettyJSON(map[string]interface{}{"name": "cts"}))
//	// {
//	//   "name": "cts"
//	// }
func PrettyJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// joinOptions renders a map as sorted key=value pairs.
func joinOptions(options map[string]string) string {
	if len(options) == 0 {
		return ""
	}
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + options[k]
	}
	return strings.Join(pairs, ", ")
}

// truncate shortens s to max characters, marking the cut with "...".
func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
