package combobox

import (
	"strings"

	"golang.org/x/text/cases"
)

// Option is a selectable value/label pair.
type Option struct {
	Value string
	Label string
}

// Filter returns the options whose label contains query, ignoring case.
// Order is preserved. An empty query returns options unchanged.
func Filter(options []Option, query string) []Option {
	if query == "" {
		return options
	}
	fold := cases.Fold()
	needle := fold.String(query)
	out := make([]Option, 0, len(options))
	for _, opt := range options {
		if strings.Contains(fold.String(opt.Label), needle) {
			out = append(out, opt)
		}
	}
	return out
}

// Find returns the first option carrying value.
func Find(options []Option, value string) (Option, bool) {
	for _, opt := range options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}
