// Package labels parses security-label headers and matches them against the
// attribute lists declared for a consumer.
package labels

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/grafana/federator/pkg/fedconfig"
)

// HeaderName is the record header carrying the security label.
const HeaderName = "Security-Label"

// FilterHeaderAttributes is the only registered filter variant.
const FilterHeaderAttributes = "header-attributes"

// ErrMalformedLabel marks a label segment without a key/value separator. The
// event is skipped, not allowed.
var ErrMalformedLabel = errors.New("malformed security label")

// Parse splits a raw security label into an upper-cased attribute map.
// Segments are comma separated, each key=value or key:value, whitespace
// trimmed, empty segments skipped.
func Parse(raw string) (map[string]string, error) {
	out := map[string]string{}
	for _, seg := range strings.Split(raw, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		idx := strings.IndexAny(seg, "=:")
		if idx < 0 {
			return nil, errors.Wrapf(ErrMalformedLabel, "segment %q", seg)
		}
		key := strings.ToUpper(strings.TrimSpace(seg[:idx]))
		value := strings.ToUpper(strings.TrimSpace(seg[idx+1:]))
		if key == "" {
			continue
		}
		out[key] = value
	}
	return out, nil
}

// Filter decides whether an event with the given raw security label may be
// delivered to a consumer entitled to attrs.
type Filter func(label string, attrs []fedconfig.Attribute) (bool, error)

// Allows implements the header-attributes filter. AND semantics: every
// configured attribute must be present with a case-insensitively equal value.
// An empty attribute list allows everything; a blank filter name or value
// denies.
func Allows(label string, attrs []fedconfig.Attribute) (bool, error) {
	if len(attrs) == 0 {
		return true, nil
	}

	parsed, err := Parse(label)
	if err != nil {
		return false, err
	}

	for _, attr := range attrs {
		name := strings.ToUpper(strings.TrimSpace(attr.Name))
		want := strings.ToUpper(strings.TrimSpace(attr.Value))
		if name == "" || want == "" {
			return false, nil
		}
		got, ok := parsed[name]
		if !ok || got != want {
			return false, nil
		}
	}
	return true, nil
}

// ForName resolves a filter variant from its configured name. Unknown names
// are a config error, not a fallback.
func ForName(name string) (Filter, error) {
	switch name {
	case "", FilterHeaderAttributes:
		return Allows, nil
	default:
		return nil, fmt.Errorf("unknown message filter %q", name)
	}
}
