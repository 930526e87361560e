package labels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grafana/federator/pkg/fedconfig"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected map[string]string
		err      error
	}{
		{
			name:     "equals separator",
			raw:      "nationality=UK",
			expected: map[string]string{"NATIONALITY": "UK"},
		},
		{
			name:     "colon separator",
			raw:      "clearance:secret",
			expected: map[string]string{"CLEARANCE": "SECRET"},
		},
		{
			name:     "mixed with whitespace",
			raw:      " nationality = uk , clearance:Secret ",
			expected: map[string]string{"NATIONALITY": "UK", "CLEARANCE": "SECRET"},
		},
		{
			name:     "empty segments skipped",
			raw:      ",nationality=UK,,",
			expected: map[string]string{"NATIONALITY": "UK"},
		},
		{
			name:     "empty label",
			raw:      "",
			expected: map[string]string{},
		},
		{
			name: "segment without separator",
			raw:  "nationality=UK,garbage",
			err:  ErrMalformedLabel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := Parse(tc.raw)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, parsed)
		})
	}
}

func TestAllows(t *testing.T) {
	attrs := func(pairs ...string) []fedconfig.Attribute {
		var out []fedconfig.Attribute
		for i := 0; i < len(pairs); i += 2 {
			out = append(out, fedconfig.Attribute{Name: pairs[i], Value: pairs[i+1]})
		}
		return out
	}

	tests := []struct {
		name    string
		label   string
		attrs   []fedconfig.Attribute
		allowed bool
		err     error
	}{
		{
			name:    "empty attribute list passes everything through",
			label:   "nationality=UK",
			attrs:   nil,
			allowed: true,
		},
		{
			name:    "matching attribute",
			label:   "nationality=UK",
			attrs:   attrs("nationality", "uk"),
			allowed: true,
		},
		{
			name:    "value mismatch denies",
			label:   "nationality=UK",
			attrs:   attrs("nationality", "FR"),
			allowed: false,
		},
		{
			name:    "missing attribute denies",
			label:   "clearance=secret",
			attrs:   attrs("nationality", "UK"),
			allowed: false,
		},
		{
			name:    "and semantics require all attributes",
			label:   "nationality=UK,clearance=secret",
			attrs:   attrs("nationality", "UK", "clearance", "topsecret"),
			allowed: false,
		},
		{
			name:    "all attributes present and equal",
			label:   "nationality=UK,clearance=secret",
			attrs:   attrs("NATIONALITY", "uk", "Clearance", "SECRET"),
			allowed: true,
		},
		{
			name:    "blank filter name denies",
			label:   "nationality=UK",
			attrs:   attrs("", "UK"),
			allowed: false,
		},
		{
			name:    "blank filter value denies",
			label:   "nationality=UK",
			attrs:   attrs("nationality", ""),
			allowed: false,
		},
		{
			name:  "malformed label is an error, not an allow",
			label: "garbage",
			attrs: attrs("nationality", "UK"),
			err:   ErrMalformedLabel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := Allows(tc.label, tc.attrs)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.False(t, allowed)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestForName(t *testing.T) {
	f, err := ForName(FilterHeaderAttributes)
	require.NoError(t, err)
	require.NotNil(t, f)

	f, err = ForName("")
	require.NoError(t, err)
	require.NotNil(t, f)

	_, err = ForName("reflective-class-loader")
	require.Error(t, err)
}
