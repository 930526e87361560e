package filestore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"report.csv", "report.csv"},
		{"dir/report.csv", "report.csv"},
		{"/abs/dir/report.csv", "report.csv"},
		{"../../etc/passwd", "passwd"},
		{"..", ""},
		{"/", ""},
		{"", ""},
		{"dir\\report.csv", "report.csv"},
		{"a/b/../c.txt", "c.txt"},
	}

	for _, tc := range tests {
		require.Equal(t, tc.expected, Sanitize(tc.in), "Sanitize(%q)", tc.in)
	}
}

func TestNormalizeKey(t *testing.T) {
	require.Equal(t, "a/b", NormalizeKey("/a/b"))
	require.Equal(t, "a/b", NormalizeKey("///a/b"))
	require.Equal(t, "a/b", NormalizeKey("a/b"))
	require.Equal(t, "", NormalizeKey("/"))
}

func TestBuildKey(t *testing.T) {
	require.Equal(t, "incoming/report.csv", BuildKey("incoming", "report.csv"))
	require.Equal(t, "incoming/report.csv", BuildKey("/incoming/", "report.csv"))
	require.Equal(t, "report.csv", BuildKey("", "report.csv"))
}

func TestResolveKey(t *testing.T) {
	tests := []struct {
		destination string
		name        string
		expected    string
	}{
		{"incoming/", "report.csv", "incoming/report.csv"},
		{"/incoming/", "../report.csv", "incoming/report.csv"},
		{"incoming/renamed.csv", "report.csv", "incoming/renamed.csv"},
		{"/incoming/renamed.csv", "report.csv", "incoming/renamed.csv"},
		{"", "report.csv", "report.csv"},
		{"   ", "dir/report.csv", "report.csv"},
	}

	for _, tc := range tests {
		require.Equal(t, tc.expected, ResolveKey(tc.destination, tc.name), "ResolveKey(%q, %q)", tc.destination, tc.name)
	}
}
