package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want uint8
		ok   bool
	}{
		{"1", 1, true},
		{"4", 4, true},
		{" 2 ", 2, true},
		{"year3", 1, true},
		{"Year6", 4, true},
		{"year5", 3, true},
		{"0", 0, false},
		{"5", 0, false},
		{"year2", 0, false},
		{"year7", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		require.Equal(t, tt.ok, ok, "ParseLevel(%q)", tt.in)
		require.Equal(t, tt.want, got, "ParseLevel(%q)", tt.in)
	}
}

func TestYearCode(t *testing.T) {
	t.Parallel()

	require.Equal(t, "year3", YearCode(1))
	require.Equal(t, "year6", YearCode(4))
	require.Equal(t, "", YearCode(0))
	require.Equal(t, "", YearCode(5))
}
