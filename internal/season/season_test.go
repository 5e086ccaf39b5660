package season

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePrior(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10/11", "2009-2010"},
		{"11/12", "2010-2011"},
		{"00/01", "1999-2000"},
		{"99/00", "1998-1999"}, // century boundary
		{"98/99", "1997-1998"},
	}

	for _, tc := range cases {
		got, err := ResolvePrior(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestResolvePrior_CenturyPivot(t *testing.T) {
	// The pivot itself maps to the 2000s; one past it maps to the 1900s.
	got, err := ResolvePrior("30/31")
	require.NoError(t, err)
	assert.Equal(t, "2029-2030", got)

	got, err = ResolvePrior("31/32")
	require.NoError(t, err)
	assert.Equal(t, "1930-1931", got)
}

func TestResolvePrior_Malformed(t *testing.T) {
	for _, in := range []string{
		"",
		"abc",
		"10-11",
		"2010/2011",
		"10/12", // not consecutive
		"10/10",
		"1/2",
		"10/11 ",
	} {
		_, err := ResolvePrior(in)
		require.Error(t, err, in)
		assert.True(t, eris.Is(err, ErrMalformed), in)
	}
}

func TestExpandYear(t *testing.T) {
	assert.Equal(t, 2000, ExpandYear(0))
	assert.Equal(t, 2030, ExpandYear(30))
	assert.Equal(t, 1931, ExpandYear(31))
	assert.Equal(t, 1999, ExpandYear(99))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2009-2010", Format(2009))
}
