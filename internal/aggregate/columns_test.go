package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/transfer-cli/internal/model"
)

func TestDefault_CoversBothTableKinds(t *testing.T) {
	c := Default()
	assert.Equal(t, 1, c.Version)

	for _, kind := range model.Kinds {
		s := c.Schema(kind)
		require.NotNil(t, s, string(kind))
		assert.NotEmpty(t, s.Counting, string(kind))
		assert.Contains(t, s.Identity, "season")
		assert.Contains(t, s.Identity, "squad")
	}
}

func TestSchema_Class(t *testing.T) {
	s := Default().Schema(model.TableStandard)

	assert.Equal(t, ClassCounting, s.Class("goals"))
	assert.Equal(t, ClassCounting, s.Class("minutes"))
	assert.Equal(t, ClassRate, s.Class("goals_per90"))
	assert.Equal(t, ClassIdentity, s.Class("squad"))
	assert.Equal(t, ClassUnknown, s.Class("made_up_column"))
}

func TestSchema_RateComponentsAreCounting(t *testing.T) {
	// Every rate rule must be derivable from counting columns, or combining
	// silently loses the column.
	for _, kind := range model.Kinds {
		s := Default().Schema(kind)
		for _, r := range s.Rates {
			assert.Equal(t, ClassCounting, s.Class(r.Numerator),
				"%s: numerator %s of %s", kind, r.Numerator, r.Column)
			assert.Equal(t, ClassCounting, s.Class(r.Denominator),
				"%s: denominator %s of %s", kind, r.Denominator, r.Column)
		}
	}
}

func TestSchema_Columns_StableOrder(t *testing.T) {
	s := Default().Schema(model.TableStandard)
	cols := s.Columns()

	require.NotEmpty(t, cols)
	assert.Equal(t, "season", cols[0])
	assert.Equal(t, cols, s.Columns(), "column order must be deterministic")
}

func TestParse_RejectsUnversioned(t *testing.T) {
	_, err := Parse([]byte("tables:\n  standard:\n    counting: [goals]\n"))
	assert.Error(t, err)
}

func TestParse_RejectsEmpty(t *testing.T) {
	_, err := Parse([]byte("version: 1\n"))
	assert.Error(t, err)
}
