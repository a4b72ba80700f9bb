package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCSVEmptyInput(t *testing.T) {
	_, err := ToCSV(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestToCSVHeterogeneousRecords(t *testing.T) {
	records := []Record{
		{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}},
		{{Name: "a", Value: "1"}},
	}
	_, err := ToCSV(records)
	assert.ErrorIs(t, err, ErrNotHomogeneous)

	records = []Record{
		{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}},
		{{Name: "a", Value: "1"}, {Name: "c", Value: "2"}},
	}
	_, err = ToCSV(records)
	assert.ErrorIs(t, err, ErrNotHomogeneous)
}

func TestToCSVQuoting(t *testing.T) {
	records := []Record{
		{
			{Name: "id", Value: 7},
			{Name: "description", Value: `Feed "premium" mix`},
			{Name: "amount", Value: decimal.RequireFromString("250.50")},
			{Name: "notes", Value: nil},
		},
	}
	out, err := ToCSV(records)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,description,amount,notes", lines[0])
	assert.Equal(t, `7,"Feed ""premium"" mix",250.50,`, lines[1])
}

func TestToCSVRoundTrip(t *testing.T) {
	records := []Record{
		{{Name: "tagId", Value: "C-001"}, {Name: "breed", Value: "Angus"}, {Name: "weight", Value: decimal.RequireFromString("1200")}},
		{{Name: "tagId", Value: "C-002"}, {Name: "breed", Value: "Hereford"}, {Name: "weight", Value: decimal.RequireFromString("1350")}},
		{{Name: "tagId", Value: "C-003"}, {Name: "breed", Value: `Charolais, "polled"`}, {Name: "weight", Value: decimal.RequireFromString("980")}},
	}
	out, err := ToCSV(records)
	require.NoError(t, err)

	// N records produce N+1 lines.
	require.Equal(t, len(records)+1, strings.Count(out, "\n"))

	// A standard CSV parser must recover the inputs.
	parsed, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, len(records)+1)
	assert.Equal(t, []string{"tagId", "breed", "weight"}, parsed[0])
	for i, rec := range records {
		row := parsed[i+1]
		assert.Equal(t, rec[0].Value, row[0])
		assert.Equal(t, rec[1].Value, row[1])
		assert.Equal(t, rec[2].Value.(decimal.Decimal).String(), row[2])
	}
}
