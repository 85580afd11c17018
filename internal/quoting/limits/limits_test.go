// internal/quoting/limits/limits_test.go
package limits

import (
	"testing"

	"carrier-quoting/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(a, b, c string) models.RawLimitTuple {
	return models.RawLimitTuple{a, b, c}
}

func TestBestFit_PicksCheapestAdequate(t *testing.T) {
	requested := models.LimitTuple{1000000, 1000000, 1000000}
	supported := []models.RawLimitTuple{
		raw("500000", "1000000", "1000000"),
		raw("1000000", "2000000", "1000000"),
	}

	best, ok := BestFit(requested, supported)

	require.True(t, ok)
	assert.Equal(t, models.LimitTuple{1000000, 2000000, 1000000}, best)
}

func TestBestFit_NoCandidateDominates(t *testing.T) {
	requested := models.LimitTuple{2000000, 2000000, 2000000}
	supported := []models.RawLimitTuple{
		raw("500000", "1000000", "1000000"),
	}

	_, ok := BestFit(requested, supported)

	assert.False(t, ok)
}

func TestBestFit_EmptySupportedList(t *testing.T) {
	_, ok := BestFit(models.LimitTuple{1000000, 2000000, 1000000}, nil)
	assert.False(t, ok)
}

func TestBestFit_TieBreaksOnLaterComponents(t *testing.T) {
	requested := models.LimitTuple{1000000, 1000000, 1000000}
	supported := []models.RawLimitTuple{
		raw("1000000", "3000000", "2000000"),
		raw("1000000", "2000000", "2000000"),
		raw("1000000", "2000000", "1000000"),
	}

	best, ok := BestFit(requested, supported)

	require.True(t, ok)
	assert.Equal(t, models.LimitTuple{1000000, 2000000, 1000000}, best)
}

func TestBestFit_ZeroRequestedComponentIsDontCare(t *testing.T) {
	requested := models.LimitTuple{1000000, 0, 0}
	supported := []models.RawLimitTuple{
		raw("1000000", "500000", "100000"),
	}

	best, ok := BestFit(requested, supported)

	require.True(t, ok)
	assert.Equal(t, models.LimitTuple{1000000, 500000, 100000}, best)
}

func TestBestFit_NormalizesMalformedConfigRows(t *testing.T) {
	requested := models.LimitTuple{1000000, 1000000, 1000000}
	supported := []models.RawLimitTuple{
		raw("$1,000,000", "2,000,000", " 1000000 "),
		raw("one million", "2000000", "1000000"), // unusable row is skipped
	}

	best, ok := BestFit(requested, supported)

	require.True(t, ok)
	assert.Equal(t, models.LimitTuple{1000000, 2000000, 1000000}, best)
}

func TestBestFit_ResultAlwaysDominatesRequest(t *testing.T) {
	requested := models.LimitTuple{750000, 1500000, 500000}
	supported := []models.RawLimitTuple{
		raw("500000", "1000000", "500000"),
		raw("1000000", "2000000", "1000000"),
		raw("750000", "1500000", "1500000"),
		raw("2000000", "4000000", "4000000"),
	}

	best, ok := BestFit(requested, supported)

	require.True(t, ok)
	for i := range requested {
		assert.GreaterOrEqual(t, best[i], requested[i])
	}
	assert.Equal(t, models.LimitTuple{750000, 1500000, 1500000}, best)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "plain", in: "1000000", want: 1000000},
		{name: "commas", in: "1,000,000", want: 1000000},
		{name: "currency symbol", in: "$2,000,000", want: 2000000},
		{name: "whitespace", in: " 500000 ", want: 500000},
		{name: "empty", in: "", wantErr: true},
		{name: "words", in: "one million", wantErr: true},
		{name: "negative", in: "-100", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
