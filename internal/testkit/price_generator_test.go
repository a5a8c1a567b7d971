package testkit

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsDeterministic(t *testing.T) {
	a := NewPriceGenerator(DefaultPriceConfig()).Generate()
	b := NewPriceGenerator(DefaultPriceConfig()).Generate()

	var bufA, bufB bytes.Buffer
	require.NoError(t, a.WriteCSV(&bufA))
	require.NoError(t, b.WriteCSV(&bufB))
	assert.Equal(t, bufA.String(), bufB.String())

	config := DefaultPriceConfig()
	config.Seed = 7
	c := NewPriceGenerator(config).Generate()
	var bufC bytes.Buffer
	require.NoError(t, c.WriteCSV(&bufC))
	assert.NotEqual(t, bufA.String(), bufC.String())
}

func TestGenerateShape(t *testing.T) {
	config := DefaultPriceConfig()
	config.MissingRate = 0.5
	ds := NewPriceGenerator(config).Generate()

	require.Len(t, ds.Months, config.Periods)
	assert.Equal(t, config.Start, ds.Months[0])
	assert.Equal(t, config.Start.AddDate(0, 3, 0), ds.Months[1])
	assert.Equal(t, config.Districts, ds.Districts)

	for _, district := range ds.Districts {
		values := ds.Columns[district]
		require.Len(t, values, config.Periods)
		assert.False(t, math.IsNaN(values[len(values)-1]), "last row of %s is always observed", district)
	}

	table, err := ds.Table()
	require.NoError(t, err)
	assert.Equal(t, config.Periods, table.Len())
}

func TestWriteCSVLayout(t *testing.T) {
	config := DefaultPriceConfig()
	config.Districts = []string{"Lince"}
	config.Periods = 2
	config.MissingRate = 0
	ds := NewPriceGenerator(config).Generate()

	var buf bytes.Buffer
	require.NoError(t, ds.WriteCSV(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Month,Lince", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2010-01-01,"))
	assert.True(t, strings.HasPrefix(lines[2], "2010-04-01,"))
}
