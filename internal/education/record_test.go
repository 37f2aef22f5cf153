package education

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `[
 {"fips":1001,"state":"AL","area_name":"Autauga County","bachelorsOrHigher":21.9},
 {"fips":1003,"state":"AL","area_name":"Baldwin County","bachelorsOrHigher":28.6},
 {"fips":1005,"state":"AL","area_name":"Barbour County","bachelorsOrHigher":13}
]`

func TestDecode(t *testing.T) {
	recs, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, Record{FIPS: 1001, State: "AL", AreaName: "Autauga County", BachelorsOrHigher: 21.9}, recs[0])
}

func TestDecodeRejectsObject(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"fips":1}`))
	assert.Error(t, err)
}

func TestBuildIndexLastWriteWins(t *testing.T) {
	idx := BuildIndex([]Record{
		{FIPS: 1, AreaName: "first"},
		{FIPS: 2, AreaName: "other"},
		{FIPS: 1, AreaName: "second"},
	})
	assert.Len(t, idx, 2)
	r, ok := idx.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "second", r.AreaName)
	_, ok = idx.Lookup(3)
	assert.False(t, ok)
}

func TestTooltipKeepsSourcePrecision(t *testing.T) {
	cases := map[float64]string{
		21.9: "Autauga County, AL: 21.9%",
		13:   "Autauga County, AL: 13%",
		7.25: "Autauga County, AL: 7.25%",
	}
	for v, want := range cases {
		r := Record{FIPS: 1001, AreaName: "Autauga County", State: "AL", BachelorsOrHigher: v}
		assert.Equal(t, want, r.Tooltip())
	}
}
