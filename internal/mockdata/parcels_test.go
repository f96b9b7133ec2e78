package mockdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParcels_AreValidAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range Parcels() {
		assert.NoError(t, p.Validate())
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.Len(t, p.State, 2)
	}
	assert.NotEmpty(t, seen)
}

func TestParcels_ReturnsFreshCopy(t *testing.T) {
	a := Parcels()
	a[0].Price = 1
	assert.NotEqual(t, 1.0, Parcels()[0].Price)
}
