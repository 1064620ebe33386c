package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateDPIRoundtrip(t *testing.T) {
	c := DefaultPackingConfig(LogCabin)
	origSA, origThreshold, origMinScrap := c.SA, c.Threshold, c.MinScrapSize

	c.UpdateDPI(200)
	assert.NotEqual(t, origSA, c.SA, "expected SA to change at a different dpi")

	c.UpdateDPI(c.baseDPI)
	assert.Equal(t, origSA, c.SA, "dpi roundtrip should restore SA")
	assert.Equal(t, origThreshold, c.Threshold, "dpi roundtrip should restore Threshold")
	assert.Equal(t, origMinScrap, c.MinScrapSize, "dpi roundtrip should restore MinScrapSize")
}

func TestPackingOptionUpdateOrder(t *testing.T) {
	o := PackingOption{OtherDims: []int{80, 50, 120}}
	o.UpdateOrder([]int{100, 100, 100})
	assert.Equal(t, 50, o.ShortestSide)
}
