package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingZoneCovers(t *testing.T) {
	zone := &ShippingZone{
		Name:      "Western Province",
		Districts: []string{"Colombo", "Gampaha", "Kalutara"},
	}

	assert.True(t, zone.Covers("Colombo"))
	assert.True(t, zone.Covers("Gampaha"))
	assert.False(t, zone.Covers("Jaffna"))
	assert.False(t, zone.Covers("colombo")) // districts are case sensitive
}

func TestShippingMethodRate(t *testing.T) {
	m := &ShippingMethod{BaseRate: 300, PerKgRate: 50}

	assert.Equal(t, 300.0, m.Rate(0))
	assert.Equal(t, 425.0, m.Rate(2.5))
	// Negative weights are treated as zero
	assert.Equal(t, 300.0, m.Rate(-1))
}
