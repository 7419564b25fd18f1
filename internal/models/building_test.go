package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCostItems_SetAndSum(t *testing.T) {
	var c CostItems
	for _, line := range c.Lines() {
		assert.True(t, c.Set(line.Key, 10), line.Key)
	}
	assert.False(t, c.Set("garden", 10))
	assert.Equal(t, 140.0, c.Sum())
	assert.Equal(t, 10.0, c.ExteriorMaintenance)
}

func TestFillTotalCosts(t *testing.T) {
	b := Building{Costs: CostItems{Water: 100, Insurance: 50}}
	b.FillTotalCosts()
	assert.Equal(t, 150.0, b.TotalCosts)

	b = Building{TotalCosts: 999, Costs: CostItems{Water: 100}}
	b.FillTotalCosts()
	assert.Equal(t, 999.0, b.TotalCosts)
}

func TestTelegramConfigured(t *testing.T) {
	var nilConfig *TelegramConfig
	assert.False(t, nilConfig.Configured())
	assert.False(t, (&TelegramConfig{IsEnabled: true, BotToken: "t"}).Configured())
	assert.True(t, (&TelegramConfig{IsEnabled: true, BotToken: "t", ChatID: "1"}).Configured())
}
