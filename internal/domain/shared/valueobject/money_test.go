package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(100), USD)
	require.NoError(t, err)
	assert.Equal(t, USD, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))

	_, err = NewMoney(decimal.Zero, "")
	assert.Error(t, err)
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("129.99", USD)
	require.NoError(t, err)
	assert.Equal(t, "129.99", m.StringFixed(2))

	_, err = NewMoneyFromString("not-a-number", USD)
	assert.Error(t, err)
}

func TestMoneyAdd(t *testing.T) {
	a, _ := NewMoneyUSDFromString("10.50")
	b, _ := NewMoneyUSDFromString("4.25")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "14.75", sum.StringFixed(2))

	eur := Zero(EUR)
	_, err = a.Add(eur)
	assert.Error(t, err, "mixed currencies must not add")
}

func TestMoneySubtract(t *testing.T) {
	a, _ := NewMoneyUSDFromString("10.00")
	b, _ := NewMoneyUSDFromString("3.40")

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "6.60", diff.StringFixed(2))

	neg, err := b.Subtract(a)
	require.NoError(t, err)
	assert.True(t, neg.IsNegative())
}

func TestMoneyMultiply(t *testing.T) {
	unit, _ := NewMoneyUSDFromString("45.00")
	total := unit.MultiplyByInt(3)
	assert.Equal(t, "135.00", total.StringFixed(2))
}

func TestMoneyComparisons(t *testing.T) {
	small, _ := NewMoneyUSDFromString("5.00")
	big, _ := NewMoneyUSDFromString("20.00")

	less, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, less)

	gte, err := big.GreaterThanOrEqual(big)
	require.NoError(t, err)
	assert.True(t, gte)

	_, err = small.LessThan(Zero(GBP))
	assert.Error(t, err)
}

func TestMoneyZero(t *testing.T) {
	z := ZeroUSD()
	assert.True(t, z.IsZero())
	assert.False(t, z.IsPositive())
	assert.False(t, z.IsNegative())
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m, _ := NewMoneyUSDFromString("249.95")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"249.95","currency":"USD"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}
