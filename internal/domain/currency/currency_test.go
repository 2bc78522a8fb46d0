package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	c := Default()

	tests := []struct {
		name   string
		amount float64
		code   Code
		want   float64
	}{
		{name: "base is identity", amount: 500, code: INR, want: 500},
		{name: "base rounds to whole units", amount: 100.6, code: INR, want: 101},
		{name: "base rounds half up", amount: 499.5, code: INR, want: 500},
		{name: "usd rounds", amount: 25000, code: USD, want: 300},
		{name: "eur rounds half up", amount: 50, code: EUR, want: 1},
		{name: "zero", amount: 0, code: USD, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Convert(tt.amount, tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvert_UnknownCurrency(t *testing.T) {
	_, err := Default().Convert(100, "JPY")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestToBase(t *testing.T) {
	c := Default()

	got, err := c.ToBase(300, USD)
	require.NoError(t, err)
	assert.Equal(t, 25000.0, got)

	got, err = c.ToBase(1234, INR)
	require.NoError(t, err)
	assert.Equal(t, 1234.0, got)
}

func TestNewConverter_Validation(t *testing.T) {
	_, err := NewConverter(map[Code]float64{USD: 0}, nil)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = NewConverter(map[Code]float64{INR: 2}, nil)
	assert.ErrorIs(t, err, ErrInvalidRate)

	c, err := NewConverter(nil, nil)
	require.NoError(t, err)
	assert.True(t, c.Supports(Base))
}

func TestWithRates(t *testing.T) {
	c, err := Default().WithRates(map[Code]float64{USD: 0.02, "GBP": 0.0095})
	require.NoError(t, err)

	got, err := c.Convert(1000, USD)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got)
	assert.Equal(t, []Code{EUR, "GBP", INR, USD}, c.Codes())
	assert.Equal(t, "GBP", c.Symbol("GBP"))

	// исходный конвертер не меняется
	orig, _ := Default().Convert(1000, USD)
	assert.Equal(t, 12.0, orig)
}

func TestFormat(t *testing.T) {
	c := Default()

	s, err := c.Format(25000, USD)
	require.NoError(t, err)
	assert.Equal(t, "$300", s)

	s, err = c.Format(100.6, INR)
	require.NoError(t, err)
	assert.Equal(t, "₹101", s)

	assert.Equal(t, USD, ParseCode(" usd "))
}
