package money_test

import (
	"encoding/json"
	"testing"

	"github.com/amirasaad/corebank/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Precision(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency money.Code
		expected string
		wantErr  error
	}{
		{"TRY with kurus", "100.50", money.TRY, "100.50 TRY", nil},
		{"USD whole", "42", money.USD, "42.00 USD", nil},
		{"JPY without decimals", "1000", money.JPY, "1000 JPY", nil},
		{"KWD with 3 decimals", "1.125", money.KWD, "1.125 KWD", nil},
		{"trailing zeros are accepted", "10.500", money.USD, "10.50 USD", nil},
		{"too many decimals", "100.999", money.USD, "", money.ErrInvalidAmount},
		{"JPY with fraction", "1000.5", money.JPY, "", money.ErrInvalidAmount},
		{"negative amount", "-1", money.TRY, "", money.ErrInvalidAmount},
		{"not a number", "abc", money.TRY, "", money.ErrInvalidAmount},
		{"lowercase currency", "1", money.Code("try"), "", money.ErrInvalidCurrency},
		{"long currency", "1", money.Code("TRYX"), "", money.ErrInvalidCurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := money.Parse(tt.amount, tt.currency)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, money.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m.String())
			assert.Equal(t, tt.currency, m.Currency())
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	try100 := money.Must("100", money.TRY)
	try40 := money.Must("40", money.TRY)
	usd100 := money.Must("100", money.USD)

	t.Run("Add same currency", func(t *testing.T) {
		result, err := try100.Add(try40)
		require.NoError(t, err)
		assert.True(t, result.Equals(money.Must("140", money.TRY)))
	})

	t.Run("Add different currency", func(t *testing.T) {
		_, err := try100.Add(usd100)
		require.ErrorIs(t, err, money.ErrMismatchedCurrencies)
		assert.EqualError(t, err, "currency mismatch: cannot add TRY and USD")
	})

	t.Run("Subtract same currency", func(t *testing.T) {
		result, err := try100.Subtract(try40)
		require.NoError(t, err)
		assert.Equal(t, "60.00 TRY", result.String())
	})

	t.Run("Subtract to exactly zero", func(t *testing.T) {
		result, err := try100.Subtract(try100)
		require.NoError(t, err)
		assert.True(t, result.IsZero())
	})

	t.Run("Subtract below zero fails", func(t *testing.T) {
		_, err := try40.Subtract(try100)
		assert.ErrorIs(t, err, money.ErrNegativeAmount)
	})

	t.Run("Subtract different currency", func(t *testing.T) {
		_, err := try100.Subtract(usd100)
		assert.ErrorIs(t, err, money.ErrMismatchedCurrencies)
	})

	t.Run("Operands are not mutated", func(t *testing.T) {
		_, _ = try100.Add(try40)
		_, _ = try100.Subtract(try40)
		assert.Equal(t, "100.00 TRY", try100.String())
		assert.Equal(t, "40.00 TRY", try40.String())
	})
}

func TestMoney_Multiply(t *testing.T) {
	m := money.Must("10.01", money.TRY)

	result, err := m.Multiply(decimal.RequireFromString("0.5"))
	require.NoError(t, err)
	assert.Equal(t, "5.01 TRY", result.String(), "5.005 rounds half away from zero")

	result, err = m.Multiply(decimal.Zero)
	require.NoError(t, err)
	assert.True(t, result.IsZero())

	_, err = m.Multiply(decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, money.ErrInvalidFactor)
}

func TestMoney_Comparison(t *testing.T) {
	a := money.Must("100", money.TRY)
	b := money.Must("50", money.TRY)
	usd := money.Must("100", money.USD)

	tests := []struct {
		name string
		fn   func(money.Money) (bool, error)
		arg  money.Money
		want bool
	}{
		{"GreaterThan true", a.GreaterThan, b, true},
		{"GreaterThan equal", a.GreaterThan, a, false},
		{"GreaterOrEqual equal", a.GreaterOrEqual, a, true},
		{"LessThan false", a.LessThan, b, false},
		{"LessOrEqual equal", a.LessOrEqual, a, true},
		{"LessOrEqual smaller", b.LessOrEqual, a, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("cross currency comparison fails", func(t *testing.T) {
		for _, fn := range []func(money.Money) (bool, error){
			a.GreaterThan, a.GreaterOrEqual, a.LessThan, a.LessOrEqual,
		} {
			_, err := fn(usd)
			assert.ErrorIs(t, err, money.ErrMismatchedCurrencies)
		}
		assert.False(t, a.Equals(usd))
	})
}

func TestZero(t *testing.T) {
	z := money.Zero(money.TRY)
	assert.True(t, z.IsZero())
	assert.False(t, z.IsPositive())
	assert.True(t, z.IsValid())
	assert.Equal(t, "0.00 TRY", z.String())
	assert.False(t, money.Money{}.IsValid())
}

func TestMoney_JSON(t *testing.T) {
	m := money.Must("1234.5", money.TRY)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1234.50","currency":"TRY"}`, string(data))

	var decoded money.Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))

	err = json.Unmarshal([]byte(`{"amount":"-1","currency":"TRY"}`), &decoded)
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
}

func FuzzParse(f *testing.F) {
	f.Add("100", "TRY")
	f.Add("-50", "EUR")
	f.Add("0.001", "JPY")
	f.Add("1e3", "KWD")

	f.Fuzz(func(t *testing.T, amount, cc string) {
		m, err := money.Parse(amount, money.Code(cc))
		if err != nil {
			assert.ErrorIs(t, err, money.ErrInvalidInput)
			return
		}
		if m.Amount().IsNegative() {
			t.Errorf("negative amount accepted: %s", m)
		}
		if m.Currency() != money.Code(cc) {
			t.Errorf("currency changed: got %q, want %q", m.Currency(), cc)
		}
	})
}
