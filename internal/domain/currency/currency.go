// Package currency переводит суммы из базовой валюты поездки в валюту отображения.
// Курсы статические и задаются конфигурацией.
package currency

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Code - код валюты, например "USD"
type Code string

const (
	INR Code = "INR"
	USD Code = "USD"
	EUR Code = "EUR"

	// Base - валюта, в которой хранятся бюджет и стоимости
	Base = INR
)

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrInvalidRate     = errors.New("invalid currency rate")
)

// ParseCode нормализует код валюты ("usd" -> USD)
func ParseCode(s string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(s)))
}

// Converter хранит курсы относительно базовой валюты и символы валют
type Converter struct {
	rates   map[Code]float64
	symbols map[Code]string
}

// DefaultRates - приблизительные курсы, не рыночные данные
func DefaultRates() map[Code]float64 {
	return map[Code]float64{
		INR: 1,
		USD: 0.012,
		EUR: 0.011,
	}
}

func DefaultSymbols() map[Code]string {
	return map[Code]string{
		INR: "₹",
		USD: "$",
		EUR: "€",
	}
}

// NewConverter создает конвертер. Курс базовой валюты всегда равен 1.
func NewConverter(rates map[Code]float64, symbols map[Code]string) (*Converter, error) {
	c := &Converter{
		rates:   make(map[Code]float64, len(rates)+1),
		symbols: make(map[Code]string, len(symbols)),
	}

	for code, rate := range rates {
		if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
			return nil, fmt.Errorf("%w: %s=%v", ErrInvalidRate, code, rate)
		}
		c.rates[code] = rate
	}
	if r, ok := c.rates[Base]; ok && r != 1 {
		return nil, fmt.Errorf("%w: base currency %s must have rate 1", ErrInvalidRate, Base)
	}
	c.rates[Base] = 1

	for code, sym := range symbols {
		c.symbols[code] = sym
	}
	return c, nil
}

// Default возвращает конвертер со встроенной таблицей курсов
func Default() *Converter {
	c, _ := NewConverter(DefaultRates(), DefaultSymbols())
	return c
}

// WithRates возвращает конвертер, где курсы переопределены значениями overrides
func (c *Converter) WithRates(overrides map[Code]float64) (*Converter, error) {
	rates := make(map[Code]float64, len(c.rates)+len(overrides))
	for code, r := range c.rates {
		rates[code] = r
	}
	for code, r := range overrides {
		rates[code] = r
	}
	return NewConverter(rates, c.symbols)
}

// Convert переводит сумму из базовой валюты и округляет до целых,
// в том числе для самой базовой валюты.
func (c *Converter) Convert(amountInBase float64, target Code) (float64, error) {
	rate, ok := c.rates[target]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, target)
	}
	return math.Round(amountInBase * rate), nil
}

// ToBase - обратное преобразование, для бюджета, введенного в валюте отображения
func (c *Converter) ToBase(amount float64, from Code) (float64, error) {
	rate, ok := c.rates[from]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, from)
	}
	return math.Round(amount / rate), nil
}

// Symbol возвращает символ валюты или сам код, если символ не задан
func (c *Converter) Symbol(code Code) string {
	if s, ok := c.symbols[code]; ok {
		return s
	}
	return string(code)
}

// Format конвертирует сумму и добавляет символ валюты
func (c *Converter) Format(amountInBase float64, target Code) (string, error) {
	v, err := c.Convert(amountInBase, target)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s", c.Symbol(target), formatAmount(v)), nil
}

// Codes возвращает известные коды валют в алфавитном порядке
func (c *Converter) Codes() []Code {
	codes := make([]Code, 0, len(c.rates))
	for code := range c.rates {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

func (c *Converter) Supports(code Code) bool {
	_, ok := c.rates[code]
	return ok
}

func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
