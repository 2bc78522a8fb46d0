package trip

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout - формат календарной даты в поездке
const DateLayout = "2006-01-02"

// ParseDate разбирает календарную дату YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

// ValidateDate проверяет дату дня плана
func ValidateDate(s string) error {
	if _, err := ParseDate(s); err != nil {
		return newValidationError("date", "%v", err)
	}
	return nil
}

// CompareDates сравнивает две даты как календарные дни.
// Неразбираемые даты сравниваются как строки.
func CompareDates(a, b string) int {
	da, errA := ParseDate(a)
	db, errB := ParseDate(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return da.Compare(db)
}

// IsNormalizedTime сообщает, записано ли время в виде HH:MM (24 часа, с ведущими нулями)
func IsNormalizedTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	h, errH := strconv.Atoi(s[:2])
	m, errM := strconv.Atoi(s[3:])
	if errH != nil || errM != nil {
		return false
	}
	return h >= 0 && h <= 23 && m >= 0 && m <= 59
}

// NormalizeTime приводит "9:5" или "09:05" к виду "09:05".
// Слияние сравнивает время как строки, поэтому вызывающая сторона
// нормализует его до вставки.
func NormalizeTime(s string) (string, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return "", newValidationError("time", "expected H:MM, got %q", s)
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return "", newValidationError("time", "out of range: %q", s)
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// ScaffoldItinerary создает по пустому дню на каждую дату поездки
func ScaffoldItinerary(startDate, endDate string) (Itinerary, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, newValidationError("startDate", "%v", err)
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, newValidationError("endDate", "%v", err)
	}
	if end.Before(start) {
		return nil, newValidationError("endDate", "must not be before startDate")
	}

	var days Itinerary
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, DayItinerary{
			Date:       d.Format(DateLayout),
			Activities: []Activity{},
		})
	}
	return days, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
