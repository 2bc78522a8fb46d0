// Package trip описывает поездку, её дневной план и правила их изменения.
//
// Модель и функции слияния не выполняют ввода-вывода: серверный сервис и
// клиентский контроллер синхронизации используют их одинаково.
package trip

import (
	"time"
)

// Trip - поездка пользователя
type Trip struct {
	ID          string    `json:"id" doc:"Идентификатор поездки, назначается сервером"`
	OwnerID     string    `json:"userId" doc:"Владелец поездки"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"startDate" example:"2024-05-01" doc:"Дата начала, YYYY-MM-DD"`
	EndDate     string    `json:"endDate" example:"2024-05-03" doc:"Дата окончания, YYYY-MM-DD"`
	Budget      float64   `json:"budget" doc:"Бюджет в базовой валюте"`
	Travelers   int       `json:"travelers"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Itinerary   Itinerary `json:"itinerary"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Draft - данные для создания поездки, без полей, которые назначает сервер
type Draft struct {
	Title       string    `json:"title" minLength:"1"`
	Destination string    `json:"destination" minLength:"1"`
	StartDate   string    `json:"startDate" example:"2024-05-01"`
	EndDate     string    `json:"endDate" example:"2024-05-03"`
	Budget      float64   `json:"budget,omitempty" minimum:"0"`
	Travelers   int       `json:"travelers,omitempty" minimum:"0"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Itinerary   Itinerary `json:"itinerary,omitempty"`
}

// WithDefaults подставляет значения по умолчанию для необязательных полей
func (d Draft) WithDefaults() Draft {
	if d.Travelers == 0 {
		d.Travelers = 1
	}
	if d.Itinerary == nil {
		d.Itinerary = Itinerary{}
	}
	return d
}

// Validate проверяет черновик после подстановки значений по умолчанию
func (d Draft) Validate() error {
	return d.WithDefaults().toTrip().Validate()
}

// NewTrip собирает поездку из черновика. Идентификатор, владелец и время
// создания задаются вызывающей стороной (сервером).
func NewTrip(id, ownerID string, d Draft, createdAt time.Time) (Trip, error) {
	t := d.WithDefaults().toTrip()
	t.ID = id
	t.OwnerID = ownerID
	t.CreatedAt = createdAt

	if err := t.Validate(); err != nil {
		return Trip{}, err
	}
	return t, nil
}

func (d Draft) toTrip() Trip {
	return Trip{
		Title:       d.Title,
		Destination: d.Destination,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Budget:      d.Budget,
		Travelers:   d.Travelers,
		Description: d.Description,
		Image:       d.Image,
		Itinerary:   d.Itinerary.Clone(),
	}
}

// Clone возвращает копию поездки, не разделяющую срезы с оригиналом
func (t Trip) Clone() Trip {
	t.Itinerary = t.Itinerary.Clone()
	return t
}

// Validate проверяет инварианты поездки и её плана
func (t Trip) Validate() error {
	if err := validateHeader(t); err != nil {
		return err
	}
	return t.Itinerary.Validate()
}

func validateHeader(t Trip) error {
	if isBlank(t.Title) {
		return newValidationError("title", "is required")
	}
	if isBlank(t.Destination) {
		return newValidationError("destination", "is required")
	}

	start, err := ParseDate(t.StartDate)
	if err != nil {
		return newValidationError("startDate", "%v", err)
	}
	end, err := ParseDate(t.EndDate)
	if err != nil {
		return newValidationError("endDate", "%v", err)
	}
	if end.Before(start) {
		return newValidationError("endDate", "must not be before startDate")
	}

	if !isNonNegative(t.Budget) {
		return newValidationError("budget", "must be a non-negative number")
	}
	if t.Travelers < 1 {
		return newValidationError("travelers", "must be at least 1")
	}
	return nil
}
