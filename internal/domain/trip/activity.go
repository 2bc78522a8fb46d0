package trip

import (
	"fmt"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
)

type Category string

const (
	CategorySightseeing Category = "sightseeing"
	CategoryFood        Category = "food"
	CategoryCulture     Category = "culture"
	CategoryTransport   Category = "transport"
	CategoryOther       Category = "other"
)

// Categories возвращает допустимые категории в порядке отображения
func Categories() []Category {
	return []Category{
		CategorySightseeing,
		CategoryFood,
		CategoryCulture,
		CategoryTransport,
		CategoryOther,
	}
}

// Schema реализует huma.SchemaProvider.
func (Category) Schema(_ huma.Registry) *huma.Schema {
	enum := make([]any, 0, len(Categories()))
	for _, c := range Categories() {
		enum = append(enum, string(c))
	}
	return &huma.Schema{
		Type:        huma.TypeString,
		Enum:        enum,
		Description: "Категория активности",
		Examples:    []any{string(CategorySightseeing)},
	}
}

// Validate проверяет, что категория входит в фиксированный набор
func (c Category) Validate() error {
	for _, known := range Categories() {
		if c == known {
			return nil
		}
	}
	return fmt.Errorf("неизвестная категория: %q", string(c))
}

func (c Category) String() string {
	return string(c)
}

// Activity - запланированный пункт дня. После создания не изменяется:
// обновление выполняется заменой.
type Activity struct {
	ID       string   `json:"id" doc:"Идентификатор, генерируется клиентом"`
	Time     string   `json:"time" example:"13:00" doc:"Время, HH:MM"`
	Title    string   `json:"title"`
	Category Category `json:"type"`
	Cost     float64  `json:"cost" minimum:"0" doc:"Стоимость в базовой валюте"`
}

// DedupKey - ключ дедупликации активностей внутри одного дня
type DedupKey struct {
	Title    string
	Time     string
	Category Category
}

// NewActivity создает активность с новым идентификатором
func NewActivity(title, at string, category Category, cost float64) (Activity, error) {
	a := Activity{
		ID:       uuid.NewString(),
		Time:     at,
		Title:    title,
		Category: category,
		Cost:     cost,
	}
	if err := a.Validate(); err != nil {
		return Activity{}, err
	}
	return a, nil
}

func (a Activity) Key() DedupKey {
	return DedupKey{Title: a.Title, Time: a.Time, Category: a.Category}
}

// Validate проверяет форму активности
func (a Activity) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return newValidationError("activity.id", "is required")
	}
	if isBlank(a.Title) {
		return newValidationError("activity.title", "is required")
	}
	if !IsNormalizedTime(a.Time) {
		return newValidationError("activity.time", "must be zero-padded HH:MM, got %q", a.Time)
	}
	if err := a.Category.Validate(); err != nil {
		return newValidationError("activity.type", "%v", err)
	}
	if !isNonNegative(a.Cost) {
		return newValidationError("activity.cost", "must be a non-negative number")
	}
	return nil
}
