package trip

// DayItinerary - план одного календарного дня
type DayItinerary struct {
	Date       string     `json:"date" example:"2024-05-01"`
	Activities []Activity `json:"activities"`
}

// Activity ищет активность дня по идентификатору
func (d DayItinerary) Activity(id string) (Activity, bool) {
	for _, a := range d.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}

func (d DayItinerary) clone() DayItinerary {
	acts := make([]Activity, len(d.Activities))
	copy(acts, d.Activities)
	return DayItinerary{Date: d.Date, Activities: acts}
}

func (d DayItinerary) hasKey(k DedupKey) bool {
	for _, a := range d.Activities {
		if a.Key() == k {
			return true
		}
	}
	return false
}

// Itinerary - дни поездки по возрастанию даты, без повторяющихся дат
type Itinerary []DayItinerary

// NewItinerary проверяет дни и возвращает план-копию
func NewItinerary(days []DayItinerary) (Itinerary, error) {
	it := Itinerary(days).Clone()
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return it, nil
}

// Clone возвращает глубокую копию. nil остается nil.
func (it Itinerary) Clone() Itinerary {
	if it == nil {
		return nil
	}
	out := make(Itinerary, len(it))
	for i, d := range it {
		out[i] = d.clone()
	}
	return out
}

// Days возвращает копию дней, изменения которой не затрагивают план
func (it Itinerary) Days() []DayItinerary {
	return []DayItinerary(it.Clone())
}

// Day ищет день по дате
func (it Itinerary) Day(date string) (DayItinerary, bool) {
	if i := it.indexOf(date); i >= 0 {
		return it[i].clone(), true
	}
	return DayItinerary{}, false
}

func (it Itinerary) indexOf(date string) int {
	for i, d := range it {
		if d.Date == date {
			return i
		}
	}
	return -1
}

// Validate проверяет порядок дней, уникальность дат, идентификаторов
// активностей внутри дня и ключей дедупликации
func (it Itinerary) Validate() error {
	for i, d := range it {
		if _, err := ParseDate(d.Date); err != nil {
			return newValidationError("itinerary.date", "%v", err)
		}
		if i > 0 && CompareDates(it[i-1].Date, d.Date) >= 0 {
			return newValidationError("itinerary", "days must be strictly ascending by date: %s then %s", it[i-1].Date, d.Date)
		}

		seen := make(map[DedupKey]struct{}, len(d.Activities))
		ids := make(map[string]struct{}, len(d.Activities))
		for _, a := range d.Activities {
			if err := a.Validate(); err != nil {
				return err
			}
			if _, dup := ids[a.ID]; dup {
				return newValidationError("itinerary.activities", "duplicate activity id %q on %s", a.ID, d.Date)
			}
			ids[a.ID] = struct{}{}
			if _, dup := seen[a.Key()]; dup {
				return newValidationError("itinerary.activities", "duplicate activity %q at %s on %s", a.Title, a.Time, d.Date)
			}
			seen[a.Key()] = struct{}{}
		}
	}
	return nil
}
