package trip

// Patch - частичное обновление поездки. nil-поле означает "не менять".
// Destination, владелец и даты создания через Patch не меняются.
type Patch struct {
	Title       *string    `json:"title,omitempty"`
	StartDate   *string    `json:"startDate,omitempty"`
	EndDate     *string    `json:"endDate,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	Travelers   *int       `json:"travelers,omitempty"`
	Description *string    `json:"description,omitempty"`
	Image       *string    `json:"image,omitempty"`
	Itinerary   *Itinerary `json:"itinerary,omitempty"`
}

// ItineraryPatch - патч, заменяющий только план
func ItineraryPatch(it Itinerary) Patch {
	cp := it.Clone()
	if cp == nil {
		cp = Itinerary{}
	}
	return Patch{Itinerary: &cp}
}

// IsEmpty сообщает, что патч ничего не меняет
func (p Patch) IsEmpty() bool {
	return p.Title == nil &&
		p.StartDate == nil &&
		p.EndDate == nil &&
		p.Budget == nil &&
		p.Travelers == nil &&
		p.Description == nil &&
		p.Image == nil &&
		p.Itinerary == nil
}

// Apply возвращает копию поездки с примененным патчем.
// Результат проверяется целиком: патч, нарушающий инварианты, отклоняется.
func (p Patch) Apply(t Trip) (Trip, error) {
	out := t.Clone()

	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.StartDate != nil {
		out.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		out.EndDate = *p.EndDate
	}
	if p.Budget != nil {
		out.Budget = *p.Budget
	}
	if p.Travelers != nil {
		out.Travelers = *p.Travelers
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Image != nil {
		out.Image = *p.Image
	}
	if p.Itinerary != nil {
		out.Itinerary = p.Itinerary.Clone()
	}

	if err := out.Validate(); err != nil {
		return Trip{}, err
	}
	return out, nil
}
