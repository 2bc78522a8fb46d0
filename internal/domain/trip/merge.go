package trip

import (
	"sort"
)

// InsertActivity возвращает план с добавленной активностью.
//
// Если дня с такой датой нет, он создается и дни пересортировываются по дате.
// Если в дне уже есть активность с тем же ключом (title, time, type),
// план возвращается без изменений. Иначе активность добавляется, а
// активности дня сортируются по строке времени. Входной план не изменяется.
func InsertActivity(it Itinerary, date string, activity Activity) Itinerary {
	out := it.Clone()

	i := out.indexOf(date)
	if i < 0 {
		out = append(out, DayItinerary{Date: date, Activities: []Activity{activity}})
		sortDays(out)
		return out
	}

	if out[i].hasKey(activity.Key()) {
		return out
	}

	out[i].Activities = append(out[i].Activities, activity)
	sortActivities(out[i].Activities)
	return out
}

// RemoveActivity возвращает план без активности activityID в дне date.
//
// Опустевший день удаляется, если его дата не совпадает с anchorDate
// (датой начала поездки): первый день сохраняется даже пустым.
// Отсутствующий день или активность - no-op. Входной план не изменяется.
func RemoveActivity(it Itinerary, anchorDate, date, activityID string) Itinerary {
	out := it.Clone()

	i := out.indexOf(date)
	if i < 0 {
		return out
	}

	kept := make([]Activity, 0, len(out[i].Activities))
	for _, a := range out[i].Activities {
		if a.ID != activityID {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(out[i].Activities) {
		return out
	}
	out[i].Activities = kept

	if len(kept) == 0 && date != anchorDate {
		out = append(out[:i], out[i+1:]...)
	}
	return out
}

// Equal сравнивает два плана по датам и активностям
func (it Itinerary) Equal(other Itinerary) bool {
	if len(it) != len(other) {
		return false
	}
	for i := range it {
		if it[i].Date != other[i].Date || len(it[i].Activities) != len(other[i].Activities) {
			return false
		}
		for j := range it[i].Activities {
			if it[i].Activities[j] != other[i].Activities[j] {
				return false
			}
		}
	}
	return true
}

func sortDays(days Itinerary) {
	sort.SliceStable(days, func(a, b int) bool {
		return CompareDates(days[a].Date, days[b].Date) < 0
	})
}

func sortActivities(acts []Activity) {
	sort.SliceStable(acts, func(a, b int) bool {
		return acts[a].Time < acts[b].Time
	})
}
