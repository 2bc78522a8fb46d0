package trip

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lunch() Activity {
	return Activity{ID: "a1", Title: "Lunch", Time: "13:00", Category: CategoryFood, Cost: 500}
}

func TestInsertActivity_IntoEmptyDay(t *testing.T) {
	it := Itinerary{{Date: "2024-05-01", Activities: []Activity{}}}

	once := InsertActivity(it, "2024-05-01", lunch())
	require.Len(t, once, 1)
	require.Len(t, once[0].Activities, 1)
	assert.Equal(t, "Lunch", once[0].Activities[0].Title)

	// Та же активность с другим ID все равно считается дублем
	dup := lunch()
	dup.ID = "a2"
	twice := InsertActivity(once, "2024-05-01", dup)
	assert.True(t, twice.Equal(once))
	assert.Len(t, twice[0].Activities, 1)
}

func TestInsertActivity_SortsByTime(t *testing.T) {
	it := Itinerary{{Date: "2024-05-01", Activities: []Activity{}}}

	it = InsertActivity(it, "2024-05-01", Activity{ID: "e", Title: "Dinner", Time: "18:00", Category: CategoryFood})
	it = InsertActivity(it, "2024-05-01", Activity{ID: "m", Title: "Museum", Time: "09:00", Category: CategoryCulture})

	require.Len(t, it[0].Activities, 2)
	assert.Equal(t, "09:00", it[0].Activities[0].Time)
	assert.Equal(t, "18:00", it[0].Activities[1].Time)
}

func TestInsertActivity_CreatesDayInCalendarOrder(t *testing.T) {
	it := Itinerary{
		{Date: "2024-05-01", Activities: []Activity{}},
		{Date: "2024-05-10", Activities: []Activity{}},
	}

	out := InsertActivity(it, "2024-05-03", lunch())

	require.Len(t, out, 3)
	assert.Equal(t, []string{"2024-05-01", "2024-05-03", "2024-05-10"}, dates(out))
	assert.Equal(t, []Activity{lunch()}, out[1].Activities)
}

func TestInsertActivity_DoesNotMutateInput(t *testing.T) {
	it := Itinerary{{Date: "2024-05-01", Activities: []Activity{
		{ID: "x", Title: "Walk", Time: "10:00", Category: CategorySightseeing},
	}}}
	before := it.Clone()

	_ = InsertActivity(it, "2024-05-01", lunch())
	_ = InsertActivity(it, "2024-04-30", lunch())

	assert.Equal(t, before, it)
}

func TestInsertActivity_SameKeyOnOtherDayIsNotDuplicate(t *testing.T) {
	it := Itinerary{
		{Date: "2024-05-01", Activities: []Activity{lunch()}},
		{Date: "2024-05-02", Activities: []Activity{}},
	}

	out := InsertActivity(it, "2024-05-02", lunch())

	assert.Len(t, out[0].Activities, 1)
	assert.Len(t, out[1].Activities, 1)
}

func TestInsertActivity_OrderingProperty(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	titles := []string{"Walk", "Lunch", "Museum", "Train"}

	for run := 0; run < 50; run++ {
		var it Itinerary
		for i := 0; i < 40; i++ {
			date := fmt.Sprintf("2024-05-%02d", 1+rnd.Intn(9))
			a := Activity{
				ID:       fmt.Sprintf("%d-%d", run, i),
				Title:    titles[rnd.Intn(len(titles))],
				Time:     fmt.Sprintf("%02d:%02d", rnd.Intn(24), 15*rnd.Intn(4)),
				Category: Categories()[rnd.Intn(len(Categories()))],
			}
			it = InsertActivity(it, date, a)
		}

		require.NoError(t, it.Validate())
		for _, d := range it {
			for j := 1; j < len(d.Activities); j++ {
				assert.LessOrEqual(t, d.Activities[j-1].Time, d.Activities[j].Time)
			}
		}
	}
}

func TestRemoveActivity_AnchorDayRetained(t *testing.T) {
	it := Itinerary{
		{Date: "2024-05-01", Activities: []Activity{{ID: "a", Title: "Breakfast", Time: "08:00", Category: CategoryFood}}},
		{Date: "2024-05-02", Activities: []Activity{{ID: "b", Title: "Hike", Time: "07:00", Category: CategorySightseeing}}},
	}

	out := RemoveActivity(it, "2024-05-01", "2024-05-01", "a")
	require.Len(t, out, 2)
	assert.Equal(t, "2024-05-01", out[0].Date)
	assert.Empty(t, out[0].Activities)

	out = RemoveActivity(out, "2024-05-01", "2024-05-02", "b")
	require.Len(t, out, 1)
	_, ok := out.Day("2024-05-02")
	assert.False(t, ok)
}

func TestRemoveActivity_NoOps(t *testing.T) {
	it := Itinerary{
		{Date: "2024-05-01", Activities: []Activity{}},
		{Date: "2024-05-02", Activities: []Activity{}},
		{Date: "2024-05-03", Activities: []Activity{lunch()}},
	}

	tests := []struct {
		name       string
		date       string
		activityID string
	}{
		{name: "unknown day", date: "2024-06-01", activityID: lunch().ID},
		{name: "unknown activity", date: "2024-05-03", activityID: "missing"},
		// пустой не-якорный день не трогается, если ничего не удалено
		{name: "empty day", date: "2024-05-02", activityID: "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RemoveActivity(it, "2024-05-01", tt.date, tt.activityID)
			assert.True(t, out.Equal(it))
		})
	}
}

func TestRemoveActivity_LeavesOtherDaysUntouched(t *testing.T) {
	it := Itinerary{
		{Date: "2024-05-01", Activities: []Activity{}},
		{Date: "2024-05-02", Activities: []Activity{}},
		{Date: "2024-05-03", Activities: []Activity{lunch()}},
	}

	out := RemoveActivity(it, "2024-05-01", "2024-05-03", lunch().ID)

	assert.Equal(t, []string{"2024-05-01", "2024-05-02"}, dates(out))
	assert.Len(t, it, 3)
}

func dates(it Itinerary) []string {
	out := make([]string, 0, len(it))
	for _, d := range it {
		out = append(out, d.Date)
	}
	return out
}
