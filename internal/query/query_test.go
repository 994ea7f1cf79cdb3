package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fastygo/tasklist/domain"
)

func task(id int64, title string, p domain.Priority, completed bool) domain.Task {
	return domain.Task{ID: id, Title: title, Priority: p, Completed: completed}
}

func titles(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestSortOrdering(t *testing.T) {
	in := []domain.Task{
		task(1, "A", domain.PriorityHigh, false),
		task(2, "B", domain.PriorityLow, false),
		task(3, "C", domain.PriorityHigh, true),
		task(4, "D", domain.PriorityMedium, false),
	}
	assert.Equal(t, []string{"A", "D", "B", "C"}, titles(Sort(in)))
	assert.Equal(t, []string{"A", "B", "C", "D"}, titles(in), "input must not be reordered")
}

func TestSortCompletedKeepInputOrder(t *testing.T) {
	in := []domain.Task{
		task(1, "done-low", domain.PriorityLow, true),
		task(2, "open-low", domain.PriorityLow, false),
		task(3, "done-high", domain.PriorityHigh, true),
		task(4, "done-medium", domain.PriorityMedium, true),
	}
	assert.Equal(t, []string{"open-low", "done-low", "done-high", "done-medium"}, titles(Sort(in)))
}

func TestSortIsStable(t *testing.T) {
	in := []domain.Task{
		task(1, "m1", domain.PriorityMedium, false),
		task(2, "h1", domain.PriorityHigh, false),
		task(3, "m2", domain.PriorityMedium, false),
		task(4, "h2", domain.PriorityHigh, false),
		task(5, "m3", domain.PriorityMedium, false),
	}
	assert.Equal(t, []string{"h1", "h2", "m1", "m2", "m3"}, titles(Sort(in)))
}

func TestFilter(t *testing.T) {
	in := []domain.Task{
		task(1, "Quarterly report", domain.PriorityHigh, false),
		{ID: 2, Title: "Groceries", Description: "milk, REPORTER magazine", Priority: domain.PriorityLow},
		task(3, "Call bank", domain.PriorityMedium, false),
	}

	assert.Equal(t, []string{"Quarterly report", "Groceries"}, titles(Filter(in, "REPORT")))
	assert.Equal(t, []string{"Call bank"}, titles(Filter(in, "bank")))
	assert.Empty(t, Filter(in, "dentist"))
	assert.Len(t, Filter(in, ""), 3)
	assert.NotNil(t, Filter(nil, "x"))
}

func TestFilterFoldsUnicode(t *testing.T) {
	in := []domain.Task{task(1, "Réunion à l'École", domain.PriorityLow, false)}
	assert.Len(t, Filter(in, "ÉCOLE"), 1)
	assert.Len(t, Filter(in, "réunion"), 1)
}

func TestFilterDoesNotAliasInput(t *testing.T) {
	in := []domain.Task{task(1, "a", domain.PriorityLow, false)}
	out := Filter(in, "")
	out[0].Title = "changed"
	assert.Equal(t, "a", in[0].Title)
}

func TestViewAndStats(t *testing.T) {
	in := []domain.Task{
		task(1, "Buy milk", domain.PriorityHigh, true),
		task(2, "Call bank", domain.PriorityLow, false),
		task(3, "Buy stamps", domain.PriorityMedium, false),
	}
	assert.Equal(t, []string{"Buy stamps", "Buy milk"}, titles(View(in, "buy")))
	assert.Equal(t, Summary{Total: 3, Completed: 1, Open: 2, Medium: 1, Low: 1}, Stats(in))
}
