package task

// TaskOption — функция частичного обновления: меняет только своё поле,
// остальные остаются как были.
type TaskOption func(*Task)

func WithText(text string) TaskOption {
	return func(t *Task) {
		t.Text = text
	}
}

func WithCategory(category Category) TaskOption {
	return func(t *Task) {
		t.Category = category
	}
}

func WithCustomCategoryName(name string) TaskOption {
	return func(t *Task) {
		t.CustomCategoryName = name
	}
}

func WithCompleted(completed bool) TaskOption {
	return func(t *Task) {
		t.Completed = completed
	}
}

func WithDate(date string) TaskOption {
	return func(t *Task) {
		t.Date = date
	}
}
