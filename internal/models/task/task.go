package task

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID                 uuid.UUID  `json:"_id" db:"id"`
	UserID             uuid.UUID  `json:"userId" db:"user_id"`
	Text               string     `json:"text" db:"text"`
	Category           Category   `json:"category" db:"category"`
	CustomCategoryName string     `json:"customCategoryName,omitempty" db:"custom_category_name"`
	Completed          bool       `json:"completed" db:"completed"`
	Date               string     `json:"date" db:"date"` // YYYY-MM-DD, без таймзоны
	CreatedAt          time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

type Category string

const CategoryStudy Category = "study"
const CategoryHomework Category = "homework"
const CategoryCustom Category = "custom"

func (c Category) Valid() bool {
	switch c {
	case CategoryStudy, CategoryHomework, CategoryCustom:
		return true
	}
	return false
}
