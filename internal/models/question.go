package models

import "strings"

// Question is one trivia entry as served by the question store.
type Question struct {
	ID         int    `json:"id" gorm:"primaryKey" validate:"required,min=1"`
	Question   string `json:"question" gorm:"type:text;not null" validate:"required"`
	Answer     string `json:"answer" gorm:"type:text;not null"`
	Category   int    `json:"category" gorm:"not null;index" validate:"min=0"`
	Difficulty int    `json:"difficulty" gorm:"not null"`
}

func (Question) TableName() string {
	return "questions"
}

// Category maps an id to the label shown in the category list.
type Category struct {
	ID   int    `json:"id" gorm:"primaryKey" validate:"required,min=1"`
	Type string `json:"type" gorm:"not null;size:100" validate:"required"`
}

func (Category) TableName() string {
	return "categories"
}

// IconKey is the name of the icon asset for the category.
func (c Category) IconKey() string {
	return IconKey(c.Type)
}

func IconKey(label string) string {
	return strings.ToLower(label)
}
