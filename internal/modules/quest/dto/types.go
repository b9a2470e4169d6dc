package dto

import "time"

type CreateInput struct {
	Name   string
	Author string
	Icon   string
}

type UpdateFieldInput struct {
	ID    string
	Field string
	Value string
}

type QuestOutput struct {
	ID          string
	DisplayName string
	Author      string
	Difficulty  string
	Description string
	Icon        string
	Pages       []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
