package model

import "time"

type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"nome"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Subject struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	CategoryID *string   `json:"categoriaId,omitempty"`
	Name       string    `json:"nome"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Topic struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"materiaId"`
	Name      string    `json:"nome"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Annotation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	SessionID string    `json:"sessaoId"`
	Content   string    `json:"conteudo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
