package domain

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty buckets for problems
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Problem represents a judging problem with an ordered set of testcases
type Problem struct {
	ID         uuid.UUID  `db:"id"`
	Title      string     `db:"title"`
	Statement  string     `db:"statement"`
	Difficulty Difficulty `db:"difficulty"`
	CreatedAt  time.Time  `db:"created_at"`
}

// NewProblem creates a new problem, defaulting the difficulty to easy
func NewProblem(title, statement string, difficulty Difficulty) *Problem {
	if difficulty == "" {
		difficulty = DifficultyEasy
	}
	return &Problem{
		ID:         uuid.New(),
		Title:      title,
		Statement:  statement,
		Difficulty: difficulty,
		CreatedAt:  time.Now(),
	}
}

type ProblemTable struct {
	ID         string
	Title      string
	Statement  string
	Difficulty string
	CreatedAt  string
}

func GetProblemTable() ProblemTable {
	return ProblemTable{
		ID:         "id",
		Title:      "title",
		Statement:  "statement",
		Difficulty: "difficulty",
		CreatedAt:  "created_at",
	}
}

func (ProblemTable) TableName() string {
	return "problems"
}
