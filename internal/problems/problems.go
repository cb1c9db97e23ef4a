// Package problems holds the proof-problem collection. It is loaded once
// at startup and read-only afterwards, so it is safe for concurrent use
// by request handlers.
package problems

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
)

// Proof types.
const (
	TypeCongruence = "congruence"
	TypeSimilarity = "similarity"
)

// Difficulties.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ErrNoProblems is returned by Query when the collection is empty.
var ErrNoProblems = errors.New("no problems available")

// Problem is a single proof-practice exercise.
type Problem struct {
	Type              string `json:"type"`
	Difficulty        string `json:"difficulty"`
	TheoremContext    string `json:"theorem_context"`
	FigureDescription string `json:"figure_description,omitempty"`
	Given             Lines  `json:"given"`
	ToProve           string `json:"to_prove"`
	Condition         string `json:"condition,omitempty"`
}

// Lines is an ordered sequence of text lines. The problem database stores
// the given conditions either as an array of strings or as one text block;
// both decode into a Lines value.
type Lines []string

func (l *Lines) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("given must be a string or an array of strings")
	}
	*l = Lines{single}
	return nil
}

type database struct {
	Problems []Problem `json:"problems"`
}

// Store holds the loaded problem collection.
type Store struct {
	problems []Problem
}

// Load parses a problem database from JSON bytes.
func Load(data []byte) (*Store, error) {
	var db database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("parse problem database: %w", err)
	}
	return &Store{problems: db.Problems}, nil
}

// LoadFile loads a problem database from the file at path. An empty path
// loads the embedded default collection.
func LoadFile(path string) (*Store, error) {
	if path == "" {
		return Load(defaultDatabase)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problem database: %w", err)
	}
	return Load(data)
}

// Len returns the number of loaded problems.
func (s *Store) Len() int {
	return len(s.problems)
}

// All returns the full collection.
func (s *Store) All() []Problem {
	return s.problems
}

// Query picks a random problem matching proofType and difficulty.
// When nothing matches exactly it widens to the proof type alone, then to
// the whole collection. An empty collection yields ErrNoProblems.
func (s *Store) Query(proofType, difficulty string) (Problem, error) {
	matching := s.filter(func(p Problem) bool {
		return p.Type == proofType && p.Difficulty == difficulty
	})

	if len(matching) == 0 {
		matching = s.filter(func(p Problem) bool {
			return p.Type == proofType
		})
	}

	if len(matching) == 0 {
		matching = s.problems
	}

	if len(matching) == 0 {
		return Problem{}, ErrNoProblems
	}

	return matching[rand.IntN(len(matching))], nil
}

func (s *Store) filter(keep func(Problem) bool) []Problem {
	var out []Problem
	for _, p := range s.problems {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
