package problems

import (
	"encoding/json"
	"errors"
	"testing"
)

const testDatabase = `{
	"problems": [
		{
			"type": "congruence",
			"difficulty": "easy",
			"theorem_context": "三角形の合同条件（SSS）",
			"given": ["AB=DE", "BC=EF", "CA=FD"],
			"to_prove": "△ABC≡△DEF"
		},
		{
			"type": "congruence",
			"difficulty": "medium",
			"theorem_context": "三角形の合同条件（SAS）",
			"given": ["AB=DE", "BC=EF", "∠B=∠E"],
			"to_prove": "△ABC≡△DEF"
		},
		{
			"type": "similarity",
			"difficulty": "easy",
			"theorem_context": "三角形の相似条件",
			"given": "∠A=∠D、∠B=∠E",
			"to_prove": "△ABC∽△DEF"
		}
	]
}`

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load([]byte(testDatabase))
	if err != nil {
		t.Fatalf("load test database: %v", err)
	}
	return s
}

func TestLoad(t *testing.T) {
	s := testStore(t)
	if s.Len() != 3 {
		t.Errorf("expected 3 problems, got %d", s.Len())
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	if _, err := Load([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadFile_EmptyPathUsesEmbedded(t *testing.T) {
	s, err := LoadFile("")
	if err != nil {
		t.Fatalf("load embedded database: %v", err)
	}
	if s.Len() == 0 {
		t.Error("expected embedded database to contain problems")
	}
	for _, p := range s.All() {
		if p.Type != TypeCongruence && p.Type != TypeSimilarity {
			t.Errorf("unexpected proof type %q", p.Type)
		}
		if len(p.Given) == 0 {
			t.Errorf("problem %q has no given conditions", p.ToProve)
		}
	}
}

func TestQuery_ExactMatch(t *testing.T) {
	s := testStore(t)

	p, err := s.Query(TypeCongruence, DifficultyMedium)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if p.Type != TypeCongruence || p.Difficulty != DifficultyMedium {
		t.Errorf("expected congruence/medium, got %s/%s", p.Type, p.Difficulty)
	}
}

func TestQuery_WidensToType(t *testing.T) {
	s := testStore(t)

	// No congruence/hard exists; any congruence problem will do.
	p, err := s.Query(TypeCongruence, DifficultyHard)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if p.Type != TypeCongruence {
		t.Errorf("expected type widening to congruence, got %s", p.Type)
	}
}

func TestQuery_WidensToAll(t *testing.T) {
	onlyCongruence, err := Load([]byte(`{"problems": [
		{"type": "congruence", "difficulty": "easy",
		 "theorem_context": "x", "given": ["a"], "to_prove": "y"}
	]}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	p, err := onlyCongruence.Query(TypeSimilarity, DifficultyEasy)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if p.Type != TypeCongruence {
		t.Errorf("expected fallback to the whole collection, got %s", p.Type)
	}
}

func TestQuery_EmptyStore(t *testing.T) {
	empty, err := Load([]byte(`{"problems": []}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	_, err = empty.Query(TypeCongruence, DifficultyEasy)
	if !errors.Is(err, ErrNoProblems) {
		t.Errorf("expected ErrNoProblems, got %v", err)
	}
}

func TestLines_UnmarshalArray(t *testing.T) {
	var l Lines
	if err := json.Unmarshal([]byte(`["a", "b"]`), &l); err != nil {
		t.Fatalf("unmarshal array: %v", err)
	}
	if len(l) != 2 || l[0] != "a" || l[1] != "b" {
		t.Errorf("unexpected lines: %v", l)
	}
}

func TestLines_UnmarshalString(t *testing.T) {
	var l Lines
	if err := json.Unmarshal([]byte(`"single condition"`), &l); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if len(l) != 1 || l[0] != "single condition" {
		t.Errorf("unexpected lines: %v", l)
	}
}

func TestLines_UnmarshalRejectsOtherShapes(t *testing.T) {
	var l Lines
	if err := json.Unmarshal([]byte(`42`), &l); err == nil {
		t.Error("expected error for a numeric given")
	}
}

func TestLines_StringFormInDatabase(t *testing.T) {
	s := testStore(t)

	for _, p := range s.All() {
		if p.Type == TypeSimilarity {
			if len(p.Given) != 1 {
				t.Errorf("expected string-form given to decode as one line, got %v", p.Given)
			}
			return
		}
	}
	t.Fatal("similarity problem not found in test database")
}
