// Package grading scores a student's condition selection against the
// known-correct set. It is pure computation with no stored state.
package grading

import "strings"

// ConditionChoice is one selectable condition in a multiple-choice set.
type ConditionChoice struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// GradeResult is the outcome of grading one selection.
type GradeResult struct {
	IsCorrect          bool     `json:"is_correct"`
	Score              int      `json:"score"`
	Feedback           string   `json:"feedback"`
	CorrectConditions  []string `json:"correct_conditions"`
	SelectedConditions []string `json:"selected_conditions"`
}

const perfectFeedback = "素晴らしい！すべての条件を正しく選択できました。"

// Grade compares the selected conditions against the choices flagged as
// correct. Conditions compare as exact-match strings with set semantics;
// duplicate texts collapse, so two choices with identical text are
// indistinguishable here.
func Grade(selected []string, choices []ConditionChoice) GradeResult {
	var correct []string
	for _, c := range choices {
		if c.IsCorrect {
			correct = append(correct, c.Text)
		}
	}

	correctSet := toSet(correct)
	selectedSet := toSet(selected)

	result := GradeResult{
		CorrectConditions:  correct,
		SelectedConditions: selected,
	}

	if setsEqual(selectedSet, correctSet) {
		result.IsCorrect = true
		result.Score = 100
		result.Feedback = perfectFeedback
		return result
	}

	var incorrectSelected, missing []string
	for _, s := range selected {
		if !correctSet[s] {
			incorrectSelected = append(incorrectSelected, s)
		}
	}
	for _, c := range correct {
		if !selectedSet[c] {
			missing = append(missing, c)
		}
	}

	var parts []string
	if len(incorrectSelected) > 0 {
		parts = append(parts, "間違った条件が選ばれています："+strings.Join(incorrectSelected, "、"))
	}
	if len(missing) > 0 {
		parts = append(parts, "選ばれていない正しい条件："+strings.Join(missing, "、"))
	}
	result.Feedback = "もう一度確認してください。" + strings.Join(parts, "\n")

	// Score is the share of correct conditions the student picked.
	// An empty correct set means nothing could be earned.
	if len(correctSet) > 0 {
		hits := 0
		for c := range correctSet {
			if selectedSet[c] {
				hits++
			}
		}
		result.Score = hits * 100 / len(correctSet)
	}

	return result
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}

func setsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
