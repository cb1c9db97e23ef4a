package tutor

import (
	"strings"
	"testing"
)

func TestBuildWrongConditionsPrompt(t *testing.T) {
	system, user := buildWrongConditionsPrompt(
		[]string{"AB=DE", "BC=EF"},
		"三角形の合同条件（SAS）",
	)

	if system != tutorSystemPrompt {
		t.Errorf("unexpected system prompt: %q", system)
	}
	for _, want := range []string{"AB=DE", "BC=EF", "三角形の合同条件（SAS）", "wrong_conditions", "3つ"} {
		if !strings.Contains(user, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}

func TestBuildHintPrompt(t *testing.T) {
	system, user := buildHintPrompt(
		"三角形の合同条件（SAS）",
		[]string{"AB=DE", "∠B=∠E"},
		"△ABC≡△DEF",
		"AB=DEまで書きました",
	)

	if !strings.Contains(system, "完全な解答は絶対に返しません") {
		t.Errorf("expected the no-full-solution rule in the system prompt, got %q", system)
	}
	for _, want := range []string{"AB=DE", "∠B=∠E", "△ABC≡△DEF", "AB=DEまで書きました", "do_not_reveal", "次の一歩"} {
		if !strings.Contains(user, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}

func TestBuildProblemPrompt(t *testing.T) {
	_, user := buildProblemPrompt("similarity", "hard")

	if !strings.Contains(user, "相似条件") {
		t.Errorf("expected similarity phrasing, got %q", user)
	}
	if !strings.Contains(user, "中学3年生の発展") {
		t.Errorf("expected hard difficulty phrasing, got %q", user)
	}
}

func TestBuildProblemPrompt_UnknownInputsFallBack(t *testing.T) {
	_, user := buildProblemPrompt("trigonometry", "impossible")

	if !strings.Contains(user, proofTypeGuidance["congruence"]) {
		t.Errorf("expected fallback to congruence phrasing, got %q", user)
	}
	if !strings.Contains(user, difficultyGuidance["medium"]) {
		t.Errorf("expected fallback to medium phrasing, got %q", user)
	}
}
