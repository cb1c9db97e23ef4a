package tutor

import (
	"fmt"
	"strings"
)

// The prompt texts live here as constants, away from request handling,
// so they can be tested and versioned on their own. All builders are pure
// functions of their inputs.

const tutorSystemPrompt = "あなたは数学の証明問題の教育支援AIです。"

const hintSystemPrompt = "あなたは数学の証明問題の教育支援AIです。" +
	"生徒の学習を支援するため、次の一歩のヒントのみを提供し、完全な解答は絶対に返しません。"

const wrongConditionsTemplate = `あなたは数学の証明問題の教育支援AIです。

【定理・文脈】
%s

【正しい条件】
%s

上記の正しい条件に対して、教育的に有用な「間違いの条件」を3つ生成してください。
間違いの条件は、生徒が陥りやすい誤解や誤りを反映したものにしてください。

以下のJSON形式で出力してください：
{
  "wrong_conditions": ["間違いの条件1", "間違いの条件2", "間違いの条件3"]
}`

const hintTemplate = `あなたは数学の証明問題の教育支援AIです。

【問題】
定理・文脈：%s

【与条件】
%s

【証明すべき結論】
%s

【生徒の現在までの記述】
%s

生徒の記述を分析して、以下の3つを日本語で提供してください：

1. 【次の一歩】：生徒が次にすべき一つのステップのみを提示してください。完全な解答は絶対に返さないでください。
2. 【なぜその一歩か】：そのステップが必要な理由を簡潔に説明してください。
3. 【診断】：生徒の記述から見える理解度や課題を簡潔に診断してください。

以下のJSON形式で出力してください：
{
  "next_hint": "次の一歩のみ（1-2文）",
  "why": "その理由（1-2文）",
  "diagnosis": "診断結果（1-2文）",
  "do_not_reveal": true
}

重要：必ず do_not_reveal を true に設定してください。これは完全解答を返していないことの確認です。`

const problemTemplate = `あなたは数学の証明問題の教育支援AIです。

%sを1問、%sのレベルで作成してください。

与えられる条件（given）と証明すべき結論（to_prove）が数学的に矛盾しないように注意してください。

以下のJSON形式で出力してください：
{
  "theorem_context": "定理・文脈の説明",
  "given": ["与条件1", "与条件2"],
  "to_prove": "証明すべき結論"
}`

// proofTypeGuidance maps a proof type to the phrase used in generation
// prompts. Unknown types fall back to the congruence phrase.
var proofTypeGuidance = map[string]string{
	"congruence": "三角形の合同条件を使う証明問題",
	"similarity": "三角形の相似条件を使う証明問題",
}

// difficultyGuidance maps a difficulty to a grade-level phrase.
// Unknown difficulties fall back to the medium phrase.
var difficultyGuidance = map[string]string{
	"easy":   "中学2年生の基礎",
	"medium": "中学2年生の標準",
	"hard":   "中学3年生の発展",
}

// buildWrongConditionsPrompt renders the distractor-generation prompt.
func buildWrongConditionsPrompt(correctConditions []string, theoremContext string) (system, user string) {
	user = fmt.Sprintf(wrongConditionsTemplate, theoremContext, strings.Join(correctConditions, "\n"))
	return tutorSystemPrompt, user
}

// buildHintPrompt renders the next-step hint prompt.
func buildHintPrompt(theoremContext string, given []string, toProve, studentAttempt string) (system, user string) {
	user = fmt.Sprintf(hintTemplate, theoremContext, strings.Join(given, "\n"), toProve, studentAttempt)
	return hintSystemPrompt, user
}

// buildProblemPrompt renders the problem-generation prompt.
func buildProblemPrompt(proofType, difficulty string) (system, user string) {
	typePhrase, ok := proofTypeGuidance[proofType]
	if !ok {
		typePhrase = proofTypeGuidance["congruence"]
	}
	diffPhrase, ok := difficultyGuidance[difficulty]
	if !ok {
		diffPhrase = difficultyGuidance["medium"]
	}
	user = fmt.Sprintf(problemTemplate, typePhrase, diffPhrase)
	return tutorSystemPrompt, user
}
