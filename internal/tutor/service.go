// Package tutor orchestrates the proof-practice flows: picking problems,
// generating distractor conditions, and producing next-step hints.
package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/abhisek/proofpal/internal/grading"
	"github.com/abhisek/proofpal/internal/llm"
	"github.com/abhisek/proofpal/internal/problems"
)

// Generation parameters. Fixed configuration, not runtime-tunable.
const (
	wrongConditionsMaxTokens = 256
	hintMaxTokens            = 512
	problemMaxTokens         = 512
	generateTemperature      = 0.7
)

// fallbackWrongConditions is served when distractor generation fails.
// A degraded choice set beats failing the whole problem request.
var fallbackWrongConditions = []string{
	"条件が不足している",
	"与えられた情報が矛盾している",
	"別の条件が必要である",
}

// Service wires the problem store and the LLM provider together.
type Service struct {
	store    *problems.Store
	provider llm.Provider
}

// New creates a Service.
func New(store *problems.Store, provider llm.Provider) *Service {
	return &Service{store: store, provider: provider}
}

// ProblemResponse is a selected problem plus its shuffled condition choices.
type ProblemResponse struct {
	TheoremContext    string                    `json:"theorem_context"`
	FigureDescription string                    `json:"figure_description,omitempty"`
	Given             []string                  `json:"given"`
	ToProve           string                    `json:"to_prove"`
	Condition         string                    `json:"condition,omitempty"`
	ConditionChoices  []grading.ConditionChoice `json:"condition_choices"`
}

// HintInput carries the problem state and the student's partial proof.
type HintInput struct {
	TheoremContext string   `json:"theorem_context"`
	Given          []string `json:"given"`
	ToProve        string   `json:"to_prove"`
	StudentAttempt string   `json:"student_attempt"`
}

// GeneratedProblem is an LLM-authored problem.
type GeneratedProblem struct {
	TheoremContext string   `json:"theorem_context"`
	Given          []string `json:"given"`
	ToProve        string   `json:"to_prove"`
}

// GenerateProblem picks a problem from the store and builds its choice
// set: the correct given conditions mixed with LLM-generated distractors,
// shuffled. A distractor-generation failure falls back to a fixed trio
// rather than failing the request.
func (s *Service) GenerateProblem(ctx context.Context, proofType, difficulty string) (*ProblemResponse, error) {
	p, err := s.store.Query(proofType, difficulty)
	if err != nil {
		return nil, err
	}

	correct := []string(p.Given)

	wrong, err := s.generateWrongConditions(ctx, correct, p.TheoremContext)
	if err != nil {
		log.Printf("distractor generation failed, using fallback: %v", err)
		wrong = fallbackWrongConditions
	}

	correctSet := make(map[string]bool, len(correct))
	for _, c := range correct {
		correctSet[c] = true
	}

	all := make([]string, 0, len(correct)+len(wrong))
	all = append(all, correct...)
	all = append(all, wrong...)
	rand.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})

	choices := make([]grading.ConditionChoice, len(all))
	for i, text := range all {
		choices[i] = grading.ConditionChoice{Text: text, IsCorrect: correctSet[text]}
	}

	return &ProblemResponse{
		TheoremContext:    p.TheoremContext,
		FigureDescription: p.FigureDescription,
		Given:             correct,
		ToProve:           p.ToProve,
		Condition:         p.Condition,
		ConditionChoices:  choices,
	}, nil
}

// generateWrongConditions asks the model for exactly 3 distractors.
func (s *Service) generateWrongConditions(ctx context.Context, correct []string, theoremContext string) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "distractor-gen")
	system, user := buildWrongConditionsPrompt(correct, theoremContext)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		Schema:      WrongConditionsSchema,
		MaxTokens:   wrongConditionsMaxTokens,
		Temperature: generateTemperature,
	})
	if err != nil {
		return nil, err
	}

	return parseWrongConditions(resp.Content)
}

// Hint returns the single next proof step for the student's attempt.
// The reply passes through the safety firewall before it is returned.
func (s *Service) Hint(ctx context.Context, in HintInput) (HintResult, error) {
	ctx = llm.WithPurpose(ctx, "hint")
	system, user := buildHintPrompt(in.TheoremContext, in.Given, in.ToProve, in.StudentAttempt)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		Schema:      HintSchema,
		MaxTokens:   hintMaxTokens,
		Temperature: generateTemperature,
	})
	if err != nil {
		return HintResult{}, err
	}

	return parseHintReply(resp.Content)
}

// GenerateNewProblem asks the model to author a fresh problem instead of
// drawing from the store. Used by the CLI generator.
func (s *Service) GenerateNewProblem(ctx context.Context, proofType, difficulty string) (*GeneratedProblem, error) {
	ctx = llm.WithPurpose(ctx, "problem-gen")
	system, user := buildProblemPrompt(proofType, difficulty)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		Schema:      GeneratedProblemSchema,
		MaxTokens:   problemMaxTokens,
		Temperature: generateTemperature,
	})
	if err != nil {
		return nil, err
	}

	var p GeneratedProblem
	if err := json.Unmarshal(resp.Content, &p); err != nil {
		return nil, &ErrMalformedReply{Err: err}
	}
	if p.TheoremContext == "" || len(p.Given) == 0 || p.ToProve == "" {
		return nil, &ErrMalformedReply{Err: fmt.Errorf("generated problem has empty fields")}
	}

	return &p, nil
}
