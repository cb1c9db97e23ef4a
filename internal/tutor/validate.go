package tutor

import (
	"encoding/json"
	"fmt"
)

// ErrMalformedReply indicates the model returned non-JSON or JSON missing
// required keys. Distinct from llm transport errors: the call succeeded
// but the payload is unusable.
type ErrMalformedReply struct {
	Err error
}

func (e *ErrMalformedReply) Error() string {
	return fmt.Sprintf("malformed LLM reply: %v", e.Err)
}

func (e *ErrMalformedReply) Unwrap() error { return e.Err }

// SafetyOverrideMessage replaces the hint text when the model fails to
// assert do_not_reveal. Redaction, not refusal: the product rule is
// "never leak a full solution", which withholding serves better than a
// hard error would.
const SafetyOverrideMessage = "安全機構によりヒントは保留されました。AIの応答を確認してください。"

// HintResult is the validated hint reply.
type HintResult struct {
	NextHint    string `json:"next_hint"`
	Why         string `json:"why"`
	Diagnosis   string `json:"diagnosis"`
	DoNotReveal bool   `json:"do_not_reveal"`
}

// parseHintReply parses and validates a raw hint reply. Unparsable JSON or
// a missing required key is a hard ErrMalformedReply. An absent or false
// do_not_reveal flag is not an error: the flag is forced to true and the
// hint text is overwritten with SafetyOverrideMessage.
func parseHintReply(raw json.RawMessage) (HintResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return HintResult{}, &ErrMalformedReply{Err: err}
	}

	for _, key := range []string{"next_hint", "why", "diagnosis"} {
		if _, ok := fields[key]; !ok {
			return HintResult{}, &ErrMalformedReply{Err: fmt.Errorf("missing required key %q", key)}
		}
	}

	var result HintResult
	unmarshalString(fields["next_hint"], &result.NextHint)
	unmarshalString(fields["why"], &result.Why)
	unmarshalString(fields["diagnosis"], &result.Diagnosis)

	// Anything other than a literal true counts as untrusted: absent,
	// false, or a non-boolean value.
	var flag bool
	if raw, ok := fields["do_not_reveal"]; ok {
		_ = json.Unmarshal(raw, &flag)
	}
	result.DoNotReveal = true
	if !flag {
		result.NextHint = SafetyOverrideMessage
	}

	return result, nil
}

func unmarshalString(raw json.RawMessage, dst *string) {
	_ = json.Unmarshal(raw, dst)
}

// parseWrongConditions parses the distractor reply and returns the list.
func parseWrongConditions(raw json.RawMessage) ([]string, error) {
	var reply struct {
		WrongConditions []string `json:"wrong_conditions"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, &ErrMalformedReply{Err: err}
	}
	if len(reply.WrongConditions) == 0 {
		return nil, &ErrMalformedReply{Err: fmt.Errorf("missing required key %q", "wrong_conditions")}
	}
	return reply.WrongConditions, nil
}
