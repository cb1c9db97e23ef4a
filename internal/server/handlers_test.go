package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/proofpal/internal/llm"
	"github.com/abhisek/proofpal/internal/problems"
	"github.com/abhisek/proofpal/internal/tutor"
)

const testProblems = `{
	"problems": [
		{
			"type": "congruence",
			"difficulty": "medium",
			"theorem_context": "三角形の合同条件（SAS）",
			"given": ["AB=DE", "BC=EF", "∠B=∠E"],
			"to_prove": "△ABC≡△DEF"
		}
	]
}`

func newTestServer(t *testing.T, responses ...llm.MockResponse) *httptest.Server {
	t.Helper()

	store, err := problems.Load([]byte(testProblems))
	require.NoError(t, err)

	svc := tutor.New(store, llm.NewMockProvider(responses...))
	staticFS := fstest.MapFS{
		"index.html": {Data: []byte("<html>proofpal</html>")},
	}

	srv := httptest.NewServer(New(svc, staticFS))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestGenerateProblem_Defaults(t *testing.T) {
	srv := newTestServer(t, llm.MockResponse{
		Content: json.RawMessage(`{"wrong_conditions": ["AC=DF", "∠A=∠E", "AB=EF"]}`),
	})

	// An empty body falls back to congruence/medium.
	resp := postJSON(t, srv.URL+"/api/generate-problem", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body tutor.ProblemResponse
	decodeInto(t, resp, &body)

	require.Equal(t, "三角形の合同条件（SAS）", body.TheoremContext)
	require.Len(t, body.Given, 3)
	require.Len(t, body.ConditionChoices, 6)
}

func TestGenerateProblem_LLMFailureStillServes(t *testing.T) {
	srv := newTestServer(t, llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})

	resp := postJSON(t, srv.URL+"/api/generate-problem", `{"proof_type": "congruence"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body tutor.ProblemResponse
	decodeInto(t, resp, &body)
	require.Len(t, body.ConditionChoices, 6)
}

func TestGenerateProblem_InvalidJSON(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/generate-problem", `{broken`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateProblem_EmptyStore(t *testing.T) {
	store, err := problems.Load([]byte(`{"problems": []}`))
	require.NoError(t, err)

	svc := tutor.New(store, llm.NewMockProvider())
	srv := httptest.NewServer(New(svc, fstest.MapFS{}))
	t.Cleanup(srv.Close)

	resp := postJSON(t, srv.URL+"/api/generate-problem", `{}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	decodeInto(t, resp, &body)
	require.Equal(t, "問題が見つかりません", body.Error)
}

func TestGradeConditions_Perfect(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/grade-conditions", `{
		"selected_conditions": ["AB=DE", "BC=EF", "∠B=∠E"],
		"condition_choices": [
			{"text": "AB=DE", "is_correct": true},
			{"text": "BC=EF", "is_correct": true},
			{"text": "∠B=∠E", "is_correct": true},
			{"text": "AC=DF", "is_correct": false}
		]
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		IsCorrect bool   `json:"is_correct"`
		Score     int    `json:"score"`
		Feedback  string `json:"feedback"`
	}
	decodeInto(t, resp, &body)

	require.True(t, body.IsCorrect)
	require.Equal(t, 100, body.Score)
	require.NotEmpty(t, body.Feedback)
}

func TestGradeConditions_EmptySelection(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/grade-conditions", `{
		"condition_choices": [{"text": "AB=DE", "is_correct": true}]
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		IsCorrect bool `json:"is_correct"`
		Score     int  `json:"score"`
	}
	decodeInto(t, resp, &body)

	require.False(t, body.IsCorrect)
	require.Equal(t, 0, body.Score)
}

func TestHint(t *testing.T) {
	srv := newTestServer(t, llm.MockResponse{Content: json.RawMessage(`{
		"next_hint": "∠B=∠Eが2辺に挟まれていることを確認しましょう。",
		"why": "SAS条件の角は2辺の間でなければならないからです。",
		"diagnosis": "辺の対応は正しく押さえられています。",
		"do_not_reveal": true
	}`)})

	resp := postJSON(t, srv.URL+"/api/hint", `{
		"theorem_context": "三角形の合同条件（SAS）",
		"given": ["AB=DE", "BC=EF", "∠B=∠E"],
		"to_prove": "△ABC≡△DEF",
		"student_attempt": "AB=DEとBC=EFまで書きました"
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body tutor.HintResult
	decodeInto(t, resp, &body)

	require.True(t, body.DoNotReveal)
	require.NotEqual(t, tutor.SafetyOverrideMessage, body.NextHint)
}

func TestHint_MissingFields(t *testing.T) {
	srv := newTestServer(t)

	// No student_attempt.
	resp := postJSON(t, srv.URL+"/api/hint", `{
		"theorem_context": "三角形の合同条件（SAS）",
		"given": ["AB=DE"],
		"to_prove": "△ABC≡△DEF"
	}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	decodeInto(t, resp, &body)
	require.Equal(t, "Missing required fields", body.Error)
}

func TestHint_StringFormGiven(t *testing.T) {
	srv := newTestServer(t, llm.MockResponse{Content: json.RawMessage(`{
		"next_hint": "h", "why": "w", "diagnosis": "d", "do_not_reveal": true
	}`)})

	resp := postJSON(t, srv.URL+"/api/hint", `{
		"theorem_context": "t",
		"given": "AB=DE、BC=EF",
		"to_prove": "p",
		"student_attempt": "a"
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHint_RedactsUnsafeReply(t *testing.T) {
	srv := newTestServer(t, llm.MockResponse{Content: json.RawMessage(`{
		"next_hint": "完全な証明はこうです…",
		"why": "w", "diagnosis": "d",
		"do_not_reveal": false
	}`)})

	resp := postJSON(t, srv.URL+"/api/hint", `{
		"theorem_context": "t", "given": ["g"], "to_prove": "p", "student_attempt": "a"
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body tutor.HintResult
	decodeInto(t, resp, &body)
	require.Equal(t, tutor.SafetyOverrideMessage, body.NextHint)
	require.True(t, body.DoNotReveal)
}

func TestHint_MalformedReply(t *testing.T) {
	srv := newTestServer(t, llm.MockResponse{Content: json.RawMessage(`{"why": "only"}`)})

	resp := postJSON(t, srv.URL+"/api/hint", `{
		"theorem_context": "t", "given": ["g"], "to_prove": "p", "student_attempt": "a"
	}`)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	decodeInto(t, resp, &body)
	require.Equal(t, "AIの応答をパースできませんでした", body.Error)
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStaticAssets(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	missing, err := http.Get(srv.URL + "/no-such-file.js")
	require.NoError(t, err)
	defer missing.Body.Close()
	require.Equal(t, http.StatusNotFound, missing.StatusCode)
}
