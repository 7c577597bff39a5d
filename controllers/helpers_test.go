package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vendor-vetting-api/services"

	"github.com/gin-gonic/gin"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, recorder
}

func TestRespondWorkflowErrorStatusMapping(t *testing.T) {
	cases := []struct {
		kind   services.ErrorKind
		status int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrTokenExpired, http.StatusGone},
		{services.ErrConcurrentModification, http.StatusConflict},
		{services.ErrInvalidState, http.StatusBadRequest},
		{services.ErrIncompleteAnswers, http.StatusBadRequest},
		{services.ErrMissingEvidence, http.StatusBadRequest},
		{services.ErrJustificationTooShort, http.StatusBadRequest},
		{services.ErrMissingConditions, http.StatusBadRequest},
		{services.ErrAlreadySubmitted, http.StatusBadRequest},
		{services.ErrValidation, http.StatusBadRequest},
	}

	for _, tc := range cases {
		c, recorder := testContext(t)
		respondWorkflowError(c, &services.WorkflowError{Kind: tc.kind, Message: "boom"})
		if recorder.Code != tc.status {
			t.Errorf("kind %s: got status %d, want %d", tc.kind, recorder.Code, tc.status)
		}
	}
}

func TestRespondWorkflowErrorCarriesMissingEvidence(t *testing.T) {
	c, recorder := testContext(t)
	respondWorkflowError(c, &services.WorkflowError{
		Kind:            services.ErrMissingEvidence,
		Message:         "Evidence or notes required",
		MissingEvidence: []string{"comp-1", "sec-2"},
	})

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", recorder.Code)
	}

	var body struct {
		Error           string   `json:"error"`
		Kind            string   `json:"kind"`
		MissingEvidence []string `json:"missing_evidence"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Kind != "missing_evidence" {
		t.Errorf("expected kind missing_evidence, got %q", body.Kind)
	}
	if len(body.MissingEvidence) != 2 || body.MissingEvidence[0] != "comp-1" || body.MissingEvidence[1] != "sec-2" {
		t.Errorf("expected offending question ids in response, got %v", body.MissingEvidence)
	}
}

func TestRespondWorkflowErrorUnknownErrorIs500(t *testing.T) {
	c, recorder := testContext(t)
	respondWorkflowError(c, errors.New("driver: bad connection"))

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500 for non-workflow error, got %d", recorder.Code)
	}
	if recorder.Body.String() == "" || recorder.Body.String() == "driver: bad connection" {
		t.Errorf("internal errors must not leak details, got %q", recorder.Body.String())
	}
}

func TestCurrentUserIDMissingClaims(t *testing.T) {
	c, recorder := testContext(t)
	if _, ok := currentUserID(c); ok {
		t.Fatal("expected missing userID to fail")
	}
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", recorder.Code)
	}
}

func TestCurrentUserIDFromContext(t *testing.T) {
	c, _ := testContext(t)
	c.Set("userID", "usr-reviewer-7")

	id, ok := currentUserID(c)
	if !ok {
		t.Fatal("expected userID lookup to succeed")
	}
	if id != "usr-reviewer-7" {
		t.Errorf("expected usr-reviewer-7, got %q", id)
	}
}
