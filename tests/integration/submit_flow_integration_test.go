//go:build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

func baseURL() string {
	if v := os.Getenv("WELLFORM_TEST_BASE_URL"); strings.TrimSpace(v) != "" {
		return strings.TrimRight(v, "/")
	}
	return "http://127.0.0.1:8080"
}

func submissionBody(email string) map[string]any {
	responses := map[string]any{}
	for i := 1; i <= 16; i++ {
		responses["q"+strconv.Itoa(i)] = "yes"
	}
	responses["q8"] = "no"
	return map[string]any{
		"personalDetails": map[string]any{
			"name":   "Integration Tester",
			"email":  email,
			"phone":  "+14155552671",
			"age":    34,
			"gender": "prefer-not-to-say",
		},
		"responses": responses,
	}
}

func TestSubmitFlowIntegration(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}
	base := baseURL()
	email := fmt.Sprintf("integration_%d@example.com", time.Now().UnixNano())

	var out struct {
		Success       bool   `json:"success"`
		Score         int    `json:"score"`
		Grade         string `json:"grade"`
		Description   string `json:"description"`
		SavedToSheets bool   `json:"savedToSheets"`
	}
	status := doPost(t, client, base+"/api/submit", submissionBody(email), &out)
	if status != http.StatusOK {
		t.Fatalf("submit status = %d", status)
	}
	if !out.Success || out.Score != 16 || out.Grade != "A" || out.Description == "" {
		t.Fatalf("unexpected submit response: %+v", out)
	}

	// Leaving a question unanswered must be rejected before anything is
	// forwarded to the sheet.
	body := submissionBody(email)
	delete(body["responses"].(map[string]any), "q16")
	var errOut struct {
		Error            string   `json:"error"`
		MissingQuestions []string `json:"missingQuestions"`
		Message          string   `json:"message"`
	}
	status = doPost(t, client, base+"/api/submit", body, &errOut)
	if status != http.StatusBadRequest {
		t.Fatalf("incomplete submit status = %d, want 400", status)
	}
	if len(errOut.MissingQuestions) != 1 || errOut.MissingQuestions[0] != "16" {
		t.Fatalf("missingQuestions = %v, want [16]", errOut.MissingQuestions)
	}
	if errOut.Message != "Please answer question: 16" {
		t.Fatalf("message = %q", errOut.Message)
	}
}

func doPost(t *testing.T, client *http.Client, url string, body any, out any) int {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("http post %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
	return resp.StatusCode
}
