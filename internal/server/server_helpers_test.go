package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func saveQuestion(t *testing.T, ts *httptest.Server, id, text string, seconds int) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/questions", map[string]any{
		"question_id":      id,
		"text":             text,
		"duration_seconds": seconds,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func joinQuestion(t *testing.T, ts *httptest.Server, id, nickname string) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/questions/"+id+"/join", map[string]string{
		"nickname": nickname,
	})
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func submitAnswer(t *testing.T, ts *httptest.Server, id, nickname, answer string) *http.Response {
	t.Helper()
	return doRequest(t, ts, http.MethodPost, "/api/questions/"+id+"/answers", map[string]string{
		"nickname": nickname,
		"answer":   answer,
	})
}

func fetchSession(t *testing.T, ts *httptest.Server, id, nickname string) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodGet, "/api/questions/"+id+"/sessions/"+url.PathEscape(nickname), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func submitDataPoint(t *testing.T, ts *httptest.Server, nickname string, x, y float64) *http.Response {
	t.Helper()
	return doRequest(t, ts, http.MethodPost, "/api/datapoints", map[string]any{
		"nickname": nickname,
		"x":        x,
		"y":        y,
	})
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func expectStatus(t *testing.T, resp *http.Response, status int) {
	t.Helper()
	if resp.StatusCode != status {
		t.Fatalf("expected status %d, got %d", status, resp.StatusCode)
	}
}

func expectKind(t *testing.T, resp *http.Response, status int, kind string) {
	t.Helper()
	expectStatus(t, resp, status)
	body := decodeBody(t, resp)
	if body["kind"] != kind {
		t.Fatalf("expected kind %q, got %#v (error %v)", kind, body["kind"], body["error"])
	}
}
