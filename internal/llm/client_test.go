package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(url string) *Client {
	return NewClient(url, "test-model", 0.7, 512, &http.Client{}, nil)
}

func TestCheckConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q, want /api/tags", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if !newTestClient(srv.URL).CheckConnection(context.Background()) {
		t.Error("expected true for 200 response")
	}
}

func TestCheckConnection_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if newTestClient(srv.URL).CheckConnection(context.Background()) {
		t.Error("expected false for 500 response")
	}
}

func TestCheckConnection_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	if newTestClient(srv.URL).CheckConnection(context.Background()) {
		t.Error("expected false when backend is down")
	}
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"models":[{"name":"mistral"},{"name":"llama3"}]}`))
	}))
	defer srv.Close()

	models := newTestClient(srv.URL).ListModels(context.Background())
	if len(models) != 2 || models[0] != "mistral" || models[1] != "llama3" {
		t.Errorf("ListModels = %v", models)
	}
}

func TestListModels_FailureYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	if models := newTestClient(srv.URL).ListModels(context.Background()); len(models) != 0 {
		t.Errorf("ListModels = %v, want empty", models)
	}
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["model"] != "test-model" {
			t.Errorf("model = %v", req["model"])
		}
		if req["stream"] != false {
			t.Errorf("stream = %v, want false", req["stream"])
		}
		if req["system"] != "be helpful" {
			t.Errorf("system = %v", req["system"])
		}
		opts := req["options"].(map[string]any)
		if opts["num_predict"].(float64) != 512 {
			t.Errorf("num_predict = %v", opts["num_predict"])
		}
		w.Write([]byte(`{"response":"generated text","done":true}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Generate(context.Background(), "the prompt", "be helpful")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "generated text" {
		t.Errorf("Generate = %q", got)
	}
}

func TestGenerate_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Generate(context.Background(), "p", ""); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"message":{"role":"assistant","content":"hi there"}}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Chat(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if got != "hi there" {
		t.Errorf("Chat = %q", got)
	}
}

func TestStream_YieldsFragmentsAndSkipsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		if req["stream"] != true {
			t.Errorf("stream = %v, want true", req["stream"])
		}
		w.Write([]byte(`{"response":"Hello","done":false}` + "\n"))
		w.Write([]byte(`this line is not json` + "\n"))
		w.Write([]byte(`{"response":" world","done":false}` + "\n"))
		w.Write([]byte(`{"response":"","done":true}` + "\n"))
	}))
	defer srv.Close()

	var chunks []string
	for chunk := range newTestClient(srv.URL).Stream(context.Background(), "p", "") {
		chunks = append(chunks, chunk)
	}

	if len(chunks) != 2 || chunks[0] != "Hello" || chunks[1] != " world" {
		t.Errorf("chunks = %v, want [Hello,  world]", chunks)
	}
}

func TestStream_EarlyBreak(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 100; i++ {
			w.Write([]byte(`{"response":"x","done":false}` + "\n"))
		}
	}))
	defer srv.Close()

	count := 0
	for range newTestClient(srv.URL).Stream(context.Background(), "p", "") {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("consumed %d chunks, want 3", count)
	}
}

func TestStream_BackendDownEndsSequence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	count := 0
	for range newTestClient(srv.URL).Stream(context.Background(), "p", "") {
		count++
	}
	if count != 0 {
		t.Errorf("expected empty sequence, got %d chunks", count)
	}
}

func TestWithModel(t *testing.T) {
	base := newTestClient("http://localhost:11434")
	derived := base.WithModel("llama3")
	if base.Model() != "test-model" {
		t.Errorf("base model changed to %q", base.Model())
	}
	if derived.Model() != "llama3" {
		t.Errorf("derived model = %q", derived.Model())
	}
}
