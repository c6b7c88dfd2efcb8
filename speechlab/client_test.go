package speechlab

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/speechlab/speechlab-mcp/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.Config{APIKey: "test-key", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(&config.Config{})
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}

func TestCreateProjectAndDub_MapsTargetLanguage(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	var gotAuth, gotUserAgent string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":             "proj-123",
			"name":           gotBody["name"],
			"status":         "CREATED",
			"sourceLanguage": gotBody["sourceLanguage"],
			"targetLanguage": gotBody["targetLanguage"],
			"createdAt":      "2024-01-01T00:00:00Z",
			"updatedAt":      "2024-01-01T00:00:00Z",
		})
	}))

	name := gofakeit.ProductName()
	project, err := client.CreateProjectAndDub(testContext(t), name, "en", "es")
	if err != nil {
		t.Fatalf("CreateProjectAndDub returned error: %v", err)
	}

	if gotPath != "/v1/projects/createProjectAndDub" {
		t.Errorf("path = %q, expected /v1/projects/createProjectAndDub", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, expected bearer token", gotAuth)
	}
	if gotUserAgent != "Speechlab-MCP/"+Version {
		t.Errorf("User-Agent = %q, expected Speechlab-MCP/%s", gotUserAgent, Version)
	}

	// The 'es' short code must be rewritten to its region-qualified
	// variant in both the target language and the dub accent.
	if gotBody["targetLanguage"] != "es_la" {
		t.Errorf("targetLanguage sent = %v, expected es_la", gotBody["targetLanguage"])
	}
	if gotBody["dubAccent"] != "es_la" {
		t.Errorf("dubAccent sent = %v, expected es_la", gotBody["dubAccent"])
	}
	if gotBody["voiceMatchingMode"] != "source" {
		t.Errorf("voiceMatchingMode sent = %v, expected source", gotBody["voiceMatchingMode"])
	}
	if gotBody["unitType"] != "whiteGlove" {
		t.Errorf("unitType sent = %v, expected whiteGlove", gotBody["unitType"])
	}
	thirdPartyID, _ := gotBody["thirdPartyID"].(string)
	if !strings.HasPrefix(thirdPartyID, "mcp_") {
		t.Errorf("thirdPartyID = %q, expected 'mcp_' prefix", thirdPartyID)
	}

	// The record reports the originally requested code, not the mapped
	// one.
	if project.TargetLanguage != "es" {
		t.Errorf("TargetLanguage = %q, expected es", project.TargetLanguage)
	}
	if project.ID != "proj-123" {
		t.Errorf("ID = %q, expected proj-123", project.ID)
	}
	if project.Status != StatusCreated {
		t.Errorf("Status = %s, expected CREATED", project.Status)
	}
}

func TestCreateProjectAndDub_PassesThroughUnmappedLanguage(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "proj-1", "name": "x"})
	}))

	if _, err := client.CreateProjectAndDub(testContext(t), "x", "en", "fr"); err != nil {
		t.Fatalf("CreateProjectAndDub returned error: %v", err)
	}
	if gotBody["targetLanguage"] != "fr" {
		t.Errorf("targetLanguage sent = %v, expected fr", gotBody["targetLanguage"])
	}
}

func TestCreateProjectAndDub_ValidatesArguments(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for invalid arguments")
	}))

	if _, err := client.CreateProjectAndDub(testContext(t), "", "en", "es"); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := client.CreateProjectAndDub(testContext(t), "x", "", "es"); err == nil {
		t.Error("expected error for empty source language")
	}
	if _, err := client.CreateProjectAndDub(testContext(t), "x", "en", ""); err == nil {
		t.Error("expected error for empty target language")
	}
}

func TestCreateProjectAndDub_APIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"bad key"}`)
	}))

	_, err := client.CreateProjectAndDub(testContext(t), "x", "en", "es")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, expected 401", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Response, "bad key") {
		t.Errorf("Response = %q, expected raw body", apiErr.Response)
	}
}

func TestUploadMedia_SendsMultipartFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("fake video bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	var gotPath, gotFileName, gotPartType string
	var gotContent []byte

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			t.Errorf("Content-Type = %q, expected multipart/form-data", r.Header.Get("Content-Type"))
		}
		reader := multipart.NewReader(r.Body, params["boundary"])
		part, err := reader.NextPart()
		if err != nil {
			t.Fatalf("reading multipart: %v", err)
		}
		if part.FormName() != "file" {
			t.Errorf("form field = %q, expected 'file'", part.FormName())
		}
		gotFileName = part.FileName()
		gotPartType = part.Header.Get("Content-Type")
		gotContent, _ = io.ReadAll(part)

		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))

	fileName, err := client.UploadMedia(testContext(t), "proj-9", path)
	if err != nil {
		t.Fatalf("UploadMedia returned error: %v", err)
	}

	if gotPath != "/v1/projects/proj-9/upload" {
		t.Errorf("path = %q, expected /v1/projects/proj-9/upload", gotPath)
	}
	if fileName != "clip.mp4" || gotFileName != "clip.mp4" {
		t.Errorf("file name = %q/%q, expected clip.mp4", fileName, gotFileName)
	}
	if gotPartType != "video/mp4" {
		t.Errorf("part Content-Type = %q, expected video/mp4", gotPartType)
	}
	if string(gotContent) != "fake video bytes" {
		t.Errorf("uploaded content = %q, expected file bytes", gotContent)
	}
}

func TestGetProject_RequestsExpandedDetail(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/projects/proj-7" {
			t.Errorf("path = %q, expected /v1/projects/proj-7", r.URL.Path)
		}
		if r.URL.Query().Get("expand") != "true" {
			t.Errorf("expand = %q, expected true", r.URL.Query().Get("expand"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "proj-7",
			"job": map[string]any{
				"name":   "Demo",
				"status": "PROCESSING",
			},
		})
	}))

	detail, err := client.GetProject(testContext(t), "proj-7")
	if err != nil {
		t.Fatalf("GetProject returned error: %v", err)
	}
	if detail.ID != "proj-7" || detail.Status() != StatusProcessing {
		t.Errorf("detail = %+v, expected proj-7 PROCESSING", detail)
	}
}

func TestGetProjects_EncodesPagination(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("limit") != "5" || q.Get("offset") != "10" || q.Get("expand") != "true" {
			t.Errorf("query = %v, expected limit=5 offset=10 expand=true", q)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"id": "a", "job": map[string]any{"name": "A", "status": "COMPLETE"}},
			},
			"total": 1,
		})
	}))

	list, err := client.GetProjects(testContext(t), 5, 10)
	if err != nil {
		t.Fatalf("GetProjects returned error: %v", err)
	}
	if len(list.Results) != 1 || list.Results[0].ID != "a" {
		t.Errorf("results = %+v, expected one project 'a'", list.Results)
	}
}

func TestGenerateSharingLink(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/collaborations/generateSharingLink" {
			t.Errorf("path = %q, expected sharing-link endpoint", r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["projectId"] != "proj-3" {
			t.Errorf("projectId = %v, expected proj-3", body["projectId"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"link": "https://share.example/abc"})
	}))

	link, err := client.GenerateSharingLink(testContext(t), "proj-3")
	if err != nil {
		t.Fatalf("GenerateSharingLink returned error: %v", err)
	}
	if link != "https://share.example/abc" {
		t.Errorf("link = %q, expected https://share.example/abc", link)
	}
}

func TestGenerateSharingLink_MissingLink(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))

	_, err := client.GenerateSharingLink(testContext(t), "proj-3")
	var dataErr *DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected *DataError, got %T (%v)", err, err)
	}
}

func TestGetDownloadURL_MissingURL(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/projects/proj-4/download" {
			t.Errorf("path = %q, expected download endpoint", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))

	_, err := client.GetDownloadURL(testContext(t), "proj-4")
	var dataErr *DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected *DataError, got %T (%v)", err, err)
	}
	if !strings.Contains(err.Error(), "may not be complete") {
		t.Errorf("error = %q, expected completion hint", err)
	}
}

func TestDownload_BuffersBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("presigned download must not carry API credentials")
		}
		_, _ = w.Write([]byte("dubbed media"))
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, http.NotFoundHandler())
	data, err := client.Download(testContext(t), server.URL+"/media/out.mp4")
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if string(data) != "dubbed media" {
		t.Errorf("data = %q, expected dubbed media", data)
	}
}
