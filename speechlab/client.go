// Package speechlab provides a typed client for the Speechlab dubbing
// API.
//
// The client wraps the remote HTTP endpoints for project creation, media
// upload, dub job start, status retrieval, sharing-link generation and
// result download. Each operation performs exactly one authenticated
// network call and returns the parsed response or a typed error; retry
// policy lives entirely in the callers (see the dubbing package).
//
// Example usage:
//
//	cfg, err := config.FromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := speechlab.NewClient(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	project, err := client.CreateProjectAndDub(ctx, "My Video", "en", "es")
package speechlab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/speechlab/speechlab-mcp/config"
	"github.com/speechlab/speechlab-mcp/platform"
)

// Version is the package version, embedded in the User-Agent header of
// every authenticated call.
const Version = "0.1.0"

const (
	requestTimeout  = 30 * time.Second
	downloadTimeout = 10 * time.Minute
	defaultLimit    = 10
)

// Client talks to the Speechlab HTTP API.
//
// A Client is stateless apart from the credentials and base URL captured
// at construction and is safe for concurrent use.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	http      *http.Client

	// download fetches presigned URLs; it carries no credentials and a
	// long timeout suited to media payloads.
	download *http.Client
}

// NewClient builds a Client from the given configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, &ValidationError{Field: "APIKey", Message: "API key is required"}
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, &ValidationError{Field: "BaseURL", Message: fmt.Sprintf("invalid base URL %q: %v", cfg.BaseURL, err)}
	}

	return &Client{
		baseURL:   baseURL,
		apiKey:    cfg.APIKey,
		userAgent: "Speechlab-MCP/" + Version,
		http:      &http.Client{Timeout: requestTimeout},
		download:  &http.Client{Timeout: downloadTimeout},
	}, nil
}

// CreateProjectAndDub creates a new project set up for dubbing.
//
// The requested target language passes through the fixed API mapping
// table before being sent (both as targetLanguage and dubAccent); the
// returned record reports the originally requested code.
func (c *Client) CreateProjectAndDub(ctx context.Context, name, sourceLanguage, targetLanguage string) (*DubProject, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "project name is required"}
	}
	if sourceLanguage == "" {
		return nil, &ValidationError{Field: "sourceLanguage", Message: "source language is required"}
	}
	if targetLanguage == "" {
		return nil, &ValidationError{Field: "targetLanguage", Message: "target language is required"}
	}

	apiTarget := apiTargetLanguage(targetLanguage)
	payload := map[string]any{
		"name":              name,
		"sourceLanguage":    sourceLanguage,
		"targetLanguage":    apiTarget,
		"dubAccent":         apiTarget,
		"voiceMatchingMode": "source",
		"unitType":          "whiteGlove",
		"thirdPartyID":      "mcp_" + uuid.NewString(),
	}

	var created createResponse
	if err := c.doJSON(ctx, http.MethodPost, "/projects/createProjectAndDub", nil, payload, &created, "create_project"); err != nil {
		return nil, err
	}

	sourceLang := created.SourceLanguage
	if sourceLang == "" {
		sourceLang = sourceLanguage
	}
	return &DubProject{
		Project: Project{
			ID:        created.ID,
			Name:      created.Name,
			Status:    ParseStatus(created.Status),
			CreatedAt: created.CreatedAt,
			UpdatedAt: created.UpdatedAt,
			Metadata:  created.Metadata,
		},
		SourceLanguage: sourceLang,
		TargetLanguage: targetLanguage,
	}, nil
}

// UploadMedia uploads a local media file to a project via multipart form.
// It returns the uploaded file's base name.
func (c *Client) UploadMedia(ctx context.Context, projectID, filePath string) (string, error) {
	if projectID == "" {
		return "", &ValidationError{Field: "projectID", Message: "project ID is required"}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", &FetchError{Step: "open_file", Message: "failed to open media file", Err: err}
	}
	defer file.Close()

	fileName := filepath.Base(filePath)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	header.Set("Content-Type", platform.ContentTypeFor(filePath))
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", &FetchError{Step: "create_form", Message: "failed to create form file", Err: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", &FetchError{Step: "copy_file", Message: "failed to copy file content", Err: err}
	}
	if err := writer.Close(); err != nil {
		return "", &FetchError{Step: "close_writer", Message: "failed to close multipart writer", Err: err}
	}

	endpoint := c.baseURL + "/projects/" + url.PathEscape(projectID) + "/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", &FetchError{Step: "create_request", Message: "failed to create HTTP request", Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setAuthHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &FetchError{Step: "upload_media", Message: "HTTP request failed", Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}
	// Drain the body so the connection can be reused; the upload
	// response carries nothing the caller needs.
	_, _ = io.Copy(io.Discard, resp.Body)
	return fileName, nil
}

// StartDubbing starts the dubbing process for a project.
func (c *Client) StartDubbing(ctx context.Context, projectID string) (*StartDubbingResult, error) {
	if projectID == "" {
		return nil, &ValidationError{Field: "projectID", Message: "project ID is required"}
	}
	var result StartDubbingResult
	path := "/projects/" + url.PathEscape(projectID) + "/dub"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, nil, &result, "start_dubbing"); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetProject fetches the expanded detail of a single project, including
// its job status, translations, dubs and media files.
func (c *Client) GetProject(ctx context.Context, projectID string) (*ProjectDetail, error) {
	if projectID == "" {
		return nil, &ValidationError{Field: "projectID", Message: "project ID is required"}
	}
	query := url.Values{}
	query.Set("expand", "true")

	var detail ProjectDetail
	path := "/projects/" + url.PathEscape(projectID)
	if err := c.doJSON(ctx, http.MethodGet, path, query, nil, &detail, "get_project"); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetProjects fetches a page of projects. A non-positive limit falls
// back to the API default page size.
func (c *Client) GetProjects(ctx context.Context, limit, offset int) (*ProjectList, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	query.Set("expand", "true")

	var list ProjectList
	if err := c.doJSON(ctx, http.MethodGet, "/projects", query, nil, &list, "get_projects"); err != nil {
		return nil, err
	}
	return &list, nil
}

// GenerateSharingLink creates a sharing link for a project that can be
// shared with others.
func (c *Client) GenerateSharingLink(ctx context.Context, projectID string) (string, error) {
	if projectID == "" {
		return "", &ValidationError{Field: "projectID", Message: "project ID is required"}
	}
	payload := map[string]any{"projectId": projectID}

	var linkData map[string]any
	if err := c.doJSON(ctx, http.MethodPost, "/collaborations/generateSharingLink", nil, payload, &linkData, "generate_sharing_link"); err != nil {
		return "", err
	}
	link, _ := linkData["link"].(string)
	if link == "" {
		return "", &DataError{Message: "no sharing link was returned in the response"}
	}
	return link, nil
}

// GetDownloadURL asks the dedicated download endpoint for the project's
// result URL. Used as a fallback when the expanded project detail does
// not carry a presigned output media URL.
func (c *Client) GetDownloadURL(ctx context.Context, projectID string) (string, error) {
	if projectID == "" {
		return "", &ValidationError{Field: "projectID", Message: "project ID is required"}
	}
	var urlData map[string]any
	path := "/projects/" + url.PathEscape(projectID) + "/download"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &urlData, "get_download_url"); err != nil {
		return "", err
	}
	downloadURL, _ := urlData["url"].(string)
	if downloadURL == "" {
		return "", &DataError{Message: "no download URL available; the dubbing may not be complete"}
	}
	return downloadURL, nil
}

// Download fetches a presigned URL and returns the fully buffered body.
// Presigned URLs carry their own authentication, so no API headers are
// attached.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{Step: "create_request", Message: "failed to create download request", Err: err}
	}
	resp, err := c.download.Do(req)
	if err != nil {
		return nil, &FetchError{Step: "download", Message: "HTTP request failed", Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Step: "download", Message: "failed to read download body", Err: err}
	}
	return data, nil
}

// doJSON performs one authenticated JSON request and decodes the
// response into dest when dest is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload, dest any, step string) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return &FetchError{Step: step, Message: "failed to marshal request body", Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &FetchError{Step: step, Message: "failed to create HTTP request", Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuthHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Step: step, Message: "HTTP request failed", Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &FetchError{Step: step, Message: "failed to parse JSON response", Err: err}
	}
	return nil
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
}

// checkStatus converts a non-2xx response into an *APIError carrying the
// status code and raw body.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Response: fmt.Sprintf("failed to read body: %v", err)}
	}
	return &APIError{StatusCode: resp.StatusCode, Response: string(data)}
}
