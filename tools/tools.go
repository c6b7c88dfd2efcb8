// Package tools exposes the Speechlab dubbing pipeline as MCP tools:
// one callable per pipeline stage, each returning a human-readable text
// summary of the API response.
package tools

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/speechlab/speechlab-mcp/dubbing"
	"github.com/speechlab/speechlab-mcp/platform"
	"github.com/speechlab/speechlab-mcp/speechlab"
)

// API is the client surface the tools drive. It is implemented by
// *speechlab.Client and can be faked in tests.
type API interface {
	dubbing.WorkflowClient
	GetProjects(ctx context.Context, limit, offset int) (*speechlab.ProjectList, error)
}

var _ API = (*speechlab.Client)(nil)

// Handlers bundles the tool implementations around a client and the
// configured base path for relative file resolution.
type Handlers struct {
	client   API
	basePath string
}

// NewHandlers builds the tool handler set.
func NewHandlers(client API, basePath string) *Handlers {
	return &Handlers{client: client, basePath: basePath}
}

// Register adds every Speechlab tool to the MCP server.
func Register(s *server.MCPServer, client API, basePath string) {
	h := NewHandlers(client, basePath)

	s.AddTool(mcp.NewTool("create_project_and_dub",
		mcp.WithDescription("Create a new project in Speechlab and set it up for dubbing. Optionally uploads a source media file."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the project")),
		mcp.WithString("source_language", mcp.Required(), mcp.Description("Source language code (e.g., 'en' for English)")),
		mcp.WithString("target_language", mcp.Required(), mcp.Description("Target language code (e.g., 'es' for Spanish)")),
		mcp.WithString("source_file", mcp.Description("Path to the source media file for dubbing")),
	), h.CreateProjectAndDub)

	s.AddTool(mcp.NewTool("get_projects",
		mcp.WithDescription("Get a list of projects from Speechlab."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of projects to retrieve"), mcp.DefaultNumber(10)),
		mcp.WithNumber("offset", mcp.Description("Number of projects to skip"), mcp.DefaultNumber(0)),
	), h.GetProjects)

	s.AddTool(mcp.NewTool("get_project",
		mcp.WithDescription("Get a specific project by ID."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("ID of the project to retrieve")),
	), h.GetProject)

	s.AddTool(mcp.NewTool("upload_media",
		mcp.WithDescription("Upload a media file to an existing project."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("ID of the project to upload to")),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to the media file to upload")),
	), h.UploadMedia)

	s.AddTool(mcp.NewTool("start_dubbing",
		mcp.WithDescription("Start the dubbing process for a project."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("ID of the project to start dubbing")),
	), h.StartDubbing)

	s.AddTool(mcp.NewTool("check_dubbing_status",
		mcp.WithDescription("Check the status of a dubbing job for a project."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("ID of the project to check")),
	), h.CheckDubbingStatus)

	s.AddTool(mcp.NewTool("download_dubbing_result",
		mcp.WithDescription("Download a completed dubbing result."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("ID of the project to download the result for")),
		mcp.WithString("output_directory", mcp.Description("Directory to save the downloaded file. Defaults to the Desktop folder.")),
	), h.DownloadDubbingResult)

	s.AddTool(mcp.NewTool("generate_sharing_link",
		mcp.WithDescription("Generate a sharing link for a project that can be shared with others."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("ID of the project to generate a sharing link for")),
	), h.GenerateSharingLink)
}

// CreateProjectAndDub creates a project and, when a source file is
// given, validates and uploads it in the same call.
func (h *Handlers) CreateProjectAndDub(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sourceLanguage, err := req.RequireString("source_language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	targetLanguage, err := req.RequireString("target_language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sourceFile := req.GetString("source_file", "")

	// Validate the file before creating anything remotely.
	var filePath string
	if sourceFile != "" {
		filePath, err = platform.ResolveInputFile(sourceFile, h.basePath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	log.Printf("[speechlab] creating project '%s' (%s -> %s)", name, sourceLanguage, targetLanguage)
	project, err := h.client.CreateProjectAndDub(ctx, name, sourceLanguage, targetLanguage)
	if err != nil {
		return mcp.NewToolResultError("Error creating project: " + err.Error()), nil
	}

	if filePath != "" {
		if _, err := h.client.UploadMedia(ctx, project.ID, filePath); err != nil {
			return mcp.NewToolResultError("Error uploading media: " + err.Error()), nil
		}
		project.SourceFile = filePath
	}

	return mcp.NewToolResultText(formatProjectCreated(project)), nil
}

// GetProjects lists projects.
func (h *Handlers) GetProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)
	offset := req.GetInt("offset", 0)

	log.Printf("[speechlab] getting projects (limit %d, offset %d)", limit, offset)
	list, err := h.client.GetProjects(ctx, limit, offset)
	if err != nil {
		return mcp.NewToolResultError("Error getting projects: " + err.Error()), nil
	}
	return mcp.NewToolResultText(formatProjectList(list)), nil
}

// GetProject fetches one project's expanded details.
func (h *Handlers) GetProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Printf("[speechlab] getting project %s", projectID)
	detail, err := h.client.GetProject(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError("Error getting project: " + err.Error()), nil
	}
	return mcp.NewToolResultText(formatProjectDetail(detail)), nil
}

// UploadMedia uploads a local media file to an existing project.
func (h *Handlers) UploadMedia(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rawPath, err := req.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	filePath, err := platform.ResolveInputFile(rawPath, h.basePath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Printf("[speechlab] uploading %s to project %s", filePath, projectID)
	fileName, err := h.client.UploadMedia(ctx, projectID, filePath)
	if err != nil {
		return mcp.NewToolResultError("Error uploading media: " + err.Error()), nil
	}
	return mcp.NewToolResultText(formatUpload(projectID, fileName)), nil
}

// StartDubbing starts the dubbing process for a project.
func (h *Handlers) StartDubbing(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Printf("[speechlab] starting dubbing for project %s", projectID)
	result, err := h.client.StartDubbing(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError("Error starting dubbing: " + err.Error()), nil
	}
	return mcp.NewToolResultText(formatStartDubbing(projectID, result)), nil
}

// CheckDubbingStatus reports the dubbing job status for a project.
func (h *Handlers) CheckDubbingStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Printf("[speechlab] checking dubbing status for project %s", projectID)
	detail, err := h.client.GetProject(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError("Error checking dubbing status: " + err.Error()), nil
	}
	return mcp.NewToolResultText(formatDubbingStatus(projectID, detail)), nil
}

// DownloadDubbingResult downloads the dubbed output media of a project.
func (h *Handlers) DownloadDubbingResult(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	outputDir := req.GetString("output_directory", "")

	outputFile, err := dubbing.DownloadResult(ctx, h.client, projectID, outputDir, h.basePath)
	if err != nil {
		return mcp.NewToolResultError("Error downloading dubbing result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(formatDownload(outputFile)), nil
}

// GenerateSharingLink generates a sharing link for a project.
func (h *Handlers) GenerateSharingLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Printf("[speechlab] generating sharing link for project %s", projectID)
	link, err := h.client.GenerateSharingLink(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError("Error generating sharing link: " + err.Error()), nil
	}
	return mcp.NewToolResultText(formatSharingLink(projectID, link)), nil
}
