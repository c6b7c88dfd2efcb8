package dubbing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/speechlab/speechlab-mcp/platform"
	"github.com/speechlab/speechlab-mcp/speechlab"
)

// WorkflowClient is the slice of the speechlab client the workflow
// drives. It is implemented by *speechlab.Client.
type WorkflowClient interface {
	ResultClient
	CreateProjectAndDub(ctx context.Context, name, sourceLanguage, targetLanguage string) (*speechlab.DubProject, error)
	UploadMedia(ctx context.Context, projectID, filePath string) (string, error)
	StartDubbing(ctx context.Context, projectID string) (*speechlab.StartDubbingResult, error)
	GenerateSharingLink(ctx context.Context, projectID string) (string, error)
}

// Ensure the real client satisfies the workflow surface at compile time.
var _ WorkflowClient = (*speechlab.Client)(nil)

// Terminal workflow errors surfaced through StageError. Callers must be
// able to tell a failed job from an exhausted poll budget: a timed-out
// job may still complete later, a failed one will not.
var (
	// ErrDubbingFailed means the remote job itself reported FAILED.
	ErrDubbingFailed = errors.New("dubbing job reported failure")

	// ErrPollTimeout means the poll attempt budget was exhausted without
	// a terminal status.
	ErrPollTimeout = errors.New("polling attempt budget exhausted without completion")
)

// StageError reports which pipeline stage failed and why. Stages run
// exactly once; a failure short-circuits the remaining stages.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("workflow stage '%s' failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// WorkflowParams configures one end-to-end dubbing run.
type WorkflowParams struct {
	// FilePath is the local media file to dub. Relative paths resolve
	// against BasePath.
	FilePath string

	// Name is the display name of the created project.
	Name string

	// SourceLanguage and TargetLanguage are language codes, e.g. "en"
	// and "es".
	SourceLanguage string
	TargetLanguage string

	// OutputDir is where the dubbed result is written. Empty selects
	// the platform default (the user's Desktop).
	OutputDir string

	// BasePath resolves relative input/output paths. Usually the
	// configured SPEECHLAB_MCP_BASE_PATH.
	BasePath string

	// MaxAttempts and Delay tune the completion poll. Zero values keep
	// the poller defaults.
	MaxAttempts int
	Delay       time.Duration

	// Observer, when set, is invoked on every successful poll attempt.
	Observer Observer
}

// WorkflowResult is the aggregate outcome of a workflow run. On a stage
// failure the fields populated so far (notably ProjectID) are still
// filled in so callers can follow up on the remote project.
type WorkflowResult struct {
	ProjectID   string
	Outcome     Outcome
	Status      speechlab.Status
	SharingLink string
	OutputFile  string
}

// RunWorkflow executes the fixed dubbing pipeline: validate the input
// file, create the project, upload the media, start dubbing, poll for
// completion, then generate a sharing link and download the output.
//
// Any stage failure returns the partial result together with a
// *StageError naming the stage; no stage is retried (polling carries its
// own internal attempt budget).
func RunWorkflow(ctx context.Context, client WorkflowClient, params WorkflowParams) (*WorkflowResult, error) {
	result := &WorkflowResult{Status: speechlab.StatusUnknown}

	filePath, err := platform.ResolveInputFile(params.FilePath, params.BasePath)
	if err != nil {
		return result, &StageError{Stage: "validate_input", Err: err}
	}

	log.Printf("[speechlab] workflow: creating project '%s' (%s -> %s)",
		params.Name, params.SourceLanguage, params.TargetLanguage)
	project, err := client.CreateProjectAndDub(ctx, params.Name, params.SourceLanguage, params.TargetLanguage)
	if err != nil {
		return result, &StageError{Stage: "create_project", Err: err}
	}
	result.ProjectID = project.ID
	result.Status = project.Status

	log.Printf("[speechlab] workflow: uploading %s to project %s", filePath, project.ID)
	if _, err := client.UploadMedia(ctx, project.ID, filePath); err != nil {
		return result, &StageError{Stage: "upload_media", Err: err}
	}

	log.Printf("[speechlab] workflow: starting dubbing for project %s", project.ID)
	if _, err := client.StartDubbing(ctx, project.ID); err != nil {
		return result, &StageError{Stage: "start_dubbing", Err: err}
	}

	poller := NewPoller(client,
		WithMaxAttempts(params.MaxAttempts),
		WithDelay(params.Delay),
		WithObserver(params.Observer),
	)
	poll, err := poller.Wait(ctx, project.ID)
	if err != nil {
		return result, &StageError{Stage: "poll_status", Err: err}
	}
	result.Outcome = poll.Outcome
	result.Status = poll.Status
	switch poll.Outcome {
	case OutcomeFailed:
		return result, &StageError{Stage: "poll_status", Err: ErrDubbingFailed}
	case OutcomeTimeout:
		return result, &StageError{Stage: "poll_status", Err: ErrPollTimeout}
	}

	link, err := client.GenerateSharingLink(ctx, project.ID)
	if err != nil {
		return result, &StageError{Stage: "generate_sharing_link", Err: err}
	}
	result.SharingLink = link

	outputFile, err := DownloadResult(ctx, client, project.ID, params.OutputDir, params.BasePath)
	if err != nil {
		return result, &StageError{Stage: "download_result", Err: err}
	}
	result.OutputFile = outputFile

	log.Printf("[speechlab] workflow: project %s complete, result at %s", project.ID, outputFile)
	return result, nil
}
