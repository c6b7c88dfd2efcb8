package speechlab

import "strings"

// Status represents the remote-reported lifecycle state of a project's
// dubbing job.
type Status string

const (
	// StatusCreated means the project exists but processing has not started.
	StatusCreated Status = "CREATED"

	// StatusProcessing means the dubbing pipeline is running.
	StatusProcessing Status = "PROCESSING"

	// StatusComplete means the dub finished successfully.
	StatusComplete Status = "COMPLETE"

	// StatusFailed means the remote job reported an error.
	StatusFailed Status = "FAILED"

	// StatusUnknown is used for any status string the client does not
	// recognize, including an absent status field.
	StatusUnknown Status = "UNKNOWN"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status is terminal. Polling must stop
// once a terminal status is observed.
func (s Status) IsTerminal() bool {
	return s == StatusComplete || s == StatusFailed
}

// ParseStatus maps a raw API status string to a Status. Matching is
// case-insensitive; unrecognized values map to StatusUnknown.
func ParseStatus(raw string) Status {
	switch Status(strings.ToUpper(raw)) {
	case StatusCreated:
		return StatusCreated
	case StatusProcessing:
		return StatusProcessing
	case StatusComplete:
		return StatusComplete
	case StatusFailed:
		return StatusFailed
	default:
		return StatusUnknown
	}
}

// Media operation types as reported by the API.
const (
	OperationInput  = "INPUT"
	OperationOutput = "OUTPUT"
)

// Job carries the dubbing job fields embedded in a project detail
// response.
type Job struct {
	Name           string `json:"name"`
	Status         string `json:"status"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

// MediaEntry is a media file attached to a dub, as returned inside an
// expanded project detail response.
type MediaEntry struct {
	ID            string `json:"id"`
	URI           string `json:"uri"`
	Category      string `json:"category"`
	ContentType   string `json:"contentType"`
	Format        string `json:"format"`
	OperationType string `json:"operationType"`
	PresignedURL  string `json:"presignedURL"`
}

// DubEntry is one dub of a translation, carrying its merge status and
// media files.
type DubEntry struct {
	MergeStatus string       `json:"mergeStatus"`
	Medias      []MediaEntry `json:"medias"`
}

// Translation is one target-language translation of a project.
type Translation struct {
	Language string     `json:"language"`
	Dub      []DubEntry `json:"dub"`
}

// ProjectDetail is the expanded project representation returned by the
// get-project and list-projects endpoints.
type ProjectDetail struct {
	ID           string         `json:"id"`
	Job          Job            `json:"job"`
	CreatedAt    string         `json:"createdAt"`
	UpdatedAt    string         `json:"updatedAt"`
	Translations []Translation  `json:"translations"`
	Metadata     map[string]any `json:"metadata"`
}

// Status returns the parsed job status of the detail payload.
func (d *ProjectDetail) Status() Status {
	if d == nil {
		return StatusUnknown
	}
	return ParseStatus(d.Job.Status)
}

// ProjectList is the envelope returned by the list-projects endpoint.
type ProjectList struct {
	Results []ProjectDetail `json:"results"`
	Total   int             `json:"total"`
}

// createResponse is the body returned by the create-project call. Unlike
// the expanded detail response, the language fields live at the top
// level here.
type createResponse struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Status         string         `json:"status"`
	SourceLanguage string         `json:"sourceLanguage"`
	TargetLanguage string         `json:"targetLanguage"`
	CreatedAt      string         `json:"createdAt"`
	UpdatedAt      string         `json:"updatedAt"`
	Metadata       map[string]any `json:"metadata"`
}

// StartDubbingResult carries the fields of interest from the start-dub
// response.
type StartDubbingResult struct {
	Status string `json:"status"`
	ETA    string `json:"eta"`
}

// Project is the client-facing record for a Speechlab project.
type Project struct {
	ID        string
	Name      string
	Status    Status
	CreatedAt string
	UpdatedAt string
	Metadata  map[string]any
}

// DubProject is a Project extended with dubbing language details.
type DubProject struct {
	Project
	SourceLanguage string
	TargetLanguage string

	// SourceFile is the local path of the uploaded source media, when
	// the project was created with one. Not reported by the API.
	SourceFile string
}

// Media is the client-facing record for a media file.
type Media struct {
	ID            string
	URI           string
	Category      string
	ContentType   string
	Format        string
	OperationType string
	PresignedURL  string
}
