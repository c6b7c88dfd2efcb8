package tools

import (
	"strings"
	"testing"

	"github.com/speechlab/speechlab-mcp/speechlab"
)

func TestProgressFor(t *testing.T) {
	tests := []struct {
		status   speechlab.Status
		expected string
	}{
		{speechlab.StatusCreated, "0%"},
		{speechlab.StatusProcessing, "unknown"},
		{speechlab.StatusComplete, "100%"},
		{speechlab.StatusFailed, "unknown"},
		{speechlab.StatusUnknown, "unknown"},
	}

	for _, test := range tests {
		result := progressFor(test.status)
		if result != test.expected {
			t.Errorf("progressFor(%s) = %q, expected %q", test.status, result, test.expected)
		}
	}
}

func TestFormatProjectCreated(t *testing.T) {
	text := formatProjectCreated(&speechlab.DubProject{
		Project:        speechlab.Project{ID: "p-1", Name: "Demo", Status: speechlab.StatusCreated},
		SourceLanguage: "en",
		TargetLanguage: "es",
	})

	for _, want := range []string{"Project created successfully", "ID: p-1", "Name: Demo", "Source Language: en", "Target Language: es", "Status: CREATED"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestFormatProjectList_Empty(t *testing.T) {
	if text := formatProjectList(&speechlab.ProjectList{}); text != "No projects found." {
		t.Errorf("text = %q, expected 'No projects found.'", text)
	}
}

func TestFormatProjectList(t *testing.T) {
	text := formatProjectList(&speechlab.ProjectList{
		Results: []speechlab.ProjectDetail{
			{ID: "a", Job: speechlab.Job{Name: "First", Status: "COMPLETE"}, CreatedAt: "2024-01-01T00:00:00Z"},
			{ID: "b", Job: speechlab.Job{Name: "Second", Status: "PROCESSING"}},
		},
	})

	if !strings.Contains(text, "Retrieved 2 projects") {
		t.Errorf("summary missing count:\n%s", text)
	}
	for _, want := range []string{"ID: a", "Name: First", "Status: COMPLETE", "ID: b", "Status: PROCESSING", "Created: unknown"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestFormatDubbingStatus_OutputAvailable(t *testing.T) {
	detail := &speechlab.ProjectDetail{
		ID:  "p-2",
		Job: speechlab.Job{Status: "COMPLETE"},
		Translations: []speechlab.Translation{
			{Dub: []speechlab.DubEntry{{
				MergeStatus: "MERGED",
				Medias: []speechlab.MediaEntry{
					{OperationType: speechlab.OperationInput},
					{OperationType: speechlab.OperationOutput, PresignedURL: "https://out.example/x.mp4"},
				},
			}}},
		},
	}

	text := formatDubbingStatus("p-2", detail)
	for _, want := range []string{
		"Dubbing Status for Project p-2",
		"Status: COMPLETE",
		"Progress: 100%",
		"Dub Process: MERGED",
		"Media Files: 2 files available",
		"Output media available for download",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("status summary missing %q:\n%s", want, text)
		}
	}
}

func TestFormatDubbingStatus_NotStarted(t *testing.T) {
	text := formatDubbingStatus("p-3", &speechlab.ProjectDetail{Job: speechlab.Job{Status: "CREATED"}})

	if !strings.Contains(text, "Dub Process: Not started") {
		t.Errorf("summary missing 'Not started':\n%s", text)
	}
	if !strings.Contains(text, "Progress: 0%") {
		t.Errorf("summary missing created progress:\n%s", text)
	}
}

func TestFormatProjectDetail_IncludesTranslationInfo(t *testing.T) {
	detail := &speechlab.ProjectDetail{
		ID:        "p-4",
		Job:       speechlab.Job{Name: "Demo", Status: "PROCESSING", SourceLanguage: "en", TargetLanguage: "es_la"},
		CreatedAt: "2024-02-02T00:00:00Z",
		Translations: []speechlab.Translation{
			{Language: "es_la", Dub: []speechlab.DubEntry{{
				MergeStatus: "PENDING",
				Medias:      []speechlab.MediaEntry{{OperationType: speechlab.OperationInput}},
			}}},
		},
	}

	text := formatProjectDetail(detail)
	for _, want := range []string{"Translation Language: es_la", "Dub Status: PENDING", "Media Files: 1"} {
		if !strings.Contains(text, want) {
			t.Errorf("detail summary missing %q:\n%s", want, text)
		}
	}
}

func TestFormatSharingLink(t *testing.T) {
	text := formatSharingLink("p-5", "https://share.example/p-5")
	if !strings.Contains(text, "Link: https://share.example/p-5") {
		t.Errorf("summary missing link:\n%s", text)
	}
}
