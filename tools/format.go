package tools

import (
	"fmt"
	"strings"

	"github.com/speechlab/speechlab-mcp/speechlab"
)

// progressFor derives a crude progress estimate from the job status.
// The API reports no real progress figure, so anything in flight is
// "unknown" rather than a fabricated percentage.
func progressFor(status speechlab.Status) string {
	switch status {
	case speechlab.StatusCreated:
		return "0%"
	case speechlab.StatusComplete:
		return "100%"
	default:
		return "unknown"
	}
}

// formatProjectCreated renders the create-project summary.
func formatProjectCreated(project *speechlab.DubProject) string {
	return fmt.Sprintf(
		"Project created successfully:\nID: %s\nName: %s\nSource Language: %s\nTarget Language: %s\nStatus: %s",
		project.ID, project.Name, project.SourceLanguage, project.TargetLanguage, project.Status,
	)
}

// formatProjectList renders the list-projects summary.
func formatProjectList(list *speechlab.ProjectList) string {
	if list == nil || len(list.Results) == 0 {
		return "No projects found."
	}

	entries := make([]string, 0, len(list.Results))
	for i := range list.Results {
		project := speechlab.ParseProject(&list.Results[i])
		entries = append(entries, fmt.Sprintf(
			"ID: %s\nName: %s\nStatus: %s\nCreated: %s",
			project.ID, project.Name, project.Status, orUnknown(project.CreatedAt),
		))
	}
	return fmt.Sprintf("Retrieved %d projects:\n\n%s", len(entries), strings.Join(entries, "\n\n"))
}

// formatProjectDetail renders the get-project summary, including
// translation and dub information when present.
func formatProjectDetail(detail *speechlab.ProjectDetail) string {
	project := speechlab.ParseDubProject(detail)

	var extra strings.Builder
	if len(detail.Translations) > 0 {
		first := detail.Translations[0]
		fmt.Fprintf(&extra, "\nTranslation Language: %s", orUnknown(first.Language))
		if len(first.Dub) > 0 {
			firstDub := first.Dub[0]
			fmt.Fprintf(&extra, "\nDub Status: %s", orUnknown(firstDub.MergeStatus))
			if len(firstDub.Medias) > 0 {
				fmt.Fprintf(&extra, "\nMedia Files: %d", len(firstDub.Medias))
			}
		}
	}

	return fmt.Sprintf(
		"Project Details:\nID: %s\nName: %s\nStatus: %s\nSource Language: %s\nTarget Language: %s\nCreated: %s\nUpdated: %s%s",
		project.ID, project.Name, project.Status,
		orUnknown(project.SourceLanguage), orUnknown(project.TargetLanguage),
		orUnknown(project.CreatedAt), orUnknown(project.UpdatedAt), extra.String(),
	)
}

// formatUpload renders the upload-media summary.
func formatUpload(projectID, fileName string) string {
	return fmt.Sprintf("File uploaded successfully to project %s.\nFile: %s", projectID, fileName)
}

// formatStartDubbing renders the start-dubbing summary.
func formatStartDubbing(projectID string, result *speechlab.StartDubbingResult) string {
	status := result.Status
	if status == "" {
		status = "processing"
	}
	return fmt.Sprintf("Dubbing process started for project %s.\nStatus: %s\nETA: %s",
		projectID, status, orUnknown(result.ETA))
}

// formatDubbingStatus renders the check-status summary: job status,
// progress estimate, dub merge status and output-media availability.
func formatDubbingStatus(projectID string, detail *speechlab.ProjectDetail) string {
	status := detail.Status()

	dubStatus := "Not started"
	var mediaInfo strings.Builder
	if len(detail.Translations) > 0 {
		dubs := detail.Translations[0].Dub
		if len(dubs) > 0 {
			dubStatus = orUnknown(dubs[0].MergeStatus)
			if count := len(dubs[0].Medias); count > 0 {
				fmt.Fprintf(&mediaInfo, "\nMedia Files: %d files available", count)
				for _, media := range dubs[0].Medias {
					if media.OperationType == speechlab.OperationOutput && media.PresignedURL != "" {
						mediaInfo.WriteString("\nOutput media available for download")
						break
					}
				}
			}
		}
	}

	return fmt.Sprintf(
		"Dubbing Status for Project %s:\nStatus: %s\nProgress: %s\nDub Process: %s%s",
		projectID, status, progressFor(status), dubStatus, mediaInfo.String(),
	)
}

// formatDownload renders the download-result summary.
func formatDownload(outputFile string) string {
	return fmt.Sprintf("Dubbing result downloaded successfully.\nFile saved at: %s", outputFile)
}

// formatSharingLink renders the sharing-link summary.
func formatSharingLink(projectID, link string) string {
	return fmt.Sprintf(
		"Sharing link generated successfully for project %s.\nLink: %s\n\nThis link can be shared with others to view the project.",
		projectID, link,
	)
}

func orUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
