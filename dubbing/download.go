package dubbing

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/speechlab/speechlab-mcp/platform"
	"github.com/speechlab/speechlab-mcp/speechlab"
)

// ResultClient is the slice of the speechlab client needed to locate and
// fetch a project's dubbed output.
type ResultClient interface {
	StatusFetcher
	GetDownloadURL(ctx context.Context, projectID string) (string, error)
	Download(ctx context.Context, rawURL string) ([]byte, error)
}

// ResolveDownloadURL walks an expanded project detail looking for the
// first OUTPUT media entry that carries a presigned URL, across all
// translations and dub entries. Returns "" when none is present.
func ResolveDownloadURL(detail *speechlab.ProjectDetail) string {
	if detail == nil {
		return ""
	}
	for _, translation := range detail.Translations {
		for _, dub := range translation.Dub {
			for _, media := range dub.Medias {
				if media.OperationType == speechlab.OperationOutput && media.PresignedURL != "" {
					return media.PresignedURL
				}
			}
		}
	}
	return ""
}

// DownloadResult downloads the dubbed output media of a project and
// writes it under the resolved output directory.
//
// The download URL is located in the expanded project detail first; when
// the detail carries no presigned OUTPUT media the dedicated download
// endpoint is tried. The response body is fully buffered before the
// file is written. Returns the path of the written file.
func DownloadResult(ctx context.Context, client ResultClient, projectID, outputDir, basePath string) (string, error) {
	// Fail fast on an unusable output directory before any network call.
	dir, err := platform.ResolveOutputDir(outputDir, basePath)
	if err != nil {
		return "", err
	}

	detail, err := client.GetProject(ctx, projectID)
	if err != nil {
		return "", err
	}

	downloadURL := ResolveDownloadURL(detail)
	if downloadURL == "" {
		downloadURL, err = client.GetDownloadURL(ctx, projectID)
		if err != nil {
			return "", err
		}
	}

	log.Printf("[speechlab] downloading result for project %s", projectID)
	data, err := client.Download(ctx, downloadURL)
	if err != nil {
		return "", err
	}

	fileName := platform.OutputFileName("dub", "project_"+projectID, "mp4", false)
	outputFile := filepath.Join(dir, fileName)
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return "", err
	}

	log.Printf("[speechlab] result downloaded to %s", outputFile)
	return outputFile, nil
}
