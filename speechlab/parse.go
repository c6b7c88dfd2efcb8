package speechlab

// ParseProject converts an expanded project detail payload into a
// client-facing Project record. Absent fields keep their zero values
// except the status, which maps to StatusUnknown.
func ParseProject(detail *ProjectDetail) Project {
	name := detail.Job.Name
	if name == "" {
		name = "Unnamed Project"
	}
	return Project{
		ID:        detail.ID,
		Name:      name,
		Status:    detail.Status(),
		CreatedAt: detail.CreatedAt,
		UpdatedAt: detail.UpdatedAt,
		Metadata:  detail.Metadata,
	}
}

// ParseDubProject converts an expanded project detail payload into a
// DubProject record carrying the job's language codes.
func ParseDubProject(detail *ProjectDetail) DubProject {
	return DubProject{
		Project:        ParseProject(detail),
		SourceLanguage: detail.Job.SourceLanguage,
		TargetLanguage: detail.Job.TargetLanguage,
	}
}

// ParseMedia converts a wire media entry into a Media record.
func ParseMedia(entry MediaEntry) Media {
	return Media{
		ID:            entry.ID,
		URI:           entry.URI,
		Category:      entry.Category,
		ContentType:   entry.ContentType,
		Format:        entry.Format,
		OperationType: entry.OperationType,
		PresignedURL:  entry.PresignedURL,
	}
}
