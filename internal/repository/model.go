package repository

type ArtifactStatus string

const (
	ArtifactStatusWritten ArtifactStatus = "written"
	ArtifactStatusCached  ArtifactStatus = "cached"
	ArtifactStatusFailed  ArtifactStatus = "failed"
)

// CombinedService names the ledger row for the combined artifact.
const CombinedService = "combined"
