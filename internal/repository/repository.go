package repository

import "context"

type SaveArtifactInput struct {
	VideoID string
	Suffix  string
	Service string
	Model   string
	Path    string
	Status  ArtifactStatus
	Error   string
}

type ArtifactRepository interface {
	SaveArtifacts(ctx context.Context, inputs []SaveArtifactInput) error
}

type Repository interface {
	ArtifactRepository
}

// Nop discards every record. It is used when no database is configured.
type Nop struct{}

func (Nop) SaveArtifacts(context.Context, []SaveArtifactInput) error { return nil }
