package llm

import (
	"context"
	"strings"
)

// Client sends one prompt to a text-generation model and returns its reply.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service is one configured generation backend. Heading titles its section
// in the combined summary and defaults to Name.
type Service struct {
	Name    string
	Heading string
	Model   string
	Client  Client
}

func (s Service) SectionHeading() string {
	if s.Heading != "" {
		return s.Heading
	}
	return s.Name
}

// Tag is the filename component identifying the service's artifact.
func (s Service) Tag() string {
	tag := strings.ToLower(strings.TrimSpace(s.Model))
	return strings.NewReplacer("/", "-", `\`, "-", " ", "-").Replace(tag)
}

// Services is the ordered set of backends a summary run fans out to.
type Services []Service
