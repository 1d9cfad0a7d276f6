// Package githubhost publishes annotation batches through the GitHub Check
// Runs API.
package githubhost

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/Nyeloz/VibeGuard/pkg/publish"
)

// Config identifies the check run that receives annotations.
type Config struct {
	Token      string
	Owner      string
	Repo       string
	CheckRunID int64
	// CheckName is the name reported for the check run on each update.
	CheckName string
	// AnnotationPath is reported when a finding carries no file location.
	// The Check Runs API requires a path on every annotation.
	AnnotationPath string
	// RequestsPerSecond caps outbound calls below the host's rate limit.
	RequestsPerSecond float64
}

// Client is the publish.Host implementation backed by GitHub.
type Client struct {
	checks  checksService
	cfg     Config
	limiter *rate.Limiter
}

// checksService is the slice of go-github the client needs; tests substitute
// their own.
type checksService interface {
	UpdateCheckRun(ctx context.Context, owner, repo string, checkRunID int64, opts github.UpdateCheckRunOptions) (*github.CheckRun, *github.Response, error)
}

func New(cfg Config) *Client {
	if cfg.CheckName == "" {
		cfg.CheckName = "vibeguard"
	}
	if cfg.AnnotationPath == "" {
		cfg.AnnotationPath = "."
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}

	httpClient := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	))

	return &Client{
		checks:  github.NewClient(httpClient).Checks,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// PublishBatch appends one batch of annotations to the configured check run.
// GitHub offers no idempotency-key header; it ignores the key harmlessly, so
// the dedup guarantee holds as long as retries only follow failed calls.
// The key is still surfaced in the output summary for traceability.
func (c *Client) PublishBatch(ctx context.Context, idempotencyKey string, annotations []publish.Annotation) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	opts := github.UpdateCheckRunOptions{
		Name: c.cfg.CheckName,
		Output: &github.CheckRunOutput{
			Title:       github.String(c.cfg.CheckName),
			Summary:     github.String(fmt.Sprintf("static-analysis findings (batch %s)", idempotencyKey)),
			Annotations: c.toGitHub(annotations),
		},
	}

	_, _, err := c.checks.UpdateCheckRun(ctx, c.cfg.Owner, c.cfg.Repo, c.cfg.CheckRunID, opts)
	if err != nil {
		return classify(err)
	}
	return nil
}

func (c *Client) toGitHub(annotations []publish.Annotation) []*github.CheckRunAnnotation {
	out := make([]*github.CheckRunAnnotation, len(annotations))
	for i, a := range annotations {
		line := 1
		if a.Line != nil {
			line = *a.Line
		}
		gh := &github.CheckRunAnnotation{
			Path:            github.String(c.cfg.AnnotationPath),
			StartLine:       github.Int(line),
			EndLine:         github.Int(line),
			AnnotationLevel: github.String(a.Level),
			Message:         github.String(a.Message),
			Title:           github.String(a.RuleID),
		}
		if a.Snippet != nil {
			gh.RawDetails = github.String(*a.Snippet)
		}
		out[i] = gh
	}
	return out
}

// classify sorts a go-github failure into the engine's retry taxonomy.
// Rate limiting and host-side 5xx are transient; any other structured
// rejection means the payload will never be accepted and retrying is
// pointless.
func classify(err error) error {
	switch e := err.(type) {
	case *github.RateLimitError:
		return publish.Transient("rate limited", err)
	case *github.AbuseRateLimitError:
		return publish.Transient("secondary rate limited", err)
	case *github.ErrorResponse:
		if e.Response != nil && e.Response.StatusCode >= 500 {
			return publish.Transient("host error", err)
		}
		return publish.Terminal("host rejected payload", err)
	}
	// Transport-level failure: the call may never have reached the host.
	return publish.Transient("network error", err)
}
