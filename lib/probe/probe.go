// Package probe runs the one-shot connectivity check against an Appwrite
// collection. Run computes an Outcome without side effects on the process;
// Report prints it. The caller turns Outcome.ExitCode into the exit status.
package probe

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/nicolasgere/appwrite-smoke/lib/appwrite"
	"github.com/nicolasgere/appwrite-smoke/lib/config"
)

// State is the terminal state reached by a run.
type State string

const (
	StateAborted   State = "ABORTED"
	StateSucceeded State = "SUCCEEDED"
	StateFailed    State = "FAILED"
)

// Process exit codes.
const (
	ExitOK            = 0
	ExitInvalidConfig = 1
	ExitRequestFailed = 2
)

// DocumentLister is the part of the Appwrite client the probe needs.
type DocumentLister interface {
	ListDocuments(ctx context.Context, databaseID, collectionID string, queries []string) (*appwrite.DocumentList, error)
}

// NewListerFunc builds a DocumentLister from a validated Config.
type NewListerFunc func(cfg config.Config) (DocumentLister, error)

// NewAppwriteLister binds an appwrite.Client to the configured endpoint,
// project and API key.
func NewAppwriteLister(cfg config.Config) (DocumentLister, error) {
	client, err := appwrite.NewClient(appwrite.Config{
		Endpoint: cfg.Endpoint,
		Project:  cfg.ProjectID,
		Key:      cfg.APIKey,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Summary is the JSON printed after a successful probe.
type Summary struct {
	Total int  `json:"total"`
	Limit *int `json:"limit"`
}

// Outcome is the result of a run.
type Outcome struct {
	State    State
	ExitCode int
	Endpoint string
	Summary  *Summary
	Err      error
}

// Aborted returns the outcome of a run stopped by invalid configuration.
func Aborted(err error) Outcome {
	return Outcome{State: StateAborted, ExitCode: ExitInvalidConfig, Err: err}
}

// Prober validates configuration and then issues a single list request.
type Prober struct {
	NewLister NewListerFunc
	Log       logrus.FieldLogger
}

// New returns a Prober that talks to Appwrite over HTTP.
func New(log logrus.FieldLogger) *Prober {
	return &Prober{NewLister: NewAppwriteLister, Log: log}
}

// Run validates cfg and, if it is usable, lists the configured collection once.
// The request is not retried.
func (p *Prober) Run(ctx context.Context, cfg config.Config) Outcome {
	log := p.logger()

	log.Debug("validating configuration")
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Debug("configuration rejected")
		return Aborted(err)
	}

	out := Outcome{Endpoint: cfg.Endpoint}

	lister, err := p.NewLister(cfg)
	if err != nil {
		out.State = StateFailed
		out.ExitCode = ExitRequestFailed
		out.Err = fmt.Errorf("failed to create client: %w", err)
		return out
	}

	log.WithFields(logrus.Fields{
		"endpoint":      cfg.Endpoint,
		"database_id":   cfg.DatabaseID,
		"collection_id": cfg.CollectionID,
	}).Debug("listing documents")

	res, err := lister.ListDocuments(ctx, cfg.DatabaseID, cfg.CollectionID, nil)
	if err != nil {
		log.WithError(err).Debug("list documents failed")
		out.State = StateFailed
		out.ExitCode = ExitRequestFailed
		out.Err = err
		return out
	}
	if res == nil {
		res = &appwrite.DocumentList{}
	}

	log.WithField("total", res.Total).Debug("list documents succeeded")
	out.State = StateSucceeded
	out.ExitCode = ExitOK
	out.Summary = &Summary{Total: res.Total, Limit: res.Limit}
	return out
}

func (p *Prober) logger() logrus.FieldLogger {
	if p.Log != nil {
		return p.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
