package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/dompet/internal/ingest"
	"github.com/MrJamesThe3rd/dompet/internal/matching"
)

type Submitter interface {
	Submit(ctx context.Context, owner string, rows []ingest.DraftRow) (*ingest.Outcome, error)
}

// RuleSource provides the description rules applied before submitting.
type RuleSource interface {
	Load(ctx context.Context) (*matching.Set, error)
}

// Report is what one CSV import did.
type Report struct {
	Profile   string
	Charset   string
	Parsed    int
	Rewritten int
	Outcome   *ingest.Outcome
}

type Service struct {
	parser    *Parser
	submitter Submitter
	rules     RuleSource
}

// NewService builds an importer. rules may be nil, in which case rows are
// submitted as parsed.
func NewService(submitter Submitter, rules RuleSource) *Service {
	return &Service{
		parser:    NewParser(),
		submitter: submitter,
		rules:     rules,
	}
}

// Import parses r, applies the description rules and submits every draft
// row as one batch for owner.
func (s *Service) Import(ctx context.Context, owner string, r io.Reader) (*Report, error) {
	parsed, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	rewritten := 0

	if s.rules != nil {
		set, err := s.rules.Load(ctx)
		if err != nil {
			return nil, err
		}

		rewritten = set.Apply(parsed.Rows)
	}

	out, err := s.submitter.Submit(ctx, owner, parsed.Rows)
	if err != nil {
		return nil, fmt.Errorf("submit %d rows: %w", len(parsed.Rows), err)
	}

	return &Report{
		Profile:   parsed.Profile,
		Charset:   string(parsed.Charset),
		Parsed:    len(parsed.Rows),
		Rewritten: rewritten,
		Outcome:   out,
	}, nil
}
