package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/aristotle/internal/domain"
	"github.com/kailas-cloud/aristotle/internal/domain/facet"
	"github.com/kailas-cloud/aristotle/internal/domain/search/query"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
)

// GetPID resolves a backend document id to the document's pid.
func (s *Service) GetPID(ctx context.Context, esID string) (string, error) {
	doc, err := s.repo.Get(ctx, esID)
	if err != nil {
		return "", fmt.Errorf("get pid of %q: %w", esID, err)
	}
	pid := doc.PID()
	if pid == "" {
		return "", fmt.Errorf("document %q has no pid: %w", esID, domain.ErrNotFound)
	}
	return pid, nil
}

// GetTitle returns the title of the document with the given pid, or
// DefaultTitle unless exactly one document matches.
func (s *Service) GetTitle(ctx context.Context, pid string) (string, error) {
	page, err := request.NewPage(0, 1)
	if err != nil {
		return "", err
	}
	res, err := s.repo.Search(ctx, request.Plan{Query: pidTerm(pid), Page: page})
	if err != nil {
		return "", fmt.Errorf("get title of %q: %w", pid, err)
	}
	if res.Total != 1 || len(res.Hits) != 1 {
		return DefaultTitle, nil
	}
	return res.Hits[0].Title(), nil
}

// GetDetail returns the documents matching pid.
func (s *Service) GetDetail(ctx context.Context, pid string) (result.SearchResult, error) {
	res, err := s.repo.Search(ctx, request.Plan{Query: pidTerm(pid), Page: request.DefaultPage()})
	if err != nil {
		return result.SearchResult{}, fmt.Errorf("get detail of %q: %w", pid, err)
	}
	if res.Total == 0 {
		return result.SearchResult{}, fmt.Errorf("pid %q: %w", pid, domain.ErrNotFound)
	}
	return res, nil
}

func pidTerm(pid string) query.Expr {
	return query.Term(facet.Keyword(result.FieldPID), pid)
}
