package aristotle

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/aristotle/internal/domain/search/mode"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
)

func (p Page) toDomain() (request.Page, error) {
	pg, err := request.NewPage(p.Offset, p.Size)
	if err != nil {
		return request.Page{}, fmt.Errorf("page: %w", err)
	}
	return pg, nil
}

func parseMode(m Mode) (mode.Mode, error) {
	if m == "" {
		return "", nil
	}
	parsed, err := mode.Parse(string(m))
	if err != nil {
		return "", fmt.Errorf("mode: %w", err)
	}
	return parsed, nil
}

// Search runs a simple search. With Parent set and a non-facet mode it
// searches within that record's children.
func (c *Client) Search(ctx context.Context, q Query) (res Result, err error) {
	start := time.Now()
	defer func() { c.obs.observeResult("search", start, &res, err) }()

	page, err := q.Page.toDomain()
	if err != nil {
		return Result{}, err
	}
	m, err := parseMode(q.Mode)
	if err != nil {
		return Result{}, err
	}

	if q.Parent != "" && m != mode.Facet {
		req, err := request.NewSpecific(q.Text, m, q.Parent, page)
		if err != nil {
			return Result{}, fmt.Errorf("specific search: %w", err)
		}
		r, err := c.searchSvc.SpecificSearch(ctx, req)
		if err != nil {
			return Result{}, fmt.Errorf("specific search: %w", err)
		}
		return toResult(r), nil
	}

	req, err := request.NewSimple(q.Text, m, q.Facet, q.Value, page)
	if err != nil {
		return Result{}, fmt.Errorf("search: %w", err)
	}
	r, err := c.searchSvc.SimpleSearch(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("search: %w", err)
	}
	return toResult(r), nil
}

// Filter matches one facet value exactly, optionally combined with free text.
func (c *Client) Filter(ctx context.Context, facetName, value, text string, p Page) (res Result, err error) {
	start := time.Now()
	defer func() { c.obs.observeResult("filter", start, &res, err) }()

	page, err := p.toDomain()
	if err != nil {
		return Result{}, err
	}
	req, err := request.NewFacetFilter(facetName, value, text, page)
	if err != nil {
		return Result{}, fmt.Errorf("filter: %w", err)
	}
	r, err := c.searchSvc.FilterQuery(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("filter: %w", err)
	}
	return toResult(r), nil
}

// Advanced runs a multi-clause boolean search.
func (c *Client) Advanced(ctx context.Context, q AdvancedQuery) (res Result, err error) {
	start := time.Now()
	defer func() { c.obs.observeResult("advanced_search", start, &res, err) }()

	page, err := q.Page.toDomain()
	if err != nil {
		return Result{}, err
	}
	clauses := make([]request.Clause, 0, len(q.Clauses))
	for i, cl := range q.Clauses {
		m, err := parseMode(cl.Mode)
		if err != nil {
			return Result{}, fmt.Errorf("clause %d: %w", i, err)
		}
		op, err := request.ParseOperator(cl.Operator)
		if err != nil {
			return Result{}, fmt.Errorf("clause %d: %w", i, err)
		}
		clause, err := request.NewClause(m, cl.Text, op)
		if err != nil {
			return Result{}, fmt.Errorf("clause %d: %w", i, err)
		}
		clauses = append(clauses, clause)
	}
	collection, err := request.ParseCollection(q.Collection)
	if err != nil {
		return Result{}, fmt.Errorf("advanced search: %w", err)
	}
	req, err := request.NewAdvanced(clauses, request.AdvancedOptions{
		Collection: collection,
		Genre:      q.Genre,
		Topic:      q.Topic,
		Formats: request.Formats{
			Audio:         q.Formats.Audio,
			Image:         q.Formats.Image,
			MixedMaterial: q.Formats.MixedMaterial,
			MovingImage:   q.Formats.MovingImage,
			PDF:           q.Formats.PDF,
		},
	}, page)
	if err != nil {
		return Result{}, fmt.Errorf("advanced search: %w", err)
	}

	r, err := c.searchSvc.AdvancedSearch(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("advanced search: %w", err)
	}
	return toResult(r), nil
}

// Browse lists the direct children of pid in title order, with facet counts
// scoped to everything in that collection.
func (c *Client) Browse(ctx context.Context, pid string, p Page) (res Result, err error) {
	start := time.Now()
	defer func() { c.obs.observeResult("browse", start, &res, err) }()

	page, err := p.toDomain()
	if err != nil {
		return Result{}, err
	}
	req, err := request.NewBrowse(pid, page)
	if err != nil {
		return Result{}, fmt.Errorf("browse: %w", err)
	}
	r, err := c.searchSvc.Browse(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("browse: %w", err)
	}
	return toResult(r), nil
}

// Detail returns the record whose pid matches exactly.
func (c *Client) Detail(ctx context.Context, pid string) (res Result, err error) {
	start := time.Now()
	defer func() { c.obs.observeResult("detail", start, &res, err) }()

	r, err := c.searchSvc.GetDetail(ctx, pid)
	if err != nil {
		return Result{}, fmt.Errorf("detail %s: %w", pid, err)
	}
	return toResult(r), nil
}

// PID resolves a backend document id to the record's persistent identifier.
func (c *Client) PID(ctx context.Context, id string) (pid string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("pid", start, err) }()

	pid, err = c.searchSvc.GetPID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("pid %s: %w", id, err)
	}
	return pid, nil
}

// Title returns the principal title of pid, or "Home" when pid does not
// identify exactly one record.
func (c *Client) Title(ctx context.Context, pid string) (title string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("title", start, err) }()

	title, err = c.searchSvc.GetTitle(ctx, pid)
	if err != nil {
		return "", fmt.Errorf("title %s: %w", pid, err)
	}
	return title, nil
}

// Facets returns facet counts over the whole catalog, or over one
// collection when scope is a pid.
func (c *Client) Facets(ctx context.Context, scope string) (facets []FacetCounts, err error) {
	start := time.Now()
	defer func() { c.obs.observe("facets", start, err) }()

	aggs, err := c.searchSvc.Facets(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("facets: %w", err)
	}
	return toFacets(aggs), nil
}

// Genres returns the genre choices of the advanced search form.
func (c *Client) Genres(ctx context.Context) (choices []Choice, err error) {
	start := time.Now()
	defer func() { c.obs.observe("genres", start, err) }()

	cs, err := c.searchSvc.GenreChoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("genres: %w", err)
	}
	return toChoices(cs), nil
}

// Topics returns the topic choices of the advanced search form.
func (c *Client) Topics(ctx context.Context) (choices []Choice, err error) {
	start := time.Now()
	defer func() { c.obs.observe("topics", start, err) }()

	cs, err := c.searchSvc.TopicChoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("topics: %w", err)
	}
	return toChoices(cs), nil
}

// About reports build metadata and index statistics.
func (c *Client) About(ctx context.Context) (about About, err error) {
	start := time.Now()
	defer func() { c.obs.observe("about", start, err) }()

	a, err := c.searchSvc.About(ctx)
	if err != nil {
		return About{}, fmt.Errorf("about: %w", err)
	}
	return About(a), nil
}
