package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kailas-cloud/aristotle/internal/db"
	dbBleve "github.com/kailas-cloud/aristotle/internal/db/bleve"
	"github.com/kailas-cloud/aristotle/internal/domain/facet"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
	searchrepo "github.com/kailas-cloud/aristotle/internal/repository/search"
	searchuc "github.com/kailas-cloud/aristotle/internal/usecase/search"
)

type fakeLoader struct {
	exists  bool
	created []string
	batches [][]db.Hit
	bulkErr error
}

func (f *fakeLoader) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	f.created = append(f.created, def.Name)
	return nil
}

func (f *fakeLoader) IndexExists(context.Context, string) (bool, error) { return f.exists, nil }

func (f *fakeLoader) Bulk(_ context.Context, _ string, docs []db.Hit) error {
	if f.bulkErr != nil {
		return f.bulkErr
	}
	f.batches = append(f.batches, append([]db.Hit(nil), docs...))
	return nil
}

const ndjson = `
{"id": "es-1", "source": {"pid": "coccc:2", "titlePrincipal": "Zebra Songs", "parent": "coccc:1", "inCollection": "coccc:1", "genre": "audio"}}
{"id": "es-2", "source": {"pid": "coccc:3", "titlePrincipal": "Alpine Theses", "parent": "coccc:1", "inCollection": "coccc:1", "genre": "thesis"}}
{"id": "es-3", "source": {"pid": "coccc:4", "titlePrincipal": "Music Department", "parent": "coccc:root", "inCollection": "coccc:root", "genre": "thesis"}}
`

func TestLoadRecords_Batches(t *testing.T) {
	f := &fakeLoader{}

	n, err := loadRecords(context.Background(), f, "repository", strings.NewReader(ndjson), 2, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"repository"}, f.created)
	require.Len(t, f.batches, 2)
	assert.Len(t, f.batches[0], 2)
	assert.Equal(t, "es-3", f.batches[1][0].ID)
	assert.Equal(t, "Music Department", f.batches[1][0].Source["titlePrincipal"])
}

func TestLoadRecords_ArrayAndExistingIndex(t *testing.T) {
	f := &fakeLoader{exists: true}
	in := `[{"id": "a", "source": {"pid": "x"}}, {"id": "b", "source": {"pid": "y"}}]`

	n, err := loadRecords(context.Background(), f, "repository", strings.NewReader(in), 0, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, f.created)
}

func TestLoadRecords_Empty(t *testing.T) {
	n, err := loadRecords(context.Background(), &fakeLoader{}, "repository", strings.NewReader("  \n"), 10, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoadRecords_Errors(t *testing.T) {
	_, err := loadRecords(context.Background(), &fakeLoader{}, "repository",
		strings.NewReader(`{"source": {"pid": "x"}}`), 10, zap.NewNop())
	assert.ErrorContains(t, err, "has no id")

	_, err = loadRecords(context.Background(), &fakeLoader{}, "repository",
		strings.NewReader(`{"id": `), 10, zap.NewNop())
	assert.ErrorContains(t, err, "decoding record")

	boom := errors.New("boom")
	_, err = loadRecords(context.Background(), &fakeLoader{bulkErr: boom}, "repository",
		strings.NewReader(ndjson), 10, zap.NewNop())
	assert.ErrorIs(t, err, boom)
}

func TestLoadRecords_BleveBrowse(t *testing.T) {
	ctx := context.Background()
	store, err := dbBleve.NewStore(dbBleve.Config{})
	require.NoError(t, err)
	defer store.Close()

	_, err = loadRecords(ctx, store, "repository", strings.NewReader(ndjson), 500, zap.NewNop())
	require.NoError(t, err)

	svc := searchuc.New(searchrepo.New(store, "repository", 20), searchuc.Config{})
	req, err := request.NewBrowse("coccc:1", request.DefaultPage())
	require.NoError(t, err)

	res, err := svc.Browse(ctx, req)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)
	require.Len(t, res.Hits, 2)
	assert.Equal(t, "Alpine Theses", res.Hits[0].Title())
	assert.Equal(t, "Zebra Songs", res.Hits[1].Title())

	genres, ok := res.Aggregations.Get(facet.Genres)
	require.True(t, ok)
	assert.ElementsMatch(t, []result.Bucket{{Key: "audio", Count: 1}, {Key: "thesis", Count: 1}}, genres)
}
