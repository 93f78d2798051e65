package bleve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/aristotle/internal/db"
	"github.com/kailas-cloud/aristotle/internal/domain/search/query"
)

const testIndex = "catalog"

func testDefinition() *db.IndexDefinition {
	return db.NewIndex(testIndex).
		Keyword("pid", "titlePrincipal", "creator", "genre", "typeOfResource",
			"parent", "inCollection", "subject.topic", "subject.geographic").
		Text("abstract").
		MustBuild()
}

func testDocs() []db.Hit {
	return []db.Hit{
		{ID: "es-1", Source: map[string]any{
			"pid": "coccc:10", "titlePrincipal": "Zebra Songs", "creator": "Jane Doe",
			"genre": "audio", "typeOfResource": "sound recording", "parent": "coccc:1",
			"inCollection": "coccc:1", "subject": map[string]any{"topic": "Music", "geographic": "Colorado"},
			"abstract": "field recordings of mountain songs",
		}},
		{ID: "es-2", Source: map[string]any{
			"pid": "coccc:11", "titlePrincipal": "Alpine Theses", "creator": "John Roe",
			"genre": []any{"thesis", "text"}, "typeOfResource": "text", "parent": "coccc:1",
			"inCollection": "coccc:1", "subject": map[string]any{"topic": "Geology"},
			"abstract": "a thesis about mountain geology",
		}},
		{ID: "es-3", Source: map[string]any{
			"pid": "coccc:12", "titlePrincipal": "Music Department", "creator": "Jane Doe",
			"genre": "thesis", "typeOfResource": "text", "parent": "coccc:2",
			"inCollection": "coccc:2", "subject": map[string]any{"topic": "Music"},
			"abstract": "departmental records",
		}},
	}
}

func newLoadedStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(Config{})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	ctx := context.Background()
	require.NoError(t, s.CreateIndex(ctx, testDefinition()))
	require.NoError(t, s.Bulk(ctx, testIndex, testDocs()))
	return s
}

func runSearch(t *testing.T, s *Store, req *db.SearchRequest) *db.SearchResponse {
	t.Helper()
	req.Index = testIndex
	res, err := s.Search(context.Background(), req)
	require.NoError(t, err)
	return res
}

func ids(res *db.SearchResponse) []string {
	out := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		out = append(out, h.ID)
	}
	return out
}

func TestSearch_TermOnKeywordField(t *testing.T) {
	s := newLoadedStore(t)

	res := runSearch(t, s, &db.SearchRequest{Query: query.Term("parent.keyword", "coccc:1"), Size: 10})
	assert.Equal(t, int64(2), res.Total)
	assert.ElementsMatch(t, []string{"es-1", "es-2"}, ids(res))
}

func TestSearch_TermIsExact(t *testing.T) {
	s := newLoadedStore(t)

	res := runSearch(t, s, &db.SearchRequest{Query: query.Term("titlePrincipal.keyword", "Music"), Size: 10})
	assert.Equal(t, int64(0), res.Total)

	res = runSearch(t, s, &db.SearchRequest{Query: query.Term("titlePrincipal.keyword", "Music Department"), Size: 10})
	assert.Equal(t, []string{"es-3"}, ids(res))
}

func TestSearch_PhraseOnNestedField(t *testing.T) {
	s := newLoadedStore(t)

	res := runSearch(t, s, &db.SearchRequest{Query: query.Phrase("subject.topic", "music"), Size: 10})
	assert.ElementsMatch(t, []string{"es-1", "es-3"}, ids(res))
}

func TestSearch_TextRequiresAllTerms(t *testing.T) {
	s := newLoadedStore(t)

	res := runSearch(t, s, &db.SearchRequest{Query: query.Text("mountain geology"), Size: 10})
	assert.Equal(t, []string{"es-2"}, ids(res))
}

func TestSearch_BooleanComposition(t *testing.T) {
	s := newLoadedStore(t)

	// creator Jane Doe AND NOT genre thesis
	e := query.And(
		query.Phrase("creator", "Jane Doe"),
		query.Not(query.Phrase("genre", "thesis")),
	)
	res := runSearch(t, s, &db.SearchRequest{Query: e, Size: 10})
	assert.Equal(t, []string{"es-1"}, ids(res))

	e = query.Or(query.Phrase("subject.topic", "geology"), query.Phrase("subject.geographic", "colorado"))
	res = runSearch(t, s, &db.SearchRequest{Query: e, Size: 10})
	assert.ElementsMatch(t, []string{"es-1", "es-2"}, ids(res))
}

func TestSearch_SortAndPaging(t *testing.T) {
	s := newLoadedStore(t)

	req := &db.SearchRequest{
		Query: query.MatchAll(),
		Sort:  []db.SortField{{Field: "titlePrincipal.keyword", Ascending: true}},
		Size:  2,
	}
	res := runSearch(t, s, req)
	assert.Equal(t, int64(3), res.Total)
	assert.Equal(t, []string{"es-2", "es-3"}, ids(res))

	req.From = 2
	res = runSearch(t, s, req)
	assert.Equal(t, []string{"es-1"}, ids(res))
}

func TestSearch_Facets(t *testing.T) {
	s := newLoadedStore(t)

	res := runSearch(t, s, &db.SearchRequest{
		Query: query.MatchAll(),
		Aggregations: []db.Aggregation{
			{Name: "Genres", Field: "genre.keyword"},
			{Name: "Topic", Field: "subject.topic.keyword"},
			{Name: "Languages", Field: "language.keyword"},
		},
	})
	assert.Empty(t, res.Hits)
	assert.Equal(t, int64(3), res.Total)

	genres := res.Aggregations["Genres"]
	require.NotEmpty(t, genres)
	assert.Equal(t, db.Bucket{Key: "thesis", Count: 2}, genres[0])

	topic := res.Aggregations["Topic"]
	require.NotEmpty(t, topic)
	assert.Equal(t, db.Bucket{Key: "Music", Count: 2}, topic[0])

	assert.Empty(t, res.Aggregations["Languages"])
}

func TestSearch_SourceRoundTrip(t *testing.T) {
	s := newLoadedStore(t)

	res := runSearch(t, s, &db.SearchRequest{Query: query.Term("pid.keyword", "coccc:10"), Size: 1})
	require.Len(t, res.Hits, 1)
	subject, ok := res.Hits[0].Source["subject"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Colorado", subject["geographic"])
}

func TestSearch_IndexNotFound(t *testing.T) {
	s, err := NewStore(Config{})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Search(context.Background(), &db.SearchRequest{Index: "missing", Query: query.MatchAll()})
	assert.ErrorIs(t, err, db.ErrIndexNotFound)
}

func TestGet(t *testing.T) {
	s := newLoadedStore(t)

	hit, err := s.Get(context.Background(), testIndex, "es-2")
	require.NoError(t, err)
	assert.Equal(t, "coccc:11", hit.Source["pid"])

	_, err = s.Get(context.Background(), testIndex, "nope")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestCreateIndex_Duplicate(t *testing.T) {
	s := newLoadedStore(t)
	assert.ErrorIs(t, s.CreateIndex(context.Background(), testDefinition()), db.ErrIndexExists)
}

func TestIndexInfo(t *testing.T) {
	s := newLoadedStore(t)

	info, err := s.IndexInfo(context.Background(), testIndex)
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.DocCount)
	assert.False(t, info.CreatedAt.IsZero())

	ok, err := s.IndexExists(context.Background(), testIndex)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.IndexExists(context.Background(), "other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPersistentReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewStore(Config{Path: dir})
	require.NoError(t, err)
	require.NoError(t, s.CreateIndex(ctx, testDefinition()))
	require.NoError(t, s.Bulk(ctx, testIndex, testDocs()))
	s.Close()

	reopened, err := NewStore(Config{Path: dir})
	require.NoError(t, err)
	defer reopened.Close()

	res, err := reopened.Search(ctx, &db.SearchRequest{
		Index: testIndex,
		Query: query.Term("genre.keyword", "thesis"),
		Size:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
}

func TestClosedStore(t *testing.T) {
	s, err := NewStore(Config{})
	require.NoError(t, err)
	s.Close()

	assert.ErrorIs(t, s.Ping(context.Background()), db.ErrUnavailable)
	_, err = s.Search(context.Background(), &db.SearchRequest{Index: testIndex, Query: query.MatchAll()})
	assert.ErrorIs(t, err, db.ErrUnavailable)
}
