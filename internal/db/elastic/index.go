package elastic

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/olivere/elastic/v7"

	"github.com/kailas-cloud/aristotle/internal/db"
)

// keywordIgnoreAbove matches the default dynamic mapping of Elasticsearch.
const keywordIgnoreAbove = 256

// CreateIndex creates an index whose mapping mirrors the definition.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}

	exists, err := s.IndexExists(ctx, def.Name)
	if err != nil {
		return err
	}
	if exists {
		return db.ErrIndexExists
	}

	res, err := s.client.CreateIndex(def.Name).BodyJson(mappingBody(def)).Do(ctx)
	if err != nil {
		return wrapErr(db.OpCreateIndex, err)
	}
	if !res.Acknowledged {
		return &db.Error{Op: db.OpCreateIndex, Err: fmt.Errorf("index %s not acknowledged", def.Name)}
	}
	return nil
}

// IndexExists reports whether the index exists.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	ok, err := s.client.IndexExists(name).Do(ctx)
	if err != nil {
		return false, wrapErr(db.OpIndexInfo, err)
	}
	return ok, nil
}

// IndexInfo reports the creation time and document count of an index.
func (s *Store) IndexInfo(ctx context.Context, name string) (*db.IndexInfo, error) {
	settings, err := s.client.IndexGetSettings(name).Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return nil, db.ErrIndexNotFound
		}
		return nil, wrapErr(db.OpIndexInfo, err)
	}
	resp, ok := settings[name]
	if !ok {
		return nil, db.ErrIndexNotFound
	}

	info := &db.IndexInfo{Name: name}
	if created, ok := creationDate(resp.Settings); ok {
		info.CreatedAt = created
	}

	count, err := s.client.Count(name).Do(ctx)
	if err != nil {
		return nil, wrapErr(db.OpIndexInfo, err)
	}
	info.DocCount = count

	return info, nil
}

// Bulk indexes documents under their ids and refreshes the index.
func (s *Store) Bulk(ctx context.Context, index string, docs []db.Hit) error {
	if len(docs) == 0 {
		return nil
	}

	bulk := s.client.Bulk().Index(index).Refresh("true")
	for _, d := range docs {
		bulk.Add(elastic.NewBulkIndexRequest().Id(d.ID).Doc(d.Source))
	}

	res, err := bulk.Do(ctx)
	if err != nil {
		return wrapErr(db.OpBulk, err)
	}
	if failed := res.Failed(); len(failed) > 0 {
		reason := "unknown"
		if failed[0].Error != nil {
			reason = failed[0].Error.Reason
		}
		return &db.Error{
			Op:  db.OpBulk,
			Err: fmt.Errorf("%d of %d documents failed, first: %s: %s", len(failed), len(docs), failed[0].Id, reason),
		}
	}
	return nil
}

func mappingBody(def *db.IndexDefinition) map[string]any {
	props := make(map[string]any, len(def.Fields))
	for _, f := range def.Fields {
		props[f.Name] = fieldMapping(f.Type)
	}
	return map[string]any{
		"mappings": map[string]any{
			"properties": props,
		},
	}
}

func fieldMapping(t db.IndexFieldType) map[string]any {
	switch t {
	case db.IndexFieldKeyword:
		return map[string]any{
			"type": "text",
			"fields": map[string]any{
				"keyword": map[string]any{"type": "keyword", "ignore_above": keywordIgnoreAbove},
			},
		}
	case db.IndexFieldNumeric:
		return map[string]any{"type": "long"}
	default:
		return map[string]any{"type": "text"}
	}
}

// creationDate reads index.creation_date (epoch millis as a string) from
// nested or flat settings.
func creationDate(settings map[string]any) (time.Time, bool) {
	var raw any
	if idx, ok := settings["index"].(map[string]any); ok {
		raw = idx["creation_date"]
	} else {
		raw = settings["index.creation_date"]
	}
	str, ok := raw.(string)
	if !ok {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}
