package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripweaver/internal/models/db_models"
	"tripweaver/pkg/memcache"
)

type fakePOIRepo struct {
	rows      []*db_models.POI
	hidden    []*db_models.POI // reachable through ListByIDs only
	listCalls int
}

func (f *fakePOIRepo) ListByCity(_ context.Context, _ string, limit int) ([]*db_models.POI, error) {
	f.listCalls++
	if limit > len(f.rows) {
		limit = len(f.rows)
	}
	return f.rows[:limit], nil
}

func (f *fakePOIRepo) ListByIDs(_ context.Context, ids []string) ([]*db_models.POI, error) {
	var out []*db_models.POI
	for _, row := range append(f.rows, f.hidden...) {
		for _, id := range ids {
			if row.ID.String() == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

type fakeEmbeddingRepo struct {
	matches []db_models.PoiEmbedding
}

func (f *fakeEmbeddingRepo) ListByVector(_ pgvector.Vector, _ int) ([]db_models.PoiEmbedding, error) {
	return f.matches, nil
}

func (f *fakeEmbeddingRepo) Create(db_models.PoiEmbedding) error { return nil }

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) GetEmbedding(_ context.Context, _ string) (pgvector.Vector, error) {
	if f.err != nil {
		return pgvector.Vector{}, f.err
	}
	return pgvector.NewVector(make([]float32, 4)), nil
}

func poiRow(name string, categories ...string) *db_models.POI {
	return &db_models.POI{
		BaseModel:  db_models.BaseModel{ID: uuid.New()},
		Name:       name,
		CityID:     uuid.New(),
		Rating:     4,
		Photos:     []string{"p.jpg"},
		Categories: categories,
	}
}

func newTestDiscovery(pois *fakePOIRepo, embeddings *fakeEmbeddingRepo, embedder *fakeEmbedder) DiscoveryServiceInterface {
	return NewDiscoveryService(
		pois,
		embeddings,
		embedder,
		NewCandidateClassifier(engineTestTable()),
		memcache.NewCandidatePoolCache(),
	)
}

func TestFindCandidatesMapsRows(t *testing.T) {
	row := poiRow("Morning Cafe", "Cafe")
	row.ExternalID = "ext-1"
	row.OpeningHours = `{"periods":[{"day":1,"open":"0800","close":"1700"}],"weekday_text":["Monday: 8AM-5PM"]}`

	pois := &fakePOIRepo{rows: []*db_models.POI{row}}
	discovery := newTestDiscovery(pois, &fakeEmbeddingRepo{}, &fakeEmbedder{})

	pool, err := discovery.FindCandidates(context.Background(), testCity(), CandidateQuota{MinMeals: 1}, false)
	require.NoError(t, err)
	require.Len(t, pool, 1)

	c := pool[0]
	assert.Equal(t, row.ID.String(), c.ID)
	assert.Equal(t, []string{"ext-1"}, c.ExternalIDs)
	assert.Equal(t, "Morning Cafe", c.Name)
	assert.Equal(t, []string{"Cafe"}, c.Meta.Categories)
	require.NotNil(t, c.Hours)
	require.Len(t, c.Hours.Periods, 1)
	assert.Equal(t, "0800", c.Hours.Periods[0].Open)
}

func TestFindCandidatesUnparseableHours(t *testing.T) {
	row := poiRow("Broken Hours", "Cafe")
	row.OpeningHours = "not json"

	pois := &fakePOIRepo{rows: []*db_models.POI{row}}
	discovery := newTestDiscovery(pois, &fakeEmbeddingRepo{}, &fakeEmbedder{})

	pool, err := discovery.FindCandidates(context.Background(), testCity(), CandidateQuota{}, false)
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Nil(t, pool[0].Hours, "bad hour payloads degrade to always-open")
}

func TestFindCandidatesCaching(t *testing.T) {
	pois := &fakePOIRepo{rows: []*db_models.POI{poiRow("Morning Cafe", "Cafe"), poiRow("War Museum", "Museum")}}
	discovery := newTestDiscovery(pois, &fakeEmbeddingRepo{}, &fakeEmbedder{})

	quota := CandidateQuota{MinMeals: 1, MinActivities: 1}
	city := testCity()

	_, err := discovery.FindCandidates(context.Background(), city, quota, false)
	require.NoError(t, err)
	_, err = discovery.FindCandidates(context.Background(), city, quota, false)
	require.NoError(t, err)
	assert.Equal(t, 1, pois.listCalls, "second call hits the pool cache")

	_, err = discovery.FindCandidates(context.Background(), city, quota, true)
	require.NoError(t, err)
	assert.Equal(t, 2, pois.listCalls, "forced refresh bypasses the cache")
}

func TestFindCandidatesCacheMissOnUnmetQuota(t *testing.T) {
	pois := &fakePOIRepo{rows: []*db_models.POI{poiRow("Morning Cafe", "Cafe")}}
	discovery := newTestDiscovery(pois, &fakeEmbeddingRepo{}, &fakeEmbedder{})

	city := testCity()
	_, err := discovery.FindCandidates(context.Background(), city, CandidateQuota{MinMeals: 1}, false)
	require.NoError(t, err)

	// The cached pool has no activities, so a bigger quota re-queries.
	_, err = discovery.FindCandidates(context.Background(), city, CandidateQuota{MinMeals: 1, MinActivities: 1}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, pois.listCalls)
}

func TestFindCandidatesEmbeddingBias(t *testing.T) {
	listed := poiRow("Morning Cafe", "Cafe")
	biased := poiRow("Hidden Garden", "Garden")
	pois := &fakePOIRepo{
		rows:   []*db_models.POI{listed},
		hidden: []*db_models.POI{biased},
	}
	embeddings := &fakeEmbeddingRepo{matches: []db_models.PoiEmbedding{
		{PoiID: biased.ID.String()},
		{PoiID: listed.ID.String()}, // already listed, must not duplicate
	}}
	discovery := newTestDiscovery(pois, embeddings, &fakeEmbedder{})

	pool, err := discovery.FindCandidates(context.Background(), testCity(),
		CandidateQuota{MinMeals: 1, BiasText: "quiet nature"}, false)
	require.NoError(t, err)
	require.Len(t, pool, 2, "vector matches join the pool without duplicates")

	names := map[string]bool{}
	for _, c := range pool {
		names[c.Name] = true
	}
	assert.True(t, names["Hidden Garden"])
}

func TestFindCandidatesEmbeddingFailureDegrades(t *testing.T) {
	pois := &fakePOIRepo{rows: []*db_models.POI{poiRow("Morning Cafe", "Cafe")}}
	discovery := newTestDiscovery(pois, &fakeEmbeddingRepo{}, &fakeEmbedder{err: errors.New("quota exceeded")})

	pool, err := discovery.FindCandidates(context.Background(), testCity(),
		CandidateQuota{MinMeals: 1, BiasText: "quiet nature"}, false)
	require.NoError(t, err, "a failing embedder never fails discovery")
	assert.Len(t, pool, 1)
}
