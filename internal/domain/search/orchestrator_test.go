package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medsearch/aggregator/internal/domain/record"
	"github.com/medsearch/aggregator/internal/platform/translate"
)

// fakeAdapter is a sources.Adapter test double that records every call it
// receives and returns either a canned record or a canned error.
type fakeAdapter struct {
	name record.Source
	rec  func(parts []string) (record.Record, bool)
	err  error

	mu    sync.Mutex
	calls [][]string
}

func (f *fakeAdapter) Name() record.Source { return f.name }

func (f *fakeAdapter) Search(ctx context.Context, parts []string) ([]record.Record, error) {
	f.mu.Lock()
	cp := append([]string{}, parts...)
	f.calls = append(f.calls, cp)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if f.rec == nil {
		return nil, nil
	}
	r, ok := f.rec(parts)
	if !ok {
		return nil, nil
	}
	return []record.Record{r}, nil
}

func (f *fakeAdapter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func oneRecordAdapter(src record.Source, id string) *fakeAdapter {
	return &fakeAdapter{
		name: src,
		rec: func(parts []string) (record.Record, bool) {
			r := record.NewFromAdapter(src)
			r.ID = id
			r.Title = id + " title"
			r.EvidenceLevel = record.Observational
			return r, true
		},
	}
}

func newTestOrchestrator(pubmed, jstage, s2, openalex, cinii, epmc *fakeAdapter) *Orchestrator {
	return &Orchestrator{
		PubMed:    pubmed,
		JStage:    jstage,
		S2:        s2,
		OpenAlex:  openalex,
		CiNii:     cinii,
		EuropePMC: epmc,
		Translate: translate.NewClient(""),
	}
}

func TestS1_SixAdaptersEachReturnOneNonOverlappingRecord(t *testing.T) {
	pubmed := oneRecordAdapter(record.SourcePubMed, "p1")
	jstage := oneRecordAdapter(record.SourceJStage, "j1")
	s2 := oneRecordAdapter(record.SourceS2, "s1")
	openalex := oneRecordAdapter(record.SourceOpenAlex, "o1")
	cinii := oneRecordAdapter(record.SourceCiNii, "c1")
	epmc := oneRecordAdapter(record.SourceEuropePMC, "e1")

	o := newTestOrchestrator(pubmed, jstage, s2, openalex, cinii, epmc)
	o.Synonyms = synonymlessIndex()

	resp, err := o.Run(context.Background(), Request{Q: "stroke rehabilitation"})
	require.NoError(t, err)

	assert.Equal(t, 6, resp.TotalCount)
	assert.Nil(t, resp.Multilingual)
	assert.Equal(t, 1, resp.Sources.Counts[record.SourcePubMed])
	assert.Equal(t, 1, resp.Sources.Counts[record.SourceJStage])
	assert.Equal(t, 1, resp.Sources.Counts[record.SourceS2])
	assert.Equal(t, 1, resp.Sources.Counts[record.SourceOpenAlex])
	assert.Equal(t, 1, resp.Sources.Counts[record.SourceCiNii])
	assert.Equal(t, 1, resp.Sources.Counts[record.SourceEuropePMC])
}

func TestS2_JapaneseQueryDispatchesEightTasks(t *testing.T) {
	translated := "stroke rehabilitation"
	translator := &stubTranslateServer{t: t, response: translated}
	srv := translator.start()
	defer srv.Close()

	pubmed := &fakeAdapter{name: record.SourcePubMed}
	jstage := &fakeAdapter{name: record.SourceJStage}
	s2 := &fakeAdapter{name: record.SourceS2}
	openalex := &fakeAdapter{name: record.SourceOpenAlex}
	cinii := &fakeAdapter{name: record.SourceCiNii}
	epmc := &fakeAdapter{name: record.SourceEuropePMC}

	o := newTestOrchestrator(pubmed, jstage, s2, openalex, cinii, epmc)
	o.Synonyms = synonymlessIndex()
	o.Translate = translate.NewClient(srv.URL)

	resp, err := o.Run(context.Background(), Request{Q: "脳卒中 リハビリテーション"})
	require.NoError(t, err)

	assert.Equal(t, 1, pubmed.callCount())
	assert.Equal(t, 1, s2.callCount())
	assert.Equal(t, 1, jstage.callCount())
	assert.Equal(t, 1, cinii.callCount())
	assert.Equal(t, 2, openalex.callCount())
	assert.Equal(t, 2, epmc.callCount())
	assert.Nil(t, resp.Multilingual)
}

func TestS3_MultilingualDispatchesTwelveTasks(t *testing.T) {
	translator := &stubTranslateServer{t: t, response: "変形性膝関節症"}
	srv := translator.start()
	defer srv.Close()

	pubmed := &fakeAdapter{name: record.SourcePubMed}
	jstage := &fakeAdapter{name: record.SourceJStage}
	s2 := &fakeAdapter{name: record.SourceS2}
	openalex := &fakeAdapter{name: record.SourceOpenAlex}
	cinii := &fakeAdapter{name: record.SourceCiNii}
	epmc := &fakeAdapter{name: record.SourceEuropePMC}

	o := newTestOrchestrator(pubmed, jstage, s2, openalex, cinii, epmc)
	o.Synonyms = synonymlessIndex()
	o.Translate = translate.NewClient(srv.URL)

	resp, err := o.Run(context.Background(), Request{Disease: "knee osteoarthritis", Multilingual: true})
	require.NoError(t, err)

	for _, a := range []*fakeAdapter{pubmed, jstage, s2, openalex, cinii, epmc} {
		assert.Equal(t, 2, a.callCount())
	}
	require.NotNil(t, resp.Multilingual)
	assert.Equal(t, "変形性膝関節症", resp.Multilingual.Translated["disease"])
}

func TestS6_PartialFailureStillReturns200WithReducedCount(t *testing.T) {
	pubmed := oneRecordAdapter(record.SourcePubMed, "p1")
	jstage := oneRecordAdapter(record.SourceJStage, "j1")
	s2 := &fakeAdapter{name: record.SourceS2, err: errors.New("s2 exploded")}
	openalex := oneRecordAdapter(record.SourceOpenAlex, "o1")
	cinii := oneRecordAdapter(record.SourceCiNii, "c1")
	epmc := oneRecordAdapter(record.SourceEuropePMC, "e1")

	o := newTestOrchestrator(pubmed, jstage, s2, openalex, cinii, epmc)
	o.Synonyms = synonymlessIndex()

	resp, err := o.Run(context.Background(), Request{Q: "stroke"})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.TotalCount)
	assert.Contains(t, resp.Sources.Errors["s2"], "s2 exploded")
}

func TestRun_NoQueryPartsIsInputError(t *testing.T) {
	o := newTestOrchestrator(&fakeAdapter{}, &fakeAdapter{}, &fakeAdapter{}, &fakeAdapter{}, &fakeAdapter{}, &fakeAdapter{})
	o.Synonyms = synonymlessIndex()

	_, err := o.Run(context.Background(), Request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoQueryParts)
}

func TestGroupByEvidenceLevel_AllEightBucketsPresentAndSortedByYear(t *testing.T) {
	recs := []record.Record{
		{EvidenceLevel: record.RCT, Year: record.IntPtr(2010)},
		{EvidenceLevel: record.RCT, Year: record.IntPtr(2020)},
		{EvidenceLevel: record.SRMA, Year: nil},
	}
	grouped := groupByEvidenceLevel(recs)

	assert.Len(t, grouped, 8)
	assert.Equal(t, 2020, *grouped[record.RCT][0].Year)
	assert.Equal(t, 2010, *grouped[record.RCT][1].Year)
	assert.Empty(t, grouped[record.Guideline])
}
