package record

import "testing"

func TestBest_LowerRankWins(t *testing.T) {
	if got := Best(RCT, Review); got != RCT {
		t.Errorf("expected rct to beat review, got %s", got)
	}
	if got := Best(Other, Guideline); got != Guideline {
		t.Errorf("expected guideline to beat other, got %s", got)
	}
}

func TestNewFromAdapter_SeedsFoundIn(t *testing.T) {
	r := NewFromAdapter(SourcePubMed)
	if r.Source != SourcePubMed {
		t.Errorf("expected source pubmed, got %s", r.Source)
	}
	if !r.HasSource(SourcePubMed) {
		t.Error("expected FoundIn to contain the adapter's own source")
	}
	if len(r.FoundIn) != 1 {
		t.Errorf("expected exactly one entry in FoundIn, got %d", len(r.FoundIn))
	}
}

func TestSortByYearDescending_MissingYearTreatedAsZero(t *testing.T) {
	recs := []Record{
		{ID: "a", Year: IntPtr(2010)},
		{ID: "b", Year: nil},
		{ID: "c", Year: IntPtr(2020)},
	}
	SortByYearDescending(recs)

	want := []string{"c", "a", "b"}
	for i, id := range want {
		if recs[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, recs[i].ID)
		}
	}
}

func TestDisplayOrder_MatchesEVRank(t *testing.T) {
	for i, lvl := range DisplayOrder {
		if EVRank[lvl] != i {
			t.Errorf("DisplayOrder[%d] = %s but EVRank[%s] = %d", i, lvl, lvl, EVRank[lvl])
		}
	}
}
