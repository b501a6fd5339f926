package ranking

import (
	"reflect"
	"testing"

	"github.com/Bearmun/vossenjacht/internal/domain/model"
)

func entry(participant string, distance float64, duration int) model.Entry {
	return model.Entry{Participant: participant, Distance: distance, Duration: duration}
}

func ranksByParticipant(result Result) map[string]int {
	ranks := make(map[string]int, len(result.Rows))
	for _, row := range result.Rows {
		ranks[row.Participant] = row.Rank
	}
	return ranks
}

func TestRankDenseWithTies(t *testing.T) {
	entries := []model.Entry{
		entry("A", 50, 60),
		entry("B", 50, 60),
		entry("C", 40, 30),
		entry("D", 30, 10),
	}
	result := Rank(entries, DistanceFirst)

	// Ascending by (distance, duration): D, C, then A and B tied. Tied
	// score pairs share a rank and the next distinct pair advances by
	// exactly one.
	want := map[string]int{"D": 1, "C": 2, "A": 3, "B": 3}
	if got := ranksByParticipant(result); !reflect.DeepEqual(got, want) {
		t.Errorf("ranks = %v, want %v", got, want)
	}
	if result.TotalDistance != 170 {
		t.Errorf("total = %v, want 170", result.TotalDistance)
	}
}

func TestRankTieAtFirstDoesNotSkip(t *testing.T) {
	entries := []model.Entry{
		entry("A", 10, 5),
		entry("B", 10, 5),
		entry("C", 20, 5),
	}
	result := Rank(entries, DistanceFirst)
	want := map[string]int{"A": 1, "B": 1, "C": 2}
	if got := ranksByParticipant(result); !reflect.DeepEqual(got, want) {
		t.Errorf("ranks = %v, want %v", got, want)
	}
}

func TestRankContiguousNoGaps(t *testing.T) {
	entries := []model.Entry{
		entry("a", 5, 1), entry("b", 5, 1), entry("c", 5, 1),
		entry("d", 7, 2), entry("e", 7, 2),
		entry("f", 7, 9),
		entry("g", 12, 0),
	}
	result := Rank(entries, DistanceFirst)

	distinct := map[int]bool{}
	maxRank := 0
	for _, row := range result.Rows {
		distinct[row.Rank] = true
		if row.Rank > maxRank {
			maxRank = row.Rank
		}
	}
	// Distinct ranks = distinct score pairs, contiguous from 1.
	if len(distinct) != 4 || maxRank != 4 {
		t.Fatalf("distinct ranks = %d (max %d), want 4 contiguous", len(distinct), maxRank)
	}
	for i := 1; i <= maxRank; i++ {
		if !distinct[i] {
			t.Errorf("rank %d missing from sequence", i)
		}
	}
}

func TestRankSecondaryKeyBreaksTies(t *testing.T) {
	entries := []model.Entry{
		entry("late", 50, 120),
		entry("early", 50, 60),
		entry("short", 30, 90),
	}
	result := Rank(entries, DistanceFirst)

	order := []string{}
	for _, row := range result.Rows {
		order = append(order, row.Participant)
	}
	if !reflect.DeepEqual(order, []string{"short", "early", "late"}) {
		t.Errorf("order = %v, want [short early late]", order)
	}
	want := map[string]int{"short": 1, "early": 2, "late": 3}
	if got := ranksByParticipant(result); !reflect.DeepEqual(got, want) {
		t.Errorf("ranks = %v, want %v", got, want)
	}
}

func TestRankDurationFirst(t *testing.T) {
	entries := []model.Entry{
		entry("fast-long", 80, 30),
		entry("slow-short", 20, 90),
	}
	result := Rank(entries, DurationFirst)
	want := map[string]int{"fast-long": 1, "slow-short": 2}
	if got := ranksByParticipant(result); !reflect.DeepEqual(got, want) {
		t.Errorf("ranks = %v, want %v", got, want)
	}
}

func TestRankEmptyScope(t *testing.T) {
	result := Rank(nil, DistanceFirst)
	if len(result.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(result.Rows))
	}
	if result.TotalDistance != 0 {
		t.Errorf("total = %v, want 0", result.TotalDistance)
	}
}

func TestRankIdempotent(t *testing.T) {
	entries := []model.Entry{
		entry("A", 50, 60), entry("B", 50, 60), entry("C", 40, 30), entry("D", 30, 10),
	}
	first := Rank(entries, DistanceFirst)
	second := Rank(entries, DistanceFirst)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-ranking an unmutated scope changed the result:\n%v\n%v", first, second)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	entries := []model.Entry{entry("A", 50, 60), entry("B", 10, 5)}
	Rank(entries, DistanceFirst)
	if entries[0].Participant != "A" || entries[1].Participant != "B" {
		t.Error("Rank reordered the caller's slice")
	}
}

func TestRankPodiumFlag(t *testing.T) {
	entries := []model.Entry{
		entry("p1", 1, 0), entry("p2", 2, 0), entry("p3", 3, 0), entry("p4", 4, 0),
	}
	result := Rank(entries, DistanceFirst)
	for _, row := range result.Rows {
		wantPodium := row.Rank <= 3
		if row.Podium != wantPodium {
			t.Errorf("rank %d podium = %v, want %v", row.Rank, row.Podium, wantPodium)
		}
	}
}

func TestRankTotalRounded(t *testing.T) {
	entries := []model.Entry{entry("a", 50.5, 0), entry("b", 10.4, 0), entry("c", 0.1, 0)}
	result := Rank(entries, DistanceFirst)
	if result.TotalDistance != 61.0 {
		t.Errorf("total = %v, want 61.0", result.TotalDistance)
	}
}

func TestOrderFor(t *testing.T) {
	if OrderFor(model.ScoringDistance) != DistanceFirst {
		t.Error("distance type should rank distance first")
	}
	if OrderFor(model.ScoringDuration) != DurationFirst {
		t.Error("duration type should rank duration first")
	}
	// The mixed type defaults to distance first.
	if OrderFor(model.ScoringBoth) != DistanceFirst {
		t.Error("both type should rank distance first")
	}
}
