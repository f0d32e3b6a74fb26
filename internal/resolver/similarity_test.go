package resolver

import "testing"

func TestBestMatchPicksClosestName(t *testing.T) {
	s := LevenshteinStrategy{}
	candidates := []string{"Boeing 737 MAX 8", "Boeing 737 MAX 8 200"}

	if got := s.BestMatch(candidates, "737 MAX 8 200"); got != 1 {
		t.Errorf("BestMatch = %d, want 1", got)
	}
	if got := s.BestMatch(candidates, "Boeing 737 MAX 8"); got != 0 {
		t.Errorf("BestMatch = %d, want 0", got)
	}
}

func TestBestMatchEmptyInputs(t *testing.T) {
	s := LevenshteinStrategy{}

	if got := s.BestMatch(nil, "anything"); got != -1 {
		t.Errorf("no candidates should return -1, got %d", got)
	}
	if got := s.BestMatch([]string{"A320", "A321"}, ""); got != 0 {
		t.Errorf("empty hint should return 0, got %d", got)
	}
	if got := s.BestMatch([]string{"A320", "A321"}, "   "); got != 0 {
		t.Errorf("whitespace hint should return 0, got %d", got)
	}
}

func TestBestMatchCaseAndSpacingInsensitive(t *testing.T) {
	s := LevenshteinStrategy{}
	candidates := []string{"Airbus A320neo", "Airbus A321neo"}

	if got := s.BestMatch(candidates, "airbus   a321NEO"); got != 1 {
		t.Errorf("BestMatch = %d, want 1", got)
	}
}

func TestBestMatchTieGoesToFirst(t *testing.T) {
	s := LevenshteinStrategy{}
	candidates := []string{"A320", "A320"}

	if got := s.BestMatch(candidates, "A320"); got != 0 {
		t.Errorf("tie should keep first candidate, got %d", got)
	}
}

func TestSimilarityBounds(t *testing.T) {
	if got := similarity("ABC", "ABC"); got != 1 {
		t.Errorf("identical strings = %v, want 1", got)
	}
	if got := similarity("", ""); got != 1 {
		t.Errorf("empty strings = %v, want 1", got)
	}
	if got := similarity("ABC", "XYZ"); got != 0 {
		t.Errorf("disjoint strings = %v, want 0", got)
	}
}
