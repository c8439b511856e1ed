package textutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Se7en:", "se7en"},
		{"  Amélie!  ", "amlie"},
		{"Tom & Jerry", "tom and jerry"},
		{"Schindler’s List", "schindler's list"},
		{"Don`t Look Now", "don't look now"},
		{"Spider-Man: No Way Home", "spider man no way home"},
		{"Mission: Impossible — Fallout", "mission impossible fallout"},
		{"“Quoted” Title", "quoted title"},
		{"WALL·E", "walle"},
		{"Tabs\tand\nnewlines", "tabs and newlines"},
		{"a · b", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"Amélie!", "Mission: Impossible — Fallout", "a · b", "  ’Twas & Co.  ", "8½ Women"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeKeepsAccentsDistinct(t *testing.T) {
	if Normalize("Amélie!") == Normalize("amelie") {
		t.Fatal("expected accented and unaccented titles to normalize differently")
	}
}

func TestTitlesMatch(t *testing.T) {
	tests := []struct {
		search    string
		candidate string
		want      bool
	}{
		{"Godfather", "The Godfather", true},
		{"The Godfather", "godfather", true},
		{"A Clockwork Orange", "Clockwork Orange", true},
		{"Spider-Man: Into the Spider-Verse", "Spider Man Into the Spider Verse", true},
		{"Linda Linda Linda", "The Story of Linda", false},
		{"Yojimbo", "Zatoichi Meets Yojimbo", false},
		{"Cure", "The Cure for Wellness", false},
		{"Amélie", "Amelie", false},
		{"", "The Godfather", false},
		{"The", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.search+"|"+tt.candidate, func(t *testing.T) {
			if got := TitlesMatch(tt.search, tt.candidate); got != tt.want {
				t.Fatalf("TitlesMatch(%q, %q) = %v, want %v", tt.search, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestTitleSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"equal after normalize", "The Matrix", "the matrix!", 100},
		{"contained short title", "Cure", "The Cure for Wellness", 5},
		{"repeated token", "Linda Linda Linda", "The Story of Linda", 24},
		{"leading article", "Seven Samurai", "The Seven Samurai", 51},
		{"disjoint", "Stalker", "Solaris", 0},
		{"empty side", "", "Solaris", 0},
		{"only short tokens", "a", "b", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleSimilarity(tt.a, tt.b); got != tt.want {
				t.Fatalf("TitleSimilarity(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTitleSimilarityIsSymmetricAndBounded(t *testing.T) {
	pairs := [][2]string{
		{"Cure", "The Cure for Wellness"},
		{"In the Mood for Love", "Mood Indigo"},
		{"Paris, Texas", "Texas Chainsaw Massacre"},
	}
	for _, p := range pairs {
		ab := TitleSimilarity(p[0], p[1])
		ba := TitleSimilarity(p[1], p[0])
		if ab != ba {
			t.Fatalf("similarity not symmetric for %v: %d vs %d", p, ab, ba)
		}
		if ab < 0 || ab > 100 {
			t.Fatalf("similarity out of range for %v: %d", p, ab)
		}
	}
}

func TestTitlesWithoutComparableText(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"same non-latin title", "七人の侍", "七人の侍"},
		{"different non-latin titles", "七人の侍", "아저씨"},
		{"punctuation only", "?!", "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Normalize(tt.a) != "" || Normalize(tt.b) != "" {
				t.Fatalf("expected both titles to normalize to empty")
			}
			if TitlesMatch(tt.a, tt.b) {
				t.Fatalf("TitlesMatch(%q, %q) = true, want false", tt.a, tt.b)
			}
			if got := TitleSimilarity(tt.a, tt.b); got != 0 {
				t.Fatalf("TitleSimilarity(%q, %q) = %d, want 0", tt.a, tt.b, got)
			}
		})
	}
}
