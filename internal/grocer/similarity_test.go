package grocer

import "testing"

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "tomato", b: "tomato", want: 1},
		{name: "identical after normalization", a: " Tomato ", b: "tomato", want: 1},
		{name: "empty side", a: "", b: "tomato", want: 0},
		{name: "both empty", a: "", b: "", want: 1},
		{name: "containment", a: "tomato", b: "cherry tomato", want: containmentScore},
		{name: "cjk identical", a: "西红柿", b: "西红柿", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityEditDistance(t *testing.T) {
	// "tomato" vs "tomatoes": "tomato" is a substring, so containment wins.
	// Use pairs without containment to exercise the Levenshtein path.
	got := Similarity("potato", "tomato")
	// distance 2 over length 6
	want := 1 - 2.0/6.0
	if got != want {
		t.Errorf("Similarity(potato, tomato) = %v, want %v", got, want)
	}

	if got := Similarity("abc", "xyz"); got != 0 {
		t.Errorf("Similarity of disjoint strings = %v, want 0", got)
	}
}

func TestSimilaritySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"tomato", "tomatoes"},
		{"chicken thigh", "chicken leg"},
		{"scallion", "shallot"},
		{"西红柿", "西红柿酱"},
		{"", "salt"},
	}

	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %v but Similarity(%q, %q) = %v",
				p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{a: "", b: "", want: 0},
		{a: "", b: "abc", want: 3},
		{a: "kitten", b: "sitting", want: 3},
		{a: "flaw", b: "lawn", want: 2},
		{a: "葱", b: "大葱", want: 1},
	}

	for _, tt := range tests {
		if got := levenshtein([]rune(tt.a), []rune(tt.b)); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
