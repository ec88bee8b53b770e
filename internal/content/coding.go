package content

import "strings"

// Problem is one coding-practice problem.
type Problem struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
	Rating     int      `json:"rating"`
	URL        string   `json:"url"`
}

// Curated problem sets, difficulty-bucketed. A live judge integration can
// replace this source without changing the API shape.
var codingProblems = map[string][]Problem{
	"easy": {
		{ID: "cf-1", Title: "Watermelon", Difficulty: "Easy", Tags: []string{"implementation", "math"}, Rating: 800, URL: "https://codeforces.com/problemset/problem/4/A"},
		{ID: "cf-2", Title: "Bit++", Difficulty: "Easy", Tags: []string{"implementation"}, Rating: 900, URL: "https://codeforces.com/problemset/problem/282/A"},
		{ID: "cf-3", Title: "Team", Difficulty: "Easy", Tags: []string{"implementation", "strings"}, Rating: 1000, URL: "https://codeforces.com/problemset/problem/231/A"},
	},
	"medium": {
		{ID: "cf-4", Title: "Two Bags of Potatoes", Difficulty: "Medium", Tags: []string{"math", "implementation"}, Rating: 1200, URL: "https://codeforces.com/problemset/problem/239/A"},
		{ID: "cf-5", Title: "Helpful Maths", Difficulty: "Medium", Tags: []string{"strings", "sorting"}, Rating: 1100, URL: "https://codeforces.com/problemset/problem/339/A"},
	},
	"hard": {
		{ID: "cf-6", Title: "Registration System", Difficulty: "Hard", Tags: []string{"data structures", "hashing"}, Rating: 1500, URL: "https://codeforces.com/problemset/problem/4/C"},
		{ID: "cf-7", Title: "Round Dance", Difficulty: "Hard", Tags: []string{"graphs", "dsu"}, Rating: 1600, URL: "https://codeforces.com/problemset/problem/1833/E"},
	},
}

// CodingProblems returns problems matching a difficulty filter. "All" (or
// empty) returns every bucket in easy-to-hard order.
func CodingProblems(difficulty string) []Problem {
	key := strings.ToLower(strings.TrimSpace(difficulty))
	switch key {
	case "", "all":
		var out []Problem
		for _, bucket := range []string{"easy", "medium", "hard"} {
			out = append(out, codingProblems[bucket]...)
		}
		return out
	default:
		bucket := codingProblems[key]
		out := make([]Problem, len(bucket))
		copy(out, bucket)
		return out
	}
}
