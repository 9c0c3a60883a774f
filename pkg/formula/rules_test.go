package formula

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassName(t *testing.T) {
	tests := []struct {
		name string
		repo string
		want string
	}{
		{"hyphen_and_underscore", "my-cool_app", "MyCoolApp"},
		{"digit_boundary", "my_app-v2", "MyAppV2"},
		{"plain", "tool", "Tool"},
		{"period_delimiter", "my.app", "MyApp"},
		{"space_delimiter", "my app", "MyApp"},
		{"already_capitalized", "MyApp", "Myapp"},
		{"consecutive_delimiters", "my--weird__app", "MyWeirdApp"},
		{"letter_after_digit", "app2x", "App2X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassName(tt.repo))
		})
	}
}

func TestClassNameContainsNoDelimiters(t *testing.T) {
	for _, repo := range []string{"a-b_c.d e", "one.two-three", "x_y z"} {
		got := ClassName(repo)
		assert.NotContains(t, got, "-")
		assert.NotContains(t, got, "_")
		assert.NotContains(t, got, ".")
		assert.NotContains(t, got, " ")
	}
}

func TestFormatDescription(t *testing.T) {
	tests := []struct {
		name string
		desc string
		repo string
		want string
	}{
		{
			name: "strips_punctuation_and_article",
			desc: "A fast CLI tool.",
			repo: "tool",
			want: "Fast cli tool",
		},
		{
			name: "leading_the_removed",
			desc: "The best formatter around!",
			repo: "fmt",
			want: "Best formatter around",
		},
		{
			name: "case_insensitive_article",
			desc: "THE quick one",
			repo: "quick",
			want: "Quick one",
		},
		{
			name: "no_article_capitalizes_only",
			desc: "manages dotfiles",
			repo: "dotman",
			want: "Manages dotfiles",
		},
		{
			name: "article_prefix_word_kept",
			desc: "theme switcher",
			repo: "themer",
			want: "Theme switcher",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDescription(tt.desc, tt.repo))
		})
	}
}

func TestFormatDescriptionTruncates(t *testing.T) {
	repo := "my-averagely-named-repo"
	long := strings.Repeat("word ", 40)

	got := FormatDescription(long, repo)

	budget := 80 - len(repo) + 2
	assert.LessOrEqual(t, len(got), budget)
}

func TestFormatDescriptionNeverContainsPunctuation(t *testing.T) {
	for _, desc := range []string{
		"Ends with a period.",
		"Excited!!! About!! Everything!",
		"Dots.every.where.",
	} {
		got := FormatDescription(desc, "tool")
		assert.NotContains(t, got, ".")
		assert.NotContains(t, got, "!")
	}
}

func TestFormatDescriptionArticleNeverLeads(t *testing.T) {
	for _, desc := range []string{"a thing", "A thing", "the thing", "The thing", "THE thing"} {
		got := FormatDescription(desc, "tool")
		first := strings.ToLower(strings.SplitN(got, " ", 2)[0])
		assert.NotEqual(t, "a", first)
		assert.NotEqual(t, "the", first)
	}
}

func TestHomepage(t *testing.T) {
	assert.Equal(t, "https://github.com/acme/tool", Homepage("acme", "tool"))
}
