package tech

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"exact alias", "react", "react"},
		{"mixed case with suffix", "Next.JS", "nextjs"},
		{"dotted form", "node.js", "nodejs"},
		{"embedded whitespace", "  tailwind css ", "tailwindcss"},
		{"short alias", "ts", "typescript"},
		{"unknown technology", "cobol-mainframe", ""},
		{"empty input", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.raw))
		})
	}
}

func TestDocLink(t *testing.T) {
	assert.Equal(t, "https://react.dev/", DocLink("react"))
	assert.Equal(t, "#", DocLink("unknown-key"))
	assert.Equal(t, "#", DocLink(""))
}

func TestIconURL(t *testing.T) {
	assert.Equal(t,
		"https://cdn.jsdelivr.net/gh/devicons/devicon/icons/react/react-original.svg",
		IconURL("react"))
	assert.Equal(t, PlaceholderIcon, IconURL(""))
}

func TestLogos(t *testing.T) {
	logos := Logos([]string{"React", "made-up-tech"})

	assert.Len(t, logos, 2)
	assert.Equal(t, "React", logos[0].Tech)
	assert.Contains(t, logos[0].URL, "/react/react-original.svg")
	assert.Equal(t, "https://react.dev/", logos[0].Doc)

	assert.Equal(t, "made-up-tech", logos[1].Tech)
	assert.Equal(t, PlaceholderIcon, logos[1].URL)
	assert.Equal(t, "#", logos[1].Doc)
}
