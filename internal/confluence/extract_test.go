package confluence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	markup := `<h1>Project   Overview</h1>
		<script>alert("nope")</script>
		<style>h1 { color: red }</style>
		<p>The project ships <b>quarterly</b>.</p>
		<p>   </p>`

	got := ExtractText(markup)

	assert.Equal(t, "Project Overview The project ships quarterly .", got)
	assert.NotContains(t, got, "alert")
	assert.NotContains(t, got, "color")
}

func TestExtractTextPlainInput(t *testing.T) {
	assert.Equal(t, "just words here", ExtractText("  just \n\t words   here "))
	assert.Equal(t, "", ExtractText(""))
}
