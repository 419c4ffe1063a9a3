package playground

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderer_SortsLetterNamesFirst(t *testing.T) {
	r := NewRenderer()

	out := r.FormatSubcommands([]HelpEntry{
		{Name: "b", Description: "second"},
		{Name: "a", Description: "first"},
		{Name: "1x", Description: "numeric"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "    a"))
	assert.True(t, strings.HasPrefix(lines[1], "    b"))
	assert.True(t, strings.HasPrefix(lines[2], "    1x"), "names with non-letter characters sort to the end")
}

func TestRenderer_NonLetterNamesKeepInputOrder(t *testing.T) {
	r := NewRenderer()

	out := r.FormatSubcommands([]HelpEntry{
		{Name: "9z", Description: ""},
		{Name: "1a", Description: ""},
		{Name: "zz", Description: ""},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "    zz"))
	assert.True(t, strings.HasPrefix(lines[1], "    9z"), "non-letter names stay in input order among themselves")
	assert.True(t, strings.HasPrefix(lines[2], "    1a"))
}

func TestRenderer_HyphenatedNamesSortWithLetters(t *testing.T) {
	r := NewRenderer()

	out := r.FormatSubcommands([]HelpEntry{
		{Name: "wallet", Description: ""},
		{Name: "priority-fee", Description: ""},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "    priority-fee"))
	assert.True(t, strings.HasPrefix(lines[1], "    wallet"))
}

func TestRenderer_PadsNameColumn(t *testing.T) {
	r := NewRenderer()

	out := r.FormatSubcommands([]HelpEntry{{Name: "connect", Description: "Connect the wallet"}})
	assert.Equal(t, "    connect"+strings.Repeat(" ", 18)+"Connect the wallet\n", out)
}

func TestRenderer_PaddingDegeneratesForLongNames(t *testing.T) {
	r := NewRenderer()

	name := strings.Repeat("x", 25)
	out := r.FormatSubcommands([]HelpEntry{{Name: name, Description: "desc"}})
	assert.Equal(t, "    "+name+"desc\n", out, "a name of 25+ characters collapses the padding")
}

func TestRenderer_UsageBlock(t *testing.T) {
	r := NewRenderer()

	out := r.UsageBlock("wallet", []HelpEntry{{Name: "connect", Description: "Connect the wallet"}})
	assert.True(t, strings.HasPrefix(out, "Usage: wallet <COMMAND>\n\nAvailable subcommands:\n"))
	assert.Contains(t, out, "    connect")
}
