package playground

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// HelpEntry is one row of a sub-command listing.
type HelpEntry struct {
	Name        string
	Description string
}

const (
	helpIndent     = "    "
	helpNameColumn = 25
)

// Renderer produces the help output a container command logs when it is
// invoked without a terminal sub-command. The format is part of the external
// contract and must stay byte-stable.
type Renderer struct {
	collator *collate.Collator
}

func NewRenderer() *Renderer {
	return &Renderer{collator: collate.New(language.Und)}
}

// FormatSubcommands renders a sorted, column-aligned listing. Names made
// solely of ASCII letters and hyphens sort lexicographically; all other names
// sort after them, keeping their input order. Each line indents four spaces
// and pads the name to 25 characters before the description; names of 25
// characters or more collapse the padding entirely.
func (r *Renderer) FormatSubcommands(entries []HelpEntry) string {
	sorted := append([]HelpEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		plainI, plainJ := isPlainName(sorted[i].Name), isPlainName(sorted[j].Name)
		if !plainI || !plainJ {
			return plainI && !plainJ
		}
		return r.collator.CompareString(sorted[i].Name, sorted[j].Name) < 0
	})

	var b strings.Builder
	for _, entry := range sorted {
		b.WriteString(helpIndent)
		b.WriteString(entry.Name)
		if pad := helpNameColumn - len(entry.Name); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(entry.Description)
		b.WriteByte('\n')
	}

	return b.String()
}

// UsageBlock wraps a sub-command listing in the usage header logged for a
// container command.
func (r *Renderer) UsageBlock(path string, entries []HelpEntry) string {
	return fmt.Sprintf("Usage: %s <COMMAND>\n\nAvailable subcommands:\n%s", path, r.FormatSubcommands(entries))
}

func isPlainName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}
		return false
	}

	return true
}
