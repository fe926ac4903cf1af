// internal/browser/dom/defaults.go
package dom

import (
	"sync"

	"go.uber.org/zap"

	"github.com/xkilldash9x/mpdf/internal/browser/parser"
)

// tagDefaultStyles holds the built-in declarations applied to every new
// element of a tag. Tags missing here get no defaults.
var tagDefaultStyles = map[string]string{
	"div": "display: block; color: black;",

	"body":    "display: block;",
	"p":       "display: block;",
	"section": "display: block;",
	"article": "display: block;",
	"header":  "display: block;",
	"footer":  "display: block;",
	"h1":      "display: block;",
	"h2":      "display: block;",
	"h3":      "display: block;",
	"h4":      "display: block;",
	"h5":      "display: block;",
	"h6":      "display: block;",
	"ul":      "display: block;",
	"ol":      "display: block;",
	"li":      "display: block;",
	"pre":     "display: block;",

	"span":   "display: inline;",
	"a":      "display: inline;",
	"b":      "display: inline;",
	"i":      "display: inline;",
	"em":     "display: inline;",
	"strong": "display: inline;",
	"code":   "display: inline;",
}

var (
	parsedDefaultsOnce sync.Once
	parsedDefaults     map[string][]parser.PropertyDeclaration
)

// defaultDeclarations returns the parsed defaults for tag. The table is
// parsed once per process and shared; values are immutable.
func defaultDeclarations(tag string) []parser.PropertyDeclaration {
	parsedDefaultsOnce.Do(func() {
		parsedDefaults = make(map[string][]parser.PropertyDeclaration, len(tagDefaultStyles))
		for t, css := range tagDefaultStyles {
			parsedDefaults[t] = parser.NewParser(css, zap.NewNop()).ParseInline()
		}
	})
	return parsedDefaults[tag]
}
