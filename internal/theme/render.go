package theme

import (
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"
)

var placeholderPattern = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Render substitutes every {{name}} placeholder found in vars and returns
// the result together with the placeholders that had no value.
func Render(content string, vars map[string]string) (string, []string) {
	names := lo.Keys(vars)
	slices.Sort(names)

	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, "{{"+name+"}}", vars[name])
	}
	out := strings.NewReplacer(pairs...).Replace(content)

	return out, lo.Uniq(placeholderPattern.FindAllString(out, -1))
}
