package pattern

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrDuplicatePattern is returned when a name is registered twice
var ErrDuplicatePattern = errors.New("pattern already registered")

// Library holds named patterns and the one currently armed for stamping
type Library struct {
	patterns map[string]*Pattern
	active   *Pattern
}

func NewLibrary() *Library {
	return &Library{patterns: make(map[string]*Pattern)}
}

// Register adds p under its lower-cased name
func (l *Library) Register(p *Pattern) error {
	key := strings.ToLower(p.Name())
	if _, exists := l.patterns[key]; exists {
		return errors.Wrapf(ErrDuplicatePattern, "[Register] %q", p.Name())
	}
	l.patterns[key] = p
	return nil
}

// Get looks a pattern up by name, ignoring case
func (l *Library) Get(name string) (*Pattern, bool) {
	p, ok := l.patterns[strings.ToLower(name)]
	return p, ok
}

// Names returns the registered pattern names in sorted order
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.patterns))
	for _, p := range l.patterns {
		names = append(names, p.Name())
	}
	sort.Strings(names)
	return names
}

// Arm selects the pattern the next click will stamp
func (l *Library) Arm(name string) bool {
	p, ok := l.Get(name)
	if !ok {
		return false
	}
	l.active = p
	return true
}

// Active returns the armed pattern, or nil
func (l *Library) Active() *Pattern { return l.active }

func (l *Library) ClearActive() { l.active = nil }

// Builtins returns a library preloaded with common still lifes, oscillators
// and spaceships
func Builtins() *Library {
	l := NewLibrary()
	for _, p := range []*Pattern{
		MustParse("Block", 2, 2, "OO\nOO"),
		MustParse("Beehive", 4, 3, ".OO.\nO..O\n.OO."),
		MustParse("Blinker", 3, 1, "OOO"),
		MustParse("Glider", 3, 3, ".O.\n..O\nOOO"),
		MustParse("LWSS", 5, 4, ".O..O\nO....\nO...O\nOOOO."),
		MustParse("R-pentomino", 3, 3, ".OO\nOO.\n.O."),
		MustParse("Diehard", 8, 3, "......O.\nOO......\n.O...OOO"),
		MustParse("Acorn", 7, 3, ".O.....\n...O...\nOO..OOO"),
	} {
		// names above are unique
		_ = l.Register(p)
	}
	return l
}
