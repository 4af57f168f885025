package domain

import "strings"

// Level is the severity attached to a constraint. It decides whether a failed
// check is ignored, reported, warned about or stops the owning subprocess.
type Level string

const (
	LevelIgnore Level = "IGNORE"
	LevelInform Level = "INFORM"
	LevelWarn   Level = "WARN"
	LevelFail   Level = "FAIL"
)

// ParseLevel trims and upper-cases s. Unknown values map to LevelIgnore and
// report ok=false so loaders can warn about them.
func ParseLevel(s string) (Level, bool) {
	switch lvl := Level(strings.ToUpper(strings.TrimSpace(s))); lvl {
	case LevelIgnore, LevelInform, LevelWarn, LevelFail:
		return lvl, true
	}
	return LevelIgnore, false
}
