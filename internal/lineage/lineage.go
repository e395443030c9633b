// Package lineage generates lineage identifiers and verifies the
// parent-pointer chain that links a security's history events.
package lineage

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"secmaster/internal/models"
)

// PathSeparator joins lineage ids into a lineage path.
const PathSeparator = " -> "

const idTimeFormat = "20060102150405"

// Generator produces lineage ids of the form LIN-<gsid>-<YYYYMMDDHHMMSS>.
// The timestamp component is forced strictly forward when two ids are
// requested within the same second, so ids are unique per process and a
// chain can never point back at itself.
type Generator struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewGenerator creates a Generator backed by the wall clock.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorAt creates a Generator with a custom clock, for tests.
func NewGeneratorAt(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// NewID returns the next lineage id for the given global security id.
func (g *Generator) NewID(gsid string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ts := g.now().UTC().Truncate(time.Second)
	if !ts.After(g.last) {
		ts = g.last.Add(time.Second)
	}
	g.last = ts

	return fmt.Sprintf("LIN-%s-%s", gsid, ts.Format(idTimeFormat))
}

// AppendPath extends a parent lineage path with a new lineage id. An
// empty parent path (the initial INSERT) yields just the id itself.
func AppendPath(parentPath, id string) string {
	if parentPath == "" {
		return id
	}
	return parentPath + PathSeparator + id
}

// VerifyChain checks that a sequence of history events, ordered oldest
// to newest, forms a complete gap-free lineage: the first event is an
// INSERT with no parent, every later event's parent is the previous
// event's lineage id, and every path extends the previous path.
func VerifyChain(events []models.HistoryEvent) error {
	if len(events) == 0 {
		return nil
	}

	first := events[0]
	if first.Action != models.ActionInsert {
		return fmt.Errorf("chain does not start at an INSERT event (got %s)", first.Action)
	}
	if first.LineageParentID != "" {
		return fmt.Errorf("INSERT event %s has a lineage parent %s", first.LineageID, first.LineageParentID)
	}
	if first.LineagePath != first.LineageID {
		return fmt.Errorf("INSERT event path %q does not equal its lineage id %q", first.LineagePath, first.LineageID)
	}

	for i := 1; i < len(events); i++ {
		prev, ev := events[i-1], events[i]
		if ev.LineageParentID != prev.LineageID {
			return fmt.Errorf("event %s parent %q does not match preceding lineage id %q",
				ev.LineageID, ev.LineageParentID, prev.LineageID)
		}
		if want := AppendPath(prev.LineagePath, ev.LineageID); ev.LineagePath != want {
			return fmt.Errorf("event %s path %q does not extend parent path (want %q)",
				ev.LineageID, ev.LineagePath, want)
		}
		if ev.ChangedAt.Before(prev.ChangedAt) {
			return fmt.Errorf("event %s changed_at precedes its parent", ev.LineageID)
		}
	}

	return nil
}

// SplitPath splits a lineage path back into its ordered lineage ids.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, PathSeparator)
}
