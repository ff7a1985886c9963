package state

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Snapshot is a whole version of a picture library, as exchanged between
// boards. Versions are ordered by (Lamport, Site).
type Snapshot struct {
	Site     string    `json:"site"`
	Lamport  uint64    `json:"lamport"`
	Pictures []Picture `json:"pictures"`
}

// Newer reports whether s supersedes a version stamped (lamport, site).
func (s Snapshot) Newer(lamport uint64, site string) bool {
	if s.Lamport != lamport {
		return s.Lamport > lamport
	}
	return s.Site > site
}

// Library is the ordered set of pictures available for practice.
// Whole-library replacement with last-writer-wins is enough here: pictures
// are edited rarely and by one person at a time.
type Library struct {
	siteID   string
	clock    Clock
	pictures []Picture
	lamport  uint64 // version of pictures
	owner    string // site that wrote that version
	mu       sync.RWMutex

	// OnChange is called after every accepted change, outside the lock.
	// local is false for changes merged from another board.
	OnChange func(snap Snapshot, local bool)
}

func NewLibrary(pictures []Picture) *Library {
	l := &Library{
		siteID:   uuid.NewString(),
		pictures: clonePictures(pictures),
	}
	for i := range l.pictures {
		if l.pictures[i].ID == "" {
			l.pictures[i].ID = uuid.NewString()
		}
	}
	// A library that starts with content is a real version; an empty one
	// yields to whatever a peer sends first.
	if len(l.pictures) > 0 {
		l.lamport = l.clock.Tick()
		l.owner = l.siteID
	}
	return l
}

func (l *Library) SiteID() string { return l.siteID }

func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.pictures)
}

// Pictures returns a deep copy of the current pictures.
func (l *Library) Pictures() []Picture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return clonePictures(l.pictures)
}

// Snapshot returns the current version.
func (l *Library) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

func (l *Library) snapshotLocked() Snapshot {
	return Snapshot{Site: l.owner, Lamport: l.lamport, Pictures: clonePictures(l.pictures)}
}

// Add appends a picture made of lines. Empty pictures are ignored.
func (l *Library) Add(lines []Line) bool {
	if len(lines) == 0 {
		return false
	}
	return l.mutate(func(ps []Picture) []Picture {
		return append(ps, Picture{ID: uuid.NewString(), Lines: cloneLines(lines)})
	})
}

func indexOf(ps []Picture, id string) int {
	if id == "" {
		return -1
	}
	for i := range ps {
		if ps[i].ID == id {
			return i
		}
	}
	return -1
}

// Replace swaps the lines of the picture with the given ID. Replacing with
// no lines deletes the picture. Pictures are addressed by ID because a
// merge from another board can move them.
func (l *Library) Replace(id string, lines []Line) bool {
	if len(lines) == 0 {
		return l.Remove(id)
	}
	return l.mutate(func(ps []Picture) []Picture {
		i := indexOf(ps, id)
		if i < 0 {
			return nil
		}
		ps[i] = Picture{ID: id, Lines: cloneLines(lines)}
		return ps
	})
}

func (l *Library) Remove(id string) bool {
	return l.mutate(func(ps []Picture) []Picture {
		i := indexOf(ps, id)
		if i < 0 {
			return nil
		}
		return append(ps[:i], ps[i+1:]...)
	})
}

// Set replaces every picture, e.g. after loading a file.
func (l *Library) Set(pictures []Picture) {
	l.mutate(func([]Picture) []Picture {
		out := clonePictures(pictures)
		for i := range out {
			if out[i].ID == "" {
				out[i].ID = uuid.NewString()
			}
		}
		return out
	})
}

// mutate applies fn to a copy of the pictures. A nil result means no change.
func (l *Library) mutate(fn func([]Picture) []Picture) bool {
	l.mu.Lock()
	next := fn(clonePictures(l.pictures))
	if next == nil {
		l.mu.Unlock()
		return false
	}
	l.pictures = next
	l.lamport = l.clock.Tick()
	l.owner = l.siteID
	snap := l.snapshotLocked()
	l.mu.Unlock()

	log.Printf("[LIBRARY] Local change: %d pictures (lamport %d)", len(snap.Pictures), snap.Lamport)
	if l.OnChange != nil {
		l.OnChange(snap, true)
	}
	return true
}

// Merge adopts snap if it is newer than the current version and reports
// whether it did.
func (l *Library) Merge(snap Snapshot) bool {
	l.mu.Lock()
	l.clock.Update(snap.Lamport)
	if !snap.Newer(l.lamport, l.owner) {
		l.mu.Unlock()
		log.Printf("[LIBRARY] Ignoring stale snapshot from %s (lamport %d)", snap.Site, snap.Lamport)
		return false
	}
	l.pictures = clonePictures(snap.Pictures)
	l.lamport = snap.Lamport
	l.owner = snap.Site
	accepted := l.snapshotLocked()
	l.mu.Unlock()

	log.Printf("[LIBRARY] Merged snapshot from %s: %d pictures (lamport %d)", snap.Site, len(accepted.Pictures), snap.Lamport)
	if l.OnChange != nil {
		l.OnChange(accepted, false)
	}
	return true
}
