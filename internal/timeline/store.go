package timeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"riftscope/internal/config"
)

const stateFileName = "game_state.json"

// lockRetryDelay is the poll interval while waiting on another process's
// file lock.
const lockRetryDelay = 25 * time.Millisecond

// Store persists match timelines, one JSON document per match slug.
type Store struct {
	root string

	mu    sync.Mutex
	slugs map[string]*sync.Mutex
}

// Open prepares the store directory and returns a ready store.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return &Store{
		root:  cfg.Paths.MatchesDir,
		slugs: make(map[string]*sync.Mutex),
	}, nil
}

// Root returns the directory matches persist under.
func (s *Store) Root() string { return s.root }

// Start creates (or silently overwrites) the timeline for a match: the draft
// for both sides plus an empty startGame snapshot.
func (s *Store) Start(ctx context.Context, title, blueName string, blueChampions map[Role]string, redName string, redChampions map[Role]string) error {
	tl := &Timeline{
		StaticGameInfo: StaticGameInfo{
			Blue: StaticTeamInfo{Color: TeamBlue, TeamName: blueName, Champions: normalizeChampions(blueChampions)},
			Red:  StaticTeamInfo{Color: TeamRed, TeamName: redName, Champions: normalizeChampions(redChampions)},
		},
		LiveGameInfo: map[string]Fragment{KeyStartGame: EmptySnapshot()},
	}
	return s.withMatch(ctx, Slugify(title), func(slug string) error {
		return s.save(slug, tl)
	})
}

// MergeSnapshot deep-merges fragment into the snapshot stored under timer.
// The timer accepts a canonical MM:SS string or raw seconds ("95" becomes
// "01:35"). Merging onto a missing key inserts it; an empty fragment is a
// no-op on the stored record.
func (s *Store) MergeSnapshot(ctx context.Context, title, timer string, fragment Fragment) error {
	key := NormalizeTimer(timer)
	return s.withMatch(ctx, Slugify(title), func(slug string) error {
		tl, err := s.load(slug)
		if err != nil {
			return err
		}
		tl.LiveGameInfo[key] = DeepMerge(tl.LiveGameInfo[key], fragment)
		return s.save(slug, tl)
	})
}

// MergeSnapshotAt is MergeSnapshot keyed by a match clock in whole seconds.
func (s *Store) MergeSnapshotAt(ctx context.Context, title string, seconds int, fragment Fragment) error {
	return s.MergeSnapshot(ctx, title, FormatClock(seconds), fragment)
}

// End freezes the match: the snapshot with the latest clock key is deep-copied
// under endGame and the winning side is recorded. Keys compare as
// minutes*60+seconds, never lexicographically.
func (s *Store) End(ctx context.Context, title string, winner TeamColor) error {
	return s.withMatch(ctx, Slugify(title), func(slug string) error {
		tl, err := s.load(slug)
		if err != nil {
			return err
		}
		last, err := latestKey(tl.LiveGameInfo)
		if err != nil {
			return err
		}
		tl.LiveGameInfo[KeyEndGame] = DeepCopy(tl.LiveGameInfo[last])
		tl.Winner = winner
		return s.save(slug, tl)
	})
}

// Read loads one match timeline.
func (s *Store) Read(ctx context.Context, title string) (*Timeline, error) {
	var tl *Timeline
	err := s.withMatch(ctx, Slugify(title), func(slug string) error {
		loaded, err := s.load(slug)
		if err != nil {
			return err
		}
		tl = loaded
		return nil
	})
	return tl, err
}

// ReadAll loads every persisted match keyed by slug. Corrupt state files are
// skipped so one bad record cannot hide the rest of the history.
func (s *Store) ReadAll(ctx context.Context) (map[string]*Timeline, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]*Timeline{}, nil
		}
		return nil, fmt.Errorf("timeline: scan %s: %w", s.root, err)
	}

	out := make(map[string]*Timeline)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tl, err := s.load(entry.Name())
		if err != nil {
			continue
		}
		out[entry.Name()] = tl
	}
	return out, nil
}

// withMatch serializes one mutation (or read) per slug: an in-process mutex
// against sibling goroutines, then a flock file lock against sibling
// processes, both held for the duration of fn.
func (s *Store) withMatch(ctx context.Context, slug string, fn func(slug string) error) error {
	lock := s.lockFor(slug)
	lock.Lock()
	defer lock.Unlock()

	fl := flock.New(filepath.Join(s.root, slug+".lock"))
	if _, err := fl.TryLockContext(ctx, lockRetryDelay); err != nil {
		return fmt.Errorf("timeline: lock %s: %w", slug, err)
	}
	defer fl.Unlock()

	return fn(slug)
}

func (s *Store) lockFor(slug string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.slugs[slug]
	if !ok {
		lock = &sync.Mutex{}
		s.slugs[slug] = lock
	}
	return lock
}

func (s *Store) statePath(slug string) string {
	return filepath.Join(s.root, slug, stateFileName)
}

func (s *Store) load(slug string) (*Timeline, error) {
	data, err := os.ReadFile(s.statePath(slug))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrMatchNotFound, slug)
		}
		return nil, fmt.Errorf("timeline: read %s: %w", slug, err)
	}

	tl := &Timeline{}
	if err := json.Unmarshal(data, tl); err != nil {
		return nil, fmt.Errorf("timeline: decode %s: %w", slug, err)
	}
	if tl.LiveGameInfo == nil {
		tl.LiveGameInfo = map[string]Fragment{}
	}
	return tl, nil
}

func (s *Store) save(slug string, tl *Timeline) error {
	path := s.statePath(slug)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("timeline: ensure %s: %w", slug, err)
	}
	data, err := json.MarshalIndent(tl, "", "    ")
	if err != nil {
		return fmt.Errorf("timeline: encode %s: %w", slug, err)
	}

	// Write-then-rename so an interrupted save never leaves a truncated
	// game_state.json behind.
	tmp, err := os.CreateTemp(filepath.Dir(path), "game_state-*.json")
	if err != nil {
		return fmt.Errorf("timeline: stage %s: %w", slug, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("timeline: stage %s: %w", slug, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("timeline: stage %s: %w", slug, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("timeline: stage %s: %w", slug, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("timeline: commit %s: %w", slug, err)
	}
	return nil
}

// latestKey returns the numerically latest clock key, skipping the
// startGame/endGame markers.
func latestKey(live map[string]Fragment) (string, error) {
	best, bestSeconds := "", -1
	for key := range live {
		if key == KeyStartGame || key == KeyEndGame {
			continue
		}
		seconds, ok := ParseClock(key)
		if !ok {
			continue
		}
		if seconds > bestSeconds {
			best, bestSeconds = key, seconds
		}
	}
	if best == "" {
		return "", ErrNoSnapshots
	}
	return best, nil
}

func normalizeChampions(src map[Role]string) map[Role]string {
	out := make(map[Role]string, len(Roles))
	for _, role := range Roles {
		out[role] = src[role]
	}
	return out
}
