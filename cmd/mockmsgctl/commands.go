package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/matheus3301/mockmsg/internal/config"
	"github.com/matheus3301/mockmsg/internal/lock"
	"github.com/matheus3301/mockmsg/internal/logging"
	"github.com/matheus3301/mockmsg/internal/mock"
	"github.com/matheus3301/mockmsg/internal/profile"
	"github.com/matheus3301/mockmsg/internal/store"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const binary = "mockmsgctl"

var errUsage = errors.New("invalid usage")

type ctl struct {
	profile string
	cfg     *config.Config
	out     io.Writer
	json    bool
}

// env is an opened profile: its store, repository and, for writing
// commands, the profile lock.
type env struct {
	db     *store.DB
	repo   *mock.Repository
	lock   *lock.Lock
	logger *zap.Logger
}

func (e *env) close() {
	_ = e.db.Close()
	if err := e.lock.Release(); err != nil {
		e.logger.Warn("error releasing lock", zap.Error(err))
	}
	_ = e.logger.Sync()
}

func (c *ctl) run(args []string) error {
	switch args[0] {
	case "export":
		path := ""
		if len(args) > 1 {
			path = args[1]
		}
		return c.export(path)
	case "import":
		if len(args) < 2 {
			return errUsage
		}
		return c.importFile(args[1])
	case "validate":
		if len(args) < 2 {
			return errUsage
		}
		return c.validate(args[1])
	case "reset":
		return c.reset()
	case "undo":
		return c.undo()
	case "history":
		return c.history()
	case "triggers":
		return c.triggers()
	case "profiles":
		return c.profiles()
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

// open prepares the profile store. Writing commands take the profile lock
// and fail while the TUI holds it.
func (c *ctl) open(write bool) (*env, error) {
	if err := profile.EnsureDir(c.profile); err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Path:   profile.LogPath(c.profile, binary),
		Level:  c.cfg.LogLevel,
		Stderr: true,
	}, c.profile)
	if err != nil {
		return nil, err
	}

	e := &env{logger: logger}
	if write {
		e.lock, err = lock.Acquire(profile.Dir(c.profile), binary)
		if err != nil {
			return nil, err
		}
	}

	e.db, err = store.Open(profile.DBPath(c.profile))
	if err != nil {
		_ = e.lock.Release()
		return nil, err
	}
	if _, err := e.db.Migrate(); err != nil {
		e.close()
		return nil, err
	}
	e.repo = mock.NewRepository(e.db, logger)
	return e, nil
}

func (c *ctl) export(path string) error {
	e, err := c.open(false)
	if err != nil {
		return err
	}
	defer e.close()

	d, err := e.repo.Load()
	if err != nil {
		return err
	}
	b, err := mock.EncodeIndent(d)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if path == "" || path == "-" {
		_, err = c.out.Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "exported %s to %s\n", c.profile, path)
	return nil
}

func (c *ctl) importFile(path string) error {
	d, err := readData(path)
	if err != nil {
		return err
	}
	e, err := c.open(true)
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.repo.Save(d); err != nil {
		return err
	}
	e.logger.Info("data imported", zap.String("file", path))
	fmt.Fprintf(c.out, "imported %d contacts, %d triggers into %s\n", len(d.Contacts), len(d.FakeTriggers), c.profile)
	return nil
}

func (c *ctl) validate(path string) error {
	d, err := readData(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "ok: %d contacts, %d chats, %d triggers\n", len(d.Contacts), len(d.Chats), len(d.FakeTriggers))
	return nil
}

// readData decodes and validates a data file, listing every relational
// problem on failure.
func readData(path string) (mock.AppData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return mock.AppData{}, err
	}
	d, err := mock.DecodeValid(b)
	var verr *mock.ValidationError
	if errors.As(err, &verr) {
		return mock.AppData{}, fmt.Errorf("%s:\n  %s", path, strings.Join(verr.Problems, "\n  "))
	}
	if err != nil {
		return mock.AppData{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func (c *ctl) reset() error {
	e, err := c.open(true)
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.repo.Clear(); err != nil {
		return err
	}
	e.logger.Info("data reset")
	fmt.Fprintf(c.out, "reset %s; defaults load on next start\n", c.profile)
	return nil
}

func (c *ctl) undo() error {
	e, err := c.open(true)
	if err != nil {
		return err
	}
	defer e.close()

	ok, err := e.db.Revert(mock.StorageKey)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(c.out, "nothing to undo")
		return nil
	}
	e.logger.Info("data reverted")
	fmt.Fprintln(c.out, "restored previous data")
	return nil
}

type revisionOut struct {
	ID      int64  `json:"id"`
	SavedAt string `json:"savedAt"`
	Bytes   int    `json:"bytes"`
}

func (c *ctl) history() error {
	e, err := c.open(false)
	if err != nil {
		return err
	}
	defer e.close()

	revs, err := e.db.History(mock.StorageKey, store.HistoryLimit)
	if err != nil {
		return err
	}
	out := lo.Map(revs, func(r store.Revision, _ int) revisionOut {
		return revisionOut{
			ID:      r.ID,
			SavedAt: time.UnixMilli(r.SavedAt).Format(time.RFC3339),
			Bytes:   len(r.Value),
		}
	})
	if c.json {
		return c.outputJSON(out)
	}
	if len(out) == 0 {
		fmt.Fprintln(c.out, "No revisions.")
		return nil
	}
	for _, r := range out {
		fmt.Fprintf(c.out, "%-6d %s  %d bytes\n", r.ID, r.SavedAt, r.Bytes)
	}
	return nil
}

func (c *ctl) triggers() error {
	e, err := c.open(false)
	if err != nil {
		return err
	}
	defer e.close()

	d, err := e.repo.Load()
	if err != nil {
		return err
	}
	if c.json {
		return c.outputJSON(d.FakeTriggers)
	}
	if len(d.FakeTriggers) == 0 {
		fmt.Fprintln(c.out, "No triggers.")
		return nil
	}
	for _, t := range d.FakeTriggers {
		fmt.Fprintln(c.out, describeTrigger(d, t))
	}
	return nil
}

func describeTrigger(d mock.AppData, t mock.FakeTrigger) string {
	chat := t.ChatID
	if c, ok := d.Contact(t.ChatID); ok {
		chat = c.Name
	}
	when := "on tap"
	if t.Type == mock.TriggerTimer {
		when = "after " + t.Delay().String()
	}
	if typing := t.Typing(); typing > 0 {
		when += ", typing " + typing.String()
	}
	return fmt.Sprintf("%-6s %-16s %-24s %q", t.ID, chat, when, t.Message.Text)
}

type profileOut struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Running bool   `json:"running"`
}

func (c *ctl) profiles() error {
	names, err := profile.List()
	if err != nil {
		return err
	}
	out := lo.Map(names, func(n string, _ int) profileOut {
		return profileOut{Name: n, Path: profile.Dir(n), Running: isHeld(n)}
	})
	if c.json {
		return c.outputJSON(out)
	}
	if len(out) == 0 {
		fmt.Fprintln(c.out, "No profiles found.")
		return nil
	}
	for _, p := range out {
		state := "stopped"
		if p.Running {
			state = "running"
		}
		fmt.Fprintf(c.out, "%-20s %s (%s)\n", p.Name, p.Path, state)
	}
	return nil
}

// isHeld reports whether another process holds the profile lock.
func isHeld(name string) bool {
	l, err := lock.Acquire(profile.Dir(name), binary)
	if err != nil {
		var held *lock.LockHeldError
		return errors.As(err, &held)
	}
	_ = l.Release()
	return false
}

func (c *ctl) outputJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
