package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matheus3301/mockmsg/internal/config"
	"github.com/matheus3301/mockmsg/internal/lock"
	"github.com/matheus3301/mockmsg/internal/mock"
	"github.com/matheus3301/mockmsg/internal/profile"
)

func newTestCtl(t *testing.T) (*ctl, *bytes.Buffer) {
	t.Helper()
	t.Setenv("MOCKMSG_HOME", t.TempDir())
	var out bytes.Buffer
	return &ctl{profile: "test", cfg: config.Default(), out: &out}, &out
}

func writeData(t *testing.T, d mock.AppData) string {
	t.Helper()
	b, err := mock.EncodeIndent(d)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportExportUndo(t *testing.T) {
	c, out := newTestCtl(t)

	d := mock.Default()
	d.Contacts[0].Name = "Anna M."
	if err := c.run([]string{"import", writeData(t, d)}); err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out.String(), "imported 2 contacts, 2 triggers") {
		t.Errorf("import output = %q", out.String())
	}

	out.Reset()
	if err := c.run([]string{"export"}); err != nil {
		t.Fatalf("export: %v", err)
	}
	got, err := mock.Decode(out.Bytes())
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if got.Contacts[0].Name != "Anna M." {
		t.Errorf("exported name = %q", got.Contacts[0].Name)
	}

	d.Contacts[0].Name = "Anna Second"
	if err := c.run([]string{"import", writeData(t, d)}); err != nil {
		t.Fatalf("second import: %v", err)
	}
	out.Reset()
	if err := c.run([]string{"undo"}); err != nil {
		t.Fatalf("undo: %v", err)
	}
	out.Reset()
	_ = c.run([]string{"export"})
	got, _ = mock.Decode(out.Bytes())
	if got.Contacts[0].Name != "Anna M." {
		t.Errorf("after undo name = %q, want Anna M.", got.Contacts[0].Name)
	}

	out.Reset()
	c.json = true
	if err := c.run([]string{"history"}); err != nil {
		t.Fatalf("history: %v", err)
	}
	var revs []revisionOut
	if err := json.Unmarshal(out.Bytes(), &revs); err != nil {
		t.Fatalf("history json: %v", err)
	}
	if len(revs) != 0 {
		t.Errorf("len(history) = %d, want 0 after undoing the only revision", len(revs))
	}
}

func TestValidateReportsProblems(t *testing.T) {
	c, _ := newTestCtl(t)

	d := mock.Default()
	d.FakeTriggers[0].ChatID = "ghost"
	err := c.run([]string{"validate", writeData(t, d)})
	if err == nil || !strings.Contains(err.Error(), `unknown chat "ghost"`) {
		t.Errorf("validate err = %v", err)
	}

	if err := c.run([]string{"validate", writeData(t, mock.Default())}); err != nil {
		t.Errorf("validate defaults: %v", err)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	c, out := newTestCtl(t)
	d := mock.Default()
	d.SystemStatus.DarkMode = true
	if err := c.run([]string{"import", writeData(t, d)}); err != nil {
		t.Fatal(err)
	}
	if err := c.run([]string{"reset"}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	out.Reset()
	_ = c.run([]string{"export"})
	got, _ := mock.Decode(out.Bytes())
	if got.SystemStatus.DarkMode {
		t.Error("reset kept stored data")
	}
}

func TestWriteCommandsRespectLock(t *testing.T) {
	c, _ := newTestCtl(t)
	l, err := lock.Acquire(profile.Dir(c.profile), "mockmsg")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = l.Release() }()

	if err := c.run([]string{"reset"}); err == nil {
		t.Error("reset succeeded while the profile is locked")
	}
	if err := c.run([]string{"triggers"}); err != nil {
		t.Errorf("read command failed while locked: %v", err)
	}
}

func TestTriggersAndProfiles(t *testing.T) {
	c, out := newTestCtl(t)
	if err := c.run([]string{"triggers"}); err != nil {
		t.Fatalf("triggers: %v", err)
	}
	for _, want := range []string{"t1", "Anna Meier", "after 8s, typing 2s", "on tap"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("triggers output missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	c.json = true
	if err := c.run([]string{"profiles"}); err != nil {
		t.Fatalf("profiles: %v", err)
	}
	var ps []profileOut
	if err := json.Unmarshal(out.Bytes(), &ps); err != nil {
		t.Fatal(err)
	}
	if len(ps) != 1 || ps[0].Name != "test" || ps[0].Running {
		t.Errorf("profiles = %+v", ps)
	}
}

func TestUnknownCommand(t *testing.T) {
	c, _ := newTestCtl(t)
	if err := c.run([]string{"frobnicate"}); err == nil {
		t.Error("expected error")
	}
	if err := c.run([]string{"import"}); err != errUsage {
		t.Errorf("import without file: err = %v", err)
	}
}
