package profile

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matheus3301/mockmsg/internal/config"
)

func withBase(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	baseDirOverride = dir
	t.Cleanup(func() { baseDirOverride = "" })
	return dir
}

func TestDir(t *testing.T) {
	base := withBase(t)
	got := Dir("main")
	want := filepath.Join(base, "profiles", "main")
	if got != want {
		t.Errorf("Dir(main) = %q, want %q", got, want)
	}
}

func TestPaths(t *testing.T) {
	withBase(t)
	if got := LockPath("demo"); !strings.HasSuffix(got, filepath.Join("profiles", "demo", "LOCK")) {
		t.Errorf("LockPath(demo) = %q", got)
	}
	if got := DBPath("demo"); !strings.HasSuffix(got, filepath.Join("profiles", "demo", "mockmsg.db")) {
		t.Errorf("DBPath(demo) = %q", got)
	}
	if got := LogPath("demo", "mockmsgctl"); !strings.HasSuffix(got, filepath.Join("demo", "logs", "mockmsgctl.log")) {
		t.Errorf("LogPath(demo) = %q", got)
	}
}

func TestBaseDirFromEnv(t *testing.T) {
	t.Setenv("MOCKMSG_HOME", "/srv/mock")
	if got := BaseDir(); got != "/srv/mock" {
		t.Errorf("BaseDir() = %q, want /srv/mock", got)
	}
}

func TestEnsureDirAndList(t *testing.T) {
	withBase(t)
	for _, n := range []string{"main", "demo"} {
		if err := EnsureDir(n); err != nil {
			t.Fatal(err)
		}
	}
	// Not a valid profile name; must be skipped.
	if err := os.MkdirAll(Dir("Bad Name"), 0700); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(LogDir("main"))
	if err != nil || !info.IsDir() {
		t.Fatalf("log dir not created: %v", err)
	}

	names, err := List()
	if err != nil {
		t.Fatal(err)
	}
	slices.Sort(names)
	if !slices.Equal(names, []string{"demo", "main"}) {
		t.Errorf("List() = %v, want [demo main]", names)
	}
}

func TestListWithoutProfiles(t *testing.T) {
	withBase(t)
	names, err := List()
	if err != nil || len(names) != 0 {
		t.Errorf("List() = %v, %v; want empty", names, err)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		flag string
		cfg  *config.Config
		want string
	}{
		{"flag wins", "cli", &config.Config{DefaultProfile: "cfg"}, "cli"},
		{"config next", "", &config.Config{DefaultProfile: "cfg"}, "cfg"},
		{"nil config", "", nil, DefaultName},
		{"empty config", "", &config.Config{}, DefaultName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.flag, tt.cfg); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "main", false},
		{"valid with numbers", "demo123", false},
		{"valid with hyphen", "my-profile", false},
		{"valid with underscore", "my_profile", false},
		{"valid single char", "a", false},
		{"valid max length", strings.Repeat("a", 64), false},
		{"empty", "", true},
		{"uppercase", "Main", true},
		{"space", "my profile", true},
		{"dot", "my.profile", true},
		{"too long", strings.Repeat("a", 65), true},
		{"slash", "my/profile", true},
		{"leading hyphen", "-demo", true},
		{"leading underscore", "_demo", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidName) {
				t.Errorf("ValidateName(%q) error = %v, want ErrInvalidName", tt.input, err)
			}
		})
	}
}
