package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/litescript/ls-astrotool/internal/site"
)

// run executes the CLI with args against a clean configuration.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	if os.Getenv("LSASTRO_SITES_FILE") == "" {
		t.Setenv("LSASTRO_SITES_FILE", filepath.Join(dir, "sites.toml"))
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConvert(t *testing.T) {
	out := mustRun(t, "convert", "12h30m00s")
	assertContains(t, out, "degrees  187.500000", "radians  3.272492")

	out = mustRun(t, "convert", "--radians", "3.141592653589793")
	assertContains(t, out, "degrees  180.000000")

	if _, err := run(t, "convert", "twelve"); err == nil {
		t.Error("convert of a bad angle should fail")
	}
}

func TestTime(t *testing.T) {
	out := mustRun(t, "time", "2000-01-01T12:00:00")
	assertContains(t, out, "jd       2451545.000000", "doy      1\n", "(Greenwich)")
}

func TestCoords(t *testing.T) {
	out := mustRun(t, "coords", "Capella", "--at", "2023-01-15T00:00:00")
	assertContains(t, out, "Capella", "altitude", "azimuth", "airmass")
	if strings.Contains(out, "nearest     Capella") {
		t.Error("coords should not report the target as its own nearest star")
	}

	out = mustRun(t, "coords", "--ra", "05h16m41.36s", "--dec", "+45:59:52.8", "--at", "2023-01-15T00:00:00")
	assertContains(t, out, "target", "nearest     Capella")

	if _, err := run(t, "coords", "--ra", "05h16m41.36s"); !errors.Is(err, errNoTarget) {
		t.Errorf("--ra alone: err = %v, want errNoTarget", err)
	}
}

func TestRiseSet(t *testing.T) {
	out := mustRun(t, "riseset", "Sirius", "--date", "2023-01-14")
	assertContains(t, out, "Sirius at Greenwich on 2023-01-14", "rise", "transit", "set")

	out = mustRun(t, "riseset", "Vega", "--date", "2023-01-14")
	assertContains(t, out, "always above threshold")

	if _, err := run(t, "riseset", "Sirius", "--threshold", "dusk"); err == nil {
		t.Error("unknown threshold name should fail")
	}
}

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"horizon", 0, false},
		{"Civil", -6, false},
		{"astronomical", -18, false},
		{"-12.5", -12.5, false},
		{"91", 0, true},
		{"dusk", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseThreshold(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("parseThreshold(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestEphem(t *testing.T) {
	out := mustRun(t, "ephem", "Saturn", "--at", "2023-01-15T00:00:00")
	assertContains(t, out, "Saturn", "Dist AU")

	out = mustRun(t, "ephem", "--at", "2023-01-15T00:00:00")
	assertContains(t, out, "Sun", "Moon", "Jupiter")

	if _, err := run(t, "ephem", "Vulcan"); err == nil {
		t.Error("unknown body should fail")
	}
}

func TestPlanHeadless(t *testing.T) {
	out := mustRun(t, "plan", "Vega", "Vulcan", "--headless", "--date", "2023-01-14", "--step", "1")
	assertContains(t, out, "Airmass", "@ Greenwich", "Vega")
}

func TestPlanJSON(t *testing.T) {
	prog := filepath.Join(t.TempDir(), "program.txt")
	if err := os.WriteFile(prog, []byte("# winter\nSirius\nCapella\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := mustRun(t, "plan", "Vega", "--program", prog, "--json", "-", "--date", "2023-01-14", "--step", "1")

	var doc struct {
		Site struct {
			Name string `json:"name"`
		} `json:"site"`
		Date    string `json:"date"`
		Step    float64 `json:"step_hours"`
		Targets []struct {
			Name string `json:"name"`
		} `json:"targets"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decoding plan JSON: %v\n%s", err, out)
	}
	if doc.Site.Name != "Greenwich" || doc.Step != 1 {
		t.Errorf("site %q step %v", doc.Site.Name, doc.Step)
	}
	if len(doc.Targets) != 3 {
		t.Errorf("got %d targets, want 3", len(doc.Targets))
	}
}

func TestPlanNoTargets(t *testing.T) {
	if _, err := run(t, "plan", "--headless"); !errors.Is(err, errNoTargets) {
		t.Errorf("err = %v, want errNoTargets", err)
	}
}

func TestPlanTargets(t *testing.T) {
	prog := filepath.Join(t.TempDir(), "program.txt")
	if err := os.WriteFile(prog, []byte("Sirius\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	names, err := planTargets(prog, []string{"Vega"})
	if err != nil || strings.Join(names, ",") != "Vega,Sirius" {
		t.Errorf("planTargets = %v, %v", names, err)
	}

	// Rescans read the program again, so edits and removals show up.
	if err := os.WriteFile(prog, []byte("# emptied\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := planTargets(prog, nil); !errors.Is(err, errNoTargets) {
		t.Errorf("emptied program: err = %v, want errNoTargets", err)
	}
	if err := os.Remove(prog); err != nil {
		t.Fatal(err)
	}
	if _, err := planTargets(prog, []string{"Vega"}); err == nil {
		t.Error("missing program file should fail")
	}
}

func TestPolar(t *testing.T) {
	out := mustRun(t, "polar", "--at", "2023-01-15T00:00:00")
	assertContains(t, out, "Polaris", "o'clock", "from the pole")

	t.Setenv("LSASTRO_SITE", "Paranal")
	out = mustRun(t, "polar", "--at", "2023-01-15T00:00:00")
	assertContains(t, out, "Sigma Octantis", "Paranal")
}

func TestSiteLifecycle(t *testing.T) {
	t.Setenv("LSASTRO_SITES_FILE", filepath.Join(t.TempDir(), "sites.toml"))

	out := mustRun(t, "site", "add", "--elevation", "300", "--", "Backyard", "+40:26:46", "-79:58:56")
	assertContains(t, out, "saved Backyard", "sites.toml")

	out = mustRun(t, "site", "list")
	assertContains(t, out, "Greenwich", "builtin", "Backyard", "saved", "300 m")

	out = mustRun(t, "--site", "backyard", "time", "2023-01-15T00:00:00")
	assertContains(t, out, "(Backyard)")

	mustRun(t, "site", "rm", "Backyard")
	if _, err := run(t, "site", "rm", "Backyard"); !errors.Is(err, site.ErrSiteNotFound) {
		t.Errorf("second rm: err = %v, want ErrSiteNotFound", err)
	}
	if _, err := run(t, "site", "add", "Nowhere", "+95:00:00", "0"); err == nil {
		t.Error("latitude out of range should fail")
	}
}

func TestUnknownSite(t *testing.T) {
	if _, err := run(t, "--site", "Atlantis", "time"); !errors.Is(err, site.ErrSiteNotFound) {
		t.Errorf("err = %v, want ErrSiteNotFound", err)
	}
}

func TestVersion(t *testing.T) {
	out := mustRun(t, "version")
	assertContains(t, out, "ls-astrotool ")
}
