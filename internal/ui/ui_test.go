package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-astrotool/internal/astrotime"
	"github.com/litescript/ls-astrotool/internal/catalog"
	"github.com/litescript/ls-astrotool/internal/coord"
	"github.com/litescript/ls-astrotool/internal/ephem"
	"github.com/litescript/ls-astrotool/internal/plan"
	"github.com/litescript/ls-astrotool/internal/site"
	"github.com/litescript/ls-astrotool/internal/state"
)

func testPlan(t *testing.T) *plan.Plan {
	t.Helper()
	night, err := plan.NewNight(astrotime.New(2023, 1, 14, 0, 0, 0), 18, 7, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	resolver := ephem.NewResolver(ephem.New(nil), catalog.Default())
	p, err := plan.Scan(context.Background(), site.Greenwich, []string{"Capella", "Saturn", "Vulcan"}, resolver, night)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func sized(m Model, w, h int) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model)
}

func press(m Model, key tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(key)
	return next.(Model), cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestViewBeforeReady(t *testing.T) {
	m := New(testPlan(t))
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q, want Initializing...", got)
	}
}

func TestAirmassMapView(t *testing.T) {
	m := sized(New(testPlan(t)), 120, 40)
	view := m.View()
	for _, want := range []string{"Greenwich", "2023-01-14", "Airmass", "Capella", "Saturn", "Sun ▼ 18:19", "Skipped: Vulcan", "2 targets"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAirmassMapNoTargets(t *testing.T) {
	p := testPlan(t)
	p.Targets = nil
	m := sized(New(p), 120, 40)
	if view := m.View(); !strings.Contains(view, "No targets") {
		t.Errorf("view missing No targets:\n%s", view)
	}
}

func TestNavigationOpensDetail(t *testing.T) {
	m := sized(New(testPlan(t)), 120, 40)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Selected() != 1 {
		t.Fatalf("Selected() = %d after down, want 1", m.Selected())
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Selected() != 1 {
		t.Errorf("cursor moved past last row: %d", m.Selected())
	}

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	msg := cmd()
	open, ok := msg.(OpenTargetMsg)
	if !ok || open.Index != 1 {
		t.Fatalf("enter produced %#v, want OpenTargetMsg{1}", msg)
	}

	next, _ := m.Update(msg)
	m = next.(Model)
	if m.Mode() != ViewDetail {
		t.Fatalf("Mode() = %v, want ViewDetail", m.Mode())
	}
	view := m.View()
	if !strings.Contains(view, "Saturn") || !strings.Contains(view, "(2/2)") {
		t.Errorf("detail view should show Saturn (2/2):\n%s", view)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Selected() != 0 {
		t.Errorf("right should wrap to first target, got %d", m.Selected())
	}
}

func TestSelectionCarriesAcrossViews(t *testing.T) {
	m := sized(New(testPlan(t)), 120, 40)
	m, _ = press(m, runeKey('j'))
	m, _ = press(m, runeKey('s'))
	if m.Mode() != ViewSky || m.Selected() != 1 {
		t.Fatalf("sky view: mode %v selected %d", m.Mode(), m.Selected())
	}
	m, _ = press(m, runeKey('j'))
	m, _ = press(m, runeKey('a'))
	if m.Mode() != ViewMap || m.Selected() != 0 {
		t.Errorf("back on map: mode %v selected %d, want 0", m.Mode(), m.Selected())
	}
}

func TestTabCyclesViews(t *testing.T) {
	m := sized(New(testPlan(t)), 120, 40)
	want := []ViewMode{ViewDetail, ViewSky, ViewPolar, ViewMap}
	for _, w := range want {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
		if m.Mode() != w {
			t.Fatalf("Mode() = %v, want %v", m.Mode(), w)
		}
	}
}

func TestQuit(t *testing.T) {
	for _, key := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}} {
		_, cmd := press(New(testPlan(t)), key)
		if cmd == nil {
			t.Fatalf("%s: no command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command is not quit", key)
		}
	}
}

func TestPlanAndErrorMessages(t *testing.T) {
	m := sized(New(nil), 120, 40)
	if view := m.View(); !strings.Contains(view, "No plan") {
		t.Errorf("nil plan view:\n%s", view)
	}

	next, _ := m.Update(ErrorMsg{Error: errors.New("boom")})
	m = next.(Model)
	if view := m.View(); !strings.Contains(view, "ERROR: boom") {
		t.Errorf("error not shown:\n%s", view)
	}

	next, _ = m.Update(PlanMsg{Plan: testPlan(t)})
	m = next.(Model)
	view := m.View()
	if strings.Contains(view, "ERROR") || !strings.Contains(view, "Capella") {
		t.Errorf("plan message not applied:\n%s", view)
	}
}

func TestSkyView(t *testing.T) {
	m := sized(New(testPlan(t), WithStars(catalog.Default())), 100, 30)
	m, _ = press(m, runeKey('s'))
	view := m.View()
	for _, want := range []string{"Sky View", ">>> Capella", "00:30 UT"} {
		if !strings.Contains(view, want) {
			t.Errorf("sky view missing %q", want)
		}
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if view := m.View(); !strings.Contains(view, "01:00 UT") {
		t.Error("right should advance one grid step")
	}
}

func TestSkyViewTooSmall(t *testing.T) {
	m := NewSkyViewModel().SetSize(10, 5)
	if got := m.View(); got != "Sky view requires larger terminal" {
		t.Errorf("View() = %q", got)
	}
}

func TestPolarView(t *testing.T) {
	p := testPlan(t)
	polaris, err := catalog.Default().Lookup(plan.NorthPoleStar)
	if err != nil {
		t.Fatal(err)
	}
	polaris, err = polaris.OnDate(p.Night.Date.DecimalYear())
	if err != nil {
		t.Fatal(err)
	}
	lst := p.Night.At(24).LST(p.Site.Longitude)

	m := sized(New(p, WithReticle(plan.PolarScope(polaris, lst))), 120, 40)
	m, _ = press(m, runeKey('p'))
	view := m.View()
	for _, want := range []string{"Polar Alignment", "Polaris", "o'clock"} {
		if !strings.Contains(view, want) {
			t.Errorf("polar view missing %q", want)
		}
	}

	m = sized(New(p), 120, 40)
	m, _ = press(m, runeKey('p'))
	if view := m.View(); !strings.Contains(view, "No pole star available") {
		t.Error("polar view without reticle should say so")
	}
}

func TestNowOnNight(t *testing.T) {
	p := testPlan(t)
	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"after midnight", time.Date(2023, 1, 15, 1, 0, 0, 0, time.UTC), 25},
		{"evening", time.Date(2023, 1, 14, 20, 30, 0, 0, time.UTC), 20.5},
		{"before night", time.Date(2023, 1, 14, 12, 0, 0, 0, time.UTC), -1},
		{"next day", time.Date(2023, 1, 16, 1, 0, 0, 0, time.UTC), -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := nowOnNight(p, tc.at)
			if got < tc.want-1e-6 || got > tc.want+1e-6 {
				t.Errorf("nowOnNight = %v, want %v", got, tc.want)
			}
		})
	}
	if got := nowOnNight(nil, time.Now()); got != -1 {
		t.Errorf("nil plan: %v", got)
	}
}

func TestNowMarkerInHeader(t *testing.T) {
	clock := func() time.Time { return time.Date(2023, 1, 14, 21, 20, 0, 0, time.UTC) }
	m := sized(New(testPlan(t), WithClock(clock)), 200, 40)
	if view := m.View(); !strings.Contains(view, ">21") {
		t.Errorf("now marker missing from hour header")
	}
}

func TestInterpolateAltColor(t *testing.T) {
	tests := []struct {
		t    float64
		want [3]uint8
	}{
		{-1, altColorLow},
		{0, altColorLow},
		{0.5, altColorMid},
		{1, altColorHigh},
		{2, altColorHigh},
	}
	for _, tc := range tests {
		r, g, b := interpolateAltColor(tc.t)
		if got := [3]uint8{r, g, b}; got != tc.want {
			t.Errorf("interpolateAltColor(%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestResampleAltitude(t *testing.T) {
	samples := []plan.Sample{{Altitude: 10}, {Altitude: 20}, {Altitude: 30}, {Altitude: 40}}

	got := resampleAltitude(samples, 2)
	if len(got) != 2 || got[0] != 15 || got[1] != 35 {
		t.Errorf("resampleAltitude(4 -> 2) = %v, want [15 35]", got)
	}

	got = resampleAltitude(samples, 8)
	if len(got) != 8 || got[0] != 10 || got[7] != 40 {
		t.Errorf("resampleAltitude(4 -> 8) = %v", got)
	}

	if resampleAltitude(nil, 8) != nil {
		t.Error("empty input should give nil")
	}
}

func TestProjectToScreen(t *testing.T) {
	tests := []struct {
		name     string
		az, alt  float64
		wantX    int
		wantY    int
		wantSeen bool
	}{
		{"centre", 180, 45, 50, 10, true},
		{"zenith", 180, 90, 50, 0, true},
		{"left edge", 90, 10, 0, 17, true},
		{"behind", 0, 45, 0, 0, false},
		{"below horizon", 180, -5, 0, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, ok := projectToScreen(tc.az, tc.alt, 180, 100, 20)
			if ok != tc.wantSeen {
				t.Fatalf("visible = %v, want %v", ok, tc.wantSeen)
			}
			if ok && (x != tc.wantX || y != tc.wantY) {
				t.Errorf("(%d, %d), want (%d, %d)", x, y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Sigma Octantis Long", 16); got != "Sigma Octantis.." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Vega", 16); got != "Vega" {
		t.Errorf("truncate = %q", got)
	}
}

func TestLiveUpdates(t *testing.T) {
	p := testPlan(t)
	mgr := state.NewManager(state.DefaultConfig())
	at := time.Date(2023, 1, 14, 22, 0, 0, 0, time.UTC)
	for _, when := range []time.Time{at, at.Add(30 * time.Minute)} {
		obs, err := state.Observe(p, when)
		if err != nil {
			t.Fatal(err)
		}
		mgr.Update(obs, 0, nil)
	}

	m := sized(New(p), 120, 40)
	next, _ := m.Update(LiveMsg{Snapshot: mgr.Snapshot()})
	m = next.(Model)
	m, _ = press(m, runeKey('d'))

	view := m.View()
	if !strings.Contains(view, "Now") || !strings.Contains(view, "alt ") {
		t.Errorf("detail view missing live position:\n%s", view)
	}
	if !strings.Contains(view, "rising") && !strings.Contains(view, "sinking") {
		t.Errorf("detail view missing altitude rate:\n%s", view)
	}
}

func TestLiveErrorShown(t *testing.T) {
	mgr := state.NewManager(state.DefaultConfig())
	_, err := state.Observe(&plan.Plan{}, time.Now())
	mgr.Update(nil, 0, err)

	m := sized(New(testPlan(t)), 120, 40)
	next, _ := m.Update(LiveMsg{Snapshot: mgr.Snapshot()})
	if view := next.(Model).View(); !strings.Contains(view, "LIVE: no targets to observe") {
		t.Errorf("live error not shown:\n%s", view)
	}
}

func TestRescanKey(t *testing.T) {
	p := testPlan(t)
	var dates []astrotime.Instant
	fail := false
	rescan := func(date astrotime.Instant) (*plan.Plan, error) {
		dates = append(dates, date)
		if fail {
			return nil, errors.New("program file vanished")
		}
		return p, nil
	}

	m := sized(New(p, WithRescan(rescan)), 120, 40)
	m, cmd := press(m, runeKey('r'))
	if cmd == nil {
		t.Fatal("r produced no command")
	}
	if _, again := press(m, runeKey('r')); again != nil {
		t.Error("second r while rescanning should not start another rescan")
	}
	msg := cmd()
	if got, ok := msg.(PlanMsg); !ok || got.Plan != p {
		t.Fatalf("rescan message = %#v, want PlanMsg", msg)
	}
	if len(dates) != 1 || dates[0] != p.Night.Date {
		t.Errorf("rescanned dates = %v, want the displayed night", dates)
	}
	next, _ := m.Update(msg)
	m = next.(Model)

	fail = true
	m, cmd = press(m, runeKey('r'))
	if cmd == nil {
		t.Fatal("r after a finished rescan produced no command")
	}
	next, _ = m.Update(cmd())
	m = next.(Model)
	if view := m.View(); !strings.Contains(view, "ERROR: rescan 2023-01-14: program file vanished") {
		t.Errorf("rescan error not shown:\n%s", view)
	}

	if _, cmd := press(sized(New(p), 120, 40), runeKey('r')); cmd != nil {
		if _, ok := cmd().(PlanMsg); ok {
			t.Error("r without a rescanner should not rescan")
		}
	}
}

func TestRescanAfterNightEnds(t *testing.T) {
	p := testPlan(t)
	var dates []astrotime.Instant
	rescan := func(date astrotime.Instant) (*plan.Plan, error) {
		dates = append(dates, date)
		return p, nil
	}
	m := New(p, WithRescan(rescan))

	during := time.Date(2023, 1, 15, 2, 0, 0, 0, time.UTC)
	next, cmd := m.Update(TickMsg(during))
	m = next.(Model)
	drain(cmd)
	if len(dates) != 0 {
		t.Fatalf("rescanned during the night: %v", dates)
	}

	after := time.Date(2023, 1, 16, 9, 0, 0, 0, time.UTC)
	_, cmd = m.Update(TickMsg(after))
	drain(cmd)
	if len(dates) != 1 {
		t.Fatalf("rescans after the night = %v, want one", dates)
	}
	if got := dates[0]; got.Year != 2023 || got.Month != 1 || got.Day != 16 {
		t.Errorf("rescanned %v, want the night of 2023-01-16", got)
	}
}

func TestNextNightDate(t *testing.T) {
	night, err := plan.NewNight(astrotime.New(2023, 1, 14, 0, 0, 0), 18, 7, 1)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		at      time.Time
		over    bool
		wantDay int
	}{
		{time.Date(2023, 1, 15, 6, 59, 0, 0, time.UTC), false, 14},
		{time.Date(2023, 1, 15, 7, 1, 0, 0, time.UTC), true, 15},
		{time.Date(2023, 1, 16, 3, 0, 0, 0, time.UTC), true, 15},
		{time.Date(2023, 1, 16, 8, 0, 0, 0, time.UTC), true, 16},
	}
	for _, tc := range tests {
		if got := nightOver(night, tc.at); got != tc.over {
			t.Errorf("nightOver(%v) = %v, want %v", tc.at, got, tc.over)
		}
		if got := nextNightDate(night, tc.at); got.Day != tc.wantDay || got.Month != 1 {
			t.Errorf("nextNightDate(%v) = %v, want 2023-01-%02d", tc.at, got, tc.wantDay)
		}
	}
}

// drain runs cmd and any batched commands except ticks.
func drain(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				drain(c)
			}
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDescribeEvent(t *testing.T) {
	at := time.Date(2023, 1, 14, 18, 43, 0, 0, time.UTC)
	tests := []struct {
		event state.Event
		want  string
	}{
		{state.Event{Type: state.EventRise, Target: "Sirius", Timestamp: at}, "Sirius rose 18:43"},
		{state.Event{Type: state.EventSet, Target: "Deneb", Timestamp: at}, "Deneb set 18:43"},
		{state.Event{Type: state.EventTier, Target: "Vega", Timestamp: at,
			OldTier: coord.AirmassFair, NewTier: coord.AirmassGood}, "Vega fair→good 18:43"},
	}
	for _, tc := range tests {
		if got := describeEvent(tc.event); got != tc.want {
			t.Errorf("describeEvent = %q, want %q", got, tc.want)
		}
	}
}
