package app

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/sato2d/pkg/game"
	"github.com/decker502/sato2d/pkg/metrics"
	"github.com/decker502/sato2d/pkg/results"
	"github.com/decker502/sato2d/pkg/scenes"
	"github.com/decker502/sato2d/pkg/utils"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func testResourceManager(t *testing.T) *game.ResourceManager {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 9))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	manifest := `base_path: assets
groups:
  init:
    images:
      - id: IMAGE_BACKGROUND
        path: bg.png
    fonts:
      - id: FONT_VANILLA_CARAMEL
        path: font.ttf
`
	rm := game.NewResourceManager(fstest.MapFS{
		"resources.yaml":  {Data: []byte(manifest)},
		"assets/bg.png":   {Data: buf.Bytes()},
		"assets/font.ttf": {Data: goregular.TTF},
	}, nil)
	if err := rm.LoadResourceConfig("resources.yaml"); err != nil {
		t.Fatalf("LoadResourceConfig: %v", err)
	}
	return rm
}

// scriptedInput 按顺序返回预设的帧输入，用完后返回空输入
type scriptedInput struct {
	frames []utils.FrameInput
}

func (s *scriptedInput) push(in utils.FrameInput) { s.frames = append(s.frames, in) }

func (s *scriptedInput) poll() utils.FrameInput {
	if len(s.frames) == 0 {
		return utils.FrameInput{}
	}
	in := s.frames[0]
	s.frames = s.frames[1:]
	return in
}

func TestNewApp_RequiresAssets(t *testing.T) {
	if _, err := NewApp(Config{}); err == nil {
		t.Error("expected error without resource manager")
	}

	rm := game.NewResourceManager(fstest.MapFS{
		"resources.yaml": {Data: []byte("groups: {}\n")},
	}, nil)
	if err := rm.LoadResourceConfig("resources.yaml"); err != nil {
		t.Fatalf("LoadResourceConfig: %v", err)
	}
	_, err := NewApp(Config{ResourceManager: rm})
	var loadErr *game.AssetLoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("expected AssetLoadError, got %v", err)
	}
}

func TestAppFullRound(t *testing.T) {
	clock := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	storePath := filepath.Join(t.TempDir(), "data_csv")
	metricsPath := filepath.Join(t.TempDir(), "sato2d.prom")
	m := metrics.NewManager()

	a, err := NewApp(Config{
		ResourceManager: testResourceManager(t),
		Store:           results.NewCSVStore(storePath),
		Metrics:         m,
		MetricsPath:     metricsPath,
		TPS:             120,
		SessionSeconds:  2,
		Clock:           clock,
		Rand:            rand.New(rand.NewSource(3)),
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	input := &scriptedInput{}
	a.poll = input.poll

	if _, ok := a.SceneManager().GetCurrentScene().(*scenes.TitleScene); !ok {
		t.Fatalf("initial scene = %T, want *TitleScene", a.SceneManager().GetCurrentScene())
	}

	// 标题界面的点击被忽略
	input.push(utils.FrameInput{Releases: []image.Point{{X: 1, Y: 1}}})
	mustUpdate(t, a)
	if a.Controller().ClickCount() != 0 {
		t.Fatal("clicks on the title screen must not count")
	}

	input.push(utils.FrameInput{StartPressed: true})
	mustUpdate(t, a)
	if a.Controller().State() != game.StatePlaying {
		t.Fatalf("State = %s, want playing", a.Controller().State())
	}
	if _, ok := a.SceneManager().GetCurrentScene().(*scenes.PlayScene); !ok {
		t.Fatalf("scene = %T, want *PlayScene", a.SceneManager().GetCurrentScene())
	}

	tg := a.Controller().Session().ActiveTarget()
	if tg == nil {
		t.Fatal("target should spawn on the first playing tick")
	}
	cx, cy := tg.Center()
	input.push(utils.FrameInput{Releases: []image.Point{{X: int(cx), Y: int(cy)}}})
	mustUpdate(t, a)

	for i := 0; i < 10 && a.Controller().State() == game.StatePlaying; i++ {
		clock.now = clock.now.Add(time.Second)
		mustUpdate(t, a)
	}
	if a.Controller().State() != game.StateGameOver {
		t.Fatalf("State = %s, want gameover", a.Controller().State())
	}
	if _, ok := a.SceneManager().GetCurrentScene().(*scenes.PostGameScene); !ok {
		t.Fatalf("scene = %T, want *PostGameScene", a.SceneManager().GetCurrentScene())
	}

	data, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("read results: %v", err)
	}
	if got := string(data); got != "100.0,1.0,1\n" {
		t.Errorf("results file = %q", got)
	}
	prom, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	for _, want := range []string{"sato2d_sessions_total 1", "sato2d_shots_total 1", "sato2d_hits_total 1"} {
		if !strings.Contains(string(prom), want) {
			t.Errorf("metrics file missing %q", want)
		}
	}

	a.Draw(ebiten.NewImage(64, 64))

	input.push(utils.FrameInput{StartPressed: true})
	mustUpdate(t, a)
	if _, ok := a.SceneManager().GetCurrentScene().(*scenes.TitleScene); !ok {
		t.Fatalf("scene after restart = %T, want *TitleScene", a.SceneManager().GetCurrentScene())
	}

	input.push(utils.FrameInput{CloseRequested: true})
	if err := a.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("Update after close = %v, want ebiten.Termination", err)
	}
}

func mustUpdate(t *testing.T, a *App) {
	t.Helper()
	if err := a.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestEventsFromInput(t *testing.T) {
	if got := EventsFromInput(utils.FrameInput{}); got != nil {
		t.Errorf("empty input = %v, want nil", got)
	}

	got := EventsFromInput(utils.FrameInput{
		StartPressed:   true,
		CloseRequested: true,
		Releases:       []image.Point{{X: 1, Y: 2}, {X: 3, Y: 4}},
	})
	want := []game.Event{
		{Kind: game.EventClick, X: 1, Y: 2},
		{Kind: game.EventClick, X: 3, Y: 4},
		{Kind: game.EventStart},
		{Kind: game.EventQuit},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestEventsFromInput_SeveralReleasesPerFrame(t *testing.T) {
	// 左、右、中键在同一帧抬起，每一次抬起都是一次点击
	in := utils.FrameInput{Releases: []image.Point{{X: 10, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 10}}}
	events := EventsFromInput(in)
	if len(events) != 3 {
		t.Fatalf("len = %d, want 3", len(events))
	}

	c := game.NewController(game.WithClock(&stepClock{now: time.Unix(0, 0)}), game.WithRand(rand.New(rand.NewSource(1))))
	c.Start()
	for _, ev := range events {
		if err := c.HandleEvent(ev); err != nil {
			t.Fatalf("HandleEvent(%v): %v", ev, err)
		}
	}
	if got := c.ClickCount(); got != 3*2 {
		t.Errorf("ClickCount = %d, want 6", got)
	}
}

func TestLayout(t *testing.T) {
	a, err := NewApp(Config{ResourceManager: testResourceManager(t)})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	if w, h := a.Layout(800, 600); w != 1920 || h != 1080 {
		t.Errorf("Layout = %dx%d, want 1920x1080", w, h)
	}
}
