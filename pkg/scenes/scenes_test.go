package scenes

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"math/rand"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/sato2d/pkg/config"
	"github.com/decker502/sato2d/pkg/game"
)

func testAssets(t *testing.T) *Assets {
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
	fsys := fstest.MapFS{
		"resources.yaml":  {Data: []byte(manifest)},
		"assets/bg.png":   {Data: buf.Bytes()},
		"assets/font.ttf": {Data: goregular.TTF},
	}
	rm := game.NewResourceManager(fsys, nil)
	if err := rm.LoadResourceConfig("resources.yaml"); err != nil {
		t.Fatalf("LoadResourceConfig: %v", err)
	}
	assets, err := LoadAssets(rm)
	if err != nil {
		t.Fatalf("LoadAssets: %v", err)
	}
	return assets
}

func TestLoadAssets(t *testing.T) {
	a := testAssets(t)
	if a.Background == nil {
		t.Error("background not loaded")
	}
	if a.TitleFace.Size != 300 || a.PromptFace.Size != 60 || a.CountFace.Size != 80 {
		t.Errorf("face sizes = %v/%v/%v", a.TitleFace.Size, a.PromptFace.Size, a.CountFace.Size)
	}
	if a.TitleFace.Source != a.PromptFace.Source {
		t.Error("faces should share one parsed font")
	}
}

func TestLoadAssets_MissingFont(t *testing.T) {
	rm := game.NewResourceManager(fstest.MapFS{
		"resources.yaml": {Data: []byte("groups: {}\n")},
	}, nil)
	if err := rm.LoadResourceConfig("resources.yaml"); err != nil {
		t.Fatalf("LoadResourceConfig: %v", err)
	}
	if _, err := LoadAssets(rm); err == nil {
		t.Error("expected error when scene resources are not declared")
	}
}

func TestLoadAssets_MissingBackground(t *testing.T) {
	manifest := `base_path: assets
groups:
  init:
    images:
      - id: IMAGE_BACKGROUND
        path: missing.png
    fonts:
      - id: FONT_VANILLA_CARAMEL
        path: font.ttf
`
	rm := game.NewResourceManager(fstest.MapFS{
		"resources.yaml":  {Data: []byte(manifest)},
		"assets/font.ttf": {Data: goregular.TTF},
	}, nil)
	if err := rm.LoadResourceConfig("resources.yaml"); err != nil {
		t.Fatalf("LoadResourceConfig: %v", err)
	}

	a, err := LoadAssets(rm)
	if a != nil {
		t.Error("assets must not be returned without a background")
	}
	var loadErr *game.AssetLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *game.AssetLoadError, got %T (%v)", err, err)
	}
	if loadErr.Kind != "image" || loadErr.ID != config.ImageBackground {
		t.Errorf("error = %+v, want image %s", loadErr, config.ImageBackground)
	}
}

func TestCountdownLabel(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{10, "10"}, {1, "1"}, {0, ""}, {-1, ""},
	}
	for _, tt := range tests {
		if got := CountdownLabel(tt.in); got != tt.want {
			t.Errorf("CountdownLabel(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPostGameLayout(t *testing.T) {
	a := testAssets(t)

	tests := []struct {
		name      string
		clicks    int
		hits      int
		wantScale bool // 是否需要缩小
	}{
		{"零命中", 0, 0, false},
		{"普通成绩", 10, 8, false},
		{"超宽分数", 400, 200, true}, // 字号 1460
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := NewPostGameScene(a, game.NewResult(tt.clicks, tt.hits))
			if err != nil {
				t.Fatalf("NewPostGameScene: %v", err)
			}
			if scene.scoreFace.Size != config.ScoreFontSize(tt.hits) {
				t.Errorf("score face size = %v, want %v", scene.scoreFace.Size, config.ScoreFontSize(tt.hits))
			}

			ys, scale := scene.Layout()
			if len(ys) != 3 {
				t.Fatalf("len(ys) = %d, want 3", len(ys))
			}
			if !(ys[0] < ys[1] && ys[1] < ys[2]) {
				t.Errorf("lines not stacked top to bottom: %v", ys)
			}
			if tt.wantScale != (scale < 1) {
				t.Errorf("scale = %v, wantScale %v", scale, tt.wantScale)
			}
			if scale > 1 {
				t.Errorf("scale = %v must never enlarge", scale)
			}
		})
	}
}

func TestPostGameScoreText(t *testing.T) {
	scene, err := NewPostGameScene(testAssets(t), game.NewResult(40, 30))
	if err != nil {
		t.Fatalf("NewPostGameScene: %v", err)
	}
	if got := scene.ScoreText(); got != "SCORE: 22,500" {
		t.Errorf("ScoreText = %q", got)
	}
}

func TestSceneFactory(t *testing.T) {
	a := testAssets(t)
	c := game.NewController(game.WithRand(rand.New(rand.NewSource(1))))
	factory := NewSceneFactory(a, c)

	if _, ok := factory(game.StateWaiting).(*TitleScene); !ok {
		t.Error("waiting should map to TitleScene")
	}

	c.Start()
	play, ok := factory(game.StatePlaying).(*PlayScene)
	if !ok {
		t.Fatal("playing should map to PlayScene")
	}
	if play.session != c.Session() {
		t.Error("PlayScene should read the current session")
	}

	// 没有结算结果时不创建结算界面
	if scene := factory(game.StateGameOver); scene != nil {
		t.Errorf("gameover without result = %T, want nil", scene)
	}
	if scene := factory(game.StateExit); scene != nil {
		t.Errorf("exit = %T, want nil", scene)
	}
}

func TestScenesDraw(t *testing.T) {
	a := testAssets(t)
	screen := ebiten.NewImage(config.GameWindowWidth, config.GameWindowHeight)

	c := game.NewController(game.WithRand(rand.New(rand.NewSource(1))))
	c.Start()
	c.Update()

	post, err := NewPostGameScene(a, game.NewResult(10, 8))
	if err != nil {
		t.Fatalf("NewPostGameScene: %v", err)
	}

	for _, s := range []Scene{NewTitleScene(a), NewPlayScene(a, c.Session()), post} {
		s.Update(1.0 / 120)
		s.Draw(screen)
	}
	if post.panel == nil {
		t.Error("panel should be rendered on first draw")
	}
	post.Dispose()
	if post.panel != nil {
		t.Error("Dispose should release the panel")
	}
}
