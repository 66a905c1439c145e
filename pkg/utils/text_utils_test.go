package utils

import (
	"bytes"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func testFace(t *testing.T, size float64) *text.GoTextFace {
	t.Helper()
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("parse font: %v", err)
	}
	return &text.GoTextFace{Source: src, Size: size}
}

func TestMeasureText(t *testing.T) {
	small := testFace(t, 60)
	big := testFace(t, 120)

	if w, h := MeasureText("", small); w != 0 || h != 0 {
		t.Errorf("empty text = %vx%v, want 0x0", w, h)
	}
	if w, h := MeasureText("SATO2D", nil); w != 0 || h != 0 {
		t.Errorf("nil face = %vx%v, want 0x0", w, h)
	}

	ws, hs := MeasureText("SATO2D", small)
	wb, hb := MeasureText("SATO2D", big)
	if ws <= 0 || hs <= 0 {
		t.Fatalf("measure = %vx%v, want positive", ws, hs)
	}
	if wb <= ws || hb <= hs {
		t.Errorf("larger face should measure larger: %vx%v vs %vx%v", wb, hb, ws, hs)
	}
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		name            string
		width, maxWidth float64
		want            float64
	}{
		{"未超出", 1000, 1920, 1},
		{"恰好等宽", 1920, 1920, 1},
		{"超出一倍", 3840, 1920, 0.5},
		{"零宽度", 0, 1920, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitScale(tt.width, tt.maxWidth); got != tt.want {
				t.Errorf("FitScale(%v, %v) = %v, want %v", tt.width, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestStackCenters(t *testing.T) {
	got := StackCenters([]float64{100, 50, 20}, 60, 10)
	want := []float64{60, 245, 345}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("center %d = %v, want %v", i, got[i], want[i])
		}
	}
	if len(StackCenters(nil, 60, 0)) != 0 {
		t.Error("no lines should yield no centers")
	}
}

func TestDrawText(t *testing.T) {
	dst := ebiten.NewImage(200, 100)
	face := testFace(t, 20)
	// 空文本和空字体直接返回
	DrawText(dst, "", face, 100, 50, 1, AnchorCenter, nil)
	DrawText(dst, "x", nil, 100, 50, 1, AnchorCenter, nil)
	DrawText(dst, "SATO2D", face, 100, 50, 1, AnchorCenter, textColor)
	DrawText(dst, "10", face, 180, 90, 0.5, AnchorBottomRight, textColor)
}
