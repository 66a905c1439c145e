package config

import "image/color"

// 窗口与画面配置
// 逻辑分辨率固定为 1920x1080，由 Ebitengine 负责缩放到实际窗口
const (
	// WindowTitle 窗口标题
	WindowTitle = "SATO2D"

	// GameWindowWidth 逻辑屏幕宽度（像素）
	GameWindowWidth = 1920

	// GameWindowHeight 逻辑屏幕高度（像素）
	GameWindowHeight = 1080

	// DefaultTPS 每秒逻辑帧数
	DefaultTPS = 120
)

// 游戏规则配置
const (
	// DefaultSessionSeconds 每局倒计时长度（秒）
	DefaultSessionSeconds = 10

	// TargetRadius 靶子半径（像素），靶子直径为 2*TargetRadius
	TargetRadius = 30

	// ClickWeight 每次鼠标抬起累加的点击数
	// 点击数按 2 计入，命中率公式中的 ×2 与记录里的 clicks/2 都以此为前提
	ClickWeight = 2
)

// 文字布局配置（字号单位：像素）
const (
	TitleFontSize     = 300.0 // "SATO2D" / "GAME OVER"
	PromptFontSize    = 60.0  // "Press Space ..." 提示文字
	CountdownFontSize = 80.0  // 右下角倒计时

	// ScoreFontBaseSize 分数字号基础值，实际字号 = 基础值 + ScoreFontPerHit * 命中数
	ScoreFontBaseSize = 60.0
	ScoreFontPerHit   = 7.0

	// TitlePromptOffsetY 标题下方提示文字相对屏幕中心的 Y 偏移
	TitlePromptOffsetY = 200.0

	// PostGameLineGap 结算界面三行文字之间的间距
	PostGameLineGap = 60.0

	// CountdownMarginRight / CountdownMarginBottom 倒计时右下角锚点边距
	CountdownMarginRight  = 20.0
	CountdownMarginBottom = 10.0
)

// 文本与界面配色
var (
	TitleTextColor     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	CountdownTextColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	PostGameTextColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	TargetColor        = color.RGBA{R: 255, G: 0, B: 0, A: 255}

	// PostGameOverlay 结算面板底色，面板不透明且铺满整个窗口
	PostGameOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// 资源ID（定义于 assets/config/resources.yaml）
const (
	ImageBackground = "IMAGE_BACKGROUND"
	ImageTarget     = "IMAGE_TARGET"
	FontDecorative  = "FONT_VANILLA_CARAMEL"
	SoundShot       = "SOUND_SHOT"
	SoundHit        = "SOUND_HIT"

	// ResourceGroupInit 启动时需要一次性加载的资源组
	ResourceGroupInit = "init"
)

// PlayFieldBounds 返回靶子左上角坐标的取值上限（包含）
// 返回值：maxX, maxY
func PlayFieldBounds() (int, int) {
	diameter := 2 * TargetRadius
	return GameWindowWidth - diameter, GameWindowHeight - diameter
}

// ScoreFontSize 根据命中数计算分数文字的字号
func ScoreFontSize(hits int) float64 {
	if hits < 0 {
		hits = 0
	}
	return ScoreFontBaseSize + ScoreFontPerHit*float64(hits)
}
