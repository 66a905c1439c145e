package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	sunau "github.com/decker502/sato2d/internal/audio"
	"github.com/decker502/sato2d/pkg/logger"
)

// ResourceManager is responsible for centralized management of game resources.
// Images, font faces and decoded sound data are loaded once and reused, so views
// never touch the file system while drawing.
//
// Resources are read through an fs.FS rooted at the working directory
// (os.DirFS(".") in the game, fstest.MapFS in tests).
//
// This implementation is NOT thread-safe; it is only used from the game loop.
//
// Usage:
//
//	rm := NewResourceManager(os.DirFS("."), audio.NewContext(48000))
//	if err := rm.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
//	    return err
//	}
//	if err := rm.LoadResourceGroup("init"); err != nil {
//	    return err
//	}
type ResourceManager struct {
	fsys            fs.FS
	audioContext    *audio.Context
	imageCache      map[string]*ebiten.Image          // path -> Image
	soundCache      map[string][]byte                 // path -> decoded PCM (16-bit stereo, context rate)
	fontSourceCache map[string]*text.GoTextFaceSource // path -> parsed font
	fontFaceCache   map[string]*text.GoTextFace       // path:size -> face

	config      *ResourceConfig
	resourceMap map[string]string // resource ID -> file path
	logger      zerolog.Logger
}

// NewResourceManager creates a ResourceManager reading from fsys.
// audioContext may be nil when no sounds are loaded (e.g. in tests).
func NewResourceManager(fsys fs.FS, audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		fsys:            fsys,
		audioContext:    audioContext,
		imageCache:      make(map[string]*ebiten.Image),
		soundCache:      make(map[string][]byte),
		fontSourceCache: make(map[string]*text.GoTextFaceSource),
		fontFaceCache:   make(map[string]*text.GoTextFace),
		resourceMap:     make(map[string]string),
		logger:          logger.Named("ResourceManager"),
	}
}

// LoadResourceConfig parses the YAML manifest and builds the ID -> path map.
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := fs.ReadFile(rm.fsys, cleanPath(configPath))
	if err != nil {
		return &AssetLoadError{Kind: "manifest", Path: configPath, Err: err}
	}

	var cfg ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return &AssetLoadError{Kind: "manifest", Path: configPath, Err: fmt.Errorf("failed to parse: %w", err)}
	}

	rm.config = &cfg
	rm.buildResourceMap()
	rm.logger.Debug().Str("path", configPath).Int("resources", len(rm.resourceMap)).Msg("resource manifest loaded")
	return nil
}

// buildResourceMap constructs the resource ID -> full path mapping.
func (rm *ResourceManager) buildResourceMap() {
	rm.resourceMap = make(map[string]string)
	for _, group := range rm.config.Groups {
		for _, entries := range [][]ResourceEntry{group.Images, group.Sounds, group.Fonts} {
			for _, e := range entries {
				rm.resourceMap[e.ID] = buildFullPath(rm.config.BasePath, e.Path)
			}
		}
	}
}

// ResolvePath returns the file path registered for a resource ID.
func (rm *ResourceManager) ResolvePath(resourceID string) (string, bool) {
	p, ok := rm.resourceMap[resourceID]
	return p, ok
}

// LoadResourceGroup loads every image, sound and font source in a group.
// Fonts are parsed here; faces are created on demand because they need a size.
func (rm *ResourceManager) LoadResourceGroup(groupName string) error {
	if rm.config == nil {
		return fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}
	group, exists := rm.config.Groups[groupName]
	if !exists {
		return fmt.Errorf("resource group not found: %s", groupName)
	}

	for _, img := range group.Images {
		if _, err := rm.LoadImageByID(img.ID); err != nil {
			return err
		}
	}
	for _, snd := range group.Sounds {
		if _, err := rm.LoadSoundByID(snd.ID); err != nil {
			return err
		}
	}
	for _, f := range group.Fonts {
		p := rm.resourceMap[f.ID]
		if _, err := rm.loadFontSource(p, f.ID); err != nil {
			return err
		}
	}

	rm.logger.Info().Str("group", groupName).
		Int("images", len(group.Images)).
		Int("sounds", len(group.Sounds)).
		Int("fonts", len(group.Fonts)).
		Msg("resource group loaded")
	return nil
}

// LoadImage loads a PNG/JPEG image and caches it by path.
func (rm *ResourceManager) LoadImage(imagePath string) (*ebiten.Image, error) {
	return rm.loadImage(imagePath, "")
}

func (rm *ResourceManager) loadImage(imagePath, id string) (*ebiten.Image, error) {
	imagePath = cleanPath(imagePath)
	if cached, exists := rm.imageCache[imagePath]; exists {
		return cached, nil
	}

	f, err := rm.fsys.Open(imagePath)
	if err != nil {
		return nil, &AssetLoadError{Kind: "image", ID: id, Path: imagePath, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &AssetLoadError{Kind: "image", ID: id, Path: imagePath, Err: fmt.Errorf("failed to decode: %w", err)}
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[imagePath] = ebitenImg
	return ebitenImg, nil
}

// GetImage returns a cached image or nil.
func (rm *ResourceManager) GetImage(imagePath string) *ebiten.Image {
	return rm.imageCache[cleanPath(imagePath)]
}

// LoadImageByID loads an image declared in the manifest.
func (rm *ResourceManager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	p, ok := rm.resourceMap[resourceID]
	if !ok {
		return nil, &AssetLoadError{Kind: "image", ID: resourceID, Err: fmt.Errorf("resource ID not found")}
	}
	return rm.loadImage(p, resourceID)
}

// GetImageByID returns a cached image by resource ID or nil.
func (rm *ResourceManager) GetImageByID(resourceID string) *ebiten.Image {
	p, ok := rm.resourceMap[resourceID]
	if !ok {
		return nil
	}
	return rm.GetImage(p)
}

// LoadSoundEffect decodes a one-shot sound (MP3, OGG Vorbis or AU) into PCM
// at the audio context's sample rate and caches the bytes.
// Players are created per play from the cached bytes (see NewSoundPlayer).
func (rm *ResourceManager) LoadSoundEffect(soundPath string) ([]byte, error) {
	return rm.loadSound(soundPath, "")
}

func (rm *ResourceManager) loadSound(soundPath, id string) ([]byte, error) {
	soundPath = cleanPath(soundPath)
	if cached, exists := rm.soundCache[soundPath]; exists {
		return cached, nil
	}
	if rm.audioContext == nil {
		return nil, &AssetLoadError{Kind: "sound", ID: id, Path: soundPath, Err: fmt.Errorf("audio context not initialized")}
	}

	data, err := fs.ReadFile(rm.fsys, soundPath)
	if err != nil {
		return nil, &AssetLoadError{Kind: "sound", ID: id, Path: soundPath, Err: err}
	}

	var stream io.ReadSeeker
	switch ext := strings.ToLower(path.Ext(soundPath)); ext {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(rm.audioContext.SampleRate(), bytes.NewReader(data))
		if err != nil {
			return nil, &AssetLoadError{Kind: "sound", ID: id, Path: soundPath, Err: fmt.Errorf("failed to decode MP3: %w", err)}
		}
		stream = s
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(rm.audioContext.SampleRate(), bytes.NewReader(data))
		if err != nil {
			return nil, &AssetLoadError{Kind: "sound", ID: id, Path: soundPath, Err: fmt.Errorf("failed to decode OGG: %w", err)}
		}
		stream = s
	case ".au":
		s, err := sunau.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, &AssetLoadError{Kind: "sound", ID: id, Path: soundPath, Err: fmt.Errorf("failed to decode AU: %w", err)}
		}
		stream = audio.Resample(s, s.Length(), s.SampleRate(), rm.audioContext.SampleRate())
	default:
		return nil, &AssetLoadError{Kind: "sound", ID: id, Path: soundPath,
			Err: fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .au)", ext)}
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, &AssetLoadError{Kind: "sound", ID: id, Path: soundPath, Err: fmt.Errorf("failed to decode: %w", err)}
	}
	rm.soundCache[soundPath] = pcm
	return pcm, nil
}

// LoadSoundByID loads a sound declared in the manifest.
func (rm *ResourceManager) LoadSoundByID(resourceID string) ([]byte, error) {
	p, ok := rm.resourceMap[resourceID]
	if !ok {
		return nil, &AssetLoadError{Kind: "sound", ID: resourceID, Err: fmt.Errorf("resource ID not found")}
	}
	return rm.loadSound(p, resourceID)
}

// GetSoundData returns cached PCM by path or resource ID, or nil.
func (rm *ResourceManager) GetSoundData(pathOrID string) []byte {
	if p, ok := rm.resourceMap[pathOrID]; ok {
		pathOrID = p
	}
	return rm.soundCache[cleanPath(pathOrID)]
}

// NewSoundPlayer creates a fresh player for a sound declared in the manifest.
// Every player reads the same cached PCM, so several plays of one sound
// overlap instead of restarting each other.
func (rm *ResourceManager) NewSoundPlayer(resourceID string) (*audio.Player, error) {
	pcm, err := rm.LoadSoundByID(resourceID)
	if err != nil {
		return nil, err
	}
	return rm.audioContext.NewPlayerFromBytes(pcm), nil
}

// LoadFont returns a text face of the given size for a TrueType/OpenType file.
// The parsed font is shared by all sizes; faces are cached by path and size.
func (rm *ResourceManager) LoadFont(fontPath string, size float64) (*text.GoTextFace, error) {
	return rm.loadFont(fontPath, "", size)
}

func (rm *ResourceManager) loadFont(fontPath, id string, size float64) (*text.GoTextFace, error) {
	fontPath = cleanPath(fontPath)
	cacheKey := fmt.Sprintf("%s:%.1f", fontPath, size)
	if cached, exists := rm.fontFaceCache[cacheKey]; exists {
		return cached, nil
	}

	source, err := rm.loadFontSource(fontPath, id)
	if err != nil {
		return nil, err
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

func (rm *ResourceManager) loadFontSource(fontPath, id string) (*text.GoTextFaceSource, error) {
	fontPath = cleanPath(fontPath)
	if cached, exists := rm.fontSourceCache[fontPath]; exists {
		return cached, nil
	}

	data, err := fs.ReadFile(rm.fsys, fontPath)
	if err != nil {
		return nil, &AssetLoadError{Kind: "font", ID: id, Path: fontPath, Err: err}
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, &AssetLoadError{Kind: "font", ID: id, Path: fontPath, Err: fmt.Errorf("failed to parse: %w", err)}
	}
	rm.fontSourceCache[fontPath] = source
	return source, nil
}

// LoadFontByID returns a face of the given size for a font declared in the manifest.
func (rm *ResourceManager) LoadFontByID(resourceID string, size float64) (*text.GoTextFace, error) {
	p, ok := rm.resourceMap[resourceID]
	if !ok {
		return nil, &AssetLoadError{Kind: "font", ID: resourceID, Err: fmt.Errorf("resource ID not found")}
	}
	return rm.loadFont(p, resourceID, size)
}

// cleanPath normalizes a path for io/fs: forward slashes, no leading "./".
func cleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return path.Clean(strings.TrimPrefix(p, "./"))
}
