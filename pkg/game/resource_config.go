package game

import "path"

// ResourceConfig represents the resource manifest loaded from YAML.
// It defines the structure of assets/config/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  group_name:
//	    images: [...]
//	    sounds: [...]
//	    fonts: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Manifest version
	BasePath string                   `yaml:"base_path"` // Base path for all resources (e.g., "assets")
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup is a set of resources that are loaded together.
type ResourceGroup struct {
	Images []ResourceEntry `yaml:"images"`
	Sounds []ResourceEntry `yaml:"sounds"`
	Fonts  []ResourceEntry `yaml:"fonts"`
}

// ResourceEntry maps a resource ID to a file path relative to base_path.
//
// Example:
//
//   - id: SOUND_SHOT
//     path: sounds/shot.mp3
type ResourceEntry struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// buildFullPath joins the base path and a resource's relative path.
// Paths use forward slashes because resources are read through io/fs.
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return path.Clean(relativePath)
	}
	return path.Join(basePath, relativePath)
}
