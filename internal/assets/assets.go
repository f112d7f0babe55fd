// Package assets defines the source-item model: which blobs count as audio
// assets and how an asset name maps to its transcription artifact name.
package assets

import (
	"path"
	"strings"
)

// ArtifactSuffix is appended (with a .json extension) to an asset's base
// name to form its artifact name.
const ArtifactSuffix = "_transcription"

// audioExtensions is the fixed allow-list of eligible source extensions.
var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".m4a":  {},
	".flac": {},
	".ogg":  {},
}

// Asset identifies one source item by its namespace-relative name.
type Asset struct {
	Name string
}

// Base returns the final path element of the asset name, used for local
// staging filenames.
func (a Asset) Base() string {
	return path.Base(a.Name)
}

// ArtifactName returns the derived artifact blob name for the asset:
// extension stripped, ArtifactSuffix appended, extension forced to .json.
func (a Asset) ArtifactName() string {
	return strings.TrimSuffix(a.Name, path.Ext(a.Name)) + ArtifactSuffix + ".json"
}

// Eligible reports whether a blob name carries one of the allowed audio
// extensions. The match is case-insensitive.
func Eligible(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	_, ok := audioExtensions[ext]
	return ok
}
