package shader

import "sync"

var (
	textureCache = make(map[string]*Texture)
	cacheMutex   sync.RWMutex
)

// GetTexture returns the texture at path, loading it on first use.
// Textures are cached by path; maxSize only applies to the first load.
func GetTexture(path string, maxSize int) (*Texture, error) {
	cacheMutex.RLock()
	if tex, ok := textureCache[path]; ok {
		cacheMutex.RUnlock()
		return tex, nil
	}
	cacheMutex.RUnlock()

	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	if tex, ok := textureCache[path]; ok {
		return tex, nil
	}

	tex, err := LoadTexture(path, maxSize)
	if err != nil {
		return nil, err
	}
	textureCache[path] = tex
	return tex, nil
}
