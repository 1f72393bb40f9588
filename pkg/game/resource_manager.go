package game

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	toneaudio "github.com/decker502/missilemath/internal/audio"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// ResourceManager is responsible for loading and caching audio assets.
// Supported formats: WAV (.wav), MP3 (.mp3) and OGG Vorbis (.ogg).
//
// This implementation is NOT thread-safe; all loading happens on the game goroutine.
type ResourceManager struct {
	audioCache   map[string]*audio.Player // Cache for loaded audio players: path -> Player
	audioContext *audio.Context           // Global audio context for audio decoding
}

// NewResourceManager creates a ResourceManager bound to the given audio context.
// The audio context should be created once at game startup.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		audioCache:   make(map[string]*audio.Player),
		audioContext: audioContext,
	}
}

// decodedStream is the common shape of the ebiten decoders.
type decodedStream interface {
	io.ReadSeeker
	Length() int64
}

// decode opens the file at path and decodes it by extension.
func (rm *ResourceManager) decode(path string) (decodedStream, error) {
	audioData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}

	// Keep the whole file in memory so the stream can seek without an open handle
	reader := bytes.NewReader(audioData)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		stream, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", path, err)
		}
		return stream, nil
	case ".mp3":
		stream, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		return stream, nil
	case ".ogg":
		stream, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		return stream, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .ogg)", ext)
	}
}

// LoadAudio loads a looping music track and caches its player.
func (rm *ResourceManager) LoadAudio(path string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[path]; exists {
		return cachedPlayer, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context")
	}

	stream, err := rm.decode(path)
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[path] = player
	return player, nil
}

// LoadSoundEffect loads a one-shot sound effect and caches its player.
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[path]; exists {
		return cachedPlayer, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context")
	}

	stream, err := rm.decode(path)
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[path] = player
	return player, nil
}

// LoadTone synthesizes a sound effect and caches it under the given key.
// Used when the asset for an effect is missing.
func (rm *ResourceManager) LoadTone(key string, tone toneaudio.Tone) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[key]; exists {
		return cachedPlayer, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context")
	}

	stream, err := toneaudio.NewToneStream(rm.audioContext.SampleRate(), tone)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize tone %s: %w", key, err)
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", key, err)
	}

	rm.audioCache[key] = player
	return player, nil
}

// GetAudioPlayer retrieves a previously loaded audio player from the cache.
func (rm *ResourceManager) GetAudioPlayer(path string) *audio.Player {
	return rm.audioCache[path]
}

// Close releases every cached player.
func (rm *ResourceManager) Close() {
	for path, player := range rm.audioCache {
		if err := player.Close(); err != nil {
			log.Printf("[ResourceManager] Warning: Failed to close audio player %s: %v", path, err)
		}
		delete(rm.audioCache, path)
	}
}
