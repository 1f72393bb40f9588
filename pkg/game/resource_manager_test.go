package game

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	toneaudio "github.com/decker502/missilemath/internal/audio"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Global audio context shared by all tests
// Ebitengine only allows one audio context to be created
var testAudioContext *audio.Context

// TestMain sets up the shared audio context before running tests
func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

// writeTestWAV writes a short silent 16-bit stereo PCM file.
func writeTestWAV(t *testing.T, path string) {
	t.Helper()

	const frames = 480
	dataSize := uint32(frames * 4)

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVEfmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))      // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(2))      // channels
	binary.Write(&buf, binary.LittleEndian, uint32(48000))  // sample rate
	binary.Write(&buf, binary.LittleEndian, uint32(192000)) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(4))      // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))     // bits per sample
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(make([]byte, dataSize))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("Failed to write test WAV: %v", err)
	}
}

// TestNewResourceManager tests the creation of a new ResourceManager instance.
func TestNewResourceManager(t *testing.T) {
	rm := NewResourceManager(testAudioContext)
	if rm == nil {
		t.Fatal("NewResourceManager returned nil")
	}
	if rm.audioCache == nil {
		t.Error("audioCache should be initialized")
	}
}

// TestLoadSoundEffectCaching tests that a loaded WAV is decoded once and cached.
func TestLoadSoundEffectCaching(t *testing.T) {
	rm := NewResourceManager(testAudioContext)
	path := filepath.Join(t.TempDir(), "shoot.wav")
	writeTestWAV(t, path)

	first, err := rm.LoadSoundEffect(path)
	if err != nil {
		t.Fatalf("LoadSoundEffect() error: %v", err)
	}
	second, err := rm.LoadSoundEffect(path)
	if err != nil {
		t.Fatalf("second LoadSoundEffect() error: %v", err)
	}
	if first != second {
		t.Error("LoadSoundEffect should return the cached player")
	}
	if rm.GetAudioPlayer(path) != first {
		t.Error("GetAudioPlayer should return the cached player")
	}

	rm.Close()
	if rm.GetAudioPlayer(path) != nil {
		t.Error("Close should empty the cache")
	}
}

// TestLoadAudioErrors tests the failure paths of the loaders.
func TestLoadAudioErrors(t *testing.T) {
	dir := t.TempDir()
	unsupported := filepath.Join(dir, "music.flac")
	if err := os.WriteFile(unsupported, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	corrupt := filepath.Join(dir, "broken.wav")
	if err := os.WriteFile(corrupt, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		rm   *ResourceManager
		path string
	}{
		{"文件不存在", NewResourceManager(testAudioContext), filepath.Join(dir, "missing.wav")},
		{"不支持的格式", NewResourceManager(testAudioContext), unsupported},
		{"损坏的 WAV", NewResourceManager(testAudioContext), corrupt},
		{"没有音频上下文", NewResourceManager(nil), filepath.Join(dir, "missing.wav")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.rm.LoadSoundEffect(tt.path); err == nil {
				t.Error("LoadSoundEffect() should fail")
			}
			if _, err := tt.rm.LoadAudio(tt.path); err == nil {
				t.Error("LoadAudio() should fail")
			}
		})
	}
}

// TestLoadTone tests synthesized sound effects.
func TestLoadTone(t *testing.T) {
	rm := NewResourceManager(testAudioContext)
	tone := toneaudio.Tone{Frequency: 440, Slide: 1, Duration: 50 * time.Millisecond}

	player, err := rm.LoadTone("tone:test", tone)
	if err != nil {
		t.Fatalf("LoadTone() error: %v", err)
	}
	if again, _ := rm.LoadTone("tone:test", tone); again != player {
		t.Error("LoadTone should return the cached player")
	}

	if _, err := NewResourceManager(nil).LoadTone("tone:test", tone); err == nil {
		t.Error("LoadTone() without audio context should fail")
	}
}

// TestAudioManagerFallsBackToTones tests that missing assets are replaced by synthesized tones.
func TestAudioManagerFallsBackToTones(t *testing.T) {
	rm := NewResourceManager(testAudioContext)
	am := NewAudioManager(rm, NewSettingsManager(nil), t.TempDir())

	am.Preload()
	for _, ev := range []SoundEvent{SoundShoot, SoundCorrect, SoundWrong} {
		if rm.GetAudioPlayer("tone:"+string(ev)) == nil {
			t.Errorf("missing asset for %s should fall back to a tone", ev)
		}
	}

	// 背景音乐没有替代音，加载失败后不再重试
	am.PlayBackground()
	if !am.musicFailed {
		t.Error("missing background music should be remembered")
	}
	am.Close()
}
