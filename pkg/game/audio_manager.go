package game

import (
	"log"
	"path/filepath"
	"time"

	toneaudio "github.com/decker502/missilemath/internal/audio"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundEvent 音效事件
type SoundEvent string

const (
	SoundShoot   SoundEvent = "shoot"
	SoundCorrect SoundEvent = "correct"
	SoundWrong   SoundEvent = "wrong"
)

// AudioPlayer 模拟层使用的音频接口
// 实现方必须吞掉所有播放错误，不能影响模拟状态
type AudioPlayer interface {
	Play(event SoundEvent)
	PlayBackground()
	StopBackground()
	ToggleMute() bool
	IsMuted() bool
}

// 资源缺失时的替代音效
var fallbackTones = map[SoundEvent]toneaudio.Tone{
	SoundShoot:   {Frequency: 880, Slide: 0.5, Duration: 80 * time.Millisecond},
	SoundCorrect: {Frequency: 660, Slide: 1.5, Duration: 180 * time.Millisecond},
	SoundWrong:   {Frequency: 220, Slide: 0.7, Duration: 250 * time.Millisecond},
}

// AudioManager 音频管理器
// 职责：
//   - 播放射击、命中正确、命中错误三种音效和循环背景音乐
//   - 静音开关，偏好通过 SettingsManager 持久化
//   - 音频文件缺失时使用合成音效，加载或播放失败只记录日志
//
// 生命周期由调用方管理：NewAudioManager 创建，Close 释放
type AudioManager struct {
	resourceManager *ResourceManager // 可为 nil（无音频设备时所有调用为空操作）
	settingsManager *SettingsManager
	assetDir        string
	soundPlayers    map[SoundEvent]*audio.Player // nil 值表示加载失败，不再重试
	music           *audio.Player
	musicFailed     bool
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例，可为 nil
//   - sm: SettingsManager 实例（读取静音与音量设置），可为 nil
//   - assetDir: 音频目录，包含 shoot.wav / correct.wav / wrong.wav / background.mp3
func NewAudioManager(rm *ResourceManager, sm *SettingsManager, assetDir string) *AudioManager {
	if sm == nil {
		sm = NewSettingsManager(nil)
	}
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		assetDir:        assetDir,
		soundPlayers:    make(map[SoundEvent]*audio.Player),
	}
}

// Preload 预加载所有音效，避免首次播放时的延迟
func (am *AudioManager) Preload() {
	for _, ev := range []SoundEvent{SoundShoot, SoundCorrect, SoundWrong} {
		am.getSoundPlayer(ev)
	}
	am.getMusicPlayer()
	log.Printf("[AudioManager] Audio preloaded")
}

// Play 播放音效，静音时不播放
func (am *AudioManager) Play(event SoundEvent) {
	if am.IsMuted() {
		return
	}

	player := am.getSoundPlayer(event)
	if player == nil {
		return
	}

	player.SetVolume(am.settingsManager.GetSettings().SoundVolume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", event, err)
	}
	player.Play()
}

// PlayBackground 从头播放背景音乐，静音时不播放
func (am *AudioManager) PlayBackground() {
	if am.IsMuted() {
		return
	}

	player := am.getMusicPlayer()
	if player == nil {
		return
	}

	player.SetVolume(am.settingsManager.GetSettings().MusicVolume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind music: %v", err)
	}
	player.Play()
	log.Printf("[AudioManager] Background music started")
}

// StopBackground 停止背景音乐
func (am *AudioManager) StopBackground() {
	if am.music == nil {
		return
	}
	am.music.Pause()
	if err := am.music.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind music: %v", err)
	}
}

// ToggleMute 切换静音并持久化，返回切换后的静音状态
// 取消静音时恢复背景音乐，静音时停止
func (am *AudioManager) ToggleMute() bool {
	muted := !am.IsMuted()
	am.settingsManager.SetMuted(muted)

	if muted {
		am.StopBackground()
	} else {
		am.PlayBackground()
	}

	log.Printf("[AudioManager] Muted: %v", muted)
	return muted
}

// IsMuted 返回当前静音状态
func (am *AudioManager) IsMuted() bool {
	return am.settingsManager.GetSettings().Muted
}

// Close 停止播放并释放播放器
func (am *AudioManager) Close() {
	am.StopBackground()
	if am.resourceManager != nil {
		am.resourceManager.Close()
	}
	clear(am.soundPlayers)
	am.music = nil
}

// getSoundPlayer 获取或加载音效播放器
// 文件加载失败时退回合成音效
func (am *AudioManager) getSoundPlayer(event SoundEvent) *audio.Player {
	if player, exists := am.soundPlayers[event]; exists {
		return player
	}
	if am.resourceManager == nil {
		return nil
	}

	path := filepath.Join(am.assetDir, string(event)+".wav")
	player, err := am.resourceManager.LoadSoundEffect(path)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load sound %s: %v (using synthesized tone)", event, err)
		tone, ok := fallbackTones[event]
		if !ok {
			am.soundPlayers[event] = nil
			return nil
		}
		player, err = am.resourceManager.LoadTone("tone:"+string(event), tone)
		if err != nil {
			log.Printf("[AudioManager] Warning: Failed to synthesize sound %s: %v", event, err)
			am.soundPlayers[event] = nil
			return nil
		}
	}

	am.soundPlayers[event] = player
	return player
}

// getMusicPlayer 获取或加载背景音乐播放器
func (am *AudioManager) getMusicPlayer() *audio.Player {
	if am.music != nil {
		return am.music
	}
	if am.resourceManager == nil || am.musicFailed {
		return nil
	}

	player, err := am.resourceManager.LoadAudio(filepath.Join(am.assetDir, "background.mp3"))
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load background music: %v", err)
		am.musicFailed = true
		return nil
	}
	am.music = player
	return player
}
