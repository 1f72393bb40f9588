package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata 存储
// 当前平台不支持时跳过测试
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Skipf("gdata not available on this platform: %v", err)
	}
	if gdataManager == nil {
		t.Skip("gdata not available on this platform")
	}
	return gdataManager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if settings.Muted {
		t.Error("Muted: got true, want false")
	}
	if settings.MusicVolume != 0.3 {
		t.Errorf("MusicVolume: got %v, want 0.3", settings.MusicVolume)
	}
	if settings.SoundVolume != 0.6 {
		t.Errorf("SoundVolume: got %v, want 0.6", settings.SoundVolume)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm == nil {
		t.Fatal("NewSettingsManager(nil) returned nil")
	}
	if sm.GetSettings().Muted {
		t.Error("Muted should default to false")
	}

	// 降级模式下保存不报错
	if err := sm.Save(); err != nil {
		t.Errorf("Save() with nil gdata should return nil, got %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() with nil gdata should return nil, got %v", err)
	}
}

// TestMuteFlagPersists 测试静音开关立即持久化，重启后仍然生效
func TestMuteFlagPersists(t *testing.T) {
	gdataManager := openTestGdata(t, "test_settings_mute")

	sm := NewSettingsManager(gdataManager)
	sm.SetMuted(true)

	reloaded := NewSettingsManager(gdataManager)
	if !reloaded.GetSettings().Muted {
		t.Fatal("Muted flag was not persisted")
	}

	reloaded.SetMuted(false)
	again := NewSettingsManager(gdataManager)
	if again.GetSettings().Muted {
		t.Fatal("Unmute was not persisted")
	}
}

// TestSettingsLoadSave 测试音量保存后重新加载
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "test_settings_volume")

	sm := NewSettingsManager(gdataManager)
	sm.SetMusicVolume(0.5)
	sm.SetSoundVolume(0.25)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(gdataManager)
	settings := reloaded.GetSettings()
	if settings.MusicVolume != 0.5 {
		t.Errorf("MusicVolume: got %v, want 0.5", settings.MusicVolume)
	}
	if settings.SoundVolume != 0.25 {
		t.Errorf("SoundVolume: got %v, want 0.25", settings.SoundVolume)
	}
}

// TestSettingsMalformedData 测试存档损坏时回退到默认设置
func TestSettingsMalformedData(t *testing.T) {
	gdataManager := openTestGdata(t, "test_settings_malformed")

	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("gameMuted: [not a bool")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewSettingsManager(gdataManager)
	if sm.GetSettings().Muted {
		t.Error("Malformed settings should fall back to unmuted")
	}
	if sm.GetSettings().MusicVolume != 0.3 {
		t.Errorf("MusicVolume: got %v, want default 0.3", sm.GetSettings().MusicVolume)
	}
}

// TestClampVolume 测试音量范围限制
func TestClampVolume(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"负数", -0.5, 0.0},
		{"零", 0.0, 0.0},
		{"中间值", 0.4, 0.4},
		{"一", 1.0, 1.0},
		{"超过一", 1.7, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampVolume(tt.input); got != tt.want {
				t.Errorf("clampVolume(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
