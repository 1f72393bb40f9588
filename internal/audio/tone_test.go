package audio

import (
	"io"
	"testing"
	"time"
)

func TestNewToneStreamLength(t *testing.T) {
	stream, err := NewToneStream(48000, Tone{Frequency: 440, Duration: 100 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewToneStream error: %v", err)
	}

	// 0.1s * 48000 采样 * 4 字节
	if stream.Length() != 19200 {
		t.Errorf("Length: got %d, want 19200", stream.Length())
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if int64(len(data)) != stream.Length() {
		t.Errorf("read %d bytes, want %d", len(data), stream.Length())
	}

	// 左右声道相同
	for i := 0; i+3 < len(data); i += 4 {
		if data[i] != data[i+2] || data[i+1] != data[i+3] {
			t.Fatalf("channel mismatch at sample %d", i/4)
		}
	}
}

func TestNewToneStreamInvalid(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate int
		tone       Tone
	}{
		{"采样率为0", 0, Tone{Frequency: 440, Duration: time.Second}},
		{"频率为0", 48000, Tone{Frequency: 0, Duration: time.Second}},
		{"时长为0", 48000, Tone{Frequency: 440}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewToneStream(tt.sampleRate, tt.tone); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestToneStreamSeek(t *testing.T) {
	stream, err := NewToneStream(8000, Tone{Frequency: 440, Slide: 0.5, Duration: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewToneStream error: %v", err)
	}

	if _, err := io.ReadAll(stream); err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}

	pos, err := stream.Seek(0, io.SeekStart)
	if err != nil || pos != 0 {
		t.Fatalf("Seek start: pos=%d err=%v", pos, err)
	}

	pos, err = stream.Seek(-4, io.SeekEnd)
	if err != nil || pos != stream.Length()-4 {
		t.Fatalf("Seek end: pos=%d err=%v", pos, err)
	}

	buf := make([]byte, 16)
	n, _ := stream.Read(buf)
	if n != 4 {
		t.Errorf("Read after SeekEnd(-4): got %d bytes, want 4", n)
	}

	if _, err := stream.Seek(-1, io.SeekStart); err == nil {
		t.Error("negative seek should fail")
	}
	if _, err := stream.Seek(0, 42); err == nil {
		t.Error("invalid whence should fail")
	}
}
