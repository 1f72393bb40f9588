package audio

import (
	"fmt"
	"io"
	"math"
	"time"
)

// Tone 描述一段合成音效
// 缺少音频资源时用作替代，保证反馈音始终可用
type Tone struct {
	Frequency float64       // 起始频率（Hz）
	Slide     float64       // 结束频率相对起始频率的倍数，1 表示不变
	Duration  time.Duration // 时长
}

// ToneStream 16 位小端立体声 PCM 流
// 实现 io.ReadSeeker 与 Length()，可直接交给 Ebitengine 的 audio.Player
type ToneStream struct {
	data   []byte
	offset int64
}

// NewToneStream 按采样率生成音效 PCM 数据
//
// 参数：
//   - sampleRate: 采样率（Hz），需与音频上下文一致
//   - tone: 音效描述
//
// 返回：
//   - *ToneStream: 可读取的 PCM 流
//   - error: 参数非法时返回错误
func NewToneStream(sampleRate int, tone Tone) (*ToneStream, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if tone.Frequency <= 0 || tone.Duration <= 0 {
		return nil, fmt.Errorf("invalid tone: %+v", tone)
	}
	slide := tone.Slide
	if slide <= 0 {
		slide = 1
	}

	samples := int(tone.Duration.Seconds() * float64(sampleRate))
	data := make([]byte, samples*4) // 2 声道 * 2 字节

	phase := 0.0
	for i := 0; i < samples; i++ {
		progress := float64(i) / float64(samples)
		freq := tone.Frequency * math.Pow(slide, progress)
		phase += 2 * math.Pi * freq / float64(sampleRate)

		// 线性淡出，避免结尾爆音
		envelope := 1 - progress
		v := int16(math.Sin(phase) * envelope * 0.5 * math.MaxInt16)

		data[i*4] = byte(v)
		data[i*4+1] = byte(v >> 8)
		data[i*4+2] = byte(v)
		data[i*4+3] = byte(v >> 8)
	}

	return &ToneStream{data: data}, nil
}

// Read 实现 io.Reader
func (s *ToneStream) Read(p []byte) (n int, err error) {
	if s.offset >= int64(len(s.data)) {
		return 0, io.EOF
	}

	n = copy(p, s.data[s.offset:])
	s.offset += int64(n)
	return n, nil
}

// Seek 实现 io.Seeker
func (s *ToneStream) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64

	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = s.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(s.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position: %d", newOffset)
	}

	s.offset = newOffset
	return newOffset, nil
}

// Length 返回 PCM 数据总字节数
func (s *ToneStream) Length() int64 {
	return int64(len(s.data))
}
