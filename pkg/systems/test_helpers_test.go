package systems

import (
	"math/rand/v2"

	"github.com/decker502/missilemath/pkg/game"
)

// fakeAudio 记录播放的音效
type fakeAudio struct {
	played     []game.SoundEvent
	background int
	stopped    int
	muted      bool
}

func (a *fakeAudio) Play(event game.SoundEvent) { a.played = append(a.played, event) }
func (a *fakeAudio) PlayBackground() { a.background++ }
func (a *fakeAudio) StopBackground() { a.stopped++ }
func (a *fakeAudio) IsMuted() bool { return a.muted }

func (a *fakeAudio) ToggleMute() bool {
	a.muted = !a.muted
	return a.muted
}

func (a *fakeAudio) count(event game.SoundEvent) int {
	n := 0
	for _, e := range a.played {
		if e == event {
			n++
		}
	}
	return n
}

// fakeScores 记录保存的分数
type fakeScores struct {
	saved     []game.Score
	highScore int
}

func (s *fakeScores) SaveScore(username string, score int) {
	s.saved = append(s.saved, game.Score{Username: username, Score: score})
}

func (s *fakeScores) GetHighScore() int { return s.highScore }

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}
