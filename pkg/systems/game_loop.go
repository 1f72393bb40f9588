package systems

import (
	"log"
	"maps"
	"math/rand/v2"
	"time"

	"github.com/decker502/missilemath/pkg/components"
	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/ecs"
	"github.com/decker502/missilemath/pkg/entities"
	"github.com/decker502/missilemath/pkg/game"
)

// 调度事件名
const (
	eventSpawnWave    = "spawn-wave"
	eventBannerExpiry = "banner-expiry"
	eventGameOver     = "game-over"
)

// ScoreRecorder 排行榜接口（由 game.ScoreStore 实现）
type ScoreRecorder interface {
	SaveScore(username string, score int)
	GetHighScore() int
}

// GameLoop 固定周期的模拟驱动
//
// 每个 tick 依次执行：
//  1. 处理排队的输入意图
//  2. 推进导弹和炮弹
//  3. 碰撞判定
//  4. 逃逸处理
//  5. 波次耗尽检查
//  6. 效果生命周期
//  7. 推进虚拟时间，执行到期的调度事件
//  8. 清理已删除实体
//
// 游戏结束检查在每次会话事件应用后立即进行，一局只会触发一次。
// GameLoop 不是线程安全的，所有调用都必须在同一个 goroutine 上。
type GameLoop struct {
	cfg    *config.GameConfig
	rng    *rand.Rand
	audio  game.AudioPlayer
	scores ScoreRecorder
	engine *game.ScoringEngine

	em        *ecs.EntityManager
	scheduler *game.Scheduler
	spawn     *SpawnSystem
	movement  *MovementSystem
	collision *CollisionSystem
	input     *InputSystem
	lifetime  *LifetimeSystem

	session   game.Session
	bannerSeq int
	started   bool
	handedOff bool

	onGameOver func(score, level int)
	onExit     func()
}

// NewGameLoop 创建一局新游戏
//
// 参数:
//   - cfg: 游戏配置
//   - username: 玩家名
//   - audio: 音频播放器（失败不影响模拟）
//   - scores: 排行榜，游戏结束时保存分数
//   - rng: 随机源（题目、目标选择）
func NewGameLoop(cfg *config.GameConfig, username string, audio game.AudioPlayer, scores ScoreRecorder, rng *rand.Rand) *GameLoop {
	l := &GameLoop{
		cfg:    cfg,
		rng:    rng,
		audio:  audio,
		scores: scores,
		engine: game.NewScoringEngine(cfg),
	}
	l.reset(username)
	return l
}

// reset 重建实体、调度器和会话
// 旧调度器上未执行的回调随之丢弃
func (l *GameLoop) reset(username string) {
	l.em = ecs.NewEntityManager()
	l.scheduler = game.NewScheduler()
	l.spawn = NewSpawnSystem(l.em, l.cfg, l.rng)
	l.movement = NewMovementSystem(l.em, l.cfg)
	l.collision = NewCollisionSystem(l.em, l.cfg)
	l.input = NewInputSystem(l.em, l.cfg, l.engine, l.audio)
	l.lifetime = NewLifetimeSystem(l.em)

	l.session = game.NewSession(l.cfg, username, l.scores.GetHighScore())
	l.bannerSeq = 0
	l.started = false
	l.handedOff = false
}

// SetOnGameOver 设置游戏结束回调，在结束后 GameOverDelay 调用一次
func (l *GameLoop) SetOnGameOver(fn func(score, level int)) {
	l.onGameOver = fn
}

// SetOnExit 设置退出回调
func (l *GameLoop) SetOnExit(fn func()) {
	l.onExit = fn
}

// Start 开始游戏：播放背景音乐，InitialSpawnDelay 后生成第一波
func (l *GameLoop) Start() {
	if l.started {
		return
	}
	l.started = true
	l.audio.PlayBackground()
	l.scheduleSpawn(l.cfg.InitialSpawnDelay)
	log.Printf("[GameLoop] Session started for %q (high score %d)", l.session.Username, l.session.HighScore)
}

// Restart 以同一个玩家名开始新的一局
func (l *GameLoop) Restart() {
	log.Printf("[GameLoop] Restarting session for %q", l.session.Username)
	l.audio.StopBackground()
	l.reset(l.session.Username)
	l.Start()
}

// Input 返回输入系统（表现层通过它推送意图）
func (l *GameLoop) Input() *InputSystem {
	return l.input
}

// Session 返回当前会话
func (l *GameLoop) Session() game.Session {
	return l.session
}

// EntityManager 返回实体管理器
func (l *GameLoop) EntityManager() *ecs.EntityManager {
	return l.em
}

// Scheduler 返回调度器
func (l *GameLoop) Scheduler() *game.Scheduler {
	return l.scheduler
}

// Tick 执行一个固定周期
func (l *GameLoop) Tick() {
	l.handleInput()

	if l.started && !l.session.IsGameOver {
		l.movement.Advance(l.session.Level)
		l.collision.Resolve(l.handleHit)
		for _, escaped := range l.movement.Escaped() {
			l.handleEscape(escaped)
		}
		l.checkWaveDepleted()
	}

	l.lifetime.Update(l.cfg.TickInterval)
	l.scheduler.Advance(l.cfg.TickInterval)
	l.em.RemoveMarkedEntities()
}

// apply 应用会话事件，处理升级提示和游戏结束
func (l *GameLoop) apply(ev game.Event) game.Outcome {
	var out game.Outcome
	l.session, out = l.engine.Apply(l.session, ev)

	if out.LevelsGained > 0 {
		log.Printf("[GameLoop] Level up: %d (%s)", l.session.Level, l.session.LevelUpMessage)
		l.scheduleBannerExpiry()
	}
	if out.Terminated {
		l.terminate()
	}
	return out
}

// handleInput 处理排队的意图
func (l *GameLoop) handleInput() {
	now := l.scheduler.Now()
	for _, intent := range l.input.Drain() {
		var handled bool
		l.session, handled = l.input.Apply(l.session, intent, now)
		if handled {
			continue
		}

		switch intent {
		case IntentToggleMute:
			l.audio.ToggleMute()
		case IntentExit:
			log.Printf("[GameLoop] Exit requested")
			l.audio.StopBackground()
			if l.onExit != nil {
				l.onExit()
			}
			return
		case IntentRestart:
			l.Restart()
			return
		}
	}
}

// handleHit 碰撞回调
func (l *GameLoop) handleHit(hit Hit) {
	if l.session.IsGameOver {
		return
	}

	if _, err := entities.NewExplosionEffect(l.em, l.cfg, hit.X, hit.Y); err != nil {
		log.Printf("[GameLoop] Failed to create explosion: %v", err)
	}

	if hit.Correct {
		l.audio.Play(game.SoundCorrect)
		l.apply(game.CorrectHit())

		// 正确命中清空整波
		for _, id := range l.liveMissiles() {
			l.em.DestroyEntity(id)
		}
		l.scheduleSpawn(l.cfg.SettleDelay)
		return
	}

	l.audio.Play(game.SoundWrong)
	if _, err := entities.NewPenaltyEffect(l.em, l.cfg, hit.ShotX, hit.Y); err != nil {
		log.Printf("[GameLoop] Failed to create penalty effect: %v", err)
	}
	l.apply(game.IncorrectHit())
	l.ensureTarget()
}

// handleEscape 导弹越过底线
func (l *GameLoop) handleEscape(escaped EscapedMissile) {
	if l.session.IsGameOver {
		return
	}
	l.em.DestroyEntity(escaped.ID)
	log.Printf("[GameLoop] Missile escaped: %s", escaped.Question)
	l.apply(game.MissileEscaped(escaped.Question))
	l.ensureTarget()
}

// ensureTarget 目标答案的最后一个携带者消失后，从剩余导弹中重新选择
func (l *GameLoop) ensureTarget() {
	if l.session.IsGameOver || !l.session.HasTarget {
		return
	}

	live := l.liveMissiles()
	if len(live) == 0 {
		return
	}

	answers := make([]int, 0, len(live))
	for _, id := range live {
		missile, _ := ecs.GetComponent[*components.EnemyMissileComponent](l.em, id)
		if missile.Answer == l.session.TargetAnswer {
			return
		}
		answers = append(answers, missile.Answer)
	}

	target := answers[l.rng.IntN(len(answers))]
	log.Printf("[GameLoop] Target %d no longer in play, retargeting to %d", l.session.TargetAnswer, target)
	l.apply(game.TargetChanged(target, true))
}

// checkWaveDepleted 整波在没有正确命中的情况下耗尽时，安排下一波
func (l *GameLoop) checkWaveDepleted() {
	if l.session.IsGameOver || l.session.WavePending {
		return
	}
	if len(l.liveMissiles()) > 0 {
		return
	}
	log.Printf("[GameLoop] Wave %d depleted without a correct hit", l.session.Wave)
	l.apply(game.WaveCleared())
	l.scheduleSpawn(l.cfg.SettleDelay)
}

// liveMissiles 返回存活的导弹
func (l *GameLoop) liveMissiles() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.EnemyMissileComponent](l.em)
}

// scheduleSpawn 安排生成下一波，到期时游戏已结束则不执行
func (l *GameLoop) scheduleSpawn(delay time.Duration) {
	if l.scheduler.Has(eventSpawnWave) {
		return
	}
	l.scheduler.After(eventSpawnWave, delay, func() {
		if l.session.IsGameOver {
			return
		}
		l.spawnWave()
	})
}

// spawnWave 生成一波导弹
func (l *GameLoop) spawnWave() {
	wave, err := l.spawn.SpawnWave(l.session.Level, l.session.Wave+1, l.session.QuestionSet())
	if err != nil {
		log.Printf("[GameLoop] Failed to spawn wave: %v", err)
		return
	}
	l.apply(game.WaveSpawned(wave.Questions, wave.TargetAnswer))
}

// scheduleBannerExpiry 安排清除升级提示
// 只有最近一次升级的回调生效
func (l *GameLoop) scheduleBannerExpiry() {
	l.bannerSeq++
	seq := l.bannerSeq
	l.scheduler.After(eventBannerExpiry, l.cfg.LevelUpBanner, func() {
		if l.session.IsGameOver || seq != l.bannerSeq {
			return
		}
		l.apply(game.BannerExpired())
	})
}

// terminate 游戏结束：停止音乐、保存分数、GameOverDelay 后通知表现层
func (l *GameLoop) terminate() {
	final := l.session
	log.Printf("[GameLoop] Game over: %q score=%d level=%d", final.Username, final.Score, final.Level)

	l.audio.StopBackground()
	l.scores.SaveScore(final.Username, final.Score)

	l.scheduler.After(eventGameOver, l.cfg.GameOverDelay, func() {
		if l.handedOff {
			return
		}
		l.handedOff = true
		if l.onGameOver != nil {
			l.onGameOver(final.Score, final.Level)
		}
	})
}

// MissileView 导弹的只读视图
type MissileView struct {
	ID       ecs.EntityID
	Column   int
	X, Y     float64
	Question string
	Answer   int
}

// ShotView 炮弹的只读视图
type ShotView struct {
	X, Y float64
}

// EffectView 视觉效果的只读视图
type EffectView struct {
	Type     components.EffectType
	Text     string
	X, Y     float64
	Progress float64 // 生命周期进度 [0, 1]
}

// Snapshot 每帧交给表现层的只读状态
type Snapshot struct {
	Session  game.Session
	Missiles []MissileView
	Shots    []ShotView
	Effects  []EffectView

	Muted              bool
	Hardcore           bool
	ExperienceProgress float64
}

// Snapshot 生成当前状态的只读快照
func (l *GameLoop) Snapshot() Snapshot {
	session := l.session
	session.Questions = maps.Clone(session.Questions)

	snap := Snapshot{
		Session:            session,
		Muted:              l.audio.IsMuted(),
		Hardcore:           session.IsHardcore(l.cfg),
		ExperienceProgress: session.ExperienceProgress(l.cfg),
	}

	for _, id := range l.liveMissiles() {
		pos, ok := ecs.GetComponent[*components.PositionComponent](l.em, id)
		if !ok {
			continue
		}
		missile, _ := ecs.GetComponent[*components.EnemyMissileComponent](l.em, id)
		snap.Missiles = append(snap.Missiles, MissileView{
			ID:       id,
			Column:   missile.Column,
			X:        pos.X,
			Y:        pos.Y,
			Question: missile.Question,
			Answer:   missile.Answer,
		})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PlayerShotComponent, *components.PositionComponent](l.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](l.em, id)
		snap.Shots = append(snap.Shots, ShotView{X: pos.X, Y: pos.Y})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.EffectComponent, *components.PositionComponent](l.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](l.em, id)
		effect, _ := ecs.GetComponent[*components.EffectComponent](l.em, id)
		view := EffectView{
			Type: effect.Type,
			Text: effect.Text,
			X:    pos.X,
			Y:    pos.Y,
		}
		if lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](l.em, id); ok {
			view.Progress = Progress(lifetime)
		}
		snap.Effects = append(snap.Effects, view)
	}

	return snap
}
