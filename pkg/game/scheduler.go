package game

import (
	"slices"
	"time"
)

// Scheduler 基于虚拟时间的延迟事件队列
//
// 时间只在 Advance 时前进，测试可以精确控制到期顺序。
// 到期事件按截止时间升序执行，截止时间相同时按登记顺序执行。
// 调度器本身不做取消：回调需要自行检查会话状态（例如游戏是否已结束）。
type Scheduler struct {
	now    time.Duration
	seq    uint64
	events []*scheduledEvent
}

type scheduledEvent struct {
	name     string
	deadline time.Duration
	seq      uint64
	action   func()
}

// NewScheduler 创建调度器，虚拟时间从 0 开始
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now 返回当前虚拟时间
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After 登记一个在 delay 之后执行的回调
//
// 参数：
//   - name: 事件名（用于日志和查询）
//   - delay: 相对当前虚拟时间的延迟，负值视为 0
//   - action: 到期时执行的回调
func (s *Scheduler) After(name string, delay time.Duration, action func()) {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	s.events = append(s.events, &scheduledEvent{
		name:     name,
		deadline: s.now + delay,
		seq:      s.seq,
		action:   action,
	})
}

// Advance 推进虚拟时间并执行所有到期事件
// 回调中新登记且已到期的事件在同一次 Advance 内执行
//
// 返回：
//   - int: 本次执行的事件数
func (s *Scheduler) Advance(d time.Duration) int {
	if d > 0 {
		s.now += d
	}

	fired := 0
	for {
		next := s.nextDue()
		if next < 0 {
			return fired
		}
		ev := s.events[next]
		s.events = slices.Delete(s.events, next, next+1)
		ev.action()
		fired++
	}
}

// nextDue 返回最早到期事件的下标，没有到期事件时返回 -1
func (s *Scheduler) nextDue() int {
	best := -1
	for i, ev := range s.events {
		if ev.deadline > s.now {
			continue
		}
		if best < 0 ||
			ev.deadline < s.events[best].deadline ||
			(ev.deadline == s.events[best].deadline && ev.seq < s.events[best].seq) {
			best = i
		}
	}
	return best
}

// Pending 返回尚未执行的事件数
func (s *Scheduler) Pending() int {
	return len(s.events)
}

// Has 检查是否有指定名称的待执行事件
func (s *Scheduler) Has(name string) bool {
	for _, ev := range s.events {
		if ev.name == name {
			return true
		}
	}
	return false
}
