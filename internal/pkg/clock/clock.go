// Package clock отделяет получение времени от бизнес-логики, чтобы тесты были детерминированными.
package clock

import (
	"sync"
	"time"
)

// Clock возвращает текущее время
type Clock interface {
	Now() time.Time
}

// Real возвращает системное время
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Stub возвращает заданное время. Безопасен для конкурентного использования.
type Stub struct {
	mu  sync.Mutex
	now time.Time
}

// NewStub создает Stub, выставленный на t
func NewStub(t time.Time) *Stub {
	return &Stub{now: t}
}

// Fixed возвращает Stub, выставленный на 2024-01-15 10:30:00 UTC
func Fixed() *Stub {
	return NewStub(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
}

func (c *Stub) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance сдвигает часы вперед на d
func (c *Stub) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
