package cache

import "time"

// Noop реализация кэша для выключенного режима: все чтения — промахи,
// все записи успешно ничего не делают. Выбирается один раз при старте.
type Noop struct{}

// Get всегда промах.
func (Noop) Get(_ string, _ any) (bool, error) { return false, nil }

// Set ничего не делает.
func (Noop) Set(_ string, _ any, _ time.Duration) error { return nil }

// Invalidate ничего не делает.
func (Noop) Invalidate(_ string) error { return nil }

// PushList ничего не делает.
func (Noop) PushList(_ string, _ any, _ time.Duration) error { return nil }

// GetList всегда промах.
func (Noop) GetList(_ string) ([]string, error) { return nil, nil }

// TrimList ничего не делает.
func (Noop) TrimList(_ string, _, _ int64) error { return nil }
