// Package model は学習済み状態を持つ変換器の共通部品を提供します。
package model

import (
	"sync"

	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
)

// StateManager は変換器が Fit 済みかどうかと、Fit 時の次元をスレッドセーフに保持する
type StateManager struct {
	mu        sync.RWMutex
	fitted    bool
	nFeatures int
	nSamples  int
}

// NewStateManager は未学習の StateManager を作成する
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted は Fit 済みかどうかを返す
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted は Fit 時の次元を記録して学習済みにする
func (s *StateManager) SetFitted(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// Reset は未学習状態に戻す
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nSamples = 0
}

// Dimensions は Fit 時の特徴量数とサンプル数を返す
func (s *StateManager) Dimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}

// RequireFitted は未学習なら NotFittedError を返す
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}
