package mrmr

// State は貪欲選択の進行状態
type State int

const (
	// Uninitialized は関連度が未計算の状態
	Uninitialized State = iota
	// FirstSelected は最も関連度の高い特徴量を1つ選んだ状態
	FirstSelected
	// Iterating は冗長度を考慮した選択を繰り返している状態
	Iterating
	// Terminated は目標数に達して選択が完了した状態
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case FirstSelected:
		return "first-selected"
	case Iterating:
		return "iterating"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}
