// Package storyquiz 校验故事排序小游戏的答案
package storyquiz

import (
	"errors"
	"fmt"
)

var (
	ErrLengthMismatch = errors.New("submitted order length does not match story")
	ErrUnknownSection = errors.New("submitted order contains unknown section")
	ErrDuplicate      = errors.New("submitted order contains duplicate section")
)

// Result 排序结果
type Result struct {
	Positions []bool `json:"positions"` // 每个位置是否正确
	Correct   int    `json:"correct"`   // 正确的位置数
	Total     int    `json:"total"`
	Solved    bool   `json:"solved"`
}

// CheckOrder 比较孩子提交的顺序与故事的正确顺序
// submitted 必须是 expected 的一个排列
func CheckOrder(expected, submitted []string) (*Result, error) {
	if len(submitted) != len(expected) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(submitted), len(expected))
	}

	known := make(map[string]bool, len(expected))
	for _, id := range expected {
		known[id] = true
	}
	seen := make(map[string]bool, len(submitted))
	for _, id := range submitted {
		if !known[id] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSection, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, id)
		}
		seen[id] = true
	}

	res := &Result{Positions: make([]bool, len(expected)), Total: len(expected)}
	for i := range expected {
		if expected[i] == submitted[i] {
			res.Positions[i] = true
			res.Correct++
		}
	}
	res.Solved = res.Correct == res.Total
	return res, nil
}
