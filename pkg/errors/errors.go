package errors

import "errors"

// ErrStaleTransition 状态守卫更新未命中任何行：
// 记录已不处于期望的前置状态（已被其他操作推进或撤销）
var ErrStaleTransition = errors.New("记录状态已变更，本次状态迁移未执行")
