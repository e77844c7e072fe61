package service

import (
	"errors"
	"fmt"
	"time"

	"campus-event/backend/internal/model"
)

// ── 时间窗口原语 ──
//
// 全系统所有冲突判定的唯一事实来源。窗口一律为半开区间 [start, end)：
// 两窗口重叠 当且仅当 aStart < bEnd && bStart < aEnd（两侧严格小于），
// 因此首尾相接（aEnd == bStart）不算重叠。
// 其他组件不得自行实现区间运算，必须委托到这里。

// ErrInvalidWindow 窗口无法解析或 end 不严格晚于 start
var ErrInvalidWindow = errors.New("时间窗口无效：起止时间缺失或结束不晚于开始")

// windowsOverlap 判断两个绝对时间窗口是否重叠
// 任一端点为零值视为“无主张”，返回 false（不作无限区间解释）
func windowsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	if aStart.IsZero() || aEnd.IsZero() || bStart.IsZero() || bEnd.IsZero() {
		return false
	}
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// clocksOverlap 判断两个 "HH:MM" 当日时刻窗口是否重叠
// 字符串按字典序比较即时间序（固定两位小时，库中统一存 VARCHAR(5)）
func clocksOverlap(aStart, aEnd, bStart, bEnd string) bool {
	if aStart == "" || aEnd == "" || bStart == "" || bEnd == "" {
		return false
	}
	return aStart < bEnd && bStart < aEnd
}

// validClockWindow 校验 "HH:MM" 窗口：可解析且 start < end
func validClockWindow(start, end string) bool {
	if _, err := time.Parse("15:04", start); err != nil {
		return false
	}
	if _, err := time.Parse("15:04", end); err != nil {
		return false
	}
	return start < end
}

// combineDateClock 将日期与 "HH:MM" 时刻合成绝对时间（取日期所在时区）
func combineDateClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("时刻格式无效 %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// isoWeekday 返回 ISO 星期（周一=1 ... 周日=7）
func isoWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// resolveRequestWindow 解析预订请求的生效时间窗口：
// 优先取关联活动的起止，否则取独立会议的起止。
// 两者都无法解析、或结束不严格晚于开始时返回 ErrInvalidWindow。
// 要求调用方已预加载 Event 关联
func resolveRequestWindow(req *model.BookingRequest) (time.Time, time.Time, error) {
	var start, end time.Time

	switch {
	case req.Event != nil && !req.Event.StartTime.IsZero():
		start, end = req.Event.StartTime, req.Event.EndTime
	case req.MeetingStart != nil && req.MeetingEnd != nil:
		start, end = *req.MeetingStart, *req.MeetingEnd
	default:
		return time.Time{}, time.Time{}, ErrInvalidWindow
	}

	if start.IsZero() || end.IsZero() || !end.After(start) {
		return time.Time{}, time.Time{}, ErrInvalidWindow
	}
	return start, end, nil
}
