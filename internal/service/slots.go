package service

// ── 标准时段目录 ──
//
// 覆盖单个教学日的固定时段集合，按目录顺序排列、互不重叠。
// 空闲时段查询按目录顺序逐一做冲突判定

// TimeSlot 标准时段
type TimeSlot struct {
	Name  string
	Start string // "HH:MM"
	End   string
}

// StandardTimeSlots 教学日 11 个标准时段（9:00 起，每节 50 分钟）
var StandardTimeSlots = []TimeSlot{
	{Name: "09:00-09:50", Start: "09:00", End: "09:50"},
	{Name: "09:50-10:40", Start: "09:50", End: "10:40"},
	{Name: "10:40-11:30", Start: "10:40", End: "11:30"},
	{Name: "11:30-12:20", Start: "11:30", End: "12:20"},
	{Name: "12:20-13:10", Start: "12:20", End: "13:10"},
	{Name: "13:10-14:00", Start: "13:10", End: "14:00"},
	{Name: "14:00-14:50", Start: "14:00", End: "14:50"},
	{Name: "14:50-15:40", Start: "14:50", End: "15:40"},
	{Name: "15:40-16:30", Start: "15:40", End: "16:30"},
	{Name: "16:30-17:20", Start: "16:30", End: "17:20"},
	{Name: "17:20-18:10", Start: "17:20", End: "18:10"},
}
