package interval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// 时刻在内部统一表示为从当天零点开始的分钟数，避免浮点误差

var ErrInvalidInterval = errors.New("时间区间无效")

// Interval: 一天内的一段时间，[Start, End)，单位为分钟
type Interval struct {
	Start int
	End   int
}

func New(start, end int) (Interval, error) {
	if start >= end {
		return Interval{}, fmt.Errorf("%w: 开始时间 %s 必须早于结束时间 %s", ErrInvalidInterval, Format(start), Format(end))
	}
	return Interval{Start: start, End: end}, nil
}

// ParseWindow 将 "HH:MM" 格式的起止时间解析为一个区间
func ParseWindow(startTime, endTime string) (Interval, error) {
	start, err := Parse(startTime)
	if err != nil {
		return Interval{}, err
	}
	end, err := Parse(endTime)
	if err != nil {
		return Interval{}, err
	}
	return New(start, end)
}

// Parse 将 "HH:MM"（兼容 "HH:MM:SS"）解析为分钟数
func Parse(timeStr string) (int, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("%w: 时间格式错误 %q", ErrInvalidInterval, timeStr)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: 小时格式错误 %q", ErrInvalidInterval, timeStr)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: 分钟格式错误 %q", ErrInvalidInterval, timeStr)
	}

	return hour*60 + minute, nil
}

func Format(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func (iv Interval) Duration() int {
	return iv.End - iv.Start
}

// Overlaps 判断两个区间在给定容差下是否重叠。
// 边界相接（a.End == b.Start）不算重叠
func Overlaps(a, b Interval, toleranceMinutes int) bool {
	return a.Start < b.End-toleranceMinutes && b.Start < a.End-toleranceMinutes
}

// Contains 判断 iv 是否完全落在 window 之内（允许边界重合）
func Contains(window, iv Interval) bool {
	return window.Start <= iv.Start && iv.End <= window.End
}
