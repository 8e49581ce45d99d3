package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "整点", input: "09:00", want: 540},
		{name: "带分钟", input: "13:45", want: 825},
		{name: "零点", input: "00:00", want: 0},
		{name: "兼容秒", input: "09:30:00", want: 570},
		{name: "缺少冒号", input: "0900", wantErr: true},
		{name: "小时越界", input: "24:00", wantErr: true},
		{name: "分钟越界", input: "09:60", wantErr: true},
		{name: "非数字", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInterval)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWindow(t *testing.T) {
	iv, err := ParseWindow("09:00", "17:00")
	require.NoError(t, err)
	assert.Equal(t, 540, iv.Start)
	assert.Equal(t, 1020, iv.End)
	assert.Equal(t, 480, iv.Duration())

	_, err = ParseWindow("17:00", "09:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// 开始时间等于结束时间也是非法的
	_, err = ParseWindow("09:00", "09:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "09:00", Format(540))
	assert.Equal(t, "00:05", Format(5))
	assert.Equal(t, "23:59", Format(1439))
}

func TestOverlaps(t *testing.T) {
	mk := func(start, end int) Interval { return Interval{Start: start, End: end} }

	tests := []struct {
		name      string
		a, b      Interval
		tolerance int
		want      bool
	}{
		{name: "明显重叠", a: mk(600, 660), b: mk(630, 690), want: true},
		{name: "完全包含", a: mk(600, 720), b: mk(630, 660), want: true},
		{name: "不相交", a: mk(600, 630), b: mk(700, 730), want: false},
		{name: "边界相接不算重叠", a: mk(600, 630), b: mk(630, 660), want: false},
		{name: "重叠但在容差内", a: mk(600, 630), b: mk(625, 660), tolerance: 5, want: false},
		{name: "重叠超出容差", a: mk(600, 630), b: mk(620, 660), tolerance: 5, want: true},
		{name: "顺序无关", a: mk(630, 690), b: mk(600, 660), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b, tt.tolerance))
		})
	}
}

func TestContains(t *testing.T) {
	window := Interval{Start: 540, End: 1020}

	assert.True(t, Contains(window, Interval{Start: 600, End: 660}))
	// 边界重合是允许的
	assert.True(t, Contains(window, Interval{Start: 540, End: 1020}))
	assert.False(t, Contains(window, Interval{Start: 480, End: 600}))
	assert.False(t, Contains(window, Interval{Start: 1000, End: 1080}))
}
