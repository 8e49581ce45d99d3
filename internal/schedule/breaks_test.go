package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/interval"
)

func TestGenerateDefaultBreaks(t *testing.T) {
	t.Run("窗口太短时没有休息", func(t *testing.T) {
		breaks, err := GenerateDefaultBreaks("09:00", "10:30")
		require.NoError(t, err)
		assert.Empty(t, breaks)
	})

	t.Run("不足五小时只安排午餐", func(t *testing.T) {
		breaks, err := GenerateDefaultBreaks("09:00", "13:00")
		require.NoError(t, err)
		require.Len(t, breaks, 1)
		assert.Equal(t, domain.BreakTypeMeal, breaks[0].BreakType)
		assert.True(t, breaks[0].IsRequired)
		assert.False(t, breaks[0].IsPaid)
	})

	t.Run("标准八小时工作日", func(t *testing.T) {
		breaks, err := GenerateDefaultBreaks("09:00", "17:00")
		require.NoError(t, err)
		require.Len(t, breaks, 3)

		assert.Equal(t, domain.BreakTypeRest, breaks[0].BreakType)
		assert.True(t, breaks[0].IsPaid)
		assert.True(t, breaks[0].IsFlexible)

		// 八小时以上的工作日午餐为一小时
		meal := breaks[1]
		assert.Equal(t, domain.BreakTypeMeal, meal.BreakType)
		assert.True(t, meal.IsRequired)
		mealIv, err := interval.ParseWindow(meal.StartTime, meal.EndTime)
		require.NoError(t, err)
		assert.Equal(t, 60, mealIv.Duration())
	})

	t.Run("六小时工作日午餐为半小时", func(t *testing.T) {
		breaks, err := GenerateDefaultBreaks("09:00", "15:00")
		require.NoError(t, err)
		require.Len(t, breaks, 3)

		mealIv, err := interval.ParseWindow(breaks[1].StartTime, breaks[1].EndTime)
		require.NoError(t, err)
		assert.Equal(t, 30, mealIv.Duration())
	})

	t.Run("非法窗口返回错误", func(t *testing.T) {
		_, err := GenerateDefaultBreaks("17:00", "09:00")
		assert.Error(t, err)
	})

	// 对任意窗口，生成结果必须落在窗口内且通过校验
	t.Run("生成结果总是通过校验", func(t *testing.T) {
		windows := [][2]string{
			{"09:00", "17:00"},
			{"07:00", "15:30"},
			{"13:00", "21:30"},
			{"09:00", "13:59"},
			{"00:00", "23:59"},
			{"09:00", "11:00"},
			{"10:00", "15:00"},
		}

		for _, w := range windows {
			breaks, err := GenerateDefaultBreaks(w[0], w[1])
			require.NoError(t, err, "窗口 %s-%s", w[0], w[1])

			window, err := interval.ParseWindow(w[0], w[1])
			require.NoError(t, err)

			result := ValidateBreaks(window, breaks)
			assert.True(t, result.Valid, "窗口 %s-%s: %+v", w[0], w[1], result.Errors)

			// 即使不考虑弹性容差，两两之间也不允许重叠
			for i := 0; i < len(breaks); i++ {
				a, err := interval.ParseWindow(breaks[i].StartTime, breaks[i].EndTime)
				require.NoError(t, err)
				assert.True(t, interval.Contains(window, a))
				for j := i + 1; j < len(breaks); j++ {
					b, err := interval.ParseWindow(breaks[j].StartTime, breaks[j].EndTime)
					require.NoError(t, err)
					assert.False(t, interval.Overlaps(a, b, 0), "窗口 %s-%s: %s 和 %s 重叠", w[0], w[1], breaks[i].Name, breaks[j].Name)
				}
			}
		}
	})
}

func TestDefaultBreakTemplates(t *testing.T) {
	breaks := DefaultBreakTemplates()
	require.Len(t, breaks, 3)
	assert.Equal(t, "上午休息", breaks[0].Name)
	assert.Equal(t, "午餐", breaks[1].Name)
	assert.Equal(t, "下午休息", breaks[2].Name)
}
