package utils

import (
	"math/rand"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateEmployeeCodeFromChineseName 用姓名的拼音加上随机数字生成工号，
// 例如 "张伟" 可能生成 "zhangwei042"
func GenerateEmployeeCodeFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	code := ""

	for _, p := range pinyinArray {
		code += p
	}

	for i := 0; i < 3; i++ {
		code += string(digits[rand.Intn(len(digits))])
	}

	return code
}

// weekdayWindows 按下标 0=周日..6=周六排列的几组常见排班
var weekdayWindows = []struct {
	start string
	end   string
}{
	{"09:00", "17:00"},
	{"09:30", "18:00"},
	{"08:00", "16:30"},
	{"10:00", "18:30"},
}

// GenerateRandomEmployee 生成一个周一到周五工作的员工，工作时间窗口随机
func GenerateRandomEmployee(emailDomainName string) *domain.Employee {
	fullName := GenerateRandomChineseName()
	code := GenerateEmployeeCodeFromChineseName(fullName)
	window := weekdayWindows[rand.Intn(len(weekdayWindows))]

	emp := &domain.Employee{
		FullName:     fullName,
		EmployeeCode: code,
		Email:        code + "@" + emailDomainName,
		IsActive:     true,
	}

	for weekday := 1; weekday <= 5; weekday++ {
		emp.DefaultSchedule[weekday] = &domain.DayScheduleConfig{
			IsWorkingDay: true,
			StartTime:    window.start,
			EndTime:      window.end,
		}
	}

	return emp
}
