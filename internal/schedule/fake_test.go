package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/domain"
)

// fakeStore: 内存实现，未命中时返回 sql.ErrNoRows，和 repository 的约定一致
type fakeStore struct {
	employees        map[int64]*domain.Employee
	templates        map[int64]*domain.ScheduleTemplate
	weeklySchedules  map[string]*domain.WeeklySchedule
	breaks           map[string][]*domain.ScheduleBreak
	defaultSchedules map[int64][7]*domain.DayScheduleConfig

	nextWeeklyID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees:        make(map[int64]*domain.Employee),
		templates:        make(map[int64]*domain.ScheduleTemplate),
		weeklySchedules:  make(map[string]*domain.WeeklySchedule),
		breaks:           make(map[string][]*domain.ScheduleBreak),
		defaultSchedules: make(map[int64][7]*domain.DayScheduleConfig),
		nextWeeklyID:     1,
	}
}

func weeklyKey(employeeID int64, year, weekNumber int32) string {
	return fmt.Sprintf("%d:%d:%d", employeeID, year, weekNumber)
}

func parentKey(parent domain.BreakParentRef) string {
	weekday := int32(-1)
	if parent.Weekday != nil {
		weekday = *parent.Weekday
	}
	return fmt.Sprintf("%s:%d:%d", parent.Type, parent.ID, weekday)
}

func (s *fakeStore) GetEmployeeByID(id int64) (*domain.Employee, error) {
	emp, ok := s.employees[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return emp, nil
}

func (s *fakeStore) GetScheduleTemplate(id int64) (*domain.ScheduleTemplate, error) {
	tpl, ok := s.templates[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return tpl, nil
}

func (s *fakeStore) GetWeeklySchedule(employeeID int64, year, weekNumber int32) (*domain.WeeklySchedule, error) {
	ws, ok := s.weeklySchedules[weeklyKey(employeeID, year, weekNumber)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return ws, nil
}

func (s *fakeStore) GetBreaksByParent(parent domain.BreakParentRef) ([]*domain.ScheduleBreak, error) {
	return s.breaks[parentKey(parent)], nil
}

func (s *fakeStore) ReplaceEmployeeDefaultSchedule(employeeID int64, days [7]*domain.DayScheduleConfig) error {
	if _, ok := s.employees[employeeID]; !ok {
		return sql.ErrNoRows
	}
	s.defaultSchedules[employeeID] = days
	s.employees[employeeID].DefaultSchedule = days
	return nil
}

func (s *fakeStore) UpsertWeeklySchedule(ws *domain.WeeklySchedule) error {
	key := weeklyKey(ws.EmployeeID, ws.Year, ws.WeekNumber)
	if existing, ok := s.weeklySchedules[key]; ok {
		ws.ID = existing.ID
		ws.Version = existing.Version + 1
	} else {
		ws.ID = s.nextWeeklyID
		s.nextWeeklyID++
		ws.Version = 1
	}
	s.weeklySchedules[key] = ws
	return nil
}

func (s *fakeStore) addWeeklySchedule(ws *domain.WeeklySchedule) *domain.WeeklySchedule {
	ws.ID = s.nextWeeklyID
	s.nextWeeklyID++
	s.weeklySchedules[weeklyKey(ws.EmployeeID, ws.Year, ws.WeekNumber)] = ws
	return ws
}

func (s *fakeStore) addBreaks(parent domain.BreakParentRef, breaks ...*domain.ScheduleBreak) {
	for _, br := range breaks {
		br.Parent = parent
	}
	s.breaks[parentKey(parent)] = append(s.breaks[parentKey(parent)], breaks...)
}

// fakeLocker: 进程内的 Locker 实现，记录持有中的 key
type fakeLocker struct {
	held map[string]bool
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]bool)}
}

func (l *fakeLocker) Acquire(_ context.Context, key string) (bool, error) {
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *fakeLocker) Release(_ context.Context, key string) error {
	delete(l.held, key)
	return nil
}
