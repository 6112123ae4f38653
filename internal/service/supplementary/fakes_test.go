package supplementary

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workpulse/attendance-backend-go/internal/domain/attendance"
	"github.com/workpulse/attendance-backend-go/internal/domain/company"
	"github.com/workpulse/attendance-backend-go/internal/domain/employee"
	"github.com/workpulse/attendance-backend-go/internal/domain/holiday"
	"github.com/workpulse/attendance-backend-go/internal/domain/recovery"
	"github.com/workpulse/attendance-backend-go/internal/domain/supplementary"
)

// In-memory fakes standing in for the PostgreSQL repositories. They enforce
// the same contracts (sentinel errors, nil-on-absent, the uniqueness rule)
// so the service wiring under test matches production behavior.

func dayKey(companyID, employeeID string, date time.Time) string {
	return companyID + "|" + employeeID + "|" + date.UTC().Format("2006-01-02")
}

type fakeSupplementaryRepo struct {
	mu      sync.Mutex
	seq     int
	records map[string]*supplementary.SupplementaryDay // by ID

	failCreate error
	failGet    error
	missGets   int // pretend the next N date lookups see nothing
}

func newFakeSupplementaryRepo() *fakeSupplementaryRepo {
	return &fakeSupplementaryRepo{records: make(map[string]*supplementary.SupplementaryDay)}
}

func (f *fakeSupplementaryRepo) Create(ctx context.Context, record supplementary.SupplementaryDay) (supplementary.SupplementaryDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreate != nil {
		return supplementary.SupplementaryDay{}, f.failCreate
	}
	for _, existing := range f.records {
		if dayKey(existing.CompanyID, existing.EmployeeID, existing.Date) == dayKey(record.CompanyID, record.EmployeeID, record.Date) {
			return supplementary.SupplementaryDay{}, supplementary.ErrDuplicateForDate
		}
	}

	f.seq++
	record.ID = fmt.Sprintf("supp-%d", f.seq)
	record.CreatedAt = time.Now().UTC()
	record.UpdatedAt = record.CreatedAt
	stored := record
	f.records[record.ID] = &stored
	return record, nil
}

func (f *fakeSupplementaryRepo) GetByID(ctx context.Context, id string, companyID string) (supplementary.SupplementaryDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[id]
	if !ok || rec.CompanyID != companyID {
		return supplementary.SupplementaryDay{}, supplementary.ErrNotFound
	}
	return *rec, nil
}

func (f *fakeSupplementaryRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*supplementary.SupplementaryDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failGet != nil {
		return nil, f.failGet
	}
	if f.missGets > 0 {
		f.missGets--
		return nil, nil
	}
	key := dayKey(companyID, employeeID, date)
	for _, rec := range f.records {
		if dayKey(rec.CompanyID, rec.EmployeeID, rec.Date) == key {
			out := *rec
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeSupplementaryRepo) Update(ctx context.Context, record supplementary.SupplementaryDay) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[record.ID]
	if !ok || rec.CompanyID != record.CompanyID {
		return supplementary.ErrNotFound
	}
	record.UpdatedAt = time.Now().UTC()
	stored := record
	f.records[record.ID] = &stored
	return nil
}

func (f *fakeSupplementaryRepo) Delete(ctx context.Context, id string, companyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[id]
	if !ok || rec.CompanyID != companyID {
		return supplementary.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeSupplementaryRepo) List(ctx context.Context, filter supplementary.Filter, companyID string) ([]supplementary.SupplementaryDay, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []supplementary.SupplementaryDay
	for _, rec := range f.records {
		if rec.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(rec.Status) != *filter.Status {
			continue
		}
		if filter.Type != nil && string(rec.Type) != *filter.Type {
			continue
		}
		matched = append(matched, *rec)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeSupplementaryRepo) GetApprovedUnconverted(ctx context.Context, employeeID string, companyID string) ([]supplementary.SupplementaryDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []supplementary.SupplementaryDay
	for _, rec := range f.records {
		if rec.CompanyID == companyID && rec.EmployeeID == employeeID &&
			rec.Status == supplementary.StatusApproved && !rec.ConvertedToRecovery {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeSupplementaryRepo) MarkConverted(ctx context.Context, ids []string, recoveryDayID string, companyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, id := range ids {
		rec, ok := f.records[id]
		if !ok || rec.CompanyID != companyID ||
			rec.Status != supplementary.StatusApproved || rec.ConvertedToRecovery {
			return supplementary.ErrRecordNotConvertible
		}
	}
	for _, id := range ids {
		rec := f.records[id]
		rec.Status = supplementary.StatusRecovered
		rec.ConvertedToRecovery = true
		rec.RecoveryDayID = &recoveryDayID
	}
	return nil
}

func (f *fakeSupplementaryRepo) StatusCounts(ctx context.Context, companyID string) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	counts := make(map[string]int64)
	for _, rec := range f.records {
		if rec.CompanyID == companyID {
			counts[string(rec.Status)]++
		}
	}
	return counts, nil
}

func (f *fakeSupplementaryRepo) TypeCounts(ctx context.Context, companyID string) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	counts := make(map[string]int64)
	for _, rec := range f.records {
		if rec.CompanyID == companyID {
			counts[string(rec.Type)]++
		}
	}
	return counts, nil
}

func (f *fakeSupplementaryRepo) TotalApprovedHours(ctx context.Context, companyID string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := decimal.Zero
	for _, rec := range f.records {
		if rec.CompanyID != companyID {
			continue
		}
		if rec.Status == supplementary.StatusApproved || rec.Status == supplementary.StatusRecovered {
			total = total.Add(rec.EffectiveHours())
		}
	}
	return total, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee // by ID
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, emp := range employees {
		repo.employees[emp.ID] = emp
	}
	return repo
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok || emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeLeaveRepo struct {
	onLeave map[string]bool // employeeID|date
	failErr error
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{onLeave: make(map[string]bool)}
}

func (f *fakeLeaveRepo) setLeave(employeeID string, date time.Time) {
	f.onLeave[employeeID+"|"+date.UTC().Format("2006-01-02")] = true
}

func (f *fakeLeaveRepo) HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error) {
	if f.failErr != nil {
		return false, f.failErr
	}
	return f.onLeave[employeeID+"|"+date.UTC().Format("2006-01-02")], nil
}

type fakeHolidayRepo struct {
	holidays map[string]string // companyID|date -> name
}

func newFakeHolidayRepo() *fakeHolidayRepo {
	return &fakeHolidayRepo{holidays: make(map[string]string)}
}

func (f *fakeHolidayRepo) setHoliday(companyID string, date time.Time, name string) {
	f.holidays[companyID+"|"+date.UTC().Format("2006-01-02")] = name
}

func (f *fakeHolidayRepo) GetByDate(ctx context.Context, companyID string, date time.Time) (*holiday.Holiday, error) {
	name, ok := f.holidays[companyID+"|"+date.UTC().Format("2006-01-02")]
	if !ok {
		return nil, nil
	}
	return &holiday.Holiday{CompanyID: companyID, Name: name, Date: date}, nil
}

func (f *fakeHolidayRepo) GetByDateRange(ctx context.Context, companyID string, startDate, endDate time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		if h, _ := f.GetByDate(ctx, companyID, d); h != nil {
			out = append(out, *h)
		}
	}
	return out, nil
}

type fakeClockEventRepo struct {
	mu      sync.Mutex
	seq     int
	events  []attendance.ClockEvent
	failErr map[string]error // companyID -> window query error
}

func newFakeClockEventRepo() *fakeClockEventRepo {
	return &fakeClockEventRepo{failErr: make(map[string]error)}
}

func (f *fakeClockEventRepo) addShift(companyID, employeeID string, in, out time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	inEvent := attendance.ClockEvent{
		ID: fmt.Sprintf("evt-%d", f.seq), CompanyID: companyID, EmployeeID: employeeID,
		Type: attendance.EventIn, Timestamp: in,
	}
	f.events = append(f.events, inEvent)

	worked := decimal.NewFromFloat(out.Sub(in).Hours()).Round(2)
	f.seq++
	f.events = append(f.events, attendance.ClockEvent{
		ID: fmt.Sprintf("evt-%d", f.seq), CompanyID: companyID, EmployeeID: employeeID,
		Type: attendance.EventOut, Timestamp: out,
		PairedInID: &inEvent.ID, WorkedHours: &worked,
	})
}

func (f *fakeClockEventRepo) Create(ctx context.Context, event attendance.ClockEvent) (attendance.ClockEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	event.ID = fmt.Sprintf("evt-%d", f.seq)
	event.CreatedAt = time.Now().UTC()
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeClockEventRepo) GetOpenIn(ctx context.Context, employeeID string, companyID string) (*attendance.ClockEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	paired := make(map[string]bool)
	for _, e := range f.events {
		if e.Type == attendance.EventOut && e.PairedInID != nil {
			paired[*e.PairedInID] = true
		}
	}
	var open *attendance.ClockEvent
	for i := range f.events {
		e := f.events[i]
		if e.Type == attendance.EventIn && e.EmployeeID == employeeID && e.CompanyID == companyID && !paired[e.ID] {
			if open == nil || e.Timestamp.After(open.Timestamp) {
				out := e
				open = &out
			}
		}
	}
	return open, nil
}

func (f *fakeClockEventRepo) GetOutEventsInWindow(ctx context.Context, companyID string, start, end time.Time) ([]attendance.ClockEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failErr[companyID]; err != nil {
		return nil, err
	}
	var out []attendance.ClockEvent
	for _, e := range f.events {
		if e.Type != attendance.EventOut || e.CompanyID != companyID {
			continue
		}
		if e.WorkedHours == nil || !e.WorkedHours.IsPositive() {
			continue
		}
		if e.Timestamp.Before(start) || !e.Timestamp.Before(end) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *fakeClockEventRepo) GetPrecedingIn(ctx context.Context, employeeID string, before time.Time, companyID string) (*attendance.ClockEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var best *attendance.ClockEvent
	for i := range f.events {
		e := f.events[i]
		if e.Type != attendance.EventIn || e.EmployeeID != employeeID || e.CompanyID != companyID {
			continue
		}
		if !e.Timestamp.Before(before) {
			continue
		}
		if best == nil || e.Timestamp.After(best.Timestamp) {
			out := e
			best = &out
		}
	}
	return best, nil
}

type fakeRecoveryRepo struct {
	mu      sync.Mutex
	seq     int
	entries []recovery.RecoveryDay
	failErr error
}

func newFakeRecoveryRepo() *fakeRecoveryRepo {
	return &fakeRecoveryRepo{}
}

func (f *fakeRecoveryRepo) Create(ctx context.Context, entry recovery.RecoveryDay) (recovery.RecoveryDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failErr != nil {
		return recovery.RecoveryDay{}, f.failErr
	}
	f.seq++
	entry.ID = fmt.Sprintf("rec-%d", f.seq)
	entry.CreatedAt = time.Now().UTC()
	f.entries = append(f.entries, entry)
	return entry, nil
}

type fakeSettingsRepo struct {
	settings   map[string]company.Settings
	companyIDs []string
}

func newFakeSettingsRepo(companyIDs ...string) *fakeSettingsRepo {
	return &fakeSettingsRepo{
		settings:   make(map[string]company.Settings),
		companyIDs: companyIDs,
	}
}

func (f *fakeSettingsRepo) GetSettings(ctx context.Context, companyID string) (company.Settings, error) {
	if s, ok := f.settings[companyID]; ok {
		return s, nil
	}
	return company.Settings{
		CompanyID:               companyID,
		SupplementaryMinMinutes: 30,
		DailyWorkingHours:       decimal.NewFromInt(8),
		RecoveryConversionRate:  decimal.NewFromInt(1),
	}, nil
}

func (f *fakeSettingsRepo) ListCompanyIDs(ctx context.Context) ([]string, error) {
	return f.companyIDs, nil
}

// fakeTransactor runs the function directly; rollback is simulated by the
// fakes never observing partial writes when fn errors out before mutating.
type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}
