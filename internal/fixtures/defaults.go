package fixtures

import (
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/leave"
)

func strPtr(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ==========================================
// ACCOUNTS
// ==========================================

const (
	AdminUsername = "admin"
	AdminEmail    = "admin@empresa.com"
	AdminPassword = "admin123"

	EmployeePassword = "password123"
)

type employeeSeed struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Department  string
	Area        string
	PhoneNumber string
	BirthDate   time.Time
}

var defaultEmployees = []employeeSeed{
	{"lucia.martinez", "lucia.martinez@empresa.com", "Lucía", "Martínez", "Tecnología", "Desarrollo", "+34612345001", date(1990, 3, 14)},
	{"javier.lopez", "javier.lopez@empresa.com", "Javier", "López", "Tecnología", "Infraestructura", "+34612345002", date(1985, 7, 2)},
	{"carmen.ruiz", "carmen.ruiz@empresa.com", "Carmen", "Ruiz", "Recursos Humanos", "Reclutamiento", "+34612345003", date(1993, 11, 21)},
	{"pablo.fernandez", "pablo.fernandez@empresa.com", "Pablo", "Fernández", "Recursos Humanos", "Nóminas", "+34612345004", date(1979, 1, 30)},
	{"elena.gomez", "elena.gomez@empresa.com", "Elena", "Gómez", "Marketing", "Digital", "+34612345005", date(1996, 5, 9)},
	{"diego.sanchez", "diego.sanchez@empresa.com", "Diego", "Sánchez", "Marketing", "Contenido", "+34612345006", date(1988, 9, 17)},
	{"sofia.diaz", "sofia.diaz@empresa.com", "Sofía", "Díaz", "Ventas", "Cuentas Clave", "+34612345007", date(1991, 12, 3)},
	{"mateo.moreno", "mateo.moreno@empresa.com", "Mateo", "Moreno", "Ventas", "Ventas Internas", "+34612345008", date(1999, 4, 25)},
	{"valeria.romero", "valeria.romero@empresa.com", "Valeria", "Romero", "Finanzas", "Contabilidad", "+34612345009", date(1983, 8, 11)},
	{"hugo.navarro", "hugo.navarro@empresa.com", "Hugo", "Navarro", "Finanzas", "Tesorería", "+34612345010", date(1994, 2, 6)},
}

// ==========================================
// SCHEDULE
// ==========================================

const (
	DefaultScheduleName  = "Jornada Estándar"
	defaultScheduleStart = "08:00"
	defaultScheduleEnd   = "18:00"
	defaultScheduleGrace = 5
)

// ==========================================
// LEAVE AND ATTENDANCE
// ==========================================

type leaveSeed struct {
	EmployeeIndex int
	StartDate     time.Time
	EndDate       time.Time
	LeaveType     string
	Reason        string
}

var defaultLeaves = []leaveSeed{
	{0, date(2025, 8, 18), date(2025, 8, 22), leave.TypeVacation, "Vacaciones de verano"},
	{1, date(2025, 8, 18), date(2025, 8, 22), leave.TypeVacation, "Vacaciones de verano"},
	{6, date(2025, 9, 8), date(2025, 9, 9), leave.TypeVacation, "Asuntos familiares"},
}

// Attendance history covers weekdays in [AttendanceFrom, AttendanceTo].
var (
	AttendanceFrom = date(2025, 8, 1)
	AttendanceTo   = date(2025, 9, 12)
)
