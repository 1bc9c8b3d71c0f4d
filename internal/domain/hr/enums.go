package hr

import (
	"strconv"
	"strings"
)

// EmploymentType classifies an employee's contract
type EmploymentType int

const (
	EmploymentTypeFullTime EmploymentType = iota + 1
	EmploymentTypePartTime
	EmploymentTypeContract
	EmploymentTypeTemporary
	EmploymentTypeIntern
	EmploymentTypeConsultant
)

var employmentTypeNames = map[EmploymentType]string{
	EmploymentTypeFullTime:   "FullTime",
	EmploymentTypePartTime:   "PartTime",
	EmploymentTypeContract:   "Contract",
	EmploymentTypeTemporary:  "Temporary",
	EmploymentTypeIntern:     "Intern",
	EmploymentTypeConsultant: "Consultant",
}

func (t EmploymentType) String() string {
	if name, ok := employmentTypeNames[t]; ok {
		return name
	}
	return strconv.Itoa(int(t))
}

// IsValid returns true if t is a known employment type
func (t EmploymentType) IsValid() bool {
	_, ok := employmentTypeNames[t]
	return ok
}

// EmploymentStatus is the lifecycle state of an employee record
type EmploymentStatus int

const (
	EmploymentStatusActive EmploymentStatus = iota + 1
	EmploymentStatusInactive
	EmploymentStatusTerminated
	EmploymentStatusOnLeave
	EmploymentStatusSuspended
)

var employmentStatusNames = map[EmploymentStatus]string{
	EmploymentStatusActive:     "Active",
	EmploymentStatusInactive:   "Inactive",
	EmploymentStatusTerminated: "Terminated",
	EmploymentStatusOnLeave:    "OnLeave",
	EmploymentStatusSuspended:  "Suspended",
}

func (s EmploymentStatus) String() string {
	if name, ok := employmentStatusNames[s]; ok {
		return name
	}
	return strconv.Itoa(int(s))
}

// IsValid returns true if s is a known employment status
func (s EmploymentStatus) IsValid() bool {
	_, ok := employmentStatusNames[s]
	return ok
}

// Gender is optional personal data on an employee
type Gender int

const (
	GenderMale Gender = iota + 1
	GenderFemale
	GenderOther
)

var genderNames = map[Gender]string{
	GenderMale:   "Male",
	GenderFemale: "Female",
	GenderOther:  "Other",
}

func (g Gender) String() string {
	if name, ok := genderNames[g]; ok {
		return name
	}
	return strconv.Itoa(int(g))
}

// IsValid returns true if g is a known gender value
func (g Gender) IsValid() bool {
	_, ok := genderNames[g]
	return ok
}

// LeaveStatus is a state of the leave request lifecycle
type LeaveStatus int

const (
	LeaveStatusPending LeaveStatus = iota + 1
	LeaveStatusApproved
	LeaveStatusRejected
	LeaveStatusCancelled
	LeaveStatusInProgress
	LeaveStatusCompleted
)

var leaveStatusNames = map[LeaveStatus]string{
	LeaveStatusPending:    "Pending",
	LeaveStatusApproved:   "Approved",
	LeaveStatusRejected:   "Rejected",
	LeaveStatusCancelled:  "Cancelled",
	LeaveStatusInProgress: "InProgress",
	LeaveStatusCompleted:  "Completed",
}

func (s LeaveStatus) String() string {
	if name, ok := leaveStatusNames[s]; ok {
		return name
	}
	return strconv.Itoa(int(s))
}

// IsValid returns true if s is a known leave status
func (s LeaveStatus) IsValid() bool {
	_, ok := leaveStatusNames[s]
	return ok
}

// IsTerminal reports whether no further transition is possible from s
func (s LeaveStatus) IsTerminal() bool {
	return s == LeaveStatusRejected || s == LeaveStatusCancelled || s == LeaveStatusCompleted
}

// BlocksOverlap reports whether a request in status s still reserves its dates
func (s LeaveStatus) BlocksOverlap() bool {
	return s != LeaveStatusRejected && s != LeaveStatusCancelled
}

// ParseLeaveStatus accepts either the status name (case-insensitive) or its number
func ParseLeaveStatus(raw string) (LeaveStatus, bool) {
	return parseEnum(raw, leaveStatusNames)
}

// ParseEmploymentType accepts either the type name (case-insensitive) or its number
func ParseEmploymentType(raw string) (EmploymentType, bool) {
	return parseEnum(raw, employmentTypeNames)
}

// ParseEmploymentStatus accepts either the status name (case-insensitive) or its number
func ParseEmploymentStatus(raw string) (EmploymentStatus, bool) {
	return parseEnum(raw, employmentStatusNames)
}

// ParseGender accepts either the gender name (case-insensitive) or its number
func ParseGender(raw string) (Gender, bool) {
	return parseEnum(raw, genderNames)
}

func parseEnum[T ~int](raw string, names map[T]string) (T, bool) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		_, ok := names[T(n)]
		return T(n), ok
	}
	for v, name := range names {
		if strings.EqualFold(name, raw) {
			return v, true
		}
	}
	return 0, false
}
