package appointment

import "strings"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

var transitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusCompleted, StatusCanceled},
	StatusCompleted: nil,
	StatusCanceled:  nil,
}

// rótulos antigos do front continuam aceitos na entrada
var statusAliases = map[string]Status{
	"scheduled":  StatusScheduled,
	"agendado":   StatusScheduled,
	"confirmed":  StatusConfirmed,
	"confirmado": StatusConfirmed,
	"completed":  StatusCompleted,
	"concluido":  StatusCompleted,
	"concluído":  StatusCompleted,
	"canceled":   StatusCanceled,
	"cancelled":  StatusCanceled,
	"cancelado":  StatusCanceled,
}

// ParseStatus normalises s into the closed status set.
func ParseStatus(s string) (Status, error) {
	st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// Blocks reports whether an appointment in this status occupies its interval.
func (s Status) Blocks() bool {
	return s != StatusCanceled
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, st := range transitions[s] {
		if st == next {
			return true
		}
	}
	return false
}

func (s Status) Next() []Status {
	return append([]Status(nil), transitions[s]...)
}

// ===============================
// Validations
// ===============================

func Transition(current, next Status) error {
	if !next.Valid() {
		return ErrInvalidStatus
	}
	if !current.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	return nil
}

// CanConfirm define se um agendamento pode ser confirmado
func CanConfirm(current Status) error {
	return Transition(current, StatusConfirmed)
}

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	return Transition(current, StatusCanceled)
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	return Transition(current, StatusCompleted)
}

func InitialStatus() Status {
	return StatusScheduled
}

// ===============================
// Actions (schedule view buttons)
// ===============================

type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

var actionOrder = []Action{ActionConfirm, ActionComplete, ActionCancel}

func (a Action) Target() Status {
	switch a {
	case ActionConfirm:
		return StatusConfirmed
	case ActionComplete:
		return StatusCompleted
	case ActionCancel:
		return StatusCanceled
	}
	return ""
}

// Actions lists what a barber may do next with an appointment in status s.
func (s Status) Actions() []Action {
	out := []Action{}
	for _, a := range actionOrder {
		if s.CanTransitionTo(a.Target()) {
			out = append(out, a)
		}
	}
	return out
}
