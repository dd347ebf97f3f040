package domain

import (
	"fmt"
	"strings"
)

// Priority is the server's task priority code.
type Priority int

const (
	PriorityNegative Priority = -1
	PriorityLow      Priority = 0
	PriorityMedium   Priority = 1
	PriorityHigh     Priority = 2
	PriorityTop      Priority = 3
)

func (p Priority) Valid() bool {
	return p >= PriorityNegative && p <= PriorityTop
}

func (p Priority) String() string {
	switch p {
	case PriorityNegative:
		return "negative"
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityTop:
		return "top"
	default:
		return ""
	}
}

// ParsePriority maps a priority name to its code. Case-insensitive.
func ParsePriority(name string) (Priority, error) {
	switch strings.ToLower(name) {
	case "negative":
		return PriorityNegative, nil
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "top":
		return PriorityTop, nil
	default:
		return 0, fmt.Errorf("unknown priority %q", name)
	}
}

// Repeat is the server's task repeat code.
type Repeat int

const (
	RepeatNone         Repeat = 0
	RepeatWeekly       Repeat = 1
	RepeatMonthly      Repeat = 2
	RepeatYearly       Repeat = 3
	RepeatDaily        Repeat = 4
	RepeatBiweekly     Repeat = 5
	RepeatBimonthly    Repeat = 6
	RepeatSemiannually Repeat = 7
	RepeatQuarterly    Repeat = 8
	RepeatWithParent   Repeat = 9
)

func (r Repeat) Valid() bool {
	return r >= RepeatNone && r <= RepeatWithParent
}

func (r Repeat) String() string {
	switch r {
	case RepeatWeekly:
		return "weekly"
	case RepeatMonthly:
		return "monthly"
	case RepeatYearly:
		return "yearly"
	case RepeatDaily:
		return "daily"
	case RepeatBiweekly:
		return "biweekly"
	case RepeatBimonthly:
		return "bimonthly"
	case RepeatSemiannually:
		return "semiannually"
	case RepeatQuarterly:
		return "quarterly"
	case RepeatWithParent:
		return "with parent"
	default:
		return ""
	}
}

// Status is the server's task status code.
type Status int

const (
	StatusNone       Status = 0
	StatusNextAction Status = 1
	StatusActive     Status = 2
	StatusPlanning   Status = 3
	StatusDelegated  Status = 4
	StatusWaiting    Status = 5
	StatusHold       Status = 6
	StatusPostponed  Status = 7
	StatusSomeday    Status = 8
	StatusCancelled  Status = 9
	StatusReference  Status = 10
)

func (s Status) Valid() bool {
	return s >= StatusNone && s <= StatusReference
}

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusNextAction:
		return "Next Action"
	case StatusActive:
		return "Active"
	case StatusPlanning:
		return "Planning"
	case StatusDelegated:
		return "Delegated"
	case StatusWaiting:
		return "Waiting"
	case StatusHold:
		return "Hold"
	case StatusPostponed:
		return "Postponed"
	case StatusSomeday:
		return "Someday"
	case StatusCancelled:
		return "Cancelled"
	case StatusReference:
		return "Reference"
	default:
		return ""
	}
}
