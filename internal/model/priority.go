package model

type PriorityLevel int

const (
	PriorityNone PriorityLevel = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

func (p PriorityLevel) Valid() bool {
	return p >= PriorityNone && p <= PriorityHigh
}

func (p PriorityLevel) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	}
	return "None"
}
