package domain

// GoalLevel is the time horizon of a goal.
type GoalLevel int

const (
	LifetimeGoal  GoalLevel = 0
	LongTermGoal  GoalLevel = 1
	ShortTermGoal GoalLevel = 2
)

// Valid reports whether l is one of the three levels the server accepts.
func (l GoalLevel) Valid() bool {
	return l >= LifetimeGoal && l <= ShortTermGoal
}

// Goal is a read-only representation of a goal. ContributesID is the raw id
// of the higher-level goal this one feeds into; Contributes is the resolved
// reference, wired by the goal cache after a full fetch. It is never nil on
// a hydrated goal: a dangling or zero id resolves to NoGoal.
type Goal struct {
	ID            int64
	Level         GoalLevel
	ContributesID int64
	Contributes   *Goal
	Name          string
}

// NoGoal is the sentinel used when a reference reports goal id 0.
var NoGoal = &Goal{ID: 0, Level: LifetimeGoal, Name: "No goal"}

func (g *Goal) String() string {
	return "$[" + g.Name + "]"
}
