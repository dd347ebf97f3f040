package session

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/wsargent/toodledo/internal/domain"
)

type goalList struct {
	XMLName xml.Name `xml:"goals"`
	Goals   []struct {
		ID          int64  `xml:"id,attr"`
		Level       int    `xml:"level,attr"`
		Contributes int64  `xml:"contributes,attr"`
		Name        string `xml:",chardata"`
	} `xml:"goal"`
}

// GetGoals returns all goals, from cache unless it is empty or refresh is
// set. Goals are built in two passes: first every node, then the
// contributes references are wired through the id index, so a goal may
// reference another goal fetched in the same batch regardless of order.
// A dangling contributes id resolves to the NoGoal sentinel.
func (s *Session) GetGoals(ctx context.Context, refresh bool) ([]*domain.Goal, error) {
	if s.goals.populated() && !refresh {
		return s.goals.list, nil
	}

	body, err := s.call(ctx, "getGoals", nil, true)
	if err != nil {
		return nil, err
	}

	var payload goalList
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: parse getGoals response: %v", domain.ErrServer, err)
	}

	goals := make([]*domain.Goal, 0, len(payload.Goals))
	byID := make(map[int64]*domain.Goal, len(payload.Goals))
	for _, g := range payload.Goals {
		goal := &domain.Goal{
			ID:            g.ID,
			Level:         domain.GoalLevel(g.Level),
			ContributesID: g.Contributes,
			Name:          g.Name,
		}
		goals = append(goals, goal)
		byID[goal.ID] = goal
	}

	for _, goal := range goals {
		if goal.ContributesID == domain.NoGoal.ID {
			goal.Contributes = domain.NoGoal
			continue
		}
		if parent, ok := byID[goal.ContributesID]; ok {
			goal.Contributes = parent
		} else {
			goal.Contributes = domain.NoGoal
		}
	}

	s.goals.replace(goals,
		func(g *domain.Goal) int64 { return g.ID },
		func(g *domain.Goal) string { return g.Name })
	return goals, nil
}

func (s *Session) GetGoalByID(ctx context.Context, id int64) (*domain.Goal, error) {
	if !s.goals.populated() {
		if _, err := s.GetGoals(ctx, true); err != nil {
			return nil, err
		}
	}
	goal, ok := s.goals.find(id)
	if !ok {
		return nil, fmt.Errorf("%w: no goal found with id %d", domain.ErrItemNotFound, id)
	}
	return goal, nil
}

// GetGoalByName matches case-insensitively.
func (s *Session) GetGoalByName(ctx context.Context, name string) (*domain.Goal, error) {
	if !s.goals.populated() {
		if _, err := s.GetGoals(ctx, true); err != nil {
			return nil, err
		}
	}
	goal, ok := s.goals.findName(name)
	if !ok {
		return nil, fmt.Errorf("%w: no goal found with name %q", domain.ErrItemNotFound, name)
	}
	return goal, nil
}

// AddGoal creates a goal with the given level and contributing goal id
// (0 for none) and returns the server-assigned id.
func (s *Session) AddGoal(ctx context.Context, title string, level domain.GoalLevel, contributes int64) (int64, error) {
	if title == "" {
		return 0, fmt.Errorf("%w: empty goal title", domain.ErrConfiguration)
	}
	if !level.Valid() {
		return 0, fmt.Errorf("invalid goal level %d: must be 0 (lifetime), 1 (long-term) or 2 (short-term)", level)
	}

	params := map[string]string{
		"title":       title,
		"level":       fmt.Sprintf("%d", int(level)),
		"contributes": formatID(contributes),
	}
	body, err := s.call(ctx, "addGoal", params, true)
	if err != nil {
		return 0, err
	}

	id, err := rootID(body)
	if err != nil {
		return 0, err
	}
	s.FlushGoals()
	return id, nil
}

// EditGoal renames a goal.
func (s *Session) EditGoal(ctx context.Context, id int64, title string) error {
	if title == "" {
		return fmt.Errorf("%w: empty goal title", domain.ErrConfiguration)
	}

	body, err := s.call(ctx, "editGoal", map[string]string{"id": formatID(id), "title": title}, true)
	if err != nil {
		return err
	}
	if err := rootOK(body, "editGoal"); err != nil {
		return err
	}
	s.FlushGoals()
	return nil
}

func (s *Session) DeleteGoal(ctx context.Context, id int64) error {
	body, err := s.call(ctx, "deleteGoal", map[string]string{"id": formatID(id)}, true)
	if err != nil {
		return err
	}
	if err := rootOK(body, "deleteGoal"); err != nil {
		return err
	}
	s.FlushGoals()
	return nil
}

// FlushGoals clears the goal cache.
func (s *Session) FlushGoals() {
	s.goals.clear()
}
