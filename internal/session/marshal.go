package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wsargent/toodledo/internal/domain"
)

// Params is the loosely-typed field map callers hand to task and folder
// operations: values may be raw ids, names, domain objects, times, bools or
// strings, depending on the field. The marshaller normalizes them into the
// canonical string form the wire expects.
type Params map[string]any

// fieldKind selects the marshalling handler for a declared field.
type fieldKind int

const (
	fieldString fieldKind = iota
	fieldBool
	fieldDate
	fieldTime
	fieldDateTime
	fieldNumber
	fieldFolder
	fieldContext
	fieldGoal
	fieldParent
	fieldRepeat
	fieldPriority
	fieldStatus
)

type fieldDef struct {
	name string
	kind fieldKind
}

// Per-operation field declarations. A field absent from the table is not
// sent, whatever the caller supplied.
var (
	taskSearchFields = []fieldDef{
		{"title", fieldString},
		{"folder", fieldFolder},
		{"context", fieldContext},
		{"goal", fieldGoal},
		{"duedate", fieldDate},
		{"duetime", fieldTime},
		{"repeat", fieldRepeat},
		{"priority", fieldPriority},
		{"status", fieldStatus},
		{"parent", fieldParent},
		{"shorter", fieldNumber},
		{"longer", fieldNumber},
		{"before", fieldDate},
		{"after", fieldDate},
		{"modbefore", fieldDateTime},
		{"modafter", fieldDateTime},
		{"compbefore", fieldDate},
		{"compafter", fieldDate},
		{"startbefore", fieldDate},
		{"startafter", fieldDate},
		{"star", fieldBool},
		{"notcomp", fieldBool},
	}

	taskWriteFields = []fieldDef{
		{"title", fieldString},
		{"tag", fieldString},
		{"folder", fieldFolder},
		{"context", fieldContext},
		{"goal", fieldGoal},
		{"startdate", fieldDate},
		{"duedate", fieldDate},
		{"duetime", fieldTime},
		{"parent", fieldParent},
		{"completed", fieldBool},
		{"repeat", fieldRepeat},
		{"priority", fieldPriority},
		{"status", fieldStatus},
		{"star", fieldBool},
		{"length", fieldNumber},
		{"note", fieldString},
	}

	folderEditFields = []fieldDef{
		{"title", fieldString},
		{"private", fieldBool},
		{"archived", fieldBool},
	}
)

// marshal applies the declared handler to each field present in params.
// Handlers never mutate the caller's input; entity-reference handlers
// resolve names through the entity caches, which may fetch.
func (s *Session) marshal(ctx context.Context, params Params, defs []fieldDef) (map[string]string, error) {
	wire := make(map[string]string, len(params))
	for _, def := range defs {
		value, ok := params[def.name]
		if !ok || value == nil {
			continue
		}

		entry, ok, err := s.marshalField(ctx, def, value)
		if err != nil {
			return nil, err
		}
		if ok {
			wire[def.name] = entry
		}
	}
	return wire, nil
}

func (s *Session) marshalField(ctx context.Context, def fieldDef, value any) (string, bool, error) {
	switch def.kind {
	case fieldString:
		return marshalString(def.name, value)
	case fieldBool:
		return marshalBool(def.name, value)
	case fieldDate:
		return marshalTimeValue(def.name, value, domain.DateFormat)
	case fieldTime:
		return marshalTimeValue(def.name, value, domain.TimeFormat)
	case fieldDateTime:
		return marshalTimeValue(def.name, value, domain.DateTimeFormat)
	case fieldNumber:
		return marshalNumber(value)
	case fieldFolder:
		return s.marshalFolder(ctx, value)
	case fieldContext:
		return s.marshalContext(ctx, value)
	case fieldGoal:
		return s.marshalGoal(ctx, value)
	case fieldParent:
		return marshalParent(def.name, value)
	case fieldRepeat:
		return marshalRepeat(value)
	case fieldPriority:
		return marshalPriority(value)
	case fieldStatus:
		return marshalStatus(value)
	default:
		return "", false, fmt.Errorf("unhandled field kind for %q", def.name)
	}
}

func marshalString(name string, value any) (string, bool, error) {
	text, ok := value.(string)
	if !ok {
		return "", false, fmt.Errorf("field %q wants a string, got %T", name, value)
	}
	if text == "" {
		return "", false, nil
	}
	return text, true, nil
}

// marshalBool normalizes to the literal "1"/"0": native bools, the strings
// "true"/"false" in any case, and the already-canonical 1/0 forms.
func marshalBool(name string, value any) (string, bool, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return "1", true, nil
		}
		return "0", true, nil
	case string:
		switch strings.ToLower(v) {
		case "true", "1":
			return "1", true, nil
		case "false", "0":
			return "0", true, nil
		}
		return "", false, fmt.Errorf("field %q wants a boolean, got %q", name, v)
	case int:
		if v == 1 {
			return "1", true, nil
		}
		if v == 0 {
			return "0", true, nil
		}
		return "", false, fmt.Errorf("field %q wants a boolean, got %d", name, v)
	default:
		return "", false, fmt.Errorf("field %q wants a boolean, got %T", name, value)
	}
}

// marshalTimeValue formats a time.Time with the field's wire layout; a
// string passes through untouched, which is what lets callers prepend
// relative due-date modifiers like "=2007-01-23".
func marshalTimeValue(name string, value any, layout string) (string, bool, error) {
	switch v := value.(type) {
	case time.Time:
		return v.Format(layout), true, nil
	case string:
		if v == "" {
			return "", false, nil
		}
		return v, true, nil
	default:
		return "", false, fmt.Errorf("field %q wants a time or string, got %T", name, value)
	}
}

// marshalNumber accepts integral values only. Anything else is dropped
// silently — longstanding observable behavior, kept deliberately.
func marshalNumber(value any) (string, bool, error) {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v), true, nil
	case int32:
		return strconv.FormatInt(int64(v), 10), true, nil
	case int64:
		return strconv.FormatInt(v, 10), true, nil
	default:
		return "", false, nil
	}
}

func (s *Session) marshalFolder(ctx context.Context, value any) (string, bool, error) {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v), true, nil
	case int64:
		return strconv.FormatInt(v, 10), true, nil
	case *domain.Folder:
		return strconv.FormatInt(v.ID, 10), true, nil
	case string:
		folder, err := s.GetFolderByName(ctx, v)
		if err != nil {
			return "", false, err
		}
		return strconv.FormatInt(folder.ID, 10), true, nil
	default:
		return "", false, fmt.Errorf("field \"folder\" wants an id, name or folder, got %T", value)
	}
}

func (s *Session) marshalContext(ctx context.Context, value any) (string, bool, error) {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v), true, nil
	case int64:
		return strconv.FormatInt(v, 10), true, nil
	case *domain.Context:
		return strconv.FormatInt(v.ID, 10), true, nil
	case string:
		context, err := s.GetContextByName(ctx, v)
		if err != nil {
			return "", false, err
		}
		return strconv.FormatInt(context.ID, 10), true, nil
	default:
		return "", false, fmt.Errorf("field \"context\" wants an id, name or context, got %T", value)
	}
}

func (s *Session) marshalGoal(ctx context.Context, value any) (string, bool, error) {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v), true, nil
	case int64:
		return strconv.FormatInt(v, 10), true, nil
	case *domain.Goal:
		return strconv.FormatInt(v.ID, 10), true, nil
	case string:
		goal, err := s.GetGoalByName(ctx, v)
		if err != nil {
			return "", false, err
		}
		return strconv.FormatInt(goal.ID, 10), true, nil
	default:
		return "", false, fmt.Errorf("field \"goal\" wants an id, name or goal, got %T", value)
	}
}

func marshalParent(name string, value any) (string, bool, error) {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v), true, nil
	case int64:
		return strconv.FormatInt(v, 10), true, nil
	case *domain.Task:
		return strconv.FormatInt(v.ID, 10), true, nil
	default:
		return "", false, fmt.Errorf("field %q wants a task id or task, got %T", name, value)
	}
}

func marshalRepeat(value any) (string, bool, error) {
	repeat, ok := asRepeat(value)
	if !ok || !repeat.Valid() {
		return "", false, fmt.Errorf("invalid repeat %v: must be one of none, weekly, monthly, yearly, daily, biweekly, bimonthly, semiannually, quarterly, with parent", value)
	}
	return strconv.Itoa(int(repeat)), true, nil
}

func asRepeat(value any) (domain.Repeat, bool) {
	switch v := value.(type) {
	case domain.Repeat:
		return v, true
	case int:
		return domain.Repeat(v), true
	default:
		return 0, false
	}
}

func marshalPriority(value any) (string, bool, error) {
	priority, ok := asPriority(value)
	if !ok || !priority.Valid() {
		return "", false, fmt.Errorf("invalid priority %v: must be one of negative, low, medium, high, top", value)
	}
	return strconv.Itoa(int(priority)), true, nil
}

func asPriority(value any) (domain.Priority, bool) {
	switch v := value.(type) {
	case domain.Priority:
		return v, true
	case int:
		return domain.Priority(v), true
	default:
		return 0, false
	}
}

func marshalStatus(value any) (string, bool, error) {
	status, ok := asStatus(value)
	if !ok || !status.Valid() {
		return "", false, fmt.Errorf("invalid status %v: must be one of none, next action, active, planning, delegated, waiting, hold, postponed, someday, cancelled, reference", value)
	}
	return strconv.Itoa(int(status)), true, nil
}

func asStatus(value any) (domain.Status, bool) {
	switch v := value.(type) {
	case domain.Status:
		return v, true
	case int:
		return domain.Status(v), true
	default:
		return 0, false
	}
}
