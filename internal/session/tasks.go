package session

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wsargent/toodledo/internal/domain"
)

// Numeric fields arrive as character data that may be empty, so the record
// keeps them as strings and hydration parses them.
type taskRecord struct {
	ID        string     `xml:"id"`
	Parent    string     `xml:"parent"`
	Children  string     `xml:"children"`
	Title     string     `xml:"title"`
	Tag       string     `xml:"tag"`
	Folder    string     `xml:"folder"`
	Context   refElement `xml:"context"`
	Goal      refElement `xml:"goal"`
	Added     string     `xml:"added"`
	Modified  string     `xml:"modified"`
	StartDate string     `xml:"startdate"`
	DueDate   dueElement `xml:"duedate"`
	DueTime   string     `xml:"duetime"`
	Completed string     `xml:"completed"`
	Repeat    string     `xml:"repeat"`
	Priority  string     `xml:"priority"`
	Status    string     `xml:"status"`
	Star      string     `xml:"star"`
	Length    string     `xml:"length"`
	Timer     string     `xml:"timer"`
	Note      string     `xml:"note"`
}

type refElement struct {
	ID   int64  `xml:"id,attr"`
	Name string `xml:",chardata"`
}

type dueElement struct {
	Modifier string `xml:"modifier,attr"`
	Date     string `xml:",chardata"`
}

type taskListPayload struct {
	XMLName xml.Name     `xml:"tasks"`
	Tasks   []taskRecord `xml:"task"`
}

// GetTasks returns the tasks matching the search params. Results are never
// cached. Recognized fields are the task search declarations: title,
// folder/context/goal (id, name or object), duedate, duetime, repeat,
// priority, status, parent, shorter, longer, before/after, modbefore/
// modafter, compbefore/compafter, startbefore/startafter, star, notcomp.
func (s *Session) GetTasks(ctx context.Context, params Params) ([]*domain.Task, error) {
	wire, err := s.marshal(ctx, params, taskSearchFields)
	if err != nil {
		return nil, err
	}

	body, err := s.call(ctx, "getTasks", wire, true)
	if err != nil {
		return nil, err
	}

	var payload taskListPayload
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: parse getTasks response: %v", domain.ErrServer, err)
	}

	tasks := make([]*domain.Task, 0, len(payload.Tasks))
	for _, rec := range payload.Tasks {
		task, err := s.hydrateTask(ctx, rec, true)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// GetTaskByID fetches a single task.
func (s *Session) GetTaskByID(ctx context.Context, id int64) (*domain.Task, error) {
	return s.getTaskByID(ctx, id, true)
}

func (s *Session) getTaskByID(ctx context.Context, id int64, resolveParent bool) (*domain.Task, error) {
	body, err := s.call(ctx, "getTasks", map[string]string{"id": formatID(id)}, true)
	if err != nil {
		return nil, err
	}

	var payload taskListPayload
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: parse getTasks response: %v", domain.ErrServer, err)
	}
	if len(payload.Tasks) == 0 {
		return nil, fmt.Errorf("%w: no task found with id %d", domain.ErrItemNotFound, id)
	}
	return s.hydrateTask(ctx, payload.Tasks[0], resolveParent)
}

// AddTask creates a task with the given title and returns its
// server-assigned id. Optional fields follow the task write declarations:
// tag, folder/context/goal, startdate, duedate (string values may carry a
// modifier prefix), duetime, parent, repeat, priority, status, star,
// length, note.
func (s *Session) AddTask(ctx context.Context, title string, params Params) (int64, error) {
	if title == "" {
		return 0, fmt.Errorf("%w: empty task title", domain.ErrConfiguration)
	}

	wire, err := s.marshal(ctx, params, taskWriteFields)
	if err != nil {
		return 0, err
	}
	wire["title"] = title

	body, err := s.call(ctx, "addTask", wire, true)
	if err != nil {
		return 0, err
	}
	return rootID(body)
}

// EditTask updates the task with the given id; params as for AddTask plus
// completed (boolean).
func (s *Session) EditTask(ctx context.Context, id int64, params Params) error {
	wire, err := s.marshal(ctx, params, taskWriteFields)
	if err != nil {
		return err
	}
	wire["id"] = formatID(id)

	body, err := s.call(ctx, "editTask", wire, true)
	if err != nil {
		return err
	}
	return rootOK(body, "editTask")
}

// DeleteTask removes the task with the given id.
func (s *Session) DeleteTask(ctx context.Context, id int64) error {
	body, err := s.call(ctx, "deleteTask", map[string]string{"id": formatID(id)}, true)
	if err != nil {
		return err
	}
	return rootOK(body, "deleteTask")
}

// GetDeleted returns tasks deleted after the given instant.
func (s *Session) GetDeleted(ctx context.Context, after time.Time) ([]*domain.DeletedTask, error) {
	params := map[string]string{"after": after.Format(domain.DateTimeFormat)}
	body, err := s.call(ctx, "getDeleted", params, true)
	if err != nil {
		return nil, err
	}

	var payload struct {
		XMLName xml.Name `xml:"deleted"`
		Tasks   []struct {
			ID    string `xml:"id"`
			Title string `xml:"title"`
			Stamp string `xml:"stamp"`
		} `xml:"task"`
	}
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: parse getDeleted response: %v", domain.ErrServer, err)
	}

	deleted := make([]*domain.DeletedTask, 0, len(payload.Tasks))
	for _, rec := range payload.Tasks {
		stamp, _ := time.Parse(domain.DateTimeFormat, rec.Stamp)
		deleted = append(deleted, &domain.DeletedTask{
			ID:        parseID(rec.ID),
			Title:     rec.Title,
			DeletedAt: stamp,
		})
	}
	return deleted, nil
}

// hydrateTask builds a Task from a raw record: references resolve through
// the entity caches (id 0 and dangling ids fall back to the sentinels),
// date-bearing fields parse with the fixed wire formats, and literal "0"
// optional fields become absent. When resolveParent is set and the record
// names a non-zero parent, one extra fetch hydrates the parent shallowly —
// one call per parented task, a quirk of the protocol.
func (s *Session) hydrateTask(ctx context.Context, rec taskRecord, resolveParent bool) (*domain.Task, error) {
	folder, err := s.lookupFolder(ctx, parseID(rec.Folder))
	if err != nil {
		return nil, err
	}
	taskContext, err := s.lookupContext(ctx, rec.Context.ID)
	if err != nil {
		return nil, err
	}
	goal, err := s.lookupGoal(ctx, rec.Goal.ID)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:       parseID(rec.ID),
		Title:    rec.Title,
		Tag:      zeroAbsent(rec.Tag),
		Folder:   folder,
		Context:  taskContext,
		Goal:     goal,
		ParentID: parseID(rec.Parent),
		Children: int(parseID(rec.Children)),
		Repeat:   domain.Repeat(parseID(rec.Repeat)),
		Priority: domain.Priority(parseID(rec.Priority)),
		Status:   domain.Status(parseID(rec.Status)),
		Star:     rec.Star == "1",
		Length:   int(parseID(rec.Length)),
		Timer:    int(parseID(rec.Timer)),
		Note:     zeroAbsent(rec.Note),
	}

	task.AddedAt = parseDate(rec.Added, domain.DateFormat)
	task.ModifiedAt = parseDate(rec.Modified, domain.DateTimeFormat)
	task.CompletedAt = parseDate(rec.Completed, domain.DateFormat)
	task.StartDate = parseDate(rec.StartDate, domain.DateFormat)

	task.DueModifier = rec.DueDate.Modifier
	if due := strings.TrimSpace(rec.DueDate.Date); due != "" {
		dueDate := parseDate(due, domain.DateFormat)
		if clock, ok := parseClock(rec.DueTime); ok {
			dueDate = dueDate.Add(clock)
		}
		task.DueDate = dueDate
	}

	if resolveParent && task.ParentID != 0 {
		parent, err := s.getTaskByID(ctx, task.ParentID, false)
		if err != nil && !errors.Is(err, domain.ErrItemNotFound) {
			return nil, err
		}
		task.Parent = parent
	}

	return task, nil
}

// lookupFolder resolves a folder reference for hydration; id 0 and ids the
// cache does not know both fall back to the sentinel.
func (s *Session) lookupFolder(ctx context.Context, id int64) (*domain.Folder, error) {
	if id == 0 {
		return domain.NoFolder, nil
	}
	folder, err := s.GetFolderByID(ctx, id)
	if errors.Is(err, domain.ErrItemNotFound) {
		return domain.NoFolder, nil
	}
	if err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *Session) lookupContext(ctx context.Context, id int64) (*domain.Context, error) {
	if id == 0 {
		return domain.NoContext, nil
	}
	c, err := s.GetContextByID(ctx, id)
	if errors.Is(err, domain.ErrItemNotFound) {
		return domain.NoContext, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Session) lookupGoal(ctx context.Context, id int64) (*domain.Goal, error) {
	if id == 0 {
		return domain.NoGoal, nil
	}
	goal, err := s.GetGoalByID(ctx, id)
	if errors.Is(err, domain.ErrItemNotFound) {
		return domain.NoGoal, nil
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func parseID(text string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// zeroAbsent maps the server's literal "0" placeholder to an absent value.
func zeroAbsent(text string) string {
	if text == "0" {
		return ""
	}
	return text
}

func parseDate(text, layout string) time.Time {
	parsed, err := time.Parse(layout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// parseClock turns a due time like "2:00pm" or "02:00 PM" into an offset
// from midnight.
func parseClock(text string) (time.Duration, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(text))
	if normalized == "" || normalized == "0" {
		return 0, false
	}
	if !strings.Contains(normalized, " ") {
		normalized = strings.Replace(normalized, "AM", " AM", 1)
		normalized = strings.Replace(normalized, "PM", " PM", 1)
	}

	for _, layout := range []string{"3:04 PM", "03:04 PM", "15:04"} {
		if parsed, err := time.Parse(layout, normalized); err == nil {
			return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute, true
		}
	}
	return 0, false
}
