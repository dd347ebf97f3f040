package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsargent/toodledo/internal/domain"
)

const taskListBody = `<tasks><task>` +
	`<id>1234</id>` +
	`<parent>0</parent>` +
	`<children>0</children>` +
	`<title>Buy milk</title>` +
	`<tag>0</tag>` +
	`<folder>7</folder>` +
	`<context id="3">Home</context>` +
	`<goal id="9">Ship it</goal>` +
	`<added>2008-01-20</added>` +
	`<modified>2008-01-21 09:30:00</modified>` +
	`<startdate></startdate>` +
	`<duedate modifier="=">2008-01-23</duedate>` +
	`<duetime>2:00pm</duetime>` +
	`<completed></completed>` +
	`<repeat>1</repeat>` +
	`<priority>2</priority>` +
	`<status>2</status>` +
	`<star>1</star>` +
	`<length>20</length>` +
	`<timer>0</timer>` +
	`<note>0</note>` +
	`</task></tasks>`

func newTaskSession(t *testing.T) (*Session, *fakeCaller) {
	t.Helper()

	caller := newFakeCaller()
	stubHandshake(caller)
	caller.stub("getFolders", `<folders><folder id="7" private="0" archived="0">Errands</folder></folders>`)
	caller.stub("getContexts", `<contexts><context id="3">Home</context></contexts>`)
	caller.stub("getGoals", `<goals><goal id="9" level="2" contributes="0">Ship it</goal></goals>`)
	s, _, _ := newTestSession(t, caller)
	require.NoError(t, s.Connect(context.Background()))
	return s, caller
}

func TestGetTasksHydratesEveryField(t *testing.T) {
	t.Parallel()

	s, caller := newTaskSession(t)
	caller.stub("getTasks", taskListBody)

	tasks, err := s.GetTasks(context.Background(), Params{"notcomp": true})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "1", caller.lastParams("getTasks")["notcomp"])

	task := tasks[0]
	assert.Equal(t, int64(1234), task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Empty(t, task.Tag, `a literal "0" means no tag`)
	assert.Empty(t, task.Note)
	assert.Equal(t, "Errands", task.Folder.Name)
	assert.Equal(t, "Home", task.Context.Name)
	assert.Equal(t, "Ship it", task.Goal.Name)
	assert.Equal(t, time.Date(2008, 1, 20, 0, 0, 0, 0, time.UTC), task.AddedAt)
	assert.Equal(t, time.Date(2008, 1, 21, 9, 30, 0, 0, time.UTC), task.ModifiedAt)
	assert.True(t, task.StartDate.IsZero())
	assert.Equal(t, "=", task.DueModifier)
	assert.Equal(t, time.Date(2008, 1, 23, 14, 0, 0, 0, time.UTC), task.DueDate, "due time folds into the due date")
	assert.False(t, task.Completed())
	assert.Equal(t, domain.RepeatWeekly, task.Repeat)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, domain.StatusActive, task.Status)
	assert.True(t, task.Star)
	assert.Equal(t, 20, task.Length)
	assert.Zero(t, task.Timer)
	assert.Nil(t, task.Parent)
}

func TestUnknownReferenceIDsFallBackToSentinels(t *testing.T) {
	t.Parallel()

	s, caller := newTaskSession(t)
	caller.stub("getTasks", `<tasks><task>`+
		`<id>55</id><title>Loose ends</title>`+
		`<folder>404</folder><context id="404">Gone</context><goal id="404">Gone</goal>`+
		`</task></tasks>`)

	tasks, err := s.GetTasks(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Same(t, domain.NoFolder, tasks[0].Folder)
	assert.Same(t, domain.NoContext, tasks[0].Context)
	assert.Same(t, domain.NoGoal, tasks[0].Goal)
}

func TestParentIsFetchedShallowly(t *testing.T) {
	t.Parallel()

	s, caller := newTaskSession(t)
	caller.stub("getTasks", `<tasks><task><id>2</id><parent>1</parent><title>Child</title></task></tasks>`)
	caller.stub("getTasks", `<tasks><task><id>1</id><parent>0</parent><children>1</children><title>Parent</title></task></tasks>`)

	tasks, err := s.GetTasks(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	child := tasks[0]
	require.NotNil(t, child.Parent)
	assert.Equal(t, int64(1), child.Parent.ID)
	assert.Equal(t, "Parent", child.Parent.Title)
	assert.True(t, child.Parent.IsParent())
	assert.Nil(t, child.Parent.Parent, "hydration stops one level up")
	assert.Equal(t, 2, caller.calls["getTasks"], "one extra fetch per parented task")
	assert.Equal(t, "1", caller.lastParams("getTasks")["id"])
}

func TestAddTaskRejectsUnknownFolderNameBeforeCalling(t *testing.T) {
	t.Parallel()

	caller := newFakeCaller()
	stubHandshake(caller)
	caller.stub("getFolders", `<folders></folders>`)
	s, _, _ := newTestSession(t, caller)
	ctx := context.Background()
	require.NoError(t, s.Connect(ctx))

	_, err := s.AddTask(ctx, "Pick up dry cleaning", Params{"folder": "Errands"})
	require.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.ErrorContains(t, err, "Errands")
	assert.Zero(t, caller.calls["addTask"], "marshalling fails before anything is sent")
}

func TestAddTaskMarshalsDeclaredFields(t *testing.T) {
	t.Parallel()

	s, caller := newTaskSession(t)
	caller.stub("addTask", `<added>99001</added>`)

	id, err := s.AddTask(context.Background(), "Buy milk & eggs; now", Params{
		"folder":   "Errands",
		"duedate":  "=2008-01-23",
		"priority": domain.PriorityHigh,
		"star":     true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99001), id)

	sent := caller.lastParams("addTask")
	assert.Equal(t, "Buy milk & eggs; now", sent["title"])
	assert.Equal(t, "7", sent["folder"])
	assert.Equal(t, "=2008-01-23", sent["duedate"])
	assert.Equal(t, "2", sent["priority"])
	assert.Equal(t, "1", sent["star"])

	_, err = s.AddTask(context.Background(), "", nil)
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestEditAndDeleteTask(t *testing.T) {
	t.Parallel()

	s, caller := newTaskSession(t)
	caller.stub("editTask", `<success>1</success>`)
	caller.stub("deleteTask", `<success>1</success>`)
	ctx := context.Background()

	require.NoError(t, s.EditTask(ctx, 1234, Params{"completed": true}))
	assert.Equal(t, "1234", caller.lastParams("editTask")["id"])
	assert.Equal(t, "1", caller.lastParams("editTask")["completed"])

	require.NoError(t, s.DeleteTask(ctx, 1234))
	assert.Equal(t, "1234", caller.lastParams("deleteTask")["id"])
}

func TestGetTaskByIDMissing(t *testing.T) {
	t.Parallel()

	s, caller := newTaskSession(t)
	caller.stub("getTasks", `<tasks></tasks>`)

	_, err := s.GetTaskByID(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestGetDeleted(t *testing.T) {
	t.Parallel()

	s, caller := newTaskSession(t)
	caller.stub("getDeleted", `<deleted><task><id>77</id><title>Old chore</title><stamp>2008-02-01 08:00:00</stamp></task></deleted>`)

	since := time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC)
	deleted, err := s.GetDeleted(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, int64(77), deleted[0].ID)
	assert.Equal(t, "Old chore", deleted[0].Title)
	assert.Equal(t, time.Date(2008, 2, 1, 8, 0, 0, 0, time.UTC), deleted[0].DeletedAt)
	assert.Equal(t, "2008-01-01 00:00:00", caller.lastParams("getDeleted")["after"])
}

func TestParseClock(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"2:00pm", 14 * time.Hour, true},
		{"02:00 PM", 14 * time.Hour, true},
		{"9:15am", 9*time.Hour + 15*time.Minute, true},
		{"15:04", 15*time.Hour + 4*time.Minute, true},
		{"12:00am", 0, true},
		{"0", 0, false},
		{"", 0, false},
		{"noon", 0, false},
	}

	for _, tc := range testCases {
		got, ok := parseClock(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
