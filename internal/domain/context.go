package domain

// Context is a read-only representation of a context.
type Context struct {
	ID   int64
	Name string
}

// NoContext is the sentinel used when a task reports context id 0.
var NoContext = &Context{ID: 0, Name: "No Context"}

func (c *Context) String() string {
	return "@[" + c.Name + "]"
}
