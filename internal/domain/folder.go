package domain

// Folder is a read-only representation of a folder. Instances handed out by
// the session are shared snapshots, valid until the next folder mutation
// flushes the cache.
type Folder struct {
	ID       int64
	Name     string
	Private  bool
	Archived bool
}

// NoFolder is the sentinel used when a task reports folder id 0.
var NoFolder = &Folder{ID: 0, Name: "No folder", Private: true}

func (f *Folder) String() string {
	return "*[" + f.Name + "]"
}
