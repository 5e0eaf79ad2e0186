package messages

import "sxredder/internal/watch"

// DirChangedMsg is delivered when the watched directory changed on disk
type DirChangedMsg struct {
	Change watch.Change
}

// WatchClosedMsg is delivered once the change stream has ended
type WatchClosedMsg struct{}
