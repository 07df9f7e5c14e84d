package state

import (
	"github.com/mechtronglobal/backend/config"
	"github.com/mechtronglobal/backend/storage/content"
	"github.com/mechtronglobal/backend/storage/media"
)

// ServerState carries the process-wide dependencies handlers run against.
// The media store is fixed for the life of the process; there is no
// per-request strategy switching.
type ServerState struct {
	Cfg          *config.Config
	MediaStore   media.Store
	ContentStore content.Store
}
