package driven

import (
	port "github.com/alorle/m3u-editor/internal/port/driven"
)

// Compile-time check that PlaylistBoltDBRepository implements PlaylistRepository interface
var _ port.PlaylistRepository = (*PlaylistBoltDBRepository)(nil)

// Compile-time check that PlaylistMemoryRepository implements PlaylistRepository interface
var _ port.PlaylistRepository = (*PlaylistMemoryRepository)(nil)
