package plantview

import (
	"github.com/grovetools/plantview/config"
	"github.com/grovetools/plantview/pkg/dashboard"
)

// pollTickMsg fires every poll interval. Ticks scheduled before an
// interval change carry an old seq and are dropped.
type pollTickMsg struct {
	seq int
}

// pollResultMsg carries a finished GET.
type pollResultMsg dashboard.PollResult

// dispatchResultMsg carries a finished POST.
type dispatchResultMsg dashboard.DispatchResult

// ConfigReloadedMsg is sent by the config watcher after the file changed.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}
