package bootstrap

import (
	"fmt"
	"time"

	"github.com/kbukum/resolver"
)

// Summary tracks and displays what the bootstrap assembled.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
}

// NewSummary creates a startup summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// DisplaySummary prints the registration table reachable from root, one line
// per service with its scope and owning container.
func (s *Summary) DisplaySummary(root *resolver.Container) {
	fmt.Printf("\n🚀 %s %s started in %.2fs\n\n", s.serviceName, s.version, s.startupDuration.Seconds())

	infos := root.Registrations()
	if len(infos) == 0 {
		fmt.Printf("📦 No services registered\n\n")
		return
	}

	fmt.Printf("📦 Services (%d)\n", len(infos))
	for i, info := range infos {
		prefix := "├──"
		if i == len(infos)-1 {
			prefix = "└──"
		}
		name := info.Type
		if info.Name != "" {
			name += " (" + info.Name + ")"
		}
		fmt.Printf("   %s %s [%s] @%s\n", prefix, name, info.Scope, info.Container)
	}
	fmt.Printf("\n")
}
