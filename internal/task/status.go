package task

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// Status is the lifecycle stage ECS reports for a task. The zero value is
// not a valid status; values order the same way the lifecycle progresses.
type Status int

const (
	StatusProvisioning Status = iota + 1
	StatusPending
	StatusActivating
	StatusRunning
	StatusDeactivating
	StatusStopping
	StatusDeprovisioning
	StatusStopped
)

var statusNames = map[Status]string{
	StatusProvisioning:   "PROVISIONING",
	StatusPending:        "PENDING",
	StatusActivating:     "ACTIVATING",
	StatusRunning:        "RUNNING",
	StatusDeactivating:   "DEACTIVATING",
	StatusStopping:       "STOPPING",
	StatusDeprovisioning: "DEPROVISIONING",
	StatusStopped:        "STOPPED",
}

// ParseStatus maps an ECS lastStatus token to a Status. Matching is exact and
// case-sensitive; there is no fallback for unknown tokens.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unrecognized task status %q: %w", s, errdefs.ErrInvalidArgument)
}

// String returns the ECS token for the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Before reports whether s comes earlier in the task lifecycle than other.
func (s Status) Before(other Status) bool {
	return s < other
}

// Suffix renders the status for menu labels: empty for a running task,
// otherwise a leading space followed by the status name.
func (s Status) Suffix() string {
	if s == StatusRunning {
		return ""
	}
	return " " + s.String()
}
