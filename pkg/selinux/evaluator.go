package selinux

import (
	"encoding/json"
	"strings"
)

// Kind identifies one category of SELinux misconfiguration. The set is
// closed; each kind is written by exactly one check, so merging the three
// checks can never overwrite.
type Kind string

const (
	RuntimeDisabled     Kind = "runtime-disabled"
	RuntimeNotEnforcing Kind = "runtime-not-enforcing"
	BootDisabled        Kind = "boot-disabled"
	BootNotEnforcing    Kind = "boot-not-enforcing"
	GrubDisabled        Kind = "grub-disabled"
	GrubNotEnforcing    Kind = "grub-not-enforcing"
)

// Value is the payload of one detected problem: either a single offending
// setting string, or the ordered kernel command lines that triggered it.
// Exactly one of the two is set.
type Value struct {
	Setting string
	Lines   []string
}

// MarshalJSON renders a Value as either a bare string or an array of lines.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Lines != nil {
		return json.Marshal(v.Lines)
	}
	return json.Marshal(v.Setting)
}

// UnmarshalJSON accepts both shapes produced by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var lines []string
	if err := json.Unmarshal(data, &lines); err == nil {
		v.Lines = lines
		v.Setting = ""
		return nil
	}
	v.Lines = nil
	return json.Unmarshal(data, &v.Setting)
}

// Problems maps each detected problem kind to its payload.
type Problems map[Kind]Value

// finding is the result of one check: a problem kind plus its payload.
// A check that found nothing returns no findings.
type finding struct {
	kind  Kind
	value Value
}

// Evaluator merges the three configuration views into a single verdict. All
// checks run once at construction; the result is immutable afterwards and
// safe for concurrent reads.
type Evaluator struct {
	problems Problems
}

// NewEvaluator runs the runtime, boot-config and bootloader checks against
// the given snapshots. The checks are independent and their order does not
// affect the merged result.
func NewEvaluator(status Status, boot BootConfig, grub GrubConfig) *Evaluator {
	return &Evaluator{
		problems: merge(
			checkRuntime(status),
			checkBootConfig(boot),
			checkBootloader(grub),
		),
	}
}

// Problems returns the merged problem map. Callers must not mutate it.
func (e *Evaluator) Problems() Problems {
	return e.problems
}

// OK reports whether no problem was detected by any of the three checks.
func (e *Evaluator) OK() bool {
	return len(e.problems) == 0
}

// checkRuntime inspects the live sestatus view. A disabled runtime
// short-circuits the enforcing check, since current_mode is meaningless
// when SELinux is not running.
func checkRuntime(status Status) []finding {
	if status.SELinuxStatus != "enabled" {
		return []finding{{RuntimeDisabled, Value{Setting: status.SELinuxStatus}}}
	}
	if status.CurrentMode != "enforcing" {
		return []finding{{RuntimeNotEnforcing, Value{Setting: status.CurrentMode}}}
	}
	return nil
}

// checkBootConfig inspects the persisted SELINUX value that decides the mode
// at next boot.
func checkBootConfig(boot BootConfig) []finding {
	switch {
	case boot.SELinux == "disabled":
		return []finding{{BootDisabled, Value{Setting: boot.SELinux}}}
	case boot.SELinux != "enforcing":
		// Any other accepted mode, typically "permissive".
		return []finding{{BootNotEnforcing, Value{Setting: boot.SELinux}}}
	}
	return nil
}

// checkBootloader scans kernel command lines for selinux=0 / enforcing=0
// overrides. The menuentry family wins when present; title entries are only
// inspected when no menuentry exists, never merged across families.
func checkBootloader(grub GrubConfig) []finding {
	var kernelLines []string

	if entries := grub.Get("menuentry"); len(entries) > 0 {
		kernelLines = collectKernelLines(entries, "linux")
	} else if entries := grub.Get("title"); len(entries) > 0 {
		kernelLines = collectKernelLines(entries, "kernel")
	}

	var disabled, notEnforcing []string
	for _, line := range kernelLines {
		if strings.Contains(line, "selinux=0") {
			disabled = append(disabled, line)
		}
		if strings.Contains(line, "enforcing=0") {
			notEnforcing = append(notEnforcing, line)
		}
	}

	var found []finding
	if disabled != nil {
		found = append(found, finding{GrubDisabled, Value{Lines: disabled}})
	}
	if notEnforcing != nil {
		found = append(found, finding{GrubNotEnforcing, Value{Lines: notEnforcing}})
	}
	return found
}

// collectKernelLines gathers the options of every directive whose name
// starts with the family's kernel prefix ("linux" covers linux16/linuxefi,
// "kernel" the legacy single-entry dialect), preserving entry order.
func collectKernelLines(entries []Entry, prefix string) []string {
	var lines []string
	for _, entry := range entries {
		for _, d := range entry {
			if strings.HasPrefix(d.Name, prefix) {
				lines = append(lines, d.Options)
			}
		}
	}
	return lines
}

// merge assembles per-check findings into the final map. Each kind comes
// from exactly one check, so insertion order is irrelevant to the result.
func merge(groups ...[]finding) Problems {
	problems := make(Problems)
	for _, group := range groups {
		for _, f := range group {
			problems[f.kind] = f.value
		}
	}
	return problems
}
