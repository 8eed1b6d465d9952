package selinux

// The three snapshot types below are the already-parsed views handed to the
// evaluator by external collectors. The evaluator never re-tokenizes them;
// it only reads the fields named here.

// Status is the runtime view taken from sestatus command output. Collectors
// emit the field values lowercased, and comparisons stay case-sensitive.
type Status struct {
	SELinuxStatus string `json:"selinux_status"`
	CurrentMode   string `json:"current_mode"`
}

// BootConfig is the persisted boot-time view from the SELinux config file.
type BootConfig struct {
	SELinux string `json:"SELINUX"`
}

// Directive is one name/options pair inside a bootloader entry, e.g.
// ("linux16", "/vmlinuz-3.10.0 root=/dev/mapper/rhel-root ro quiet").
type Directive struct {
	Name    string `json:"name"`
	Options string `json:"options"`
}

// Entry is the ordered directive sequence of a single bootloader entry.
type Entry []Directive

// GrubConfig exposes bootloader entries grouped by entry family. Modern
// configs use the "menuentry" family, legacy ones use "title"; a config
// normally carries only one of the two.
type GrubConfig struct {
	Entries map[string][]Entry `json:"entries"`
}

// Get returns the entries of the given family, nil when absent.
func (g GrubConfig) Get(family string) []Entry {
	return g.Entries[family]
}
