package crowd

// Level is the severity of a Diagnostic.
type Level string

const (
	// LevelInfo marks verbose trace output.
	LevelInfo Level = "info"
	// LevelWarn marks skipped configuration.
	LevelWarn Level = "warn"
	// LevelError marks a membership that could not be applied.
	LevelError Level = "error"
)

// Diagnostic codes.
const (
	CodeMappingMalformed  = "mapping_malformed"
	CodeMappingDuplicate  = "mapping_duplicate"
	CodeGroupNotFound     = "group_not_found"
	CodeGroupLookupFailed = "group_lookup_failed"
	CodeAddMemberFailed   = "add_member_failed"
	CodeModeUnknown       = "mode_unknown"
	CodeTrace             = "trace"
)

// Diagnostic is one operator facing message produced while synchronizing groups.
type Diagnostic struct {
	Level         Level  `json:"level"`
	Code          string `json:"code"`
	ExternalGroup string `json:"external_group,omitempty"`
	LocalGroup    string `json:"local_group,omitempty"`
	UserID        uint64 `json:"user_id,omitempty"`
	Message       string `json:"message"`
	Err           error  `json:"-"`
}

// Membership is a group membership the synchronizer added.
type Membership struct {
	GroupID       uint   `json:"group_id"`
	Group         string `json:"group"`
	ExternalGroup string `json:"external_group"`
}

// Report is the outcome of one synchronization.
type Report struct {
	Added       []Membership `json:"added"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Problems returns the diagnostics above info level.
func (r Report) Problems() []Diagnostic {
	var out []Diagnostic

	for _, d := range r.Diagnostics {
		if d.Level != LevelInfo {
			out = append(out, d)
		}
	}

	return out
}

func (r *Report) add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}
