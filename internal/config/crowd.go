package config

const (
	// CrowdModeSeparated keeps locally registered accounts out of reach of Crowd logins.
	CrowdModeSeparated = "separated"
	// CrowdModeMixed shares the username namespace between Crowd and local accounts.
	CrowdModeMixed = "mixed"

	// LinkBackendDB stores links in the plugin store table of the main database.
	LinkBackendDB = "db"
	// LinkBackendKV stores links in a gofiber storage table next to the main database.
	LinkBackendKV = "kv"
)

// Crowd holds the account linking and group synchronization settings.
type Crowd struct {
	// Mode selects the account resolver, "separated" (default) or "mixed".
	Mode string `toml:"mode" json:"mode"`
	// GroupsEnabled turns group synchronization on after a successful login.
	GroupsEnabled bool `toml:"groups_enabled" json:"groups_enabled"`
	// GroupsMapping entries have the form "<crowd group>:<local group>[,<local group>...]".
	GroupsMapping []string `toml:"groups_mapping" json:"groups_mapping"`
	// GroupsRemoveUnmappedGroups restricts synchronization to mapped Crowd groups.
	GroupsRemoveUnmappedGroups bool `toml:"groups_remove_unmapped_groups" json:"groups_remove_unmapped_groups"`
	// VerboseLog dumps identity events and every synchronization decision.
	VerboseLog bool `toml:"verbose_log" json:"verbose_log"`
	// LinkBackend selects where external uid links are stored, "db" (default) or "kv".
	LinkBackend string `toml:"link_backend" json:"link_backend"`
	// LinkTable is the table name used by the kv link backend.
	LinkTable string `toml:"link_table" json:"link_table"`
}
