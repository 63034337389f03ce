package ports

// ValueStore persists small string values by key (e.g., the last entered income).
type ValueStore interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}
