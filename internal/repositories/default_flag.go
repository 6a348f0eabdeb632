package repositories

// ResolveDefaultFlag decides the stored default flag for a new record and
// whether existing defaults must be demoted. The first record inserted
// into an empty store is always the default, regardless of the requested
// value; an explicitly requested default demotes every other record.
func ResolveDefaultFlag(requested bool, existing int64) (isDefault bool, clearOthers bool) {
	if existing == 0 {
		return true, false
	}
	if requested {
		return true, true
	}
	return false, false
}
