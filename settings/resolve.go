package settings

// resolve picks override when mode is per-slot and override is complete,
// and global otherwise.
func resolve(mode ReceiverMode, override, global Destination) Destination {
	if mode == ReceiverDifferent && override.Valid() {
		return override
	}
	return global
}
