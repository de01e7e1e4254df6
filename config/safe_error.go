package config

// SafeErrorMessage returns err.Error() in debug mode and the fallback message
// otherwise, so internal errors never leak to clients in production.
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig == nil || GlobalConfig.Server.Mode == "debug" {
		return err.Error()
	}
	return fallback
}
