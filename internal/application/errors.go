// internal/application/errors.go
package application

// errMessage prefers the error's own message; the fallback covers errors
// without one so the UI never shows an empty string.
func errMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
