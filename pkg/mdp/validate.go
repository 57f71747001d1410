package mdp

// Validate checks that every required option is present in settings.
// All missing names are reported at once, attributed to step.
func Validate(settings *Settings, required []string, step string) error {
	missing := settings.Missing(required)
	if len(missing) == 0 {
		return nil
	}
	return &MalformedFileError{
		Step:    step,
		Missing: missing,
	}
}
