package errors

type ExitCode int

const (
	GenericFailureExitCode ExitCode = 1

	// Settings and module configuration
	SettingsFailureExitCode = 64
	ConfigFailureExitCode   = 65
	InstallFailureExitCode  = 66

	// Loading
	LoadingFailureExitCode  = 70
	LoadingCanceledExitCode = 71

	ServeFailureExitCode = 80
)
