package cliutil

// GetArg returns args[index] or def when there is no such argument.
func GetArg(args []string, index int, def string) string {
	if index < len(args) {
		return args[index]
	}
	return def
}
