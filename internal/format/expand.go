package format

import "os"

// ExpandVars substitutes $NAME and ${NAME} in template using vars,
// falling back to environment variables.
func ExpandVars(template string, vars map[string]string) string {
	return os.Expand(template, func(key string) string {
		if v, ok := vars[key]; ok {
			return v
		}
		return os.Getenv(key)
	})
}

// expandArgs expands each argument with the per-call variables.
func expandArgs(args []string, vars map[string]string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = ExpandVars(a, vars)
	}
	return out
}
