package schema

import "regexp"

// envPlaceholderPattern matches {{env.KEY}} placeholders with optional
// inner whitespace.
var envPlaceholderPattern = regexp.MustCompile(`\{\{\s*env\.([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// substituteEnv replaces {{env.KEY}} placeholders in raw document bytes
// with values from the effective environment. Placeholders whose key is
// absent from the environment are left intact, so a later load with a
// richer environment can still resolve them.
func substituteEnv(data []byte, env map[string]string) []byte {
	if len(env) == 0 {
		return data
	}
	return envPlaceholderPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		key := envPlaceholderPattern.FindSubmatch(match)[1]
		if value, ok := env[string(key)]; ok {
			return []byte(value)
		}
		return match
	})
}
