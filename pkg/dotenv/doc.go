// Package dotenv resolves the effective environment used for template
// substitution inside MCI schema documents.
//
// Variables are layered from multiple optional sources under a fixed
// precedence order (lowest to highest):
//
//  1. <root>/mci/.env (library-level defaults)
//  2. <root>/mci/.env.mci (library-level MCI overrides)
//  3. <root>/.env (project-level configuration)
//  4. <root>/.env.mci (project-level MCI overrides)
//  5. process environment
//  6. explicit caller-supplied overrides (e.g. --env flags)
//
// Every source is optional. A missing or unreadable file contributes an
// empty mapping; resolution never fails.
//
// File format is one assignment per line:
//
//	# comment
//	export API_KEY="abc123"
//	TIMEOUT = 30
//
// Values may be wrapped in a single matching pair of quotes, which is
// stripped. No escape processing and no variable expansion is performed;
// values are extracted literally.
package dotenv
